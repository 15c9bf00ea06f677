package energy

import "sort"

// Ranking is one design's standing within a city comparison.
type Ranking struct {
	BuildingDesignID  string  `json:"buildingDesignId"`
	Name              string  `json:"name"`
	City              string  `json:"city"`
	TotalHeatGain     float64 `json:"totalHeatGain"`
	EnergyConsumption float64 `json:"energyConsumption"`
	Cost              float64 `json:"cost"`
	WeightedMetric    float64 `json:"weightedMetric"`
	CarbonEmissions   float64 `json:"carbonEmissions"`
	PeakDemand        float64 `json:"peakDemand"`
}

// PerformanceMetrics compares a design to the group average.
type PerformanceMetrics struct {
	CostEfficiency    float64 `json:"costEfficiency"`    // % cheaper than average, negative when dearer
	HeatGainIntensity float64 `json:"heatGainIntensity"` // heat gain per m² of wall
}

// ComparativeAnalysis summarises a set of designs in one city.
type ComparativeAnalysis struct {
	City               string                        `json:"city"`
	Rankings           []Ranking                     `json:"rankings"`
	BestPerformer      *Ranking                      `json:"bestPerformer"`
	WorstPerformer     *Ranking                      `json:"worstPerformer"`
	AverageCost        float64                       `json:"averageCost"`
	CostSavings        float64                       `json:"costSavings"`
	PerformanceMetrics map[string]PerformanceMetrics `json:"performanceMetrics"`
}

// SortByEnergy orders results by ascending energy consumption, keeping input order on ties.
func SortByEnergy(results []AnalysisResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].EnergyConsumption < results[j].EnergyConsumption
	})
}

// Rank turns results into rankings ordered by ascending cost.
func Rank(results []AnalysisResult) []Ranking {
	out := make([]Ranking, 0, len(results))
	for _, r := range results {
		out = append(out, Ranking{
			BuildingDesignID:  r.BuildingDesignID,
			Name:              r.Name,
			City:              r.City,
			TotalHeatGain:     r.HeatGain.Total,
			EnergyConsumption: r.EnergyConsumption,
			Cost:              r.CoolingCost,
			WeightedMetric:    WeightedMetric(r.HeatGain),
			CarbonEmissions:   CarbonEmissions(r.EnergyConsumption),
			PeakDemand:        PeakDemand(r.EnergyConsumption),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cost < out[j].Cost })
	return out
}

// Compare ranks the designs of one city and derives best/worst, average and savings.
// designs supplies wall areas for the heat-gain intensity and may omit entries.
func Compare(city string, results []AnalysisResult, designs map[string]BuildingDesign) ComparativeAnalysis {
	ca := ComparativeAnalysis{
		City:               city,
		Rankings:           Rank(results),
		PerformanceMetrics: make(map[string]PerformanceMetrics, len(results)),
	}
	if len(ca.Rankings) == 0 {
		return ca
	}

	best := ca.Rankings[0]
	worst := ca.Rankings[len(ca.Rankings)-1]
	ca.BestPerformer = &best
	ca.WorstPerformer = &worst

	var sum float64
	for _, r := range ca.Rankings {
		sum += r.Cost
	}
	ca.AverageCost = sum / float64(len(ca.Rankings))
	ca.CostSavings = worst.Cost - best.Cost

	for _, r := range ca.Rankings {
		var pm PerformanceMetrics
		if ca.AverageCost != 0 {
			pm.CostEfficiency = (ca.AverageCost - r.Cost) / ca.AverageCost * 100
		}
		if d, ok := designs[r.BuildingDesignID]; ok {
			if area := WallArea(d.Facades); area > 0 {
				pm.HeatGainIntensity = r.TotalHeatGain / area
			}
		}
		ca.PerformanceMetrics[r.BuildingDesignID] = pm
	}
	return ca
}
