package energy

// WindowArea is the glazed share of a facade: height × width × WWR.
func WindowArea(f Facade) float64 {
	return f.Height * f.Width * f.WWR
}

// FacadeHeatGain computes Q = A × SHGC × G × Δt for one facade.
func FacadeHeatGain(f Facade, radiation, hours float64) float64 {
	return WindowArea(f) * f.SHGC * radiation * hours
}

// SkylightHeatGain uses the fixed SkylightSHGC and roof radiation. A nil skylight gains nothing.
func SkylightHeatGain(s *Skylight, roofRadiation, hours float64) float64 {
	if s == nil {
		return 0
	}
	return s.Width * s.Length * SkylightSHGC * roofRadiation * hours
}

// CoolingLoad converts a heat gain in BTU to kWh.
func CoolingLoad(heatGainBTU float64) float64 {
	return heatGainBTU / BTUPerKWh
}

// EnergyConsumption is the electrical energy needed to remove a cooling load.
func EnergyConsumption(coolingLoad float64) float64 {
	return coolingLoad / COP
}

// CoolingCost prices an energy consumption at the given tariff.
func CoolingCost(energyConsumption, electricityRate float64) float64 {
	return energyConsumption * electricityRate
}

// TotalHeatGain sums the four facades and the skylight under the given radiation.
func TotalHeatGain(d BuildingDesign, radiation SolarRadiation, hours float64) HeatGain {
	hg := HeatGain{
		North:    FacadeHeatGain(d.Facades.North, radiation.North, hours),
		South:    FacadeHeatGain(d.Facades.South, radiation.South, hours),
		East:     FacadeHeatGain(d.Facades.East, radiation.East, hours),
		West:     FacadeHeatGain(d.Facades.West, radiation.West, hours),
		Skylight: SkylightHeatGain(d.Skylight, radiation.Roof, hours),
	}
	hg.Total = hg.North + hg.South + hg.East + hg.West + hg.Skylight
	return hg
}

// Analyze estimates heat gain, energy and cost of a design in a city over one hour.
// The result carries no timestamp; callers stamp CreatedAt.
func Analyze(d BuildingDesign, city CityData) (AnalysisResult, error) {
	return AnalyzeFor(d, city, DefaultHours)
}

// AnalyzeFor is Analyze over an arbitrary duration in hours.
func AnalyzeFor(d BuildingDesign, city CityData, hours float64) (AnalysisResult, error) {
	if err := ValidateDesign(d); err != nil {
		return AnalysisResult{}, err
	}
	if err := ValidateCity(city); err != nil {
		return AnalysisResult{}, err
	}
	if !positive(hours) {
		return AnalysisResult{}, invalid("hours", "must be greater than zero")
	}

	hg := TotalHeatGain(d, city.SolarRadiation, hours)
	load := CoolingLoad(hg.Total)
	consumption := EnergyConsumption(load)

	return AnalysisResult{
		BuildingDesignID:  d.ID,
		Name:              d.Name,
		City:              city.Name,
		HeatGain:          hg,
		CoolingLoad:       load,
		EnergyConsumption: consumption,
		CoolingCost:       CoolingCost(consumption, city.ElectricityRate),
	}, nil
}

// CarbonEmissions returns tonnes of CO2 for an energy consumption in kWh.
func CarbonEmissions(energyKWh float64) float64 {
	return energyKWh / 1000 * GridEmissionFactor
}

// PeakDemand is the share of consumption expected during peak hours.
func PeakDemand(energyKWh float64) float64 {
	return energyKWh * PeakDemandShare
}

// WeightedMetric folds a heat-gain breakdown into one comparable score.
func WeightedMetric(hg HeatGain) float64 {
	m := facadeWeight * (hg.North + hg.South + hg.East + hg.West)
	return m + skylightWeight*hg.Skylight
}

// WallArea is the gross area of all four facades.
func WallArea(f Facades) float64 {
	var total float64
	for _, of := range f.Each() {
		total += of.Facade.Height * of.Facade.Width
	}
	return total
}
