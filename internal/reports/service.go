// Package reports renders analysis results into PDF reports with an
// LLM-written narrative and manages the stored files.
package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/logging"
	"github.com/buildsense/energy-backend/internal/observability"
)

var (
	ErrNoBuildingIDs = errors.New("buildingIds is required")
	ErrCityRequired  = errors.New("city is required")
	ErrNoDesigns     = errors.New("no building designs found")
)

const (
	NoInsights          = "No insights available"
	InsightsUnavailable = "Insights are currently unavailable."
)

// Analyzer supplies designs, cities and their analyses.
type Analyzer interface {
	City(ctx context.Context, name string) (energy.CityData, error)
	Designs(ctx context.Context, ids []string) ([]energy.BuildingDesign, error)
	AnalyzeFor(ctx context.Context, designs []energy.BuildingDesign, city energy.CityData) ([]energy.AnalysisResult, error)
}

// Narrator writes the free-text insights of a report.
type Narrator interface {
	Enabled() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is returned to the caller after a report is stored.
type Result struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Insights string `json:"insights"`
}

type Service struct {
	analyzer Analyzer
	narrator Narrator
	store    Store
	clock    clockwork.Clock
	metrics  *observability.Metrics
}

func NewService(analyzer Analyzer, narrator Narrator, store Store, clock clockwork.Clock, metrics *observability.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{analyzer: analyzer, narrator: narrator, store: store, clock: clock, metrics: metrics}
}

// Generate analyses the designs in one city, renders and stores the report.
// Narrative failures fall back to placeholder text; everything else fails the call.
func (s *Service) Generate(ctx context.Context, buildingIDs []string, cityName string) (Result, error) {
	res, err := s.generate(ctx, buildingIDs, cityName)
	if err != nil {
		s.countReport("error")
		return Result{}, err
	}
	s.countReport("success")
	return res, nil
}

func (s *Service) generate(ctx context.Context, buildingIDs []string, cityName string) (Result, error) {
	if len(buildingIDs) == 0 {
		return Result{}, ErrNoBuildingIDs
	}
	if strings.TrimSpace(cityName) == "" {
		return Result{}, ErrCityRequired
	}

	city, err := s.analyzer.City(ctx, cityName)
	if err != nil {
		return Result{}, err
	}
	designs, err := s.analyzer.Designs(ctx, buildingIDs)
	if err != nil {
		return Result{}, err
	}
	if len(designs) == 0 {
		return Result{}, ErrNoDesigns
	}
	results, err := s.analyzer.AnalyzeFor(ctx, designs, city)
	if err != nil {
		return Result{}, err
	}

	byID := make(map[string]energy.BuildingDesign, len(designs))
	ids := make([]string, 0, len(designs))
	for _, d := range designs {
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}
	comparison := energy.Compare(city.Name, results, byID)

	insights := s.insights(ctx, ids, city.Name, comparison)

	now := s.clock.Now()
	pdf, err := Render(Document{
		City:        city.Name,
		GeneratedAt: now,
		Results:     results,
		Comparison:  comparison,
		Insights:    insights,
	})
	if err != nil {
		return Result{}, err
	}

	name := Filename(ids, city.Name, now)
	if err := s.store.Save(ctx, name, pdf); err != nil {
		return Result{}, fmt.Errorf("store report: %w", err)
	}

	logging.FromContext(ctx).LogInfof("generate_report", "stored %s (%d bytes)", name, len(pdf))
	return Result{Success: true, Filename: name, Insights: insights}, nil
}

func (s *Service) insights(ctx context.Context, ids []string, city string, ca energy.ComparativeAnalysis) string {
	if s.narrator == nil || !s.narrator.Enabled() {
		s.countLLM("skipped")
		return NoInsights
	}

	text, err := s.narrator.Complete(ctx, Prompt(ids, city, ca))
	if err != nil {
		s.countLLM("error")
		logging.FromContext(ctx).LogError("report_insights", err)
		return InsightsUnavailable
	}
	s.countLLM("success")
	if strings.TrimSpace(text) == "" {
		return NoInsights
	}
	return text
}

// Prompt asks for optimisation advice on the ranked designs.
func Prompt(ids []string, city string, ca energy.ComparativeAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please analyze the building analysis report for buildings %s in %s and provide insights. ",
		strings.Join(ids, ", "), city)
	b.WriteString("Include recommendations for energy optimization.\n\nResults per design (one hour of peak solar exposure):\n")
	for _, r := range ca.Rankings {
		fmt.Fprintf(&b, "- %s: heat gain %.0f BTU, energy %.3f kWh, cost Rs %.2f\n",
			r.Name, r.TotalHeatGain, r.EnergyConsumption, r.Cost)
	}
	return b.String()
}

func (s *Service) List(ctx context.Context) ([]Info, error) {
	return s.store.List(ctx)
}

// Open returns a stored report. Names that could escape the store are rejected.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	if err := CheckFilename(name); err != nil {
		return nil, 0, err
	}
	return s.store.Open(ctx, name)
}

func (s *Service) countReport(outcome string) {
	if s.metrics != nil {
		s.metrics.ReportsGenerated.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countLLM(outcome string) {
	if s.metrics != nil {
		s.metrics.LLMRequests.WithLabelValues(outcome).Inc()
	}
}

// Pruner removes reports older than a retention period.
type Pruner struct {
	store     Store
	retention time.Duration
	clock     clockwork.Clock
	metrics   *observability.Metrics
}

func NewPruner(store Store, retention time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Pruner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pruner{store: store, retention: retention, clock: clock, metrics: metrics}
}

// Prune deletes expired reports and returns how many were removed.
func (p *Pruner) Prune(ctx context.Context) (int, error) {
	if p.retention <= 0 {
		return 0, nil
	}
	infos, err := p.store.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := p.clock.Now().Add(-p.retention)
	removed := 0
	for _, info := range infos {
		if !info.CreatedAt.Before(cutoff) {
			continue
		}
		if err := p.store.Delete(ctx, info.Filename); err != nil && !errors.Is(err, ErrReportNotFound) {
			return removed, fmt.Errorf("delete %s: %w", info.Filename, err)
		}
		removed++
	}
	if p.metrics != nil {
		p.metrics.ReportsPruned.Add(float64(removed))
	}
	return removed, nil
}
