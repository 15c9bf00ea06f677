// Package analysis runs the energy estimator over stored designs and city data,
// serving repeated requests from the result cache.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/buildsense/energy-backend/internal/cache"
	"github.com/buildsense/energy-backend/internal/cities"
	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/logging"
	"github.com/buildsense/energy-backend/internal/observability"
)

var (
	ErrNoDesigns = errors.New("no building designs found")
	ErrNoCities  = errors.New("no city data found")

	// ErrInvalidCityData marks a malformed stored city record, a server-side fault.
	ErrInvalidCityData = errors.New("invalid city data structure")
)

// maxParallel bounds concurrent (design, city) computations of one request.
const maxParallel = 8

// DesignSource reads stored designs.
type DesignSource interface {
	Get(ctx context.Context, id string) (*energy.BuildingDesign, error)
	GetMany(ctx context.Context, ids []string) ([]energy.BuildingDesign, error)
	List(ctx context.Context, buildingID string) ([]energy.BuildingDesign, error)
}

type Service struct {
	designs DesignSource
	cities  cities.Store
	cache   cache.Cache
	clock   clockwork.Clock
	metrics *observability.Metrics
}

func NewService(designs DesignSource, cityStore cities.Store, c cache.Cache, clock clockwork.Clock, metrics *observability.Metrics) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{designs: designs, cities: cityStore, cache: c, clock: clock, metrics: metrics}
}

// AnalyzeDesign returns the one-hour estimate of a stored design in one city.
func (s *Service) AnalyzeDesign(ctx context.Context, designID, cityName string) (energy.AnalysisResult, error) {
	d, err := s.designs.Get(ctx, designID)
	if err != nil {
		return energy.AnalysisResult{}, err
	}
	city, err := s.City(ctx, cityName)
	if err != nil {
		return energy.AnalysisResult{}, err
	}
	return s.analyze(ctx, *d, city)
}

// AnalyzeBuildings analyses every requested design in every city, sorted by
// ascending energy consumption. No ids means all stored designs. Any failing
// pair fails the whole request.
func (s *Service) AnalyzeBuildings(ctx context.Context, ids []string) ([]energy.AnalysisResult, error) {
	if s.metrics != nil {
		start := s.clock.Now()
		defer func() { s.metrics.AnalysisDuration.Observe(s.clock.Since(start).Seconds()) }()
	}

	designs, err := s.loadDesigns(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(designs) == 0 {
		return nil, ErrNoDesigns
	}

	allCities, err := s.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	if len(allCities) == 0 {
		return nil, ErrNoCities
	}
	for _, c := range allCities {
		if err := checkCity(c); err != nil {
			return nil, err
		}
	}

	results := make([]energy.AnalysisResult, len(designs)*len(allCities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, d := range designs {
		for j, c := range allCities {
			idx := i*len(allCities) + j
			g.Go(func() error {
				r, err := s.analyze(gctx, d, c)
				if err != nil {
					return fmt.Errorf("analyze %s in %s: %w", d.ID, c.Name, err)
				}
				results[idx] = r
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	energy.SortByEnergy(results)
	logging.FromContext(ctx).LogInfof("analyze_buildings", "analysis completed for %d building-city combinations", len(results))
	return results, nil
}

// DailyProfile spreads a design's estimate over the hours of a day in one season.
func (s *Service) DailyProfile(ctx context.Context, designID, cityName, season string) (energy.DailyProfile, error) {
	sn, err := energy.ParseSeason(season)
	if err != nil {
		return energy.DailyProfile{}, err
	}
	d, err := s.designs.Get(ctx, designID)
	if err != nil {
		return energy.DailyProfile{}, err
	}
	city, err := s.City(ctx, cityName)
	if err != nil {
		return energy.DailyProfile{}, err
	}
	return energy.BuildDailyProfile(*d, city, sn)
}

// Rankings compares the requested designs, or all designs, within one city.
func (s *Service) Rankings(ctx context.Context, ids []string, cityName string) (energy.ComparativeAnalysis, error) {
	city, err := s.City(ctx, cityName)
	if err != nil {
		return energy.ComparativeAnalysis{}, err
	}
	designs, err := s.loadDesigns(ctx, ids)
	if err != nil {
		return energy.ComparativeAnalysis{}, err
	}
	if len(designs) == 0 {
		return energy.ComparativeAnalysis{}, ErrNoDesigns
	}

	results, err := s.AnalyzeFor(ctx, designs, city)
	if err != nil {
		return energy.ComparativeAnalysis{}, err
	}

	byID := make(map[string]energy.BuildingDesign, len(designs))
	for _, d := range designs {
		byID[d.ID] = d
	}
	return energy.Compare(city.Name, results, byID), nil
}

// AnalyzeFor analyses the given designs in one city, preserving input order.
func (s *Service) AnalyzeFor(ctx context.Context, designs []energy.BuildingDesign, city energy.CityData) ([]energy.AnalysisResult, error) {
	results := make([]energy.AnalysisResult, len(designs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, d := range designs {
		g.Go(func() error {
			r, err := s.analyze(gctx, d, city)
			if err != nil {
				return fmt.Errorf("analyze %s in %s: %w", d.ID, city.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Designs resolves ids to stored designs; no ids means all designs.
func (s *Service) Designs(ctx context.Context, ids []string) ([]energy.BuildingDesign, error) {
	return s.loadDesigns(ctx, ids)
}

// City looks up one city by name and rejects a malformed record with ErrInvalidCityData.
func (s *Service) City(ctx context.Context, name string) (energy.CityData, error) {
	c, err := s.cities.GetByName(ctx, name)
	if err != nil {
		return energy.CityData{}, err
	}
	if err := checkCity(c); err != nil {
		return energy.CityData{}, err
	}
	return c, nil
}

func checkCity(c energy.CityData) error {
	if err := energy.ValidateCity(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCityData, err)
	}
	return nil
}

func (s *Service) loadDesigns(ctx context.Context, ids []string) ([]energy.BuildingDesign, error) {
	var (
		designs []energy.BuildingDesign
		err     error
	)
	if len(ids) == 0 {
		designs, err = s.designs.List(ctx, "")
	} else {
		designs, err = s.designs.GetMany(ctx, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("load designs: %w", err)
	}
	return designs, nil
}

// analyze serves one pair from the cache or computes and stores it.
// Cache failures degrade to recomputation.
func (s *Service) analyze(ctx context.Context, d energy.BuildingDesign, city energy.CityData) (energy.AnalysisResult, error) {
	log := logging.FromContext(ctx)
	key := cache.AnalysisKey(d.ID, city.Name)

	var cached energy.AnalysisResult
	hit, err := s.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		s.lookup("error")
		log.LogWarnf("cache_get", "cache read for %s failed: %v", key, err)
	case hit:
		s.lookup("hit")
		return cached, nil
	default:
		s.lookup("miss")
	}

	r, err := energy.Analyze(d, city)
	if err != nil {
		return energy.AnalysisResult{}, err
	}
	r.CreatedAt = s.clock.Now().UTC()
	if s.metrics != nil {
		s.metrics.AnalysesComputed.Inc()
	}

	if err := s.cache.Set(ctx, key, r); err != nil {
		log.LogWarnf("cache_set", "cache write for %s failed: %v", key, err)
	}
	return r, nil
}

func (s *Service) lookup(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

// ParseIDs splits a comma separated id list, dropping blanks.
func ParseIDs(raw string) []string {
	var ids []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
