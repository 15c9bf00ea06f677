package cities

import (
	"context"

	"github.com/buildsense/energy-backend/internal/energy"
)

// Store reads the city reference table.
type Store interface {
	List(ctx context.Context) ([]energy.CityData, error)
	GetByName(ctx context.Context, name string) (energy.CityData, error)
}

// Static serves a fixed in-memory table. It backs the API when no database is configured.
type Static struct {
	cities []energy.CityData
}

func NewStatic(cities []energy.CityData) *Static {
	cp := make([]energy.CityData, len(cities))
	copy(cp, cities)
	return &Static{cities: cp}
}

func (s *Static) List(context.Context) ([]energy.CityData, error) {
	out := make([]energy.CityData, len(s.cities))
	copy(out, s.cities)
	return out, nil
}

func (s *Static) GetByName(_ context.Context, name string) (energy.CityData, error) {
	return energy.FindCity(s.cities, name)
}
