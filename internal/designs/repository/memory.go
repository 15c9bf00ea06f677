package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/buildsense/energy-backend/internal/designs/domain"
	"github.com/buildsense/energy-backend/internal/energy"
)

// MemoryRepository keeps designs in process memory. It serves local runs
// without PostgreSQL and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	designs map[string]energy.BuildingDesign
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{designs: make(map[string]energy.BuildingDesign)}
}

func (r *MemoryRepository) List(_ context.Context, buildingID string) ([]energy.BuildingDesign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]energy.BuildingDesign, 0, len(r.designs))
	for _, d := range r.designs {
		if buildingID == "" || d.BuildingID == buildingID {
			out = append(out, copyDesign(d))
		}
	}
	sortDesigns(out)
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*energy.BuildingDesign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.designs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d = copyDesign(d)
	return &d, nil
}

func (r *MemoryRepository) GetMany(_ context.Context, ids []string) ([]energy.BuildingDesign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]energy.BuildingDesign, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if d, ok := r.designs[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, copyDesign(d))
		}
	}
	sortDesigns(out)
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, d energy.BuildingDesign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.designs[d.ID] = copyDesign(d)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, d energy.BuildingDesign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.designs[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	d.CreatedAt = existing.CreatedAt
	r.designs[d.ID] = copyDesign(d)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.designs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.designs, id)
	return nil
}

func (r *MemoryRepository) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.designs))
	r.designs = make(map[string]energy.BuildingDesign)
	return n, nil
}

func copyDesign(d energy.BuildingDesign) energy.BuildingDesign {
	if d.Skylight != nil {
		s := *d.Skylight
		d.Skylight = &s
	}
	return d
}

func sortDesigns(ds []energy.BuildingDesign) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].CreatedAt.Equal(ds[j].CreatedAt) {
			return ds[i].ID < ds[j].ID
		}
		return ds[i].CreatedAt.Before(ds[j].CreatedAt)
	})
}
