package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/buildsense/energy-backend/internal/cache"
	"github.com/buildsense/energy-backend/internal/designs/domain"
	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/events"
	"github.com/buildsense/energy-backend/internal/history"
	"github.com/buildsense/energy-backend/internal/logging"
	"github.com/buildsense/energy-backend/internal/observability"
)

// Repository is the persistence the service needs.
type Repository interface {
	List(ctx context.Context, buildingID string) ([]energy.BuildingDesign, error)
	Get(ctx context.Context, id string) (*energy.BuildingDesign, error)
	GetMany(ctx context.Context, ids []string) ([]energy.BuildingDesign, error)
	Create(ctx context.Context, d energy.BuildingDesign) error
	Update(ctx context.Context, d energy.BuildingDesign) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Options carries the optional collaborators. Zero values disable them.
type Options struct {
	Cache   cache.Cache
	Events  events.Publisher
	History *history.Registry
	Clock   clockwork.Clock
	Metrics *observability.Metrics
}

// DesignService applies validation, cache invalidation, edit history and
// change events around the design repository.
type DesignService struct {
	repo    Repository
	cache   cache.Cache
	events  events.Publisher
	history *history.Registry
	clock   clockwork.Clock
	metrics *observability.Metrics
}

func NewDesignService(repo Repository, opts Options) *DesignService {
	s := &DesignService{
		repo:    repo,
		cache:   opts.Cache,
		events:  opts.Events,
		history: opts.History,
		clock:   opts.Clock,
		metrics: opts.Metrics,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.events == nil {
		s.events = events.Noop{}
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.history == nil {
		s.history = history.NewRegistry(s.clock, history.DefaultMaxStates)
	}
	return s
}

func (s *DesignService) List(ctx context.Context, buildingID string) ([]energy.BuildingDesign, error) {
	return s.repo.List(ctx, buildingID)
}

// Get returns ErrNotFound for ids that are not UUIDs.
func (s *DesignService) Get(ctx context.Context, id string) (*energy.BuildingDesign, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// GetMany ignores ids that are not UUIDs or not stored.
func (s *DesignService) GetMany(ctx context.Context, ids []string) ([]energy.BuildingDesign, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	return s.repo.GetMany(ctx, valid)
}

func (s *DesignService) Create(ctx context.Context, req domain.CreateRequest) (*energy.BuildingDesign, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	d := energy.BuildingDesign{
		ID:         uuid.NewString(),
		BuildingID: req.BuildingID,
		Name:       req.Name,
		Facades:    *req.Facades,
		Skylight:   req.Skylight,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if d.BuildingID == "" {
		d.BuildingID = d.ID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}

	s.history.For(d.ID).Save(d)
	s.count("create")
	s.publish(ctx, events.DesignCreated, d)
	return &d, nil
}

// Update applies a partial update and drops cached analyses of the design.
func (s *DesignService) Update(ctx context.Context, id string, req domain.UpdateRequest) (*energy.BuildingDesign, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	h := s.history.For(id)
	if _, ok := h.Current(); !ok {
		h.Save(*current)
	}

	next, err := s.persist(ctx, req.Apply(*current))
	if err != nil {
		return nil, err
	}
	h.Save(next)
	return &next, nil
}

func (s *DesignService) Delete(ctx context.Context, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.history.Forget(id)
	s.count("delete")
	s.publish(ctx, events.DesignDeleted, *current)
	return nil
}

// DeleteAll clears the collection along with every cached analysis.
func (s *DesignService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	log := logging.FromContext(ctx)
	keys, err := s.cache.Keys(ctx, cache.AllAnalysesPattern)
	if err != nil {
		log.LogError("cache_keys", err)
	} else if err := s.cache.DeleteMultiple(ctx, keys); err != nil {
		log.LogError("cache_delete", err)
	}

	s.history.Reset()
	s.count("delete_all")
	return n, nil
}

// Compare lists the facade and skylight fields that differ from a to b.
func (s *DesignService) Compare(ctx context.Context, idA, idB string) ([]history.Change, error) {
	a, err := s.Get(ctx, idA)
	if err != nil {
		return nil, err
	}
	b, err := s.Get(ctx, idB)
	if err != nil {
		return nil, err
	}
	return history.Diff(*a, *b), nil
}

// History returns the snapshots recorded for a design since process start.
func (s *DesignService) History(ctx context.Context, id string) ([]history.Snapshot, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	h := s.history.For(id)
	if _, ok := h.Current(); !ok {
		h.Save(*current)
	}
	return h.States(), nil
}

// Undo restores and persists the previous snapshot of a design.
func (s *DesignService) Undo(ctx context.Context, id string) (*energy.BuildingDesign, error) {
	return s.step(ctx, id, (*history.History).Undo, domain.ErrNothingToUndo)
}

// Redo re-applies the snapshot undone last.
func (s *DesignService) Redo(ctx context.Context, id string) (*energy.BuildingDesign, error) {
	return s.step(ctx, id, (*history.History).Redo, domain.ErrNothingToRedo)
}

func (s *DesignService) step(
	ctx context.Context,
	id string,
	move func(*history.History) (energy.BuildingDesign, bool),
	none error,
) (*energy.BuildingDesign, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	h, ok := s.history.Lookup(id)
	if !ok {
		return nil, none
	}
	state, ok := move(h)
	if !ok {
		return nil, none
	}
	saved, err := s.persist(ctx, state)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *DesignService) persist(ctx context.Context, d energy.BuildingDesign) (energy.BuildingDesign, error) {
	d.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, d); err != nil {
		return d, err
	}
	s.invalidate(ctx, d.ID)
	s.count("update")
	s.publish(ctx, events.DesignUpdated, d)
	return d, nil
}

func (s *DesignService) invalidate(ctx context.Context, id string) {
	if err := s.cache.InvalidateBuilding(ctx, id); err != nil {
		logging.FromContext(ctx).LogError("cache_invalidate", err)
	}
}

func (s *DesignService) publish(ctx context.Context, t events.Type, d energy.BuildingDesign) {
	err := s.events.Publish(ctx, events.Event{
		Type:             t,
		BuildingDesignID: d.ID,
		BuildingID:       d.BuildingID,
		Name:             d.Name,
		OccurredAt:       s.clock.Now().UTC(),
	})
	if err != nil {
		logging.FromContext(ctx).LogErrorf("publish_event", "%s for %s: %v", t, d.ID, err)
	}
}

func (s *DesignService) count(op string) {
	if s.metrics != nil {
		s.metrics.DesignMutations.WithLabelValues(op).Inc()
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
