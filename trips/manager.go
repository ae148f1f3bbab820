package trips

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-travel-client/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is an observable snapshot of the trip cache. Trips are ordered most
// recently created first, mirroring the server's ordering.
type State struct {
	Trips   []api.TripPlan
	Total   int
	Current *api.TripPlan
}

// Manager is the in-memory mirror of the server's trip entities. Every
// mutation applies server responses only: the cache never invents a field
// the server did not echo, and a failed operation leaves it untouched. A
// response that resolves after the session has ended is discarded.
type Manager struct {
	client *api.Client
	log    zerolog.Logger

	lock sync.RWMutex
	// generation counts Resets; a response captured under an older
	// generation is discarded instead of applied.
	generation int
	trips      []api.TripPlan
	total      int
	current    *api.TripPlan
}

// ManagerOption modifies a Manager instance.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates a trip cache backed by the API client.
func NewManager(client *api.Client, options ...ManagerOption) (*Manager, error) {
	if client == nil {
		return nil, errors.New("[trips.NewManager] client is required")
	}
	m := &Manager{client: client, log: log.Logger}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Snapshot returns a copy of the cached state.
func (m *Manager) Snapshot() State {
	m.lock.RLock()
	defer m.lock.RUnlock()

	trips := make([]api.TripPlan, len(m.trips))
	copy(trips, m.trips)

	var current *api.TripPlan
	if m.current != nil {
		c := *m.current
		current = &c
	}
	return State{Trips: trips, Total: m.total, Current: current}
}

// Create generates a new itinerary, inserts it at the head of the cached
// list and makes it the active plan. Generation can take tens of seconds; a
// response arriving after the cache was reset in the meantime is dropped
// rather than re-populating a dead session's cache.
func (m *Manager) Create(ctx context.Context, request api.TripPlanRequest) (*api.TripPlan, error) {
	gen := m.currentGeneration()
	plan, err := m.client.CreateTripPlan(ctx, request)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Create]")
	}

	m.lock.Lock()
	if m.generation == gen {
		m.trips = append([]api.TripPlan{*plan}, m.trips...)
		m.total++
		m.current = plan
	}
	m.lock.Unlock()

	m.log.Info().Str("trip_id", plan.ID).Str("destination", plan.Destination).Msg("Trip plan created")
	return plan, nil
}

// List replaces the cached sequence wholesale with the server's page. There
// is no partial merge.
func (m *Manager) List(ctx context.Context, limit, offset int) (State, error) {
	gen := m.currentGeneration()
	page, err := m.client.ListTrips(ctx, limit, offset)
	if err != nil {
		return m.Snapshot(), errors.Wrap(err, "[Manager.List]")
	}

	m.lock.Lock()
	if m.generation == gen {
		m.trips = page.Trips
		m.total = page.Total
	}
	m.lock.Unlock()

	return m.Snapshot(), nil
}

// Get fetches a trip and sets it as the active plan. The list cache is
// untouched.
func (m *Manager) Get(ctx context.Context, tripID string) (*api.TripPlan, error) {
	gen := m.currentGeneration()
	plan, err := m.client.GetTrip(ctx, tripID)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Get]")
	}

	m.lock.Lock()
	if m.generation == gen {
		m.current = plan
	}
	m.lock.Unlock()
	return plan, nil
}

// Update replaces the matching cached entry with the server's result,
// preserving list order, and refreshes the active plan if it is the one
// being edited. A response for a trip that has since left the cache is
// discarded rather than re-inserted.
func (m *Manager) Update(ctx context.Context, tripID string, plan api.TripPlan) (*api.TripPlan, error) {
	updated, err := m.client.UpdateTrip(ctx, tripID, plan)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Update]")
	}

	m.lock.Lock()
	for i := range m.trips {
		if m.trips[i].ID == tripID {
			m.trips[i] = *updated
			break
		}
	}
	if m.current != nil && m.current.ID == tripID {
		m.current = updated
	}
	m.lock.Unlock()

	return updated, nil
}

// Delete removes the entry from the list cache. If it was the active plan,
// there is no active plan afterwards. Deleting an id the cache no longer
// holds is a no-op locally.
func (m *Manager) Delete(ctx context.Context, tripID string) error {
	if err := m.client.DeleteTrip(ctx, tripID); err != nil {
		return errors.Wrap(err, "[Manager.Delete]")
	}

	m.lock.Lock()
	for i := range m.trips {
		if m.trips[i].ID == tripID {
			m.trips = append(m.trips[:i], m.trips[i+1:]...)
			m.total--
			break
		}
	}
	if m.current != nil && m.current.ID == tripID {
		m.current = nil
	}
	m.lock.Unlock()

	m.log.Info().Str("trip_id", tripID).Msg("Trip plan deleted")
	return nil
}

// SetCurrent sets the active plan without touching the server.
func (m *Manager) SetCurrent(plan *api.TripPlan) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.current = plan
}

// Reset drops all cached entities and invalidates in-flight responses.
// Called when the session ends.
func (m *Manager) Reset() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.generation++
	m.trips = nil
	m.total = 0
	m.current = nil
}

func (m *Manager) currentGeneration() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.generation
}
