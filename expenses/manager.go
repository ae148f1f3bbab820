package expenses

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-travel-client/api"
	"github.com/jrsteele09/go-travel-client/internal/apperrors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is an observable snapshot of the expense cache for one trip.
// Summary is the last value fetched from the server; after an expense
// mutation it is stale until FetchSummary is called again.
type State struct {
	TripID   string
	Expenses []api.Expense
	Summary  *api.ExpenseSummary
}

// Manager is the in-memory mirror of a trip's expense entities plus the
// server-derived budget summary. The summary is never computed locally. A
// response that resolves after the session has ended is discarded.
type Manager struct {
	client *api.Client
	log    zerolog.Logger

	lock sync.RWMutex
	// generation counts Resets; a response captured under an older
	// generation is discarded instead of applied.
	generation int
	tripID     string
	expenses   []api.Expense
	summary    *api.ExpenseSummary
}

// ManagerOption modifies a Manager instance.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates an expense cache backed by the API client.
func NewManager(client *api.Client, options ...ManagerOption) (*Manager, error) {
	if client == nil {
		return nil, errors.New("[expenses.NewManager] client is required")
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

	expenses := make([]api.Expense, len(m.expenses))
	copy(expenses, m.expenses)

	var summary *api.ExpenseSummary
	if m.summary != nil {
		s := *m.summary
		summary = &s
	}
	return State{TripID: m.tripID, Expenses: expenses, Summary: summary}
}

// Create records a new expense and inserts it at the head of the cached
// list. The summary is intentionally NOT touched: it stays stale until the
// caller fetches it again.
func (m *Manager) Create(ctx context.Context, expense api.ExpenseCreate) (*api.Expense, error) {
	gen := m.currentGeneration()
	created, err := m.client.CreateExpense(ctx, expense)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Create]")
	}

	m.lock.Lock()
	if m.generation == gen && m.tripID == created.TripID {
		m.expenses = append([]api.Expense{*created}, m.expenses...)
	}
	m.lock.Unlock()

	m.log.Info().Str("expense_id", created.ID).Str("trip_id", created.TripID).
		Float64("amount", created.Amount).Msg("Expense created")
	return created, nil
}

// List replaces the cached list wholesale with the trip's expenses. Moving
// to a different trip also drops the previous trip's summary.
func (m *Manager) List(ctx context.Context, tripID string) (State, error) {
	gen := m.currentGeneration()
	expenses, err := m.client.TripExpenses(ctx, tripID)
	if err != nil {
		return m.Snapshot(), errors.Wrap(err, "[Manager.List]")
	}

	m.lock.Lock()
	if m.generation == gen {
		if m.tripID != tripID {
			m.summary = nil
		}
		m.tripID = tripID
		m.expenses = expenses
	}
	m.lock.Unlock()

	return m.Snapshot(), nil
}

// FetchSummary replaces the cached summary wholesale with the server's
// derived value. This is the only way the summary ever changes. Moving to a
// different trip drops the previous trip's expense list, mirroring List.
func (m *Manager) FetchSummary(ctx context.Context, tripID string) (*api.ExpenseSummary, error) {
	gen := m.currentGeneration()
	summary, err := m.client.TripExpenseSummary(ctx, tripID)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.FetchSummary]")
	}

	m.lock.Lock()
	if m.generation == gen {
		if m.tripID != tripID {
			m.expenses = nil
		}
		m.tripID = tripID
		m.summary = summary
	}
	m.lock.Unlock()

	return summary, nil
}

// Update replaces the matching cached entry with the server's result. A
// response for an expense that has since left the cache is discarded. The
// summary staleness rule of Create applies.
func (m *Manager) Update(ctx context.Context, expenseID string, expense api.ExpenseCreate) (*api.Expense, error) {
	updated, err := m.client.UpdateExpense(ctx, expenseID, expense)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Update]")
	}

	m.lock.Lock()
	for i := range m.expenses {
		if m.expenses[i].ID == expenseID {
			m.expenses[i] = *updated
			break
		}
	}
	m.lock.Unlock()

	return updated, nil
}

// Delete removes the expense from the cached list. The summary staleness
// rule of Create applies.
func (m *Manager) Delete(ctx context.Context, expenseID string) error {
	if err := m.client.DeleteExpense(ctx, expenseID); err != nil {
		return errors.Wrap(err, "[Manager.Delete]")
	}

	m.lock.Lock()
	for i := range m.expenses {
		if m.expenses[i].ID == expenseID {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			break
		}
	}
	m.lock.Unlock()

	return nil
}

// AnalyzeBudget runs the one-shot remote budget analysis. The result is not
// cached and the call is not retried; failures other than the session ending
// surface as ErrAnalysis. An empty analysis text is rejected the same way.
func (m *Manager) AnalyzeBudget(ctx context.Context, tripID string) (*api.BudgetAnalysis, error) {
	analysis, err := m.client.AnalyzeTripBudget(ctx, tripID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrSessionExpired) || apperrors.Is(err, apperrors.ErrUnauthorized) {
			return nil, errors.Wrap(err, "[Manager.AnalyzeBudget]")
		}
		return nil, errors.Wrapf(apperrors.ErrAnalysis, "[Manager.AnalyzeBudget] %s", err.Error())
	}
	if analysis.Analysis == "" {
		return nil, errors.Wrap(apperrors.ErrAnalysis, "[Manager.AnalyzeBudget] empty analysis in response")
	}
	return analysis, nil
}

// Reset drops all cached entities and invalidates in-flight responses.
// Called when the session ends.
func (m *Manager) Reset() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.generation++
	m.tripID = ""
	m.expenses = nil
	m.summary = nil
}

func (m *Manager) currentGeneration() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.generation
}
