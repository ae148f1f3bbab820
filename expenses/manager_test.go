package expenses_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-travel-client/api"
	"github.com/jrsteele09/go-travel-client/apitest"
	"github.com/jrsteele09/go-travel-client/auth"
	"github.com/jrsteele09/go-travel-client/expenses"
	"github.com/jrsteele09/go-travel-client/internal/apperrors"
	"github.com/jrsteele09/go-travel-client/token/storefakes"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	server   *apitest.Server
	client   *api.Client
	session  *auth.Manager
	expenses *expenses.Manager
	trip     *api.TripPlan
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	server := apitest.New()
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	store := storefakes.NewFakeStore()
	client := api.New(ts.URL, store)

	session, err := auth.NewManager(client, store)
	require.NoError(t, err)
	_, err = session.SignUp(context.Background(), "expenses@example.com", "secret-password-1", nil)
	require.NoError(t, err)

	manager, err := expenses.NewManager(client)
	require.NoError(t, err)
	session.OnSignedOut(manager.Reset)

	trip, err := client.CreateTripPlan(context.Background(), api.TripPlanRequest{
		Destination: "Lisbon",
		StartDate:   "2024-05-01",
		EndDate:     "2024-05-03",
		Budget:      1000,
		Travelers:   1,
	})
	require.NoError(t, err)

	return &testFixture{server: server, client: client, session: session, expenses: manager, trip: trip}
}

func expenseInput(tripID string, amount float64) api.ExpenseCreate {
	return api.ExpenseCreate{
		TripID:      tripID,
		Category:    "food",
		Amount:      amount,
		Description: "lunch",
		Date:        "2024-05-01",
	}
}

func TestCreateInsertsAtHeadAndLeavesSummaryStale(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.List(ctx, f.trip.ID)
	require.NoError(t, err)
	summary, err := f.expenses.FetchSummary(ctx, f.trip.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, summary.TotalSpent)

	first, err := f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)
	second, err := f.expenses.Create(ctx, expenseInput(f.trip.ID, 25))
	require.NoError(t, err)

	state := f.expenses.Snapshot()
	require.Len(t, state.Expenses, 2)
	require.Equal(t, second.ID, state.Expenses[0].ID)
	require.Equal(t, first.ID, state.Expenses[1].ID)

	// Still the pre-mutation summary until it is fetched again
	require.NotNil(t, state.Summary)
	require.Equal(t, 0.0, state.Summary.TotalSpent)

	summary, err = f.expenses.FetchSummary(ctx, f.trip.ID)
	require.NoError(t, err)
	require.Equal(t, 75.0, summary.TotalSpent)
	require.Equal(t, 925.0, summary.Remaining)
	require.Equal(t, 75.0, summary.ByCategory["food"])
	require.Equal(t, 25.0, summary.DailyAverage)
}

func TestCreateForOtherTripDoesNotTouchCache(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	other, err := f.client.CreateTripPlan(ctx, api.TripPlanRequest{
		Destination: "Porto",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-02",
		Budget:      500,
		Travelers:   1,
	})
	require.NoError(t, err)

	_, err = f.expenses.List(ctx, f.trip.ID)
	require.NoError(t, err)

	_, err = f.expenses.Create(ctx, expenseInput(other.ID, 40))
	require.NoError(t, err)

	state := f.expenses.Snapshot()
	require.Equal(t, f.trip.ID, state.TripID)
	require.Empty(t, state.Expenses)
}

func TestListSwitchingTripsDropsSummary(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.FetchSummary(ctx, f.trip.ID)
	require.NoError(t, err)
	require.NotNil(t, f.expenses.Snapshot().Summary)

	other, err := f.client.CreateTripPlan(ctx, api.TripPlanRequest{
		Destination: "Porto",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-02",
		Budget:      500,
		Travelers:   1,
	})
	require.NoError(t, err)

	state, err := f.expenses.List(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, other.ID, state.TripID)
	require.Nil(t, state.Summary)
}

func TestUpdateReplacesInPlace(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.List(ctx, f.trip.ID)
	require.NoError(t, err)

	created, err := f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)
	_, err = f.expenses.Create(ctx, expenseInput(f.trip.ID, 25))
	require.NoError(t, err)

	input := expenseInput(f.trip.ID, 60)
	input.Description = "dinner"
	updated, err := f.expenses.Update(ctx, created.ID, input)
	require.NoError(t, err)
	require.Equal(t, 60.0, updated.Amount)

	state := f.expenses.Snapshot()
	require.Len(t, state.Expenses, 2)
	require.Equal(t, created.ID, state.Expenses[1].ID)
	require.Equal(t, "dinner", state.Expenses[1].Description)
}

func TestLateUpdateResponseForEvictedExpenseIsDiscarded(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	created, err := f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)

	f.expenses.Reset()

	_, err = f.expenses.Update(ctx, created.ID, expenseInput(f.trip.ID, 70))
	require.NoError(t, err)

	require.Empty(t, f.expenses.Snapshot().Expenses)
}

func TestDeleteRemovesFromCache(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.List(ctx, f.trip.ID)
	require.NoError(t, err)
	created, err := f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)

	require.NoError(t, f.expenses.Delete(ctx, created.ID))
	require.Empty(t, f.expenses.Snapshot().Expenses)

	err = f.expenses.Delete(ctx, created.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFailedOperationLeavesCacheUnchanged(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.List(ctx, f.trip.ID)
	require.NoError(t, err)
	_, err = f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)
	before := f.expenses.Snapshot()

	_, err = f.expenses.Update(ctx, "no-such-expense", expenseInput(f.trip.ID, 10))
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.expenses.FetchSummary(ctx, "no-such-trip")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	after := f.expenses.Snapshot()
	require.Equal(t, before.Expenses, after.Expenses)
	require.Equal(t, before.Summary, after.Summary)
}

func TestAnalyzeBudget(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)

	analysis, err := f.expenses.AnalyzeBudget(ctx, f.trip.ID)
	require.NoError(t, err)
	require.NotEmpty(t, analysis.Analysis)
	require.NotEmpty(t, analysis.Suggestions)

	// Result is not cached
	require.Nil(t, f.expenses.Snapshot().Summary)
}

func TestAnalyzeBudgetUnknownTripIsAnalysisFailure(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.expenses.AnalyzeBudget(context.Background(), "no-such-trip")
	require.ErrorIs(t, err, apperrors.ErrAnalysis)
	require.NotErrorIs(t, err, apperrors.ErrNotFound)
}

// FetchSummary for a different trip relabels the cache; the previous trip's
// expense list must not survive under the new label.
func TestFetchSummaryForOtherTripDropsStaleList(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.List(ctx, f.trip.ID)
	require.NoError(t, err)
	_, err = f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)
	require.NotEmpty(t, f.expenses.Snapshot().Expenses)

	other, err := f.client.CreateTripPlan(ctx, api.TripPlanRequest{
		Destination: "Porto",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-02",
		Budget:      500,
		Travelers:   1,
	})
	require.NoError(t, err)

	summary, err := f.expenses.FetchSummary(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, other.ID, summary.TripID)

	state := f.expenses.Snapshot()
	require.Equal(t, other.ID, state.TripID)
	require.Empty(t, state.Expenses)
	require.Equal(t, 0.0, state.Summary.TotalSpent)
}

func TestLateListResponseAfterSignOutIsDiscarded(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)

	f.server.SetRequestDelay(300 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.expenses.List(ctx, f.trip.ID)
	}()

	// End the session while the list fetch is still in flight
	time.Sleep(50 * time.Millisecond)
	f.session.SignOut(ctx)

	<-done
	state := f.expenses.Snapshot()
	require.Empty(t, state.TripID)
	require.Empty(t, state.Expenses)
}

func TestLateSummaryResponseAfterSignOutIsDiscarded(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.server.SetRequestDelay(300 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.expenses.FetchSummary(ctx, f.trip.ID)
	}()

	time.Sleep(50 * time.Millisecond)
	f.session.SignOut(ctx)

	<-done
	state := f.expenses.Snapshot()
	require.Empty(t, state.TripID)
	require.Nil(t, state.Summary)
}

func TestResetOnSignOut(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.expenses.List(ctx, f.trip.ID)
	require.NoError(t, err)
	_, err = f.expenses.Create(ctx, expenseInput(f.trip.ID, 50))
	require.NoError(t, err)
	_, err = f.expenses.FetchSummary(ctx, f.trip.ID)
	require.NoError(t, err)

	f.session.SignOut(ctx)

	state := f.expenses.Snapshot()
	require.Empty(t, state.TripID)
	require.Empty(t, state.Expenses)
	require.Nil(t, state.Summary)
}
