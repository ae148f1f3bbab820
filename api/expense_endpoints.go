package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// CreateExpense records a new expense against a trip.
func (c *Client) CreateExpense(ctx context.Context, expense ExpenseCreate) (*Expense, error) {
	var created Expense
	if err := c.do(ctx, http.MethodPost, "/expenses/", nil, expense, &created, true); err != nil {
		return nil, errors.Wrap(err, "[Client.CreateExpense]")
	}
	return &created, nil
}

// TripExpenses fetches all expenses recorded against a trip.
func (c *Client) TripExpenses(ctx context.Context, tripID string) ([]Expense, error) {
	var expenses []Expense
	if err := c.do(ctx, http.MethodGet, "/expenses/trip/"+tripID, nil, nil, &expenses, true); err != nil {
		return nil, errors.Wrap(err, "[Client.TripExpenses]")
	}
	return expenses, nil
}

// TripExpenseSummary fetches the server-derived spend summary for a trip.
func (c *Client) TripExpenseSummary(ctx context.Context, tripID string) (*ExpenseSummary, error) {
	var summary ExpenseSummary
	if err := c.do(ctx, http.MethodGet, "/expenses/trip/"+tripID+"/summary", nil, nil, &summary, true); err != nil {
		return nil, errors.Wrap(err, "[Client.TripExpenseSummary]")
	}
	return &summary, nil
}

// UpdateExpense replaces an expense and returns the stored result.
func (c *Client) UpdateExpense(ctx context.Context, expenseID string, expense ExpenseCreate) (*Expense, error) {
	var updated Expense
	if err := c.do(ctx, http.MethodPut, "/expenses/"+expenseID, nil, expense, &updated, true); err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateExpense]")
	}
	return &updated, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := c.do(ctx, http.MethodDelete, "/expenses/"+expenseID, nil, nil, nil, true); err != nil {
		return errors.Wrap(err, "[Client.DeleteExpense]")
	}
	return nil
}

// AnalyzeTripBudget runs the remote budget analysis for a trip. The result
// is not cached and the call is never retried beyond the refresh protocol.
func (c *Client) AnalyzeTripBudget(ctx context.Context, tripID string) (*BudgetAnalysis, error) {
	var analysis BudgetAnalysis
	if err := c.do(ctx, http.MethodPost, "/expenses/trip/"+tripID+"/analyze", nil, nil, &analysis, true); err != nil {
		return nil, errors.Wrap(err, "[Client.AnalyzeTripBudget]")
	}
	return &analysis, nil
}
