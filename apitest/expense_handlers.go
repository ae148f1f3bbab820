package apitest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-travel-client/api"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req api.ExpenseCreate
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	expense := &api.Expense{
		ID:          uuid.New().String(),
		TripID:      req.TripID,
		UserID:      requestUserID(r),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	s.lock.Lock()
	s.expenses[expense.ID] = expense
	s.expenseOrder = append([]string{expense.ID}, s.expenseOrder...)
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleTripExpenses(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	userID := requestUserID(r)

	s.lock.Lock()
	expenses := s.tripExpensesLocked(userID, tripID)
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	userID := requestUserID(r)

	s.lock.Lock()
	defer s.lock.Unlock()

	trip := s.ownedTripLocked(userID, tripID)
	if trip == nil {
		writeDetail(w, http.StatusNotFound, "trip not found")
		return
	}

	expenses := s.tripExpensesLocked(userID, tripID)

	totalSpent := 0.0
	byCategory := make(map[string]float64)
	for _, e := range expenses {
		totalSpent += e.Amount
		byCategory[e.Category] += e.Amount
	}

	days := trip.TotalDays
	if days < 1 {
		days = 1
	}

	writeJSON(w, http.StatusOK, api.ExpenseSummary{
		TripID:       tripID,
		TotalSpent:   totalSpent,
		Budget:       trip.Budget,
		Remaining:    trip.Budget - totalSpent,
		ByCategory:   byCategory,
		DailyAverage: totalSpent / float64(days),
	})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req api.ExpenseCreate
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	expenseID := chi.URLParam(r, "expenseID")

	s.lock.Lock()
	defer s.lock.Unlock()

	existing, ok := s.expenses[expenseID]
	if !ok || existing.UserID != requestUserID(r) {
		writeDetail(w, http.StatusNotFound, "expense not found")
		return
	}

	existing.TripID = req.TripID
	existing.Category = req.Category
	existing.Amount = req.Amount
	existing.Description = req.Description
	existing.Date = req.Date
	existing.Location = req.Location
	existing.Notes = req.Notes

	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseID")

	s.lock.Lock()
	defer s.lock.Unlock()

	existing, ok := s.expenses[expenseID]
	if !ok || existing.UserID != requestUserID(r) {
		writeDetail(w, http.StatusNotFound, "expense not found")
		return
	}

	delete(s.expenses, expenseID)
	for i, id := range s.expenseOrder {
		if id == expenseID {
			s.expenseOrder = append(s.expenseOrder[:i], s.expenseOrder[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnalyzeBudget(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	userID := requestUserID(r)

	s.lock.Lock()
	trip := s.ownedTripLocked(userID, tripID)
	expenses := s.tripExpensesLocked(userID, tripID)
	s.lock.Unlock()

	if trip == nil {
		writeDetail(w, http.StatusNotFound, "trip not found")
		return
	}

	totalSpent := 0.0
	for _, e := range expenses {
		totalSpent += e.Amount
	}

	analysis := api.BudgetAnalysis{
		Analysis: "Spending is within budget.",
		Suggestions: []string{
			"Book attractions in advance for discounts.",
			"Track daily spend against the plan's estimate.",
		},
	}
	if totalSpent > trip.Budget {
		analysis.Analysis = "Spending has exceeded the trip budget."
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) tripExpensesLocked(userID, tripID string) []api.Expense {
	expenses := make([]api.Expense, 0)
	for _, id := range s.expenseOrder {
		if e := s.expenses[id]; e != nil && e.TripID == tripID && e.UserID == userID {
			expenses = append(expenses, *e)
		}
	}
	return expenses
}
