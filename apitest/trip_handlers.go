package apitest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-travel-client/api"
)

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req api.TripPlanRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	plan := generatePlan(requestUserID(r), req)

	s.lock.Lock()
	s.trips[plan.ID] = plan
	s.tripOrder = append([]string{plan.ID}, s.tripOrder...)
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	userID := requestUserID(r)

	s.lock.Lock()
	defer s.lock.Unlock()

	var owned []api.TripPlan
	for _, id := range s.tripOrder {
		if plan := s.trips[id]; plan != nil && plan.UserID == userID {
			owned = append(owned, *plan)
		}
	}

	total := len(owned)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, api.TripPage{Trips: owned[offset:end], Total: total})
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	plan := s.ownedTripLocked(requestUserID(r), chi.URLParam(r, "tripID"))
	s.lock.Unlock()

	if plan == nil {
		writeDetail(w, http.StatusNotFound, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var update api.TripPlan
	if err := decodeBody(r, &update); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}

	tripID := chi.URLParam(r, "tripID")

	s.lock.Lock()
	defer s.lock.Unlock()

	existing := s.ownedTripLocked(requestUserID(r), tripID)
	if existing == nil {
		writeDetail(w, http.StatusNotFound, "trip not found")
		return
	}

	update.ID = existing.ID
	update.UserID = existing.UserID
	update.CreatedAt = existing.CreatedAt
	now := time.Now().UTC().Format(time.RFC3339)
	update.UpdatedAt = &now
	s.trips[tripID] = &update

	writeJSON(w, http.StatusOK, &update)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.ownedTripLocked(requestUserID(r), tripID) == nil {
		writeDetail(w, http.StatusNotFound, "trip not found")
		return
	}

	delete(s.trips, tripID)
	for i, id := range s.tripOrder {
		if id == tripID {
			s.tripOrder = append(s.tripOrder[:i], s.tripOrder[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ownedTripLocked(userID, tripID string) *api.TripPlan {
	plan, ok := s.trips[tripID]
	if !ok || plan.UserID != userID {
		return nil
	}
	return plan
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// generatePlan produces a deterministic itinerary: one attraction and one
// restaurant per day, a single accommodation, and a cost breakdown whose sum
// is the plan's total estimate.
func generatePlan(userID string, req api.TripPlanRequest) *api.TripPlan {
	start, err := time.Parse("2006-01-02", req.StartDate)
	totalDays := 1
	if err == nil {
		if end, endErr := time.Parse("2006-01-02", req.EndDate); endErr == nil {
			totalDays = int(end.Sub(start).Hours()/24) + 1
			if totalDays < 1 {
				totalDays = 1
			}
		}
	}

	var days []api.DailyItinerary
	for day := 1; day <= totalDays; day++ {
		date := start.AddDate(0, 0, day-1).Format("2006-01-02")
		days = append(days, api.DailyItinerary{
			Day:  day,
			Date: date,
			Attractions: []api.Attraction{{
				Name:          fmt.Sprintf("%s Landmark %d", req.Destination, day),
				Description:   "Generated attraction",
				Address:       fmt.Sprintf("%d Main Street, %s", day, req.Destination),
				Latitude:      35.0 + float64(day)*0.01,
				Longitude:     139.0 + float64(day)*0.01,
				Duration:      2,
				EstimatedCost: 20,
			}},
			Restaurants: []api.Restaurant{{
				Name:          fmt.Sprintf("%s Eatery %d", req.Destination, day),
				CuisineType:   "local",
				Address:       fmt.Sprintf("%d Market Street, %s", day, req.Destination),
				Latitude:      35.0 + float64(day)*0.02,
				Longitude:     139.0 + float64(day)*0.02,
				EstimatedCost: 30,
			}},
			Transportation: []api.Transportation{{
				Type:          api.TransportSubway,
				FromLocation:  "Hotel",
				ToLocation:    fmt.Sprintf("%s Landmark %d", req.Destination, day),
				EstimatedCost: 5,
			}},
			TotalCost: 55,
		})
	}

	costs := api.CostBreakdown{
		Transportation: float64(totalDays) * 5,
		Accommodation:  float64(totalDays) * 80,
		Food:           float64(totalDays) * 30,
		Attractions:    float64(totalDays) * 20,
		Shopping:       0,
		Other:          0,
	}
	total := costs.Transportation + costs.Accommodation + costs.Food +
		costs.Attractions + costs.Shopping + costs.Other

	now := time.Now().UTC().Format(time.RFC3339)
	return &api.TripPlan{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       fmt.Sprintf("%s Trip", req.Destination),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalDays:   totalDays,
		Budget:      req.Budget,
		Travelers:   req.Travelers,
		Preferences: req.Preferences,
		HasChildren: req.HasChildren,
		DailyItineraries: days,
		Accommodations: []api.Accommodation{{
			Name:          fmt.Sprintf("%s Central Hotel", req.Destination),
			Type:          api.AccommodationHotel,
			Address:       "1 Station Plaza, " + req.Destination,
			Latitude:      35.0,
			Longitude:     139.0,
			CheckIn:       req.StartDate,
			CheckOut:      req.EndDate,
			EstimatedCost: costs.Accommodation,
			Facilities:    []string{"wifi"},
		}},
		EstimatedCosts:     costs,
		TotalEstimatedCost: total,
		CreatedAt:          &now,
	}
}
