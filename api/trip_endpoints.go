package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// CreateTripPlan asks the server to generate an itinerary. Generation can
// take tens of seconds; the caller's context bounds the wait.
func (c *Client) CreateTripPlan(ctx context.Context, request TripPlanRequest) (*TripPlan, error) {
	var plan TripPlan
	if err := c.do(ctx, http.MethodPost, "/trips/plan", nil, request, &plan, true); err != nil {
		return nil, errors.Wrap(err, "[Client.CreateTripPlan]")
	}
	return &plan, nil
}

// ListTrips fetches one page of the caller's trips.
func (c *Client) ListTrips(ctx context.Context, limit, offset int) (*TripPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var page TripPage
	if err := c.do(ctx, http.MethodGet, "/trips/", query, nil, &page, true); err != nil {
		return nil, errors.Wrap(err, "[Client.ListTrips]")
	}
	return &page, nil
}

// GetTrip fetches a single trip plan by id.
func (c *Client) GetTrip(ctx context.Context, tripID string) (*TripPlan, error) {
	var plan TripPlan
	if err := c.do(ctx, http.MethodGet, "/trips/"+tripID, nil, nil, &plan, true); err != nil {
		return nil, errors.Wrap(err, "[Client.GetTrip]")
	}
	return &plan, nil
}

// UpdateTrip replaces a trip plan server-side and returns the stored result.
func (c *Client) UpdateTrip(ctx context.Context, tripID string, plan TripPlan) (*TripPlan, error) {
	var updated TripPlan
	if err := c.do(ctx, http.MethodPut, "/trips/"+tripID, nil, plan, &updated, true); err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateTrip]")
	}
	return &updated, nil
}

// DeleteTrip removes a trip plan.
func (c *Client) DeleteTrip(ctx context.Context, tripID string) error {
	if err := c.do(ctx, http.MethodDelete, "/trips/"+tripID, nil, nil, nil, true); err != nil {
		return errors.Wrap(err, "[Client.DeleteTrip]")
	}
	return nil
}
