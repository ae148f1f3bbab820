package api

// Wire types for the travel API. Field names follow the server's snake_case
// JSON contract.

// User is the authenticated account. Read-only to the client; it changes only
// by re-fetching /auth/me.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// AuthResponse is returned by /auth/signup and /auth/signin.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// TokenPair is returned by /auth/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TravelPreference string

const (
	PreferenceFood       TravelPreference = "food"
	PreferenceCulture    TravelPreference = "culture"
	PreferenceNature     TravelPreference = "nature"
	PreferenceShopping   TravelPreference = "shopping"
	PreferenceAdventure  TravelPreference = "adventure"
	PreferenceRelaxation TravelPreference = "relaxation"
	PreferenceAnime      TravelPreference = "anime"
	PreferenceHistory    TravelPreference = "history"
)

type AccommodationType string

const (
	AccommodationHotel     AccommodationType = "hotel"
	AccommodationHostel    AccommodationType = "hostel"
	AccommodationApartment AccommodationType = "apartment"
	AccommodationResort    AccommodationType = "resort"
)

type TransportationType string

const (
	TransportFlight TransportationType = "flight"
	TransportTrain  TransportationType = "train"
	TransportBus    TransportationType = "bus"
	TransportCar    TransportationType = "car"
	TransportTaxi   TransportationType = "taxi"
	TransportSubway TransportationType = "subway"
	TransportWalk   TransportationType = "walk"
	TransportBike   TransportationType = "bike"
)

type Attraction struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Duration      float64 `json:"duration"`
	EstimatedCost float64 `json:"estimated_cost"`
	Tips          *string `json:"tips,omitempty"`
}

type Restaurant struct {
	Name            string  `json:"name"`
	CuisineType     string  `json:"cuisine_type"`
	Address         string  `json:"address"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	EstimatedCost   float64 `json:"estimated_cost"`
	Recommendations *string `json:"recommendations,omitempty"`
}

type Transportation struct {
	Type          TransportationType `json:"type"`
	FromLocation  string             `json:"from_location"`
	ToLocation    string             `json:"to_location"`
	DepartureTime *string            `json:"departure_time,omitempty"`
	ArrivalTime   *string            `json:"arrival_time,omitempty"`
	EstimatedCost float64            `json:"estimated_cost"`
	Notes         *string            `json:"notes,omitempty"`
}

type Accommodation struct {
	Name          string            `json:"name"`
	Type          AccommodationType `json:"type"`
	Address       string            `json:"address"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	CheckIn       string            `json:"check_in"`
	CheckOut      string            `json:"check_out"`
	EstimatedCost float64           `json:"estimated_cost"`
	Facilities    []string          `json:"facilities"`
}

// DailyItinerary belongs to exactly one TripPlan. Days are unique within a
// plan and ordered ascending.
type DailyItinerary struct {
	Day            int              `json:"day"`
	Date           string           `json:"date"`
	Attractions    []Attraction     `json:"attractions"`
	Restaurants    []Restaurant     `json:"restaurants"`
	Transportation []Transportation `json:"transportation"`
	Notes          *string          `json:"notes,omitempty"`
	TotalCost      float64          `json:"total_cost"`
}

// CostBreakdown is the server-computed estimate per category. The client
// treats it and TotalEstimatedCost as opaque.
type CostBreakdown struct {
	Transportation float64 `json:"transportation"`
	Accommodation  float64 `json:"accommodation"`
	Food           float64 `json:"food"`
	Attractions    float64 `json:"attractions"`
	Shopping       float64 `json:"shopping"`
	Other          float64 `json:"other"`
}

// TripPlan is a generated itinerary. ID is empty only for a plan the server
// has not persisted yet.
type TripPlan struct {
	ID                 string             `json:"id,omitempty"`
	UserID             string             `json:"user_id"`
	Title              string             `json:"title"`
	Destination        string             `json:"destination"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	TotalDays          int                `json:"total_days"`
	Budget             float64            `json:"budget"`
	Travelers          int                `json:"travelers"`
	Preferences        []TravelPreference `json:"preferences"`
	HasChildren        bool               `json:"has_children"`
	DailyItineraries   []DailyItinerary   `json:"daily_itineraries"`
	Accommodations     []Accommodation    `json:"accommodations"`
	EstimatedCosts     CostBreakdown      `json:"estimated_costs"`
	TotalEstimatedCost float64            `json:"total_estimated_cost"`
	CreatedAt          *string            `json:"created_at,omitempty"`
	UpdatedAt          *string            `json:"updated_at,omitempty"`
}

// TripPlanRequest is the input to the itinerary generation endpoint.
type TripPlanRequest struct {
	Destination     string             `json:"destination"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Budget          float64            `json:"budget"`
	Travelers       int                `json:"travelers"`
	Preferences     []TravelPreference `json:"preferences"`
	HasChildren     bool               `json:"has_children"`
	AdditionalNotes *string            `json:"additional_notes,omitempty"`
}

// TripPage is one page of the trip list.
type TripPage struct {
	Trips []TripPlan `json:"trips"`
	Total int        `json:"total"`
}

// Expense belongs to exactly one TripPlan.
type Expense struct {
	ID          string  `json:"id"`
	TripID      string  `json:"trip_id"`
	UserID      string  `json:"user_id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    *string `json:"location,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ExpenseCreate is the input for creating or updating an expense.
type ExpenseCreate struct {
	TripID      string  `json:"trip_id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    *string `json:"location,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ExpenseSummary is derived server-side on every request. The client never
// computes it locally.
type ExpenseSummary struct {
	TripID       string             `json:"trip_id"`
	TotalSpent   float64            `json:"total_spent"`
	Budget       float64            `json:"budget"`
	Remaining    float64            `json:"remaining"`
	ByCategory   map[string]float64 `json:"by_category"`
	DailyAverage float64            `json:"daily_average"`
}

// BudgetAnalysis is the one-shot result of the remote budget analysis.
type BudgetAnalysis struct {
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
}
