package models

import "time"

// VisaType classifies the entry requirement for a passport/destination pair.
type VisaType string

const (
	VisaFree      VisaType = "Visa Free"
	VisaOnArrival VisaType = "Visa On Arrival"
	EVisa         VisaType = "E-Visa"
	EmbassyVisa   VisaType = "Embassy Visa Required"
)

// VisaTypes lists every valid VisaType value.
var VisaTypes = []VisaType{VisaFree, VisaOnArrival, EVisa, EmbassyVisa}

// BudgetComparison compares destination costs against the traveller's home country.
type BudgetComparison string

const (
	BudgetCheaper   BudgetComparison = "Cheaper"
	BudgetSimilar   BudgetComparison = "Similar"
	BudgetExpensive BudgetComparison = "Expensive"
)

// ActivityType categorises an itinerary activity.
type ActivityType string

const (
	ActivitySightseeing ActivityType = "sightseeing"
	ActivityFood        ActivityType = "food"
	ActivityTransport   ActivityType = "transport"
	ActivityRelax       ActivityType = "relax"
)

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Economics holds currency and daily-budget figures for a destination,
// always expressed against the traveller's home currency.
type Economics struct {
	LocalCurrency    string           `json:"localCurrency" bson:"localCurrency"`
	HomeCurrency     string           `json:"homeCurrency" bson:"homeCurrency"`
	ExchangeRate     float64          `json:"exchangeRate" bson:"exchangeRate"` // 1 home unit in local currency
	InverseRate      float64          `json:"inverseRate" bson:"inverseRate"`   // 1 local unit in home currency
	BudgetComparison BudgetComparison `json:"budgetComparison" bson:"budgetComparison"`
	DailyCostLocal   float64          `json:"dailyCostLocal" bson:"dailyCostLocal"`
	DailyCostHome    float64          `json:"dailyCostHome" bson:"dailyCostHome"`
}

// TimeInfo describes the destination's timezone relative to the traveller.
type TimeInfo struct {
	TimeZoneName    string  `json:"timeZoneName" bson:"timeZoneName"`
	GMTOffset       float64 `json:"gmtOffset" bson:"gmtOffset"`
	TimeDifference  string  `json:"timeDifference" bson:"timeDifference"`
	BestTimeToVisit string  `json:"bestTimeToVisit" bson:"bestTimeToVisit"`
}

// WeatherInfo is a coarse seasonal snapshot, not a forecast.
type WeatherInfo struct {
	Season      string `json:"season" bson:"season"`
	Temperature string `json:"temperature" bson:"temperature"`
	Advisory    string `json:"advisory" bson:"advisory"`
}

// VisaInfo describes entry requirements for the requesting passport.
type VisaInfo struct {
	Type            VisaType `json:"type" bson:"type"`
	Cost            string   `json:"cost" bson:"cost"`
	ProcessingTime  string   `json:"processingTime" bson:"processingTime"`
	Documents       []string `json:"documents" bson:"documents"`
	Warning         string   `json:"warning,omitempty" bson:"warning,omitempty"`
	DifficultyLevel string   `json:"difficultyLevel" bson:"difficultyLevel"` // Easy, Moderate, Hard
	AllowedStay     string   `json:"allowedStay" bson:"allowedStay"`
}

// TransportOption is one local transport mode with per-trip cost in both currencies.
type TransportOption struct {
	Type      string  `json:"type" bson:"type"`
	RouteInfo string  `json:"routeInfo" bson:"routeInfo"`
	CostLocal float64 `json:"costLocal" bson:"costLocal"`
	CostHome  float64 `json:"costHome" bson:"costHome"`
}

// Activity is a single itinerary entry.
type Activity struct {
	ID          string       `json:"id" bson:"id"`
	Time        string       `json:"time" bson:"time"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Location    string       `json:"location" bson:"location"`
	Type        ActivityType `json:"type" bson:"type"`
}

// DayPlan is one day of an itinerary.
type DayPlan struct {
	Day        int        `json:"day" bson:"day"`
	Date       string     `json:"date,omitempty" bson:"date,omitempty"`
	Activities []Activity `json:"activities" bson:"activities"`
}

// DestinationBundle is the structured travel-intelligence result for one
// destination/profile/day-count combination. The itinerary always has
// exactly as many days as were requested.
type DestinationBundle struct {
	Name           string            `json:"name" bson:"name"`
	Tagline        string            `json:"tagline" bson:"tagline"`
	Coordinates    GeoPoint          `json:"coordinates" bson:"coordinates"`
	Economics      Economics         `json:"economics" bson:"economics"`
	TimeInfo       TimeInfo          `json:"timeInfo" bson:"timeInfo"`
	WeatherInfo    WeatherInfo       `json:"weatherInfo" bson:"weatherInfo"`
	CultureTips    []string          `json:"cultureTips" bson:"cultureTips"`
	Visa           VisaInfo          `json:"visa" bson:"visa"`
	Itinerary      []DayPlan         `json:"itinerary" bson:"itinerary"`
	LocalTransport []TransportOption `json:"localTransport" bson:"localTransport"`
	LastUpdated    time.Time         `json:"lastUpdated" bson:"lastUpdated"`
}

// ResolveRequest carries the traveller profile used to resolve a destination.
type ResolveRequest struct {
	Destination     string `json:"destination" binding:"required"`
	HomeCountry     string `json:"homeCountry"`
	HomeCurrency    string `json:"homeCurrency"`
	PassportCountry string `json:"passportCountry"`
	Days            int    `json:"days"`
}
