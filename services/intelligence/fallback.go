// File: services/intelligence/fallback.go
package intelligence

import (
	"fmt"
	"time"

	"innroutes/models"
)

// Generate produces a schema-valid synthetic bundle without touching any
// backend. The seed is derived from the destination name alone, so
// repeated calls for the same name produce identical figures.
func Generate(req models.ResolveRequest, now time.Time) *models.DestinationBundle {
	seed := seedFor(req.Destination)

	comparison := models.BudgetExpensive
	if seed%2 == 0 {
		comparison = models.BudgetCheaper
	}
	dailyCost := float64(100 + seed%50)

	bundle := &models.DestinationBundle{
		Name:    req.Destination,
		Tagline: "The Adventure Awaits",
		Coordinates: models.GeoPoint{
			Lat: float64(20 + seed%20),
			Lng: float64(70 + seed%30),
		},
		Economics: models.Economics{
			LocalCurrency:    "USD",
			HomeCurrency:     req.HomeCurrency,
			ExchangeRate:     1.0,
			InverseRate:      1.0,
			BudgetComparison: comparison,
			DailyCostLocal:   dailyCost,
			DailyCostHome:    dailyCost,
		},
		TimeInfo: models.TimeInfo{
			TimeZoneName:    "GMT",
			GMTOffset:       0,
			TimeDifference:  "Unknown offset",
			BestTimeToVisit: "Spring or Autumn",
		},
		WeatherInfo: models.WeatherInfo{
			Season:      "Sunny Season",
			Temperature: "25°C / 77°F",
			Advisory:    "Pleasant weather expected.",
		},
		CultureTips: []string{
			"Respect local customs and traditions.",
			"Tipping is appreciated but not mandatory.",
			"Public transport is the best way to get around.",
		},
		Visa: models.VisaInfo{
			Type:            models.VisaFree,
			Cost:            "Free",
			ProcessingTime:  "Instant / On Arrival",
			Documents:       []string{"Passport (6 months validity)", "Return Ticket"},
			Warning:         "Always verify with the official embassy.",
			DifficultyLevel: "Easy",
			AllowedStay:     "30-90 Days",
		},
		LocalTransport: []models.TransportOption{
			{Type: "Taxi", RouteInfo: "Widely available app-based cabs", CostLocal: 20, CostHome: 20},
			{Type: "Metro", RouteInfo: "City center connectivity", CostLocal: 2, CostHome: 2},
		},
		Itinerary:   generateItinerary(req.Destination, req.Days),
		LastUpdated: now,
	}
	return bundle
}

// seedFor derives the deterministic seed: name length plus the first byte.
func seedFor(destination string) int {
	if destination == "" {
		return 0
	}
	return len(destination) + int(destination[0])
}

// generateItinerary builds days with three fixed-category activities each.
// Activity ids are day-scoped, of the form mock-d{index}-a{n}.
func generateItinerary(destination string, days int) []models.DayPlan {
	plans := make([]models.DayPlan, 0, days)
	for i := 0; i < days; i++ {
		plans = append(plans, models.DayPlan{
			Day: i + 1,
			Activities: []models.Activity{
				{
					ID:          fmt.Sprintf("mock-d%d-a1", i),
					Time:        "09:00",
					Title:       fmt.Sprintf("Explore %s Landmarks", destination),
					Description: "Visit the most iconic spots in the city center.",
					Location:    "City Center",
					Type:        models.ActivitySightseeing,
				},
				{
					ID:          fmt.Sprintf("mock-d%d-a2", i),
					Time:        "13:00",
					Title:       "Local Lunch Experience",
					Description: "Taste the authentic flavors of the region.",
					Location:    "Old Town Market",
					Type:        models.ActivityFood,
				},
				{
					ID:          fmt.Sprintf("mock-d%d-a3", i),
					Time:        "16:00",
					Title:       "Sunset Views",
					Description: "Relax and enjoy the panoramic views.",
					Location:    "Scenic Point",
					Type:        models.ActivityRelax,
				},
			},
		})
	}
	return plans
}
