// File: services/intelligence/schema.go
package intelligence

import (
	"innroutes/models"

	genai "github.com/google/generative-ai-go/genai"
)

// destinationSchema is the structural constraint attached to every
// backend request. It mirrors models.DestinationBundle field for field;
// the five analytical sections plus cultureTips and localTransport are
// all required so a schema-valid response is directly decodable.
func destinationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":    {Type: genai.TypeString},
			"tagline": {Type: genai.TypeString},
			"coordinates": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"lat": {Type: genai.TypeNumber},
					"lng": {Type: genai.TypeNumber},
				},
				Required: []string{"lat", "lng"},
			},
			"economics": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"localCurrency": {Type: genai.TypeString},
					"homeCurrency":  {Type: genai.TypeString},
					"exchangeRate":  {Type: genai.TypeNumber, Description: "How much 1 unit of Home Currency buys in Local Currency"},
					"inverseRate":   {Type: genai.TypeNumber, Description: "How much 1 unit of Local Currency costs in Home Currency"},
					"budgetComparison": {
						Type: genai.TypeString,
						Enum: []string{string(models.BudgetCheaper), string(models.BudgetSimilar), string(models.BudgetExpensive)},
					},
					"dailyCostLocal": {Type: genai.TypeNumber},
					"dailyCostHome":  {Type: genai.TypeNumber},
				},
				Required: []string{"localCurrency", "homeCurrency", "exchangeRate", "inverseRate", "budgetComparison", "dailyCostLocal", "dailyCostHome"},
			},
			"timeInfo": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"timeZoneName":    {Type: genai.TypeString},
					"gmtOffset":       {Type: genai.TypeNumber, Description: "GMT offset number (e.g. 9 or -5)"},
					"timeDifference":  {Type: genai.TypeString, Description: "Text description relative to user home (e.g. '+3 hours')"},
					"bestTimeToVisit": {Type: genai.TypeString},
				},
				Required: []string{"timeZoneName", "gmtOffset", "timeDifference", "bestTimeToVisit"},
			},
			"weatherInfo": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"season":      {Type: genai.TypeString},
					"temperature": {Type: genai.TypeString},
					"advisory":    {Type: genai.TypeString},
				},
				Required: []string{"season", "temperature", "advisory"},
			},
			"cultureTips": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"localTransport": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type":      {Type: genai.TypeString},
						"routeInfo": {Type: genai.TypeString},
						"costLocal": {Type: genai.TypeNumber},
						"costHome":  {Type: genai.TypeNumber},
					},
					Required: []string{"type", "routeInfo", "costLocal", "costHome"},
				},
			},
			"visa": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type": {
						Type: genai.TypeString,
						Enum: []string{string(models.VisaFree), string(models.VisaOnArrival), string(models.EVisa), string(models.EmbassyVisa)},
					},
					"cost":           {Type: genai.TypeString},
					"processingTime": {Type: genai.TypeString},
					"documents":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"warning":        {Type: genai.TypeString},
					"difficultyLevel": {
						Type: genai.TypeString,
						Enum: []string{"Easy", "Moderate", "Hard"},
					},
					"allowedStay": {Type: genai.TypeString, Description: "e.g. 90 Days"},
				},
				Required: []string{"type", "cost", "processingTime", "documents", "warning", "difficultyLevel", "allowedStay"},
			},
			"itinerary": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day": {Type: genai.TypeInteger},
						"activities": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"id":          {Type: genai.TypeString},
									"time":        {Type: genai.TypeString},
									"title":       {Type: genai.TypeString},
									"description": {Type: genai.TypeString},
									"location":    {Type: genai.TypeString},
									"type": {
										Type: genai.TypeString,
										Enum: []string{
											string(models.ActivitySightseeing),
											string(models.ActivityFood),
											string(models.ActivityTransport),
											string(models.ActivityRelax),
										},
									},
								},
								Required: []string{"id", "time", "title", "description", "location", "type"},
							},
						},
					},
					Required: []string{"day", "activities"},
				},
			},
		},
		Required: []string{"name", "tagline", "coordinates", "economics", "timeInfo", "weatherInfo", "cultureTips", "visa", "itinerary", "localTransport"},
	}
}
