// File: services/intelligence/gemini.go
package intelligence

import (
	"context"
	"fmt"
	"strings"

	"innroutes/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient calls the Gemini API with the destination schema attached
// as a structural constraint, so the model emits schema-valid JSON
// directly rather than free text.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient builds a client for the given model identifier.
func NewGeminiClient(apiKey, modelName string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = destinationSchema()
	return &GeminiClient{model: model}, nil
}

// GenerateJSON submits the prompt and concatenates the candidate's text parts.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return sb.String(), nil
}

// buildPrompt embeds the traveller profile into the instruction sent to
// the backend. The structural schema rides alongside as a response
// constraint, so the prompt only has to pin down semantics.
func buildPrompt(req models.ResolveRequest) string {
	return fmt.Sprintf(`Act as a Global Travel Intelligence Engine.
User Profile:
- Origin: %s
- Passport: %s
- Currency: %s

Task: Provide comprehensive travel intelligence for a trip to %s for %d days.

Requirements:
1. ECONOMICS: Detect destination currency. Calculate estimated exchange rate (1 %s = ? Local). Provide daily budget in BOTH currencies. Compare costs to %s.
2. VISA: Determine specific visa rules for a %s passport holder entering %s.
3. TIME: Detect destination time zone and calculate offset relative to %s.
4. TRANSPORT: List local transport options (Bus, Metro, Taxi/Grab/Uber) with specific route info (e.g. 'Line 1 to Center') and estimated cost per trip in both currencies.
5. ITINERARY: Create a %d-day plan.

Data must be strictly JSON matching the schema.`,
		req.HomeCountry, req.PassportCountry, req.HomeCurrency,
		req.Destination, req.Days,
		req.HomeCurrency, req.HomeCountry,
		req.PassportCountry, req.Destination,
		req.HomeCountry,
		req.Days,
	)
}
