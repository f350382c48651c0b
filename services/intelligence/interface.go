// File: services/intelligence/interface.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"innroutes/models"
	"innroutes/utils"

	"go.uber.org/zap"
)

// Resolver produces a travel-intelligence bundle for a destination.
// Resolve never fails observably: when the generative backend is
// unconfigured, unreachable, or returns an invalid document, the caller
// receives a bundle from the deterministic offline generator instead.
type Resolver interface {
	Resolve(ctx context.Context, req models.ResolveRequest) *models.DestinationBundle
}

// GenerativeClient is the outbound contract to the AI backend: one prompt
// in, one JSON document out.
type GenerativeClient interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// DefaultResolver is the production Resolver. A nil client means offline
// mode; the decision is made once at construction and never revisited,
// but backend failures still fall back per call.
type DefaultResolver struct {
	client GenerativeClient
	now    func() time.Time
}

// NewDefaultResolver builds a resolver. With an empty API key the
// resolver runs in offline mode for the life of the process.
func NewDefaultResolver(apiKey, model string) *DefaultResolver {
	logger := utils.GetLogger()
	if apiKey == "" {
		logger.Warn("intelligence: no Gemini API key configured, resolver running in offline mode")
		return &DefaultResolver{now: time.Now}
	}

	client, err := NewGeminiClient(apiKey, model)
	if err != nil {
		logger.Warn("intelligence: failed to initialize Gemini client, resolver running in offline mode", zap.Error(err))
		return &DefaultResolver{now: time.Now}
	}
	return &DefaultResolver{client: client, now: time.Now}
}

// NewResolverWithClient builds a resolver around an existing client.
// Used by tests and by any caller that manages its own backend.
func NewResolverWithClient(client GenerativeClient) *DefaultResolver {
	return &DefaultResolver{client: client, now: time.Now}
}

// WithClock overrides the resolver's clock.
func (r *DefaultResolver) WithClock(now func() time.Time) *DefaultResolver {
	r.now = now
	return r
}

// Resolve returns a well-formed bundle for the request. First failure on
// the backend path triggers the offline generator immediately; there is
// no retry and no caching.
func (r *DefaultResolver) Resolve(ctx context.Context, req models.ResolveRequest) *models.DestinationBundle {
	req = withDefaults(req)

	if r.client != nil {
		bundle, err := r.fromBackend(ctx, req)
		if err == nil {
			return bundle
		}
		utils.GetLogger().Warn("intelligence: backend resolve failed, using offline generator",
			zap.String("destination", req.Destination),
			zap.Error(err),
		)
	}

	return Generate(req, r.now())
}

func (r *DefaultResolver) fromBackend(ctx context.Context, req models.ResolveRequest) (*models.DestinationBundle, error) {
	text, err := r.client.GenerateJSON(ctx, buildPrompt(req))
	if err != nil {
		return nil, err
	}

	var bundle models.DestinationBundle
	if err := json.Unmarshal([]byte(text), &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := validateBundle(&bundle, req.Days); err != nil {
		return nil, err
	}

	bundle.LastUpdated = r.now()
	return &bundle, nil
}

// withDefaults fills the profile fields the mobile client may omit.
func withDefaults(req models.ResolveRequest) models.ResolveRequest {
	if req.HomeCountry == "" {
		req.HomeCountry = "India"
	}
	if req.HomeCurrency == "" {
		req.HomeCurrency = "INR"
	}
	if req.PassportCountry == "" {
		req.PassportCountry = req.HomeCountry
	}
	if req.Days <= 0 {
		req.Days = 3
	}
	return req
}
