package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	userRepo "innroutes/database/repository/user"
	"innroutes/models"
	"innroutes/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProviderClient talks to a GoTrue-compatible identity provider. The
// provider owns code generation, delivery, and expiry; we only forward.
type ProviderClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewProviderClient builds a client for the provider's auth REST surface.
func NewProviderClient(baseURL, apiKey string) *ProviderClient {
	return &ProviderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// providerUser is the provider's wire representation of an account.
type providerUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// providerSession is the verify response carrying the access token.
type providerSession struct {
	AccessToken string       `json:"access_token"`
	User        providerUser `json:"user"`
}

type providerError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e providerError) text() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	}
	return "unknown provider error"
}

func contactField(method models.ContactMethod) string {
	if method == models.MethodPhone {
		return "phone"
	}
	return "email"
}

func (c *ProviderClient) do(ctx context.Context, httpMethod, path, bearer string, body any) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return resp.StatusCode, data, nil
}

// SignInWithOTP asks the provider to dispatch a code over the channel.
func (c *ProviderClient) SignInWithOTP(ctx context.Context, contact string, method models.ContactMethod) error {
	payload := map[string]any{
		contactField(method): contact,
		"create_user":        true,
	}
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/otp", "", payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		var perr providerError
		_ = json.Unmarshal(body, &perr)
		if strings.Contains(perr.text(), "sms_provider_not_found") {
			return fmt.Errorf("%w: SMS provider not configured", ErrDelivery)
		}
		return fmt.Errorf("%w: %s", ErrDelivery, perr.text())
	}
	return nil
}

// VerifyOTP forwards contact+code to the provider.
func (c *ProviderClient) VerifyOTP(ctx context.Context, contact, code string, method models.ContactMethod) (*providerSession, error) {
	verifyType := "email"
	if method == models.MethodPhone {
		verifyType = "sms"
	}
	payload := map[string]any{
		contactField(method): contact,
		"token":              code,
		"type":               verifyType,
	}
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/verify", "", payload)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		var perr providerError
		_ = json.Unmarshal(body, &perr)
		// Surfaced verbatim: the provider's wording reaches the caller.
		return nil, fmt.Errorf("%w: %s", ErrInvalidCode, perr.text())
	}

	var session providerSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: malformed verify response", ErrNetwork)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("%w: verification created no session", ErrInvalidCode)
	}
	return &session, nil
}

// GetUser fetches the account behind an access token.
func (c *ProviderClient) GetUser(ctx context.Context, accessToken string) (*providerUser, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: provider session invalid", ErrNotFound)
	}
	var user providerUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: malformed user response", ErrNetwork)
	}
	return &user, nil
}

// UpdateUser sets profile metadata on the provider account.
func (c *ProviderClient) UpdateUser(ctx context.Context, accessToken, fullName string) error {
	payload := map[string]any{"data": map[string]any{"full_name": fullName}}
	status, body, err := c.do(ctx, http.MethodPut, "/auth/v1/user", accessToken, payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		var perr providerError
		_ = json.Unmarshal(body, &perr)
		return fmt.Errorf("provider update failed: %s", perr.text())
	}
	return nil
}

// SignOut revokes the provider session.
func (c *ProviderClient) SignOut(ctx context.Context, accessToken string) error {
	status, _, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("provider sign-out returned status %d", status)
	}
	return nil
}

// ProviderAuthService delegates the OTP flow to the identity provider
// and mirrors its accounts into the local user store.
type ProviderAuthService struct {
	Client *ProviderClient
	Store  SessionStore
	Users  userRepo.UserRepository
}

// NewProviderAuthService wires the delegated flow together.
func NewProviderAuthService(client *ProviderClient, store SessionStore, users userRepo.UserRepository) *ProviderAuthService {
	return &ProviderAuthService{Client: client, Store: store, Users: users}
}

// InitiateLogin forwards dispatch to the provider, which owns the code.
func (s *ProviderAuthService) InitiateLogin(ctx context.Context, deviceID, contact string, method models.ContactMethod, fcmToken string) error {
	if method != models.MethodEmail && method != models.MethodPhone {
		return fmt.Errorf("%w: unknown channel %q", ErrDelivery, method)
	}
	return s.Client.SignInWithOTP(ctx, contact, method)
}

// VerifyLogin forwards the code, maps the provider user into our shape,
// persists it, and caches the provider access token for later reads.
func (s *ProviderAuthService) VerifyLogin(ctx context.Context, deviceID, contact, code string, method models.ContactMethod) (*AuthResponse, error) {
	session, err := s.Client.VerifyOTP(ctx, contact, code, method)
	if err != nil {
		return nil, err
	}

	user := s.mapUser(session.User, contact)
	existing, err := s.Users.GetByContact(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing == nil {
		if err := s.Users.Create(&user); err != nil {
			return nil, fmt.Errorf("failed to persist user: %w", err)
		}
	} else {
		user.CreatedAt = existing.CreatedAt
		user.OnboardingDone = existing.OnboardingDone
		if err := s.Users.Update(&user); err != nil {
			return nil, fmt.Errorf("failed to refresh user: %w", err)
		}
	}

	if err := s.Store.SaveProviderToken(ctx, user.ID, session.AccessToken); err != nil {
		utils.GetLogger().Warn("auth: failed to cache provider token", zap.Error(err))
	}

	token, err := utils.GenerateToken(user.ID, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *ProviderAuthService) mapUser(pu providerUser, contact string) models.User {
	id := pu.ID
	if id == "" {
		id = "user_" + uuid.NewString()
	}
	return models.User{
		ID:      id,
		Name:    pu.UserMetadata.FullName,
		Email:   pu.Email,
		Phone:   pu.Phone,
		Contact: contact,
	}
}

// GetCurrentUser re-derives the user from the provider's live session
// when possible, keeping the local cache in sync; falls back to the
// cached record, and converts every failure into absence.
func (s *ProviderAuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	cached, err := s.Users.GetByID(userID)
	if err != nil {
		utils.GetLogger().Warn("auth: failed to read cached user", zap.Error(err))
		cached = nil
	}

	accessToken, err := s.Store.GetProviderToken(ctx, userID)
	if err != nil || accessToken == "" {
		return cached, nil
	}

	pu, err := s.Client.GetUser(ctx, accessToken)
	if err != nil {
		return cached, nil
	}

	user := s.mapUser(*pu, firstNonEmpty(pu.Phone, pu.Email))
	if cached != nil {
		user.CreatedAt = cached.CreatedAt
		user.OnboardingDone = cached.OnboardingDone
		user.AvatarURL = cached.AvatarURL
		if err := s.Users.Update(&user); err != nil {
			utils.GetLogger().Warn("auth: failed to sync user cache", zap.Error(err))
		}
	}
	return &user, nil
}

// UpdateProfile updates the provider account first, then the local cache.
func (s *ProviderAuthService) UpdateProfile(ctx context.Context, userID, name string) (*models.User, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	accessToken, err := s.Store.GetProviderToken(ctx, userID)
	if err == nil && accessToken != "" {
		if err := s.Client.UpdateUser(ctx, accessToken, name); err != nil {
			return nil, err
		}
	}

	user.Name = name
	if err := s.Users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Logout signs out of the provider (best-effort) and unconditionally
// clears local session state.
func (s *ProviderAuthService) Logout(ctx context.Context, userID, deviceID string) error {
	accessToken, err := s.Store.GetProviderToken(ctx, userID)
	if err == nil && accessToken != "" {
		if err := s.Client.SignOut(ctx, accessToken); err != nil {
			utils.GetLogger().Warn("auth: provider sign-out failed", zap.Error(err))
		}
	}
	if err := s.Store.DeleteProviderToken(ctx, userID); err != nil {
		utils.GetLogger().Warn("auth: failed to clear provider token", zap.Error(err))
	}
	if err := s.Store.DeleteOTP(ctx, deviceID); err != nil {
		utils.GetLogger().Warn("auth: failed to clear OTP session", zap.Error(err))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
