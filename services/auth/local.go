package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	userRepo "innroutes/database/repository/user"
	"innroutes/models"
	"innroutes/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DeliveryFunc dispatches a generated code towards the user. In a demo
// environment this is a queued push/log notification standing in for a
// real SMS or email; delivery is invoked exactly once per generated code.
type DeliveryFunc func(ctx context.Context, payload models.OTPDeliveryPayload) error

// LocalAuthService implements the OTP flow without an identity provider.
// It owns code generation, expiry, and verification. Codes are stored as
// bcrypt hashes; the plaintext only travels through the delivery sink.
type LocalAuthService struct {
	Store   SessionStore
	Users   userRepo.UserRepository
	Deliver DeliveryFunc

	now func() time.Time
}

// NewLocalAuthService wires the local flow together.
func NewLocalAuthService(store SessionStore, users userRepo.UserRepository, deliver DeliveryFunc) *LocalAuthService {
	return &LocalAuthService{
		Store:   store,
		Users:   users,
		Deliver: deliver,
		now:     time.Now,
	}
}

// WithClock overrides the service clock.
func (s *LocalAuthService) WithClock(now func() time.Time) *LocalAuthService {
	s.now = now
	return s
}

// generateCode returns a uniformly random 6-digit numeric string.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// InitiateLogin generates a code, stores the session for the device
// (overwriting any prior one) and raises the delivery notification.
func (s *LocalAuthService) InitiateLogin(ctx context.Context, deviceID, contact string, method models.ContactMethod, fcmToken string) error {
	if method != models.MethodEmail && method != models.MethodPhone {
		return fmt.Errorf("%w: unknown channel %q", ErrDelivery, method)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	now := s.now()
	session := models.OTPSession{
		CodeHash:  string(hash),
		Contact:   contact,
		Method:    method,
		ExpiresAt: now.Add(utils.OTPSessionTTL),
		CreatedAt: now,
	}
	if err := s.Store.SaveOTP(ctx, deviceID, session); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	if err := s.Deliver(ctx, models.OTPDeliveryPayload{
		Contact:  contact,
		Method:   method,
		Code:     code,
		DeviceID: deviceID,
		FCMToken: fcmToken,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	utils.GetLogger().Info("auth: issued login code",
		zap.String("contact", contact),
		zap.String("method", string(method)),
		zap.Time("expiresAt", session.ExpiresAt),
	)
	return nil
}

// VerifyLogin checks the submitted code against the device's live
// session. The session is consumed on success, so a second attempt with
// the same code fails with ErrSessionExpired.
func (s *LocalAuthService) VerifyLogin(ctx context.Context, deviceID, contact, code string, method models.ContactMethod) (*AuthResponse, error) {
	session, err := s.Store.GetOTP(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load OTP session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionExpired
	}
	if session.Contact != contact {
		return nil, ErrSessionMismatch
	}
	if s.now().After(session.ExpiresAt) {
		return nil, ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(session.CodeHash), []byte(code)) != nil {
		return nil, ErrInvalidCode
	}

	if err := s.Store.DeleteOTP(ctx, deviceID); err != nil {
		utils.GetLogger().Error("auth: failed to consume OTP session", zap.Error(err))
	}

	user, err := s.Users.GetByContact(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user = &models.User{
			ID:      "user_" + uuid.NewString(),
			Contact: contact,
		}
		if method == models.MethodEmail {
			user.Email = contact
		} else {
			user.Phone = contact
		}
		if err := s.Users.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	token, err := utils.GenerateToken(user.ID, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &AuthResponse{User: *user, Token: token}, nil
}

// GetCurrentUser returns the persisted user or nil; absence is not an error.
func (s *LocalAuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		utils.GetLogger().Warn("auth: failed to fetch current user", zap.Error(err))
		return nil, nil
	}
	return user, nil
}

// UpdateProfile sets the display name on the current user.
func (s *LocalAuthService) UpdateProfile(ctx context.Context, userID, name string) (*models.User, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.Name = name
	if err := s.Users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Logout clears the device's transient auth state. Always succeeds.
func (s *LocalAuthService) Logout(ctx context.Context, userID, deviceID string) error {
	if err := s.Store.DeleteOTP(ctx, deviceID); err != nil {
		utils.GetLogger().Warn("auth: failed to clear OTP session on logout", zap.Error(err))
	}
	if err := s.Store.DeleteProviderToken(ctx, userID); err != nil {
		utils.GetLogger().Warn("auth: failed to clear token cache on logout", zap.Error(err))
	}
	return nil
}
