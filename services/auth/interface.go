package auth

import (
	"context"

	"innroutes/models"
)

// AuthResponse is returned on successful verification: the persisted user
// plus a signed session token for the verifying device.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService is the OTP authentication flow. Two implementations exist:
// LocalAuthService generates and checks codes itself (credential-less
// demo environments), ProviderAuthService delegates to an external
// GoTrue-compatible identity provider. The choice is made once at
// startup from configuration.
type AuthService interface {
	// InitiateLogin issues a one-time code to the contact over the given
	// channel. Initiating again for the same device discards any prior
	// pending session; last-initiated wins.
	InitiateLogin(ctx context.Context, deviceID, contact string, method models.ContactMethod, fcmToken string) error

	// VerifyLogin checks the submitted code and, on success, returns the
	// authenticated user with a session token. The user record is created
	// on the first successful verification for a contact.
	VerifyLogin(ctx context.Context, deviceID, contact, code string, method models.ContactMethod) (*AuthResponse, error)

	// GetCurrentUser returns the persisted user, or nil when none exists.
	// Absence is not an error.
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile sets the display name on the current user.
	UpdateProfile(ctx context.Context, userID, name string) (*models.User, error)

	// Logout clears the device's session state. Provider sign-out is
	// best-effort; Logout always succeeds from the caller's perspective.
	Logout(ctx context.Context, userID, deviceID string) error
}
