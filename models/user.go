package models

import "time"

// User is an authenticated traveller account. Accounts are created on the
// first successful OTP verification; there are no passwords.
type User struct {
	ID              string    `json:"id" bson:"id"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone           string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Contact         string    `json:"contact" bson:"contact"`
	AvatarURL       string    `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	HomeCountry     string    `json:"homeCountry,omitempty" bson:"homeCountry,omitempty"`
	PassportCountry string    `json:"passportCountry,omitempty" bson:"passportCountry,omitempty"`
	Currency        string    `json:"currency,omitempty" bson:"currency,omitempty"`
	FCMToken        string    `json:"-" bson:"fcmToken,omitempty"`
	OnboardingDone  bool      `json:"onboardingDone" bson:"onboardingDone"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}
