package models

import "time"

// ContactMethod is the channel an OTP is delivered over.
type ContactMethod string

const (
	MethodEmail ContactMethod = "email"
	MethodPhone ContactMethod = "phone"
)

// OTPSession is the single live code issued to a device. Exactly one
// session exists per device at a time; initiating a new login overwrites
// any prior one. The code itself is stored as a bcrypt hash.
type OTPSession struct {
	CodeHash  string        `json:"codeHash"`
	Contact   string        `json:"contact"`
	Method    ContactMethod `json:"method"`
	ExpiresAt time.Time     `json:"expiresAt"`
	CreatedAt time.Time     `json:"createdAt"`
}

// InitiateLoginRequest starts an OTP flow for a contact.
type InitiateLoginRequest struct {
	Contact  string        `json:"contact" binding:"required"`
	Method   ContactMethod `json:"method" binding:"required"`
	DeviceID string        `json:"deviceId" binding:"required"`
	FCMToken string        `json:"fcmToken,omitempty"`
}

// VerifyLoginRequest submits a code for verification.
type VerifyLoginRequest struct {
	Contact  string        `json:"contact" binding:"required"`
	Code     string        `json:"code" binding:"required"`
	Method   ContactMethod `json:"method" binding:"required"`
	DeviceID string        `json:"deviceId" binding:"required"`
}
