package auth

import "errors"

// Every auth operation either resolves with a value or fails with one of
// these named errors. Handlers map them onto HTTP statuses; nothing is
// swallowed except user absence in GetCurrentUser.
var (
	// ErrDelivery means OTP dispatch failed, typically a misconfigured channel.
	ErrDelivery = errors.New("could not deliver verification code")
	// ErrNetwork is a transport failure reaching the identity provider.
	ErrNetwork = errors.New("identity provider unreachable")
	// ErrInvalidCode means the submitted code does not match the issued one.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrSessionExpired means no live OTP session exists for the device.
	ErrSessionExpired = errors.New("session expired, request a new code")
	// ErrCodeExpired means the code's 5-minute window has elapsed.
	ErrCodeExpired = errors.New("code expired, request a new one")
	// ErrSessionMismatch means the contact does not match the live session.
	ErrSessionMismatch = errors.New("contact does not match the pending login")
	// ErrNotFound means the operation requires a user that does not exist.
	ErrNotFound = errors.New("user not found")
)
