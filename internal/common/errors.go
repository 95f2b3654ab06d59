// Package common defines shared constants and sentinel errors used across
// server and client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Request validation errors.
	ErrAddressRequired   = errors.New("wallet address is required")
	ErrFileRequired      = errors.New("profile photo is required")
	ErrSignatureRequired = errors.New("wallet signature is required")
	ErrInvalidSignature  = errors.New("wallet signature verification failed")

	// Directory errors.
	ErrAlreadyRegistered   = errors.New("wallet address already registered")
	ErrNoRegisteredUsers   = errors.New("no registered users")
	ErrWalletNotRegistered = errors.New("wallet not registered")

	// Upstream errors.
	ErrPinningFailed = errors.New("pinning failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
