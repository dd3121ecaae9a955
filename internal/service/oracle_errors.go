package service

import "errors"

var (
	// ErrUnauthorized means the caller carried no usable user identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionNotFound covers both a missing session id and a session
	// owned by another user.
	ErrSessionNotFound = errors.New("session not found or access denied")

	// ErrGenerationFailed wraps errors from the generation API. Nothing
	// is persisted for the turn when this is returned.
	ErrGenerationFailed = errors.New("failed to generate response")
)
