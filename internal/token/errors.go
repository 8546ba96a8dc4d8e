package token

import "errors"

var (
	ErrTokenGeneration = errors.New("session token could not be signed")
	ErrInvalidToken    = errors.New("session token is invalid")
	// ErrExpiredToken is returned for a well-signed token past its exp claim.
	ErrExpiredToken = errors.New("session token expired")
)
