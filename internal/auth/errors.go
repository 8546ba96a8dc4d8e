package auth

import "errors"

// Transport failures of the HTTP API backend. Callers see them only in
// logs; the sign-in forms report them as serverError.
var (
	ErrBackendUnreachable = errors.New("auth backend unreachable")
	ErrBackendResponse    = errors.New("auth backend returned an unusable response")
)
