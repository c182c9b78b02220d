package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	ErrUpstream   = errors.New("upstream failure")
)

// Validation failures for a subscription request. Both wrap ErrBadRequest.
var (
	ErrEmailRequired = fmt.Errorf("email is required: %w", ErrBadRequest)
	ErrInvalidEmail  = fmt.Errorf("invalid email format: %w", ErrBadRequest)
)
