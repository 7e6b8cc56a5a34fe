package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the upstream API rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream indicates a transport or non-2xx failure against the upstream API.
	ErrUpstream = errors.New("upstream request failed")

	// ErrInvalid indicates the upstream API rejected the request payload.
	ErrInvalid = errors.New("invalid request")

	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientTender = errors.New("insufficient tender")
	ErrCheckoutInFlight   = errors.New("checkout already in progress")
)
