// internal/apperrors/errors.go
package apperrors

import "errors"

// Authentication / authorization
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
)

// Input and entity errors
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("user with this email or phone number already exists")
)

// Auction state-machine errors
var (
	ErrListingNotActive = errors.New("listing is not active")
	ErrBidTooLow        = errors.New("bid must be higher than the current price")
	ErrNoBidsPlaced     = errors.New("no bids have been placed on this listing")
	ErrListingHasBids   = errors.New("listing with bids cannot be removed")
)

// External collaborators
var (
	ErrUpstream = errors.New("upstream service failed")
)
