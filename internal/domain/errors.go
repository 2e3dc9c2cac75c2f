package domain

import "errors"

var (
	ErrMissingCapacityAttribute = errors.New("collection has no capacity attribute")
	ErrNumericalOverflow        = errors.New("numerical overflow")
	ErrMaximumTicketsReached    = errors.New("maximum tickets reached")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrCollectionNotFound       = errors.New("collection not found")
	ErrMarketplaceNotFound      = errors.New("marketplace not found")
	ErrManagerNotFound          = errors.New("manager not found")
	ErrAccountNotFound          = errors.New("account not found")
	ErrAuthorityMismatch        = errors.New("manager authority mismatch")
	ErrCollectionAlreadyExists  = errors.New("collection already exists")
	ErrMarketplaceAlreadyExists = errors.New("marketplace already exists")
	ErrManagerAlreadyExists     = errors.New("manager already exists")
	ErrAccountAlreadyExists     = errors.New("account already exists")
	ErrTicketAlreadyExists      = errors.New("ticket already exists")
	ErrTicketNotFound           = errors.New("ticket not found")
	ErrNameRequired             = errors.New("name required")
	ErrURIRequired              = errors.New("uri required")
	ErrVenueAuthorityRequired   = errors.New("venue authority required")
	ErrInvalidCapacity          = errors.New("invalid capacity")
	ErrInvalidID                = errors.New("invalid id")
)
