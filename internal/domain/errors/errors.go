package errors

import "errors"

// Generic persistence and validation failures.
var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Ledger and workflow failures.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrRewardUnavailable   = errors.New("reward unavailable")
	ErrRewardNotFound      = errors.New("reward not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrRedemptionNotFound  = errors.New("redemption not found")
	ErrAlreadyProcessed    = errors.New("redemption already processed")
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidStatus       = errors.New("invalid status")
)

// ErrAnnouncementNotFound is returned when an announcement id does not resolve.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// Access control failures.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
)

var domainErrors = []error{
	ErrAlreadyExists,
	ErrNotFound,
	ErrInvalidInput,
	ErrInvalidTransition,
	ErrUserNotFound,
	ErrRewardUnavailable,
	ErrRewardNotFound,
	ErrInsufficientCredits,
	ErrRedemptionNotFound,
	ErrAlreadyProcessed,
	ErrOrderNotFound,
	ErrProductNotFound,
	ErrInvalidQuantity,
	ErrInvalidStatus,
	ErrAnnouncementNotFound,
	ErrUnauthenticated,
	ErrUnauthorized,
}

// IsDomain reports whether err belongs to the domain failure taxonomy.
// Anything else is an internal failure.
func IsDomain(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
