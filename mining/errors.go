package mining

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned for a missing token or miner type.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller has no control of a miner.
	ErrForbidden = errors.New("no control of this miner")
	// ErrUnauthorized is returned when the caller may not transfer or manage a token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotAuthorized is returned for contract-owner operations called by someone else.
	ErrNotAuthorized = errors.New("caller is not the contract owner")
	ErrOwnerMismatch = errors.New("token owner is different from enforced")
	ErrSelfTransfer  = errors.New("token owner and receiver should be different")
	// ErrInsufficientPower is returned when a miner can't run for a single epoch.
	ErrInsufficientPower = errors.New("not enough power to use")
	// ErrTooSoon is returned when the settlement interval hasn't elapsed.
	ErrTooSoon         = errors.New("not long from last settlement")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoGenesis       = errors.New("genesis not applied")

	// ErrInconsistentIndex means the owner index diverged from the token store.
	ErrInconsistentIndex = errors.New("inconsistent owner index")
	// ErrInternal means a ledger invariant is broken.
	ErrInternal = errors.New("internal error")
)

// IsInternal reports whether err is an invariant violation rather than a caller error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal) || errors.Is(err, ErrInconsistentIndex)
}

func errorClass(err error) string {
	if IsInternal(err) {
		return "internal"
	}
	return "user"
}
