package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrNotListed asset has no market configuration
	ErrNotListed ErrorCode = 100100
	// ErrAlreadyListed asset is already configured
	ErrAlreadyListed ErrorCode = 100101
	// ErrInvalidConfiguration market risk parameters rejected
	ErrInvalidConfiguration ErrorCode = 100102
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100103

	// ErrPriceUnavailable no usable price within tolerance
	ErrPriceUnavailable ErrorCode = 100200
	// ErrAssetNotSupported asset has no price feed or token collaborator
	ErrAssetNotSupported ErrorCode = 100201

	// ErrInsufficientCollateral action would create a shortfall
	ErrInsufficientCollateral ErrorCode = 100300
	// ErrNonzeroDebt market exit attempted while debt remains
	ErrNonzeroDebt ErrorCode = 100301
	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100302
	// ErrCooldownActive action gated by the account cooldown window
	ErrCooldownActive ErrorCode = 100303
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
