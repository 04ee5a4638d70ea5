package domain

import "errors"

// Validation errors: the caller supplied invalid parameters. Nothing is
// mutated before these are returned.
var (
	// ErrInvalidDeposit is returned when a listing deposit is below the
	// configured minimum.
	ErrInvalidDeposit = errors.New("deposit below minimum")

	// ErrInvalidDeadline is returned when a listing deadline is not in the
	// future.
	ErrInvalidDeadline = errors.New("deadline not in the future")

	// ErrInvalidQuantity is returned when an item quantity is below one.
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")

	// ErrInvalidPrice is returned when a listing or bid price is negative.
	// Balances are signed int64; a negative price passed to the ledger would
	// move funds in the wrong direction.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidAmount is returned by ledger primitives handed a negative
	// currency amount.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrInvalidMinRaise is returned when an auction's minimum-raise
	// fraction is negative, which would allow bids below the standing price.
	ErrInvalidMinRaise = errors.New("minimum raise must not be negative")

	// ErrInvalidHammerPrice is returned when a hammer price is set but does
	// not exceed the initial price.
	ErrInvalidHammerPrice = errors.New("hammer price must exceed initial price")

	// ErrTooManyTokenChargedRoyalty is returned when a listing contains more
	// than one royalty-chargeable item.
	ErrTooManyTokenChargedRoyalty = errors.New("more than one royalty-chargeable item")
)

// Not-found errors.
var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrOfferNotFound             = errors.New("offer not found")
	ErrBritishAuctionNotFound    = errors.New("british auction not found")
	ErrBritishAuctionBidNotFound = errors.New("british auction bid not found")
	ErrCategoryNotFound          = errors.New("category not found")
	ErrTokenNotFound             = errors.New("token not found")
)

// Insufficient-resource errors. Any mutation already applied in the same
// call is rolled back before these surface.
var (
	ErrInsufficientFreeBalance  = errors.New("insufficient free balance")
	ErrInsufficientFreeQuantity = errors.New("insufficient free token quantity")
	ErrInsufficientReserved     = errors.New("insufficient reserved amount")
)

// Trade errors.
var (
	// ErrOrderExpired is returned by a take attempt past the order deadline.
	// The order's reservations stay in place; only removal releases them.
	ErrOrderExpired = errors.New("order expired")

	// ErrBritishAuctionClosed is returned by a bid past the effective
	// auction deadline.
	ErrBritishAuctionClosed = errors.New("british auction closed")

	// ErrPriceTooLow is returned when a bid does not clear the minimum
	// raise, or a take price is below the asking price.
	ErrPriceTooLow = errors.New("price too low")

	// ErrTakeOwnOrder is returned when an account tries to take its own
	// order.
	ErrTakeOwnOrder = errors.New("cannot take own order")

	// ErrCanNotAfford is returned when a take's limit price is below the
	// order price.
	ErrCanNotAfford = errors.New("limit price below order price")
)
