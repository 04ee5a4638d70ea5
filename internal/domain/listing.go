package domain

import "github.com/shopspring/decimal"

// OrderItem is one (class, token, quantity) entry of a listing.
type OrderItem struct {
	ClassID  ClassID `json:"class_id"`
	TokenID  TokenID `json:"token_id"`
	Quantity int64   `json:"quantity"`
}

// Order is a seller-initiated fixed-price listing. Every item quantity is
// reserved against the seller while the order is active, and the deposit is
// reserved in the native currency. Orders are never mutated in place; they
// are created by submit and deleted by take or remove.
type Order struct {
	CurrencyID CurrencyID  `json:"currency_id"`
	Price      int64       `json:"price"`
	Deposit    int64       `json:"deposit"`
	Deadline   uint64      `json:"deadline"`
	CategoryID GlobalID    `json:"category_id"`
	Items      []OrderItem `json:"items"`
}

// Offer is a buyer-initiated bid for items the buyer does not yet own. Only
// the price is reserved from the buyer; the wanted items are a description,
// not a reservation.
type Offer struct {
	CurrencyID CurrencyID  `json:"currency_id"`
	Price      int64       `json:"price"`
	Deadline   uint64      `json:"deadline"`
	CategoryID GlobalID    `json:"category_id"`
	Items      []OrderItem `json:"items"`
}

// BritishAuction is an ascending-price auction. Item quantities are reserved
// from the owner at creation. A hammer price of zero disables hammer
// settlement.
type BritishAuction struct {
	CurrencyID CurrencyID `json:"currency_id"`
	// HammerPrice settles the auction immediately when met by a bid.
	HammerPrice int64 `json:"hammer_price"`
	// MinRaise is the fraction a new bid must exceed the standing price by:
	// accepted when price > last + ceil(MinRaise * last).
	MinRaise   decimal.Decimal `json:"min_raise"`
	Deposit    int64           `json:"deposit"`
	InitPrice  int64           `json:"init_price"`
	Deadline   uint64          `json:"deadline"`
	AllowDelay bool            `json:"allow_delay"`
	CategoryID GlobalID        `json:"category_id"`
	Items      []OrderItem     `json:"items"`
}

// BritishAuctionBid tracks the standing bid of an auction. Exactly one exists
// per auction for its whole lifetime; it starts at the initial price with no
// account and is mutated in place by each accepted bid.
type BritishAuctionBid struct {
	LastOfferPrice int64 `json:"last_offer_price"`
	// LastOfferAccount is empty until the first bid is accepted.
	LastOfferAccount AccountID `json:"last_offer_account"`
	LastOfferBlock   uint64    `json:"last_offer_block"`
}

// HasBidder reports whether any bid has been accepted yet.
func (b *BritishAuctionBid) HasBidder() bool {
	return b.LastOfferAccount != ""
}
