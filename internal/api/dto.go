package api

import (
	"nft_market/internal/domain"
)

// ItemDTO is one listing item on the wire.
type ItemDTO struct {
	ClassID uint64 `json:"class_id"`
	TokenID uint64 `json:"token_id"`
	// Quantity validity (>= 1) is enforced by the engine, not binding tags:
	// gin's required treats a zero value as missing.
	Quantity int64 `json:"quantity"`
}

func toItems(items []ItemDTO) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.OrderItem{
			ClassID:  domain.ClassID(it.ClassID),
			TokenID:  domain.TokenID(it.TokenID),
			Quantity: it.Quantity,
		})
	}
	return out
}

// SubmitOrderRequest creates a fixed-price listing.
type SubmitOrderRequest struct {
	Owner      string    `json:"owner" binding:"required"`
	CurrencyID uint32    `json:"currency_id"`
	Price      int64     `json:"price"`
	Deposit    int64     `json:"deposit"`
	Deadline   uint64    `json:"deadline" binding:"required"`
	CategoryID uint64    `json:"category_id" binding:"required"`
	Items      []ItemDTO `json:"items" binding:"required,min=1,dive"`
}

// TakeOrderRequest settles a fixed-price listing.
type TakeOrderRequest struct {
	Purchaser string `json:"purchaser" binding:"required"`
	Owner     string `json:"owner" binding:"required"`
	OrderID   uint64 `json:"order_id" binding:"required"`
	// Price is the purchaser's limit; the order price is what gets paid.
	Price int64 `json:"price"`
}

// RemoveListingRequest identifies a listing owned by the caller.
type RemoveListingRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// SubmitOfferRequest creates a buyer-initiated bid.
type SubmitOfferRequest struct {
	Owner      string    `json:"owner" binding:"required"`
	CurrencyID uint32    `json:"currency_id"`
	Price      int64     `json:"price"`
	Deadline   uint64    `json:"deadline" binding:"required"`
	CategoryID uint64    `json:"category_id" binding:"required"`
	Items      []ItemDTO `json:"items" binding:"required,min=1,dive"`
}

// SubmitAuctionRequest creates a British auction.
type SubmitAuctionRequest struct {
	Owner       string `json:"owner" binding:"required"`
	CurrencyID  uint32 `json:"currency_id"`
	HammerPrice int64  `json:"hammer_price"`
	// MinRaise is a decimal fraction, e.g. "0.5" for 50%.
	MinRaise   string    `json:"min_raise"`
	Deposit    int64     `json:"deposit"`
	InitPrice  int64     `json:"init_price"`
	Deadline   uint64    `json:"deadline" binding:"required"`
	AllowDelay bool      `json:"allow_delay"`
	CategoryID uint64    `json:"category_id" binding:"required"`
	Items      []ItemDTO `json:"items" binding:"required,min=1,dive"`
}

// BidAuctionRequest places a bid.
type BidAuctionRequest struct {
	Bidder    string `json:"bidder" binding:"required"`
	Owner     string `json:"owner" binding:"required"`
	AuctionID uint64 `json:"auction_id" binding:"required"`
	Price     int64  `json:"price"`
}

// SubmitResponse returns the id of a created listing.
type SubmitResponse struct {
	ID uint64 `json:"id"`
}

// FaucetRequest credits free currency balance (admin/testing surface).
type FaucetRequest struct {
	Account    string `json:"account" binding:"required"`
	CurrencyID uint32 `json:"currency_id"`
	Amount     int64  `json:"amount"`
}

// MintRequest credits token quantity (admin/testing surface).
type MintRequest struct {
	Account        string `json:"account" binding:"required"`
	ClassID        uint64 `json:"class_id"`
	TokenID        uint64 `json:"token_id"`
	Quantity       int64  `json:"quantity"`
	ChargedRoyalty bool   `json:"charged_royalty"`
}

// CategoryRequest registers a browse category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// StepRequest advances the abstract step clock.
type StepRequest struct {
	Steps uint64 `json:"steps" binding:"required"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
