package event

import "nft_market/internal/domain"

// Kind names a market state transition.
type Kind string

const (
	KindOrderCreated   Kind = "ORDER_CREATED"
	KindOrderTaken     Kind = "ORDER_TAKEN"
	KindOrderRemoved   Kind = "ORDER_REMOVED"
	KindOfferCreated   Kind = "OFFER_CREATED"
	KindOfferRemoved   Kind = "OFFER_REMOVED"
	KindAuctionCreated Kind = "AUCTION_CREATED"
	KindAuctionBid     Kind = "AUCTION_BID"
	KindAuctionSettled Kind = "AUCTION_SETTLED"
)

// Event is emitted by the market engine after a dispatch operation commits.
// Observers (read-model recorder, websocket feed, metrics) receive it inside
// the engine's serial section and must stay fast and non-reentrant.
type Event struct {
	Kind       Kind              `json:"kind"`
	Owner      domain.AccountID  `json:"owner"`
	ListingID  domain.GlobalID   `json:"listing_id"`
	CategoryID domain.GlobalID   `json:"category_id"`
	CurrencyID domain.CurrencyID `json:"currency_id"`
	// Price is the listing price for creations, the settled price for takes
	// and hammer settlements, and the accepted bid for raises.
	Price int64 `json:"price"`
	// Counterparty is the purchaser or bidder, when one is involved.
	Counterparty domain.AccountID `json:"counterparty,omitempty"`
	// Deposit carries the amount actually refunded on removal/settlement.
	Deposit  int64  `json:"deposit,omitempty"`
	Step     uint64 `json:"step"`
	Items    int    `json:"items,omitempty"`
	Deadline uint64 `json:"deadline,omitempty"`
}
