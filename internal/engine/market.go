package engine

import (
	"sync"

	"nft_market/internal/domain"
	"nft_market/internal/event"
	"nft_market/internal/ledger"
)

// Ledger is the currency capability the market mutates balances through.
// No engine code touches balances except via these primitives.
type Ledger interface {
	Reserve(account domain.AccountID, currency domain.CurrencyID, amount int64) error
	// Unreserve is best-effort: it returns the amount actually released,
	// which callers must treat as authoritative for refund accounting.
	Unreserve(account domain.AccountID, currency domain.CurrencyID, amount int64) int64
	TransferReserved(from, to domain.AccountID, currency domain.CurrencyID, amount int64) error
	Transfer(from, to domain.AccountID, currency domain.CurrencyID, amount int64) error
}

// Custody is the token-quantity capability, symmetric to Ledger.
type Custody interface {
	Reserve(account domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) error
	Unreserve(account domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) int64
	TransferReserved(from, to domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) error
	Transfer(from, to domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) error
	TokenChargedRoyalty(class domain.ClassID, token domain.TokenID) (bool, error)
}

// Clock reports the current abstract step. Deadlines are expressed in steps,
// never wall-clock time.
type Clock interface {
	Current() uint64
}

// IDAllocator hands out marketplace-wide unique ids.
type IDAllocator interface {
	Next() domain.GlobalID
}

// Policy carries the external policy values the engines validate against.
type Policy struct {
	// MinListingDeposit is the smallest accepted anti-spam deposit for
	// orders and auctions.
	MinListingDeposit int64
	// AuctionDelay extends an auction past its deadline after a late bid,
	// when the auction allows delay.
	AuctionDelay uint64
}

type listingKey struct {
	owner domain.AccountID
	id    domain.GlobalID
}

// Market is the trading core. All dispatch operations run serially under one
// mutex; each either commits fully or rolls back every mutation it applied.
type Market struct {
	mu sync.Mutex

	ledger  Ledger
	custody Custody
	clock   Clock
	ids     IDAllocator
	policy  Policy

	categories map[domain.GlobalID]*Category
	orders     map[listingKey]*domain.Order
	offers     map[listingKey]*domain.Offer
	auctions   map[listingKey]*domain.BritishAuction
	bids       map[domain.GlobalID]*domain.BritishAuctionBid

	// Boundary: notifies read models and feeds of committed transitions.
	onEvent func(event.Event)
}

// NewMarket wires the market with its injected capabilities.
func NewMarket(l Ledger, c Custody, clock Clock, ids IDAllocator, policy Policy) *Market {
	return &Market{
		ledger:     l,
		custody:    c,
		clock:      clock,
		ids:        ids,
		policy:     policy,
		categories: make(map[domain.GlobalID]*Category),
		orders:     make(map[listingKey]*domain.Order),
		offers:     make(map[listingKey]*domain.Offer),
		auctions:   make(map[listingKey]*domain.BritishAuction),
		bids:       make(map[domain.GlobalID]*domain.BritishAuctionBid),
	}
}

// OnEvent sets the observer callback. Must be set before operations start;
// the callback runs inside the serial section and must not call back into
// the market.
func (m *Market) OnEvent(fn func(event.Event)) {
	m.onEvent = fn
}

func (m *Market) emit(ev event.Event) {
	if m.onEvent != nil {
		ev.Step = m.clock.Current()
		m.onEvent(ev)
	}
}

// Order returns a copy of an active order.
func (m *Market) Order(owner domain.AccountID, id domain.GlobalID) (domain.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[listingKey{owner: owner, id: id}]
	if !ok {
		return domain.Order{}, false
	}
	return *o, true
}

// Offer returns a copy of an active offer.
func (m *Market) Offer(owner domain.AccountID, id domain.GlobalID) (domain.Offer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[listingKey{owner: owner, id: id}]
	if !ok {
		return domain.Offer{}, false
	}
	return *o, true
}

// Auction returns a copy of an open auction and its standing bid.
func (m *Market) Auction(owner domain.AccountID, id domain.GlobalID) (domain.BritishAuction, domain.BritishAuctionBid, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.auctions[listingKey{owner: owner, id: id}]
	if !ok {
		return domain.BritishAuction{}, domain.BritishAuctionBid{}, false
	}
	bid := m.bids[id]
	return *a, *bid, true
}

// reserveItems runs the royalty single-charge rule and reserves every item
// quantity from the owner, recording releases in the journal. Shared by
// order and auction submission.
func (m *Market) reserveItems(jn *ledger.Journal, owner domain.AccountID, items []domain.OrderItem) error {
	royaltyCount := 0
	for _, item := range items {
		if item.Quantity < 1 {
			return domain.ErrInvalidQuantity
		}

		charged, err := m.custody.TokenChargedRoyalty(item.ClassID, item.TokenID)
		if err != nil {
			return err
		}
		if charged {
			if royaltyCount > 0 {
				return domain.ErrTooManyTokenChargedRoyalty
			}
			royaltyCount++
		}

		if err := m.custody.Reserve(owner, item.ClassID, item.TokenID, item.Quantity); err != nil {
			return err
		}
		it := item
		jn.Record(func() {
			m.custody.Unreserve(owner, it.ClassID, it.TokenID, it.Quantity)
		})
	}
	return nil
}

// checkRoyaltyRule applies the single-charge rule without reserving anything.
// Offers describe items the buyer does not hold yet.
func (m *Market) checkRoyaltyRule(items []domain.OrderItem) error {
	royaltyCount := 0
	for _, item := range items {
		if item.Quantity < 1 {
			return domain.ErrInvalidQuantity
		}
		charged, err := m.custody.TokenChargedRoyalty(item.ClassID, item.TokenID)
		if err != nil {
			return err
		}
		if charged {
			if royaltyCount > 0 {
				return domain.ErrTooManyTokenChargedRoyalty
			}
			royaltyCount++
		}
	}
	return nil
}

func copyItems(items []domain.OrderItem) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	copy(out, items)
	return out
}
