package engine

import (
	"github.com/shopspring/decimal"

	"nft_market/internal/domain"
	"nft_market/internal/event"
	"nft_market/internal/ledger"
)

// SubmitBritishAuction creates an ascending-price auction together with its
// standing-bid record. Validation and reservation follow the same pattern as
// SubmitOrder, plus the hammer price must exceed the initial price when set.
func (m *Market) SubmitBritishAuction(who domain.AccountID, auction domain.BritishAuction) (domain.GlobalID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if auction.InitPrice < 0 {
		return 0, domain.ErrInvalidPrice
	}
	if auction.HammerPrice < 0 {
		return 0, domain.ErrInvalidHammerPrice
	}
	if auction.MinRaise.IsNegative() {
		return 0, domain.ErrInvalidMinRaise
	}
	if auction.Deposit < m.policy.MinListingDeposit {
		return 0, domain.ErrInvalidDeposit
	}

	jn := ledger.NewJournal()
	defer jn.Rollback()

	if err := m.ledger.Reserve(who, domain.NativeCurrencyID, auction.Deposit); err != nil {
		return 0, err
	}
	deposit := auction.Deposit
	jn.Record(func() { m.ledger.Unreserve(who, domain.NativeCurrencyID, deposit) })

	if m.clock.Current() >= auction.Deadline {
		return 0, domain.ErrInvalidDeadline
	}
	if auction.HammerPrice > 0 && auction.HammerPrice <= auction.InitPrice {
		return 0, domain.ErrInvalidHammerPrice
	}

	if err := m.reserveItems(jn, who, auction.Items); err != nil {
		return 0, err
	}

	if err := m.incCategory(auction.CategoryID); err != nil {
		return 0, err
	}
	jn.Record(func() { m.decCategory(auction.CategoryID) })

	id := m.ids.Next()
	stored := auction
	stored.Items = copyItems(auction.Items)
	m.auctions[listingKey{owner: who, id: id}] = &stored
	m.bids[id] = &domain.BritishAuctionBid{
		LastOfferPrice: auction.InitPrice,
	}

	jn.Commit()
	m.emit(event.Event{
		Kind:       event.KindAuctionCreated,
		Owner:      who,
		ListingID:  id,
		CategoryID: auction.CategoryID,
		CurrencyID: auction.CurrencyID,
		Price:      auction.InitPrice,
		Items:      len(auction.Items),
		Deadline:   auction.Deadline,
	})
	return id, nil
}

// BidBritishAuction places a bid. A bid at or above a non-zero hammer price
// settles the auction immediately; otherwise the bid must strictly exceed
// the standing price plus the minimum raise, the previous bidder's
// reservation is released and the new price is reserved from the bidder.
func (m *Market) BidBritishAuction(bidder, owner domain.AccountID, id domain.GlobalID, price int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := listingKey{owner: owner, id: id}
	auction, ok := m.auctions[key]
	if !ok {
		return domain.ErrBritishAuctionNotFound
	}
	bid, ok := m.bids[id]
	if !ok {
		return domain.ErrBritishAuctionBidNotFound
	}

	if m.clock.Current() > m.effectiveDeadline(auction, bid) {
		return domain.ErrBritishAuctionClosed
	}

	if auction.HammerPrice > 0 && price >= auction.HammerPrice {
		return m.settleAuction(key, auction, bid, bidder, price)
	}

	lowest := minimumNextBid(bid.LastOfferPrice, auction.MinRaise)
	if price <= lowest {
		return domain.ErrPriceTooLow
	}

	jn := ledger.NewJournal()
	defer jn.Rollback()

	// Release the previous highest bidder before accepting the new bid.
	if bid.HasBidder() {
		prev := bid.LastOfferAccount
		released := m.ledger.Unreserve(prev, auction.CurrencyID, bid.LastOfferPrice)
		jn.Record(func() { m.ledger.Reserve(prev, auction.CurrencyID, released) })
	}

	if err := m.ledger.Reserve(bidder, auction.CurrencyID, price); err != nil {
		return err
	}

	bid.LastOfferPrice = price
	bid.LastOfferAccount = bidder
	bid.LastOfferBlock = m.clock.Current()

	jn.Commit()
	m.emit(event.Event{
		Kind:         event.KindAuctionBid,
		Owner:        owner,
		ListingID:    id,
		CategoryID:   auction.CategoryID,
		CurrencyID:   auction.CurrencyID,
		Price:        price,
		Counterparty: bidder,
	})
	return nil
}

// settleAuction performs hammer settlement: price moves from bidder to
// owner, items move from owner to bidder, the previous bidder is refunded,
// the deposit is released and both records are deleted. Runs under the
// market mutex.
func (m *Market) settleAuction(key listingKey, auction *domain.BritishAuction, bid *domain.BritishAuctionBid, bidder domain.AccountID, price int64) error {
	jn := ledger.NewJournal()
	defer jn.Rollback()

	if err := m.ledger.Transfer(bidder, key.owner, auction.CurrencyID, price); err != nil {
		return err
	}
	owner := key.owner
	currency := auction.CurrencyID
	jn.Record(func() { m.ledger.Transfer(owner, bidder, currency, price) })

	if bid.HasBidder() {
		prev := bid.LastOfferAccount
		released := m.ledger.Unreserve(prev, currency, bid.LastOfferPrice)
		jn.Record(func() { m.ledger.Reserve(prev, currency, released) })
	}

	for _, item := range auction.Items {
		if err := m.custody.TransferReserved(owner, bidder, item.ClassID, item.TokenID, item.Quantity); err != nil {
			return err
		}
		it := item
		jn.Record(func() {
			m.custody.Transfer(bidder, owner, it.ClassID, it.TokenID, it.Quantity)
			m.custody.Reserve(owner, it.ClassID, it.TokenID, it.Quantity)
		})
	}

	refund := m.ledger.Unreserve(owner, domain.NativeCurrencyID, auction.Deposit)
	m.decCategory(auction.CategoryID)
	delete(m.auctions, key)
	delete(m.bids, key.id)

	jn.Commit()
	m.emit(event.Event{
		Kind:         event.KindAuctionSettled,
		Owner:        owner,
		ListingID:    key.id,
		CategoryID:   auction.CategoryID,
		CurrencyID:   currency,
		Price:        price,
		Counterparty: bidder,
		Deposit:      refund,
		Items:        len(auction.Items),
	})
	return nil
}

// effectiveDeadline applies the delay-on-late-bid policy: with AllowDelay
// the auction stays open until max(deadline, last_offer_block + delay).
func (m *Market) effectiveDeadline(auction *domain.BritishAuction, bid *domain.BritishAuctionBid) uint64 {
	if !auction.AllowDelay {
		return auction.Deadline
	}
	delayed := bid.LastOfferBlock + m.policy.AuctionDelay
	if delayed > auction.Deadline {
		return delayed
	}
	return auction.Deadline
}

// minimumNextBid returns last + ceil(minRaise * last). A new bid must be
// strictly greater than this to be accepted.
func minimumNextBid(last int64, minRaise decimal.Decimal) int64 {
	raise := minRaise.Mul(decimal.NewFromInt(last)).Ceil().IntPart()
	return last + raise
}
