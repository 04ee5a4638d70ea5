package engine

import (
	"nft_market/internal/domain"
	"nft_market/internal/event"
	"nft_market/internal/ledger"
)

// SubmitOffer creates a buyer-initiated bid. Only the price is reserved from
// the buyer; the wanted items are not, since the buyer does not hold them.
// The royalty single-charge rule still applies to the described items.
func (m *Market) SubmitOffer(who domain.AccountID, offer domain.Offer) (domain.GlobalID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if offer.Price < 0 {
		return 0, domain.ErrInvalidPrice
	}
	if m.clock.Current() >= offer.Deadline {
		return 0, domain.ErrInvalidDeadline
	}
	if err := m.checkRoyaltyRule(offer.Items); err != nil {
		return 0, err
	}

	jn := ledger.NewJournal()
	defer jn.Rollback()

	if err := m.ledger.Reserve(who, offer.CurrencyID, offer.Price); err != nil {
		return 0, err
	}
	price := offer.Price
	currency := offer.CurrencyID
	jn.Record(func() { m.ledger.Unreserve(who, currency, price) })

	if err := m.incCategory(offer.CategoryID); err != nil {
		return 0, err
	}
	jn.Record(func() { m.decCategory(offer.CategoryID) })

	id := m.ids.Next()
	stored := offer
	stored.Items = copyItems(offer.Items)
	m.offers[listingKey{owner: who, id: id}] = &stored

	jn.Commit()
	m.emit(event.Event{
		Kind:       event.KindOfferCreated,
		Owner:      who,
		ListingID:  id,
		CategoryID: offer.CategoryID,
		CurrencyID: offer.CurrencyID,
		Price:      offer.Price,
		Items:      len(offer.Items),
		Deadline:   offer.Deadline,
	})
	return id, nil
}

// RemoveOffer releases the reserved price and deletes the record. Removing
// twice fails with ErrOfferNotFound.
func (m *Market) RemoveOffer(who domain.AccountID, id domain.GlobalID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := listingKey{owner: who, id: id}
	offer, ok := m.offers[key]
	if !ok {
		return domain.ErrOfferNotFound
	}

	refund := m.ledger.Unreserve(who, offer.CurrencyID, offer.Price)
	m.decCategory(offer.CategoryID)
	delete(m.offers, key)

	m.emit(event.Event{
		Kind:       event.KindOfferRemoved,
		Owner:      who,
		ListingID:  id,
		CategoryID: offer.CategoryID,
		CurrencyID: offer.CurrencyID,
		Price:      offer.Price,
		Deposit:    refund,
	})
	return nil
}
