package engine

import (
	"nft_market/internal/domain"
	"nft_market/internal/event"
	"nft_market/internal/ledger"
)

// SubmitOrder creates a fixed-price listing. The deposit is reserved in the
// native currency and every item quantity is reserved from the seller. Any
// failure after the first reservation rolls back everything already applied.
func (m *Market) SubmitOrder(who domain.AccountID, order domain.Order) (domain.GlobalID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.Price < 0 {
		return 0, domain.ErrInvalidPrice
	}
	if order.Deposit < m.policy.MinListingDeposit {
		return 0, domain.ErrInvalidDeposit
	}

	jn := ledger.NewJournal()
	defer jn.Rollback()

	if err := m.ledger.Reserve(who, domain.NativeCurrencyID, order.Deposit); err != nil {
		return 0, err
	}
	deposit := order.Deposit
	jn.Record(func() { m.ledger.Unreserve(who, domain.NativeCurrencyID, deposit) })

	if m.clock.Current() >= order.Deadline {
		return 0, domain.ErrInvalidDeadline
	}

	if err := m.reserveItems(jn, who, order.Items); err != nil {
		return 0, err
	}

	if err := m.incCategory(order.CategoryID); err != nil {
		return 0, err
	}
	jn.Record(func() { m.decCategory(order.CategoryID) })

	id := m.ids.Next()
	stored := order
	stored.Items = copyItems(order.Items)
	m.orders[listingKey{owner: who, id: id}] = &stored

	jn.Commit()
	m.emit(event.Event{
		Kind:       event.KindOrderCreated,
		Owner:      who,
		ListingID:  id,
		CategoryID: order.CategoryID,
		CurrencyID: order.CurrencyID,
		Price:      order.Price,
		Items:      len(order.Items),
		Deadline:   order.Deadline,
	})
	return id, nil
}

// TakeOrder settles an order: the purchaser pays the order price into the
// owner's free balance, every reserved item moves to the purchaser, and the
// owner's deposit is released. The price argument is the purchaser's limit;
// the amount paid is always the order price.
func (m *Market) TakeOrder(purchaser, owner domain.AccountID, id domain.GlobalID, price int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := listingKey{owner: owner, id: id}
	order, ok := m.orders[key]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if purchaser == owner {
		return domain.ErrTakeOwnOrder
	}
	// Expiry refuses the take but releases nothing; the owner must remove
	// the order explicitly.
	if m.clock.Current() >= order.Deadline {
		return domain.ErrOrderExpired
	}
	if price < order.Price {
		return domain.ErrCanNotAfford
	}

	jn := ledger.NewJournal()
	defer jn.Rollback()

	if err := m.ledger.Transfer(purchaser, owner, order.CurrencyID, order.Price); err != nil {
		return err
	}
	jn.Record(func() { m.ledger.Transfer(owner, purchaser, order.CurrencyID, order.Price) })

	// The deposit is an anti-spam bond, returned to the seller regardless of
	// outcome. Trust the actual unreserved amount.
	refund := m.ledger.Unreserve(owner, domain.NativeCurrencyID, order.Deposit)
	jn.Record(func() { m.ledger.Reserve(owner, domain.NativeCurrencyID, refund) })

	for _, item := range order.Items {
		if err := m.custody.TransferReserved(owner, purchaser, item.ClassID, item.TokenID, item.Quantity); err != nil {
			return err
		}
		it := item
		jn.Record(func() {
			m.custody.Transfer(purchaser, owner, it.ClassID, it.TokenID, it.Quantity)
			m.custody.Reserve(owner, it.ClassID, it.TokenID, it.Quantity)
		})
	}

	m.decCategory(order.CategoryID)
	delete(m.orders, key)

	jn.Commit()
	m.emit(event.Event{
		Kind:         event.KindOrderTaken,
		Owner:        owner,
		ListingID:    id,
		CategoryID:   order.CategoryID,
		CurrencyID:   order.CurrencyID,
		Price:        order.Price,
		Counterparty: purchaser,
		Deposit:      refund,
		Items:        len(order.Items),
	})
	return nil
}

// RemoveOrder releases an order's deposit and item reservations and deletes
// the record. Only the owner may remove; removing twice fails with
// ErrOrderNotFound. Every release is best-effort, so removal cannot fail
// once the order is found.
func (m *Market) RemoveOrder(who domain.AccountID, id domain.GlobalID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := listingKey{owner: who, id: id}
	order, ok := m.orders[key]
	if !ok {
		return domain.ErrOrderNotFound
	}

	for _, item := range order.Items {
		m.custody.Unreserve(who, item.ClassID, item.TokenID, item.Quantity)
	}
	refund := m.ledger.Unreserve(who, domain.NativeCurrencyID, order.Deposit)
	m.decCategory(order.CategoryID)
	delete(m.orders, key)

	m.emit(event.Event{
		Kind:       event.KindOrderRemoved,
		Owner:      who,
		ListingID:  id,
		CategoryID: order.CategoryID,
		CurrencyID: order.CurrencyID,
		Price:      order.Price,
		Deposit:    refund,
	})
	return nil
}
