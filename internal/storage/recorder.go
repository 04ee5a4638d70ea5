package storage

import (
	"nft_market/internal/event"
)

// Listing kinds as stored in the catalog.
const (
	KindOrder   = "order"
	KindOffer   = "offer"
	KindAuction = "auction"
)

// Apply projects one committed market event onto the catalog. Projection
// failures do not affect engine state; the caller decides whether to log or
// halt.
func (c *Catalog) Apply(ev event.Event) error {
	switch ev.Kind {
	case event.KindOrderCreated:
		return c.SaveListing(rowFrom(KindOrder, ev))
	case event.KindOfferCreated:
		return c.SaveListing(rowFrom(KindOffer, ev))
	case event.KindAuctionCreated:
		return c.SaveListing(rowFrom(KindAuction, ev))
	case event.KindAuctionBid:
		return c.UpdatePrice(KindAuction, string(ev.Owner), uint64(ev.ListingID), ev.Price)
	case event.KindOrderTaken, event.KindOrderRemoved:
		return c.DeleteListing(KindOrder, string(ev.Owner), uint64(ev.ListingID))
	case event.KindOfferRemoved:
		return c.DeleteListing(KindOffer, string(ev.Owner), uint64(ev.ListingID))
	case event.KindAuctionSettled:
		return c.DeleteListing(KindAuction, string(ev.Owner), uint64(ev.ListingID))
	}
	return nil
}

func rowFrom(kind string, ev event.Event) *ListingRow {
	return &ListingRow{
		Kind:       kind,
		Owner:      string(ev.Owner),
		ListingID:  uint64(ev.ListingID),
		CategoryID: uint64(ev.CategoryID),
		CurrencyID: uint32(ev.CurrencyID),
		Price:      ev.Price,
		Deadline:   ev.Deadline,
		ItemCount:  ev.Items,
	}
}
