package domain

// Balance is a fungible currency position split into free and reserved
// sub-balances. Reserve/unreserve move quantity between the two halves;
// Free + Reserved only changes on transfer or deposit.
type Balance struct {
	Free     int64 `json:"free"`
	Reserved int64 `json:"reserved"`
}

// Total returns the full position including reserved funds.
func (b Balance) Total() int64 {
	return b.Free + b.Reserved
}

// Holding is a non-fungible quantity position for one (class, token) pair,
// with the same free/reserved semantics as Balance.
type Holding struct {
	Free     int64 `json:"free"`
	Reserved int64 `json:"reserved"`
}

// Total returns the full held quantity including reserved items.
func (h Holding) Total() int64 {
	return h.Free + h.Reserved
}
