package domain

// AccountID identifies an account on the ledger.
type AccountID string

// CurrencyID identifies a fungible currency.
type CurrencyID uint32

// NativeCurrencyID is the chain's own currency. Listing deposits are always
// reserved in it, regardless of the currency a listing trades in.
const NativeCurrencyID CurrencyID = 0

// ClassID identifies an asset class (collection).
type ClassID uint64

// TokenID identifies a token within a class.
type TokenID uint64

// GlobalID is a marketplace-wide unique identifier. Orders, offers, auctions
// and categories all draw from the same monotonic pool.
type GlobalID uint64
