package ledger

import (
	"nft_market/internal/domain"
)

type tokenKey struct {
	class domain.ClassID
	token domain.TokenID
}

type holdingKey struct {
	account domain.AccountID
	class   domain.ClassID
	token   domain.TokenID
}

type tokenInfo struct {
	chargedRoyalty bool
}

// TokenCustody holds every account's token quantities with the same
// free/reserved split as the currency ledger, plus the per-token royalty
// flag queried by the listing engines.
type TokenCustody struct {
	holdings map[holdingKey]*domain.Holding
	tokens   map[tokenKey]*tokenInfo
}

// NewTokenCustody creates an empty custody book.
func NewTokenCustody() *TokenCustody {
	return &TokenCustody{
		holdings: make(map[holdingKey]*domain.Holding),
		tokens:   make(map[tokenKey]*tokenInfo),
	}
}

func (c *TokenCustody) get(account domain.AccountID, class domain.ClassID, token domain.TokenID) *domain.Holding {
	key := holdingKey{account: account, class: class, token: token}
	h, ok := c.holdings[key]
	if !ok {
		h = &domain.Holding{}
		c.holdings[key] = h
	}
	return h
}

// Holding returns a copy of the account's position in one token.
func (c *TokenCustody) Holding(account domain.AccountID, class domain.ClassID, token domain.TokenID) domain.Holding {
	return *c.get(account, class, token)
}

// Mint credits quantity to the account's free holding and records the
// token's royalty flag. Minting is an external capability of the real chain;
// it exists here for genesis funding and tests.
func (c *TokenCustody) Mint(account domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64, chargedRoyalty bool) {
	c.tokens[tokenKey{class: class, token: token}] = &tokenInfo{chargedRoyalty: chargedRoyalty}
	c.get(account, class, token).Free += quantity
}

// TokenChargedRoyalty reports whether selling the token triggers a royalty
// payment. Unknown tokens are an error, not false.
func (c *TokenCustody) TokenChargedRoyalty(class domain.ClassID, token domain.TokenID) (bool, error) {
	info, ok := c.tokens[tokenKey{class: class, token: token}]
	if !ok {
		return false, domain.ErrTokenNotFound
	}
	return info.chargedRoyalty, nil
}

// Reserve moves quantity from free to reserved. Negative quantities are
// refused, same guard as the currency ledger.
func (c *TokenCustody) Reserve(account domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	h := c.get(account, class, token)
	if h.Free < quantity {
		return domain.ErrInsufficientFreeQuantity
	}
	h.Free -= quantity
	h.Reserved += quantity
	return nil
}

// Unreserve moves up to quantity from reserved back to free and returns the
// quantity actually released. Best-effort, same contract as the currency
// ledger.
func (c *TokenCustody) Unreserve(account domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) int64 {
	if quantity < 0 {
		return 0
	}
	h := c.get(account, class, token)
	if quantity > h.Reserved {
		quantity = h.Reserved
	}
	h.Reserved -= quantity
	h.Free += quantity
	return quantity
}

// TransferReserved moves quantity from the sender's reserved holding straight
// into the recipient's free holding.
func (c *TokenCustody) TransferReserved(from, to domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	src := c.get(from, class, token)
	if src.Reserved < quantity {
		return domain.ErrInsufficientReserved
	}
	src.Reserved -= quantity
	c.get(to, class, token).Free += quantity
	return nil
}

// Transfer moves quantity between free holdings.
func (c *TokenCustody) Transfer(from, to domain.AccountID, class domain.ClassID, token domain.TokenID, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	src := c.get(from, class, token)
	if src.Free < quantity {
		return domain.ErrInsufficientFreeQuantity
	}
	src.Free -= quantity
	c.get(to, class, token).Free += quantity
	return nil
}
