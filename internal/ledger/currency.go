package ledger

import (
	"nft_market/internal/domain"
)

type balanceKey struct {
	account  domain.AccountID
	currency domain.CurrencyID
}

// CurrencyLedger holds every account's currency positions. It is plain
// in-memory state mutated serially by the market engine; it performs no I/O
// and never mutates more than it reports.
type CurrencyLedger struct {
	balances map[balanceKey]*domain.Balance
}

// NewCurrencyLedger creates an empty currency ledger.
func NewCurrencyLedger() *CurrencyLedger {
	return &CurrencyLedger{
		balances: make(map[balanceKey]*domain.Balance),
	}
}

func (l *CurrencyLedger) get(account domain.AccountID, currency domain.CurrencyID) *domain.Balance {
	key := balanceKey{account: account, currency: currency}
	b, ok := l.balances[key]
	if !ok {
		b = &domain.Balance{}
		l.balances[key] = b
	}
	return b
}

// Balance returns a copy of the account's position in the given currency.
func (l *CurrencyLedger) Balance(account domain.AccountID, currency domain.CurrencyID) domain.Balance {
	return *l.get(account, currency)
}

// Deposit credits free balance. Used for genesis funding and settlement
// inflows; it is the only way total supply grows.
func (l *CurrencyLedger) Deposit(account domain.AccountID, currency domain.CurrencyID, amount int64) {
	b := l.get(account, currency)
	b.Free += amount
}

// Reserve moves amount from free to reserved. Negative amounts are refused:
// balances are signed, so the Free < amount guard alone would let a negative
// reserve create free balance.
func (l *CurrencyLedger) Reserve(account domain.AccountID, currency domain.CurrencyID, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}
	b := l.get(account, currency)
	if b.Free < amount {
		return domain.ErrInsufficientFreeBalance
	}
	b.Free -= amount
	b.Reserved += amount
	return nil
}

// Unreserve moves up to amount from reserved back to free and returns the
// amount actually released. It never fails: if the reserved balance is short
// it releases what is there. Callers computing refunds must use the returned
// amount, not the requested one.
func (l *CurrencyLedger) Unreserve(account domain.AccountID, currency domain.CurrencyID, amount int64) int64 {
	if amount < 0 {
		return 0
	}
	b := l.get(account, currency)
	if amount > b.Reserved {
		amount = b.Reserved
	}
	b.Reserved -= amount
	b.Free += amount
	return amount
}

// TransferReserved moves amount from the sender's reserved balance straight
// into the recipient's free balance, without passing through the sender's
// free balance.
func (l *CurrencyLedger) TransferReserved(from, to domain.AccountID, currency domain.CurrencyID, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}
	src := l.get(from, currency)
	if src.Reserved < amount {
		return domain.ErrInsufficientReserved
	}
	src.Reserved -= amount
	l.get(to, currency).Free += amount
	return nil
}

// Transfer moves amount between free balances.
func (l *CurrencyLedger) Transfer(from, to domain.AccountID, currency domain.CurrencyID, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}
	src := l.get(from, currency)
	if src.Free < amount {
		return domain.ErrInsufficientFreeBalance
	}
	src.Free -= amount
	l.get(to, currency).Free += amount
	return nil
}
