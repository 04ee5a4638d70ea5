package ledger

import (
	"testing"

	"nft_market/internal/domain"
)

const (
	alice = domain.AccountID("alice")
	bob   = domain.AccountID("bob")
)

const native = domain.NativeCurrencyID

func TestCurrencyLedger_ReserveUnreserve(t *testing.T) {
	l := NewCurrencyLedger()
	l.Deposit(alice, native, 100)

	if err := l.Reserve(alice, native, 60); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	b := l.Balance(alice, native)
	if b.Free != 40 || b.Reserved != 60 {
		t.Errorf("Balance = %+v, want free 40 reserved 60", b)
	}
	if b.Total() != 100 {
		t.Errorf("Total = %d, want 100 (reserve must conserve)", b.Total())
	}

	released := l.Unreserve(alice, native, 60)
	if released != 60 {
		t.Errorf("Unreserve returned %d, want 60", released)
	}
	b = l.Balance(alice, native)
	if b.Free != 100 || b.Reserved != 0 {
		t.Errorf("Balance = %+v, want free 100 reserved 0", b)
	}
}

func TestCurrencyLedger_ReserveInsufficient(t *testing.T) {
	l := NewCurrencyLedger()
	l.Deposit(alice, native, 10)

	if err := l.Reserve(alice, native, 11); err != domain.ErrInsufficientFreeBalance {
		t.Errorf("Reserve error = %v, want ErrInsufficientFreeBalance", err)
	}
	b := l.Balance(alice, native)
	if b.Free != 10 || b.Reserved != 0 {
		t.Errorf("Failed reserve mutated balance: %+v", b)
	}
}

func TestCurrencyLedger_UnreserveBestEffort(t *testing.T) {
	l := NewCurrencyLedger()
	l.Deposit(alice, native, 50)
	if err := l.Reserve(alice, native, 30); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	// Asking for more than is reserved releases only what is there.
	released := l.Unreserve(alice, native, 100)
	if released != 30 {
		t.Errorf("Unreserve returned %d, want 30 (actual amount)", released)
	}
	b := l.Balance(alice, native)
	if b.Free != 50 || b.Reserved != 0 {
		t.Errorf("Balance = %+v, want free 50 reserved 0", b)
	}

	// Nothing reserved: zero released, never an error.
	if released := l.Unreserve(alice, native, 5); released != 0 {
		t.Errorf("Unreserve on empty reservation returned %d, want 0", released)
	}
}

func TestCurrencyLedger_TransferReserved(t *testing.T) {
	l := NewCurrencyLedger()
	l.Deposit(alice, native, 100)
	if err := l.Reserve(alice, native, 70); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	if err := l.TransferReserved(alice, bob, native, 70); err != nil {
		t.Fatalf("TransferReserved failed: %v", err)
	}

	a := l.Balance(alice, native)
	b := l.Balance(bob, native)
	if a.Free != 30 || a.Reserved != 0 {
		t.Errorf("alice = %+v, want free 30 reserved 0", a)
	}
	if b.Free != 70 {
		t.Errorf("bob free = %d, want 70", b.Free)
	}

	// More than reserved fails and mutates nothing.
	if err := l.TransferReserved(alice, bob, native, 1); err != domain.ErrInsufficientReserved {
		t.Errorf("TransferReserved error = %v, want ErrInsufficientReserved", err)
	}
}

func TestCurrencyLedger_Transfer(t *testing.T) {
	l := NewCurrencyLedger()
	l.Deposit(alice, native, 100)

	if err := l.Transfer(alice, bob, native, 40); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if got := l.Balance(bob, native).Free; got != 40 {
		t.Errorf("bob free = %d, want 40", got)
	}

	if err := l.Transfer(alice, bob, native, 61); err != domain.ErrInsufficientFreeBalance {
		t.Errorf("Transfer error = %v, want ErrInsufficientFreeBalance", err)
	}
}

// Balances are signed: a negative amount sneaking past the Free < amount
// guard would move funds backwards, so every primitive refuses it outright.
func TestCurrencyLedger_NegativeAmounts(t *testing.T) {
	l := NewCurrencyLedger()
	l.Deposit(alice, native, 100)

	if err := l.Reserve(alice, native, -50); err != domain.ErrInvalidAmount {
		t.Errorf("Reserve error = %v, want ErrInvalidAmount", err)
	}
	if err := l.Transfer(alice, bob, native, -50); err != domain.ErrInvalidAmount {
		t.Errorf("Transfer error = %v, want ErrInvalidAmount", err)
	}
	if err := l.TransferReserved(alice, bob, native, -50); err != domain.ErrInvalidAmount {
		t.Errorf("TransferReserved error = %v, want ErrInvalidAmount", err)
	}
	if released := l.Unreserve(alice, native, -50); released != 0 {
		t.Errorf("Unreserve returned %d, want 0", released)
	}

	if b := l.Balance(alice, native); b.Free != 100 || b.Reserved != 0 {
		t.Errorf("balance = %+v, want free 100 reserved 0", b)
	}
	if b := l.Balance(bob, native); b.Free != 0 || b.Reserved != 0 {
		t.Errorf("bob balance = %+v, want zero", b)
	}
}

// Any sequence of reserve/unreserve leaves free+reserved untouched.
func TestCurrencyLedger_ConservationProperty(t *testing.T) {
	l := NewCurrencyLedger()
	l.Deposit(alice, native, 1000)

	before := l.Balance(alice, native).Total()

	l.Reserve(alice, native, 300)
	l.Reserve(alice, native, 200)
	l.Unreserve(alice, native, 150)
	l.Reserve(alice, native, 50)
	l.Unreserve(alice, native, 9999)

	if got := l.Balance(alice, native).Total(); got != before {
		t.Errorf("free+reserved = %d, want %d", got, before)
	}
}
