package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"nft_market/internal/domain"
)

func basicAuction(e *testEnv) domain.BritishAuction {
	return domain.BritishAuction{
		CurrencyID:  tradeCur,
		HammerPrice: 500,
		MinRaise:    decimal.RequireFromString("0.5"),
		Deposit:     50,
		InitPrice:   200,
		Deadline:    10,
		AllowDelay:  true,
		CategoryID:  e.cat,
		Items: []domain.OrderItem{
			{ClassID: classA, TokenID: token0, Quantity: 10},
			{ClassID: classA, TokenID: token1, Quantity: 20},
		},
	}
}

func newAuctionEnv(t *testing.T) (*testEnv, domain.GlobalID) {
	t.Helper()
	e := newTestEnv(t)
	e.ledger.Deposit(alice, native, 100)
	e.custody.Mint(alice, classA, token0, 20, true)
	e.custody.Mint(alice, classA, token1, 40, false)

	id, err := e.market.SubmitBritishAuction(alice, basicAuction(e))
	if err != nil {
		t.Fatalf("SubmitBritishAuction failed: %v", err)
	}
	return e, id
}

func TestSubmitBritishAuction_ReservesAndInitializesBid(t *testing.T) {
	e, id := newAuctionEnv(t)

	if b := e.ledger.Balance(alice, native); b.Free != 50 || b.Reserved != 50 {
		t.Errorf("native balance = %+v, want free 50 reserved 50", b)
	}
	if h := e.custody.Holding(alice, classA, token0); h.Free != 10 || h.Reserved != 10 {
		t.Errorf("token0 holding = %+v, want free 10 reserved 10", h)
	}
	if got := e.categoryCount(t); got != 1 {
		t.Errorf("category count = %d, want 1", got)
	}

	_, bid, ok := e.market.Auction(alice, id)
	if !ok {
		t.Fatal("auction not stored")
	}
	if bid.LastOfferPrice != 200 || bid.HasBidder() || bid.LastOfferBlock != 0 {
		t.Errorf("bid = %+v, want init price 200, no account, block 0", bid)
	}
}

func TestSubmitBritishAuction_InvalidHammerPrice(t *testing.T) {
	e := newTestEnv(t)
	e.ledger.Deposit(alice, native, 100)
	e.custody.Mint(alice, classA, token0, 20, false)

	auction := basicAuction(e)
	auction.Items = auction.Items[:1]
	auction.HammerPrice = 200 // not above init price

	if _, err := e.market.SubmitBritishAuction(alice, auction); !errors.Is(err, domain.ErrInvalidHammerPrice) {
		t.Fatalf("error = %v, want ErrInvalidHammerPrice", err)
	}
	if b := e.ledger.Balance(alice, native); b.Reserved != 0 {
		t.Errorf("deposit not rolled back: %+v", b)
	}

	// Zero disables the hammer entirely.
	auction.HammerPrice = 0
	if _, err := e.market.SubmitBritishAuction(alice, auction); err != nil {
		t.Errorf("hammerless auction rejected: %v", err)
	}
}

func TestSubmitBritishAuction_NegativePricesRejected(t *testing.T) {
	e := newTestEnv(t)
	e.ledger.Deposit(alice, native, 100)
	e.custody.Mint(alice, classA, token0, 20, false)

	auction := basicAuction(e)
	auction.Items = auction.Items[:1]
	auction.InitPrice = -200
	if _, err := e.market.SubmitBritishAuction(alice, auction); !errors.Is(err, domain.ErrInvalidPrice) {
		t.Errorf("negative init price error = %v, want ErrInvalidPrice", err)
	}

	auction.InitPrice = 200
	auction.HammerPrice = -500
	if _, err := e.market.SubmitBritishAuction(alice, auction); !errors.Is(err, domain.ErrInvalidHammerPrice) {
		t.Errorf("negative hammer price error = %v, want ErrInvalidHammerPrice", err)
	}

	// A negative raise fraction would let bids walk the price downwards.
	auction.HammerPrice = 500
	auction.MinRaise = decimal.RequireFromString("-0.5")
	if _, err := e.market.SubmitBritishAuction(alice, auction); !errors.Is(err, domain.ErrInvalidMinRaise) {
		t.Errorf("negative min raise error = %v, want ErrInvalidMinRaise", err)
	}

	if b := e.ledger.Balance(alice, native); b.Reserved != 0 {
		t.Errorf("rejected auction left reservation: %+v", b)
	}
}

func TestSubmitBritishAuction_RoyaltySingleChargeRule(t *testing.T) {
	e := newTestEnv(t)
	e.ledger.Deposit(alice, native, 100)
	e.custody.Mint(alice, classA, token0, 20, true)
	e.custody.Mint(alice, classA, token1, 40, true)

	if _, err := e.market.SubmitBritishAuction(alice, basicAuction(e)); !errors.Is(err, domain.ErrTooManyTokenChargedRoyalty) {
		t.Fatalf("error = %v, want ErrTooManyTokenChargedRoyalty", err)
	}
	if b := e.ledger.Balance(alice, native); b.Reserved != 0 {
		t.Errorf("deposit not rolled back: %+v", b)
	}
	if h := e.custody.Holding(alice, classA, token0); h.Reserved != 0 {
		t.Errorf("items not rolled back: %+v", h)
	}
}

// With init price 200 and a 50% minimum raise, the threshold is
// 200 + ceil(0.5*200) = 300 and the rule is strictly greater.
func TestBidBritishAuction_MinimumRaiseStrict(t *testing.T) {
	e, id := newAuctionEnv(t)
	e.ledger.Deposit(bob, tradeCur, 1000)

	if err := e.market.BidBritishAuction(bob, alice, id, 300); !errors.Is(err, domain.ErrPriceTooLow) {
		t.Errorf("bid 300 error = %v, want ErrPriceTooLow", err)
	}
	if b := e.ledger.Balance(bob, tradeCur); b.Reserved != 0 {
		t.Errorf("rejected bid left reservation: %+v", b)
	}

	if err := e.market.BidBritishAuction(bob, alice, id, 301); err != nil {
		t.Fatalf("bid 301 failed: %v", err)
	}
	if b := e.ledger.Balance(bob, tradeCur); b.Reserved != 301 {
		t.Errorf("bob reserved = %d, want 301", b.Reserved)
	}

	_, bid, _ := e.market.Auction(alice, id)
	if bid.LastOfferPrice != 301 || bid.LastOfferAccount != bob || bid.LastOfferBlock != 1 {
		t.Errorf("bid record = %+v, want price 301, account bob, block 1", bid)
	}
}

func TestBidBritishAuction_RefundsPreviousBidder(t *testing.T) {
	e, id := newAuctionEnv(t)
	e.ledger.Deposit(bob, tradeCur, 1000)
	e.ledger.Deposit(carol, tradeCur, 1000)

	if err := e.market.BidBritishAuction(bob, alice, id, 301); err != nil {
		t.Fatalf("first bid failed: %v", err)
	}
	// Next threshold: 301 + ceil(0.5*301) = 452, strict greater.
	if err := e.market.BidBritishAuction(carol, alice, id, 452); !errors.Is(err, domain.ErrPriceTooLow) {
		t.Errorf("bid 452 error = %v, want ErrPriceTooLow", err)
	}
	if err := e.market.BidBritishAuction(carol, alice, id, 453); err != nil {
		t.Fatalf("second bid failed: %v", err)
	}

	if b := e.ledger.Balance(bob, tradeCur); b.Free != 1000 || b.Reserved != 0 {
		t.Errorf("outbid bidder not refunded: %+v", b)
	}
	if b := e.ledger.Balance(carol, tradeCur); b.Reserved != 453 {
		t.Errorf("carol reserved = %d, want 453", b.Reserved)
	}
}

func TestBidBritishAuction_FailedReserveKeepsPreviousBidder(t *testing.T) {
	e, id := newAuctionEnv(t)
	e.ledger.Deposit(bob, tradeCur, 1000)
	e.ledger.Deposit(dave, tradeCur, 100) // cannot cover a valid raise

	if err := e.market.BidBritishAuction(bob, alice, id, 301); err != nil {
		t.Fatalf("first bid failed: %v", err)
	}
	if err := e.market.BidBritishAuction(dave, alice, id, 453); !errors.Is(err, domain.ErrInsufficientFreeBalance) {
		t.Fatalf("error = %v, want ErrInsufficientFreeBalance", err)
	}

	// The failed bid must leave the standing bid and its reservation intact.
	if b := e.ledger.Balance(bob, tradeCur); b.Reserved != 301 {
		t.Errorf("previous bidder reservation lost: %+v", b)
	}
	_, bid, _ := e.market.Auction(alice, id)
	if bid.LastOfferAccount != bob || bid.LastOfferPrice != 301 {
		t.Errorf("bid record = %+v, want bob at 301", bid)
	}
}

func TestBidBritishAuction_HammerSettlement(t *testing.T) {
	e, id := newAuctionEnv(t)
	e.ledger.Deposit(bob, tradeCur, 1000)
	e.ledger.Deposit(carol, tradeCur, 1000)

	if err := e.market.BidBritishAuction(bob, alice, id, 301); err != nil {
		t.Fatalf("first bid failed: %v", err)
	}
	// 600 >= hammer 500: settles immediately, min-raise rule not applied.
	if err := e.market.BidBritishAuction(carol, alice, id, 600); err != nil {
		t.Fatalf("hammer bid failed: %v", err)
	}

	if got := e.ledger.Balance(alice, tradeCur).Free; got != 600 {
		t.Errorf("owner proceeds = %d, want 600", got)
	}
	if b := e.ledger.Balance(carol, tradeCur); b.Free != 400 || b.Reserved != 0 {
		t.Errorf("carol balance = %+v, want free 400 reserved 0", b)
	}
	// Prior bidder fully refunded.
	if b := e.ledger.Balance(bob, tradeCur); b.Free != 1000 || b.Reserved != 0 {
		t.Errorf("bob balance = %+v, want full refund", b)
	}
	// Items delivered, deposit released.
	if h := e.custody.Holding(carol, classA, token0); h.Free != 10 {
		t.Errorf("carol token0 = %+v, want free 10", h)
	}
	if h := e.custody.Holding(carol, classA, token1); h.Free != 20 {
		t.Errorf("carol token1 = %+v, want free 20", h)
	}
	if b := e.ledger.Balance(alice, native); b.Free != 100 || b.Reserved != 0 {
		t.Errorf("owner deposit not released: %+v", b)
	}
	// Records gone, category freed.
	if _, _, ok := e.market.Auction(alice, id); ok {
		t.Error("auction still stored after settlement")
	}
	if got := e.categoryCount(t); got != 0 {
		t.Errorf("category count = %d, want 0", got)
	}

	if err := e.market.BidBritishAuction(bob, alice, id, 700); !errors.Is(err, domain.ErrBritishAuctionNotFound) {
		t.Errorf("bid after settlement error = %v, want ErrBritishAuctionNotFound", err)
	}
}

// allow_delay with deadline 10 and delay 5: a bid at step 8 keeps the
// auction open through step 13; step 14 is closed.
func TestBidBritishAuction_DeadlineExtension(t *testing.T) {
	e, id := newAuctionEnv(t)
	e.ledger.Deposit(bob, tradeCur, 1000)
	e.ledger.Deposit(carol, tradeCur, 1000)

	e.clock.Set(8)
	if err := e.market.BidBritishAuction(bob, alice, id, 301); err != nil {
		t.Fatalf("bid at step 8 failed: %v", err)
	}

	e.clock.Set(13)
	if err := e.market.BidBritishAuction(carol, alice, id, 453); err != nil {
		t.Fatalf("bid at extended deadline failed: %v", err)
	}

	e.clock.Set(19) // last bid at 13 extends to 18
	if err := e.market.BidBritishAuction(bob, alice, id, 700); !errors.Is(err, domain.ErrBritishAuctionClosed) {
		t.Errorf("late bid error = %v, want ErrBritishAuctionClosed", err)
	}
	// Closure releases nothing by itself.
	if b := e.ledger.Balance(carol, tradeCur); b.Reserved != 453 {
		t.Errorf("standing reservation disturbed by closed auction: %+v", b)
	}
}

func TestBidBritishAuction_NoDelayDeadlineIsFinal(t *testing.T) {
	e := newTestEnv(t)
	e.ledger.Deposit(alice, native, 100)
	e.ledger.Deposit(bob, tradeCur, 1000)
	e.custody.Mint(alice, classA, token0, 20, false)

	auction := basicAuction(e)
	auction.Items = auction.Items[:1]
	auction.AllowDelay = false

	id, err := e.market.SubmitBritishAuction(alice, auction)
	if err != nil {
		t.Fatalf("SubmitBritishAuction failed: %v", err)
	}

	// The deadline step itself still accepts bids; the step after does not.
	e.clock.Set(10)
	if err := e.market.BidBritishAuction(bob, alice, id, 301); err != nil {
		t.Errorf("bid at deadline failed: %v", err)
	}
	e.clock.Set(11)
	if err := e.market.BidBritishAuction(bob, alice, id, 500); !errors.Is(err, domain.ErrBritishAuctionClosed) {
		t.Errorf("bid past deadline error = %v, want ErrBritishAuctionClosed", err)
	}
}

func TestBidBritishAuction_UnknownAuction(t *testing.T) {
	e := newTestEnv(t)
	if err := e.market.BidBritishAuction(bob, alice, 42, 100); !errors.Is(err, domain.ErrBritishAuctionNotFound) {
		t.Errorf("error = %v, want ErrBritishAuctionNotFound", err)
	}
}
