package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nft_market/internal/domain"
	"nft_market/internal/engine"
	"nft_market/internal/infra"
	"nft_market/internal/ledger"
	"nft_market/internal/storage"
)

// Handler exposes the dispatch surface over HTTP. It is a thin caller; all
// trading invariants live in the engine.
type Handler struct {
	market  *engine.Market
	catalog *storage.Catalog
	clock   *engine.StepClock
	ledger  *ledger.CurrencyLedger
	custody *ledger.TokenCustody

	// defaultMinRaise seeds auctions submitted without an explicit raise.
	defaultMinRaise decimal.Decimal
}

// NewHandler creates a new API handler.
func NewHandler(market *engine.Market, catalog *storage.Catalog, clock *engine.StepClock, l *ledger.CurrencyLedger, c *ledger.TokenCustody, defaultMinRaise decimal.Decimal) *Handler {
	return &Handler{
		market:          market,
		catalog:         catalog,
		clock:           clock,
		ledger:          l,
		custody:         c,
		defaultMinRaise: defaultMinRaise,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	infra.GlobalMetrics.RecordError()
	status, resp := MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		slog.Error("Dispatch failed", slog.Any("error", err))
	}
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    string(ErrorCodeInvalidArgument),
		Message: err.Error(),
	})
}

// SubmitOrder handles POST /v1/orders
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.market.SubmitOrder(domain.AccountID(req.Owner), domain.Order{
		CurrencyID: domain.CurrencyID(req.CurrencyID),
		Price:      req.Price,
		Deposit:    req.Deposit,
		Deadline:   req.Deadline,
		CategoryID: domain.GlobalID(req.CategoryID),
		Items:      toItems(req.Items),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, SubmitResponse{ID: uint64(id)})
}

// TakeOrder handles POST /v1/orders/take
func (h *Handler) TakeOrder(c *gin.Context) {
	var req TakeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.market.TakeOrder(
		domain.AccountID(req.Purchaser),
		domain.AccountID(req.Owner),
		domain.GlobalID(req.OrderID),
		req.Price,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveOrder handles DELETE /v1/orders/:id
func (h *Handler) RemoveOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}
	var req RemoveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.market.RemoveOrder(domain.AccountID(req.Owner), domain.GlobalID(id)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitOffer handles POST /v1/offers
func (h *Handler) SubmitOffer(c *gin.Context) {
	var req SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.market.SubmitOffer(domain.AccountID(req.Owner), domain.Offer{
		CurrencyID: domain.CurrencyID(req.CurrencyID),
		Price:      req.Price,
		Deadline:   req.Deadline,
		CategoryID: domain.GlobalID(req.CategoryID),
		Items:      toItems(req.Items),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, SubmitResponse{ID: uint64(id)})
}

// RemoveOffer handles DELETE /v1/offers/:id
func (h *Handler) RemoveOffer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}
	var req RemoveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.market.RemoveOffer(domain.AccountID(req.Owner), domain.GlobalID(id)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitAuction handles POST /v1/auctions
func (h *Handler) SubmitAuction(c *gin.Context) {
	var req SubmitAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	minRaise := h.defaultMinRaise
	if req.MinRaise != "" {
		var err error
		minRaise, err = decimal.NewFromString(req.MinRaise)
		if err != nil {
			badRequest(c, err)
			return
		}
	}

	id, err := h.market.SubmitBritishAuction(domain.AccountID(req.Owner), domain.BritishAuction{
		CurrencyID:  domain.CurrencyID(req.CurrencyID),
		HammerPrice: req.HammerPrice,
		MinRaise:    minRaise,
		Deposit:     req.Deposit,
		InitPrice:   req.InitPrice,
		Deadline:    req.Deadline,
		AllowDelay:  req.AllowDelay,
		CategoryID:  domain.GlobalID(req.CategoryID),
		Items:       toItems(req.Items),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, SubmitResponse{ID: uint64(id)})
}

// BidAuction handles POST /v1/auctions/bid
func (h *Handler) BidAuction(c *gin.Context) {
	var req BidAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.market.BidBritishAuction(
		domain.AccountID(req.Bidder),
		domain.AccountID(req.Owner),
		domain.GlobalID(req.AuctionID),
		req.Price,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategory handles GET /v1/categories/:id/listings
func (h *Handler) ListCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}
	rows, err := h.catalog.ListByCategory(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Metrics handles GET /v1/metrics
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, infra.GlobalMetrics.Snapshot())
}

// Balance handles GET /v1/accounts/:account/balances/:currency
func (h *Handler) Balance(c *gin.Context) {
	currency, err := strconv.ParseUint(c.Param("currency"), 10, 32)
	if err != nil {
		badRequest(c, err)
		return
	}
	b := h.ledger.Balance(domain.AccountID(c.Param("account")), domain.CurrencyID(currency))
	c.JSON(http.StatusOK, b)
}

// Faucet handles POST /v1/admin/faucet. The real chain funds accounts via
// consensus-level transfers; this surface exists for local operation.
func (h *Handler) Faucet(c *gin.Context) {
	var req FaucetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Amount < 0 {
		h.fail(c, domain.ErrInvalidAmount)
		return
	}
	h.ledger.Deposit(domain.AccountID(req.Account), domain.CurrencyID(req.CurrencyID), req.Amount)
	c.Status(http.StatusNoContent)
}

// Mint handles POST /v1/admin/mint.
func (h *Handler) Mint(c *gin.Context) {
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Quantity < 0 {
		h.fail(c, domain.ErrInvalidQuantity)
		return
	}
	h.custody.Mint(
		domain.AccountID(req.Account),
		domain.ClassID(req.ClassID),
		domain.TokenID(req.TokenID),
		req.Quantity,
		req.ChargedRoyalty,
	)
	c.Status(http.StatusNoContent)
}

// RegisterCategory handles POST /v1/admin/categories.
func (h *Handler) RegisterCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := h.market.RegisterCategory(req.Name)
	c.JSON(http.StatusCreated, SubmitResponse{ID: uint64(id)})
}

// AdvanceStep handles POST /v1/admin/step.
func (h *Handler) AdvanceStep(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.clock.Advance(req.Steps)
	c.JSON(http.StatusOK, gin.H{"step": h.clock.Current()})
}
