package app

import (
	"log/slog"

	"nft_market/internal/engine"
	"nft_market/internal/event"
	"nft_market/internal/feed"
	"nft_market/internal/infra"
	"nft_market/internal/ledger"
	"nft_market/internal/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Catalog *storage.Catalog
	Market  *engine.Market
	Clock   *engine.StepClock
	Ledger  *ledger.CurrencyLedger
	Custody *ledger.TokenCustody
	Feed    *feed.Broadcaster
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB, engine).
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping NFT Market...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize the browse catalog (read model DB)
	catalog, err := storage.NewCatalog(cfg.Database.Path)
	if err != nil {
		return err
	}
	b.Catalog = catalog
	slog.Info("✅ Catalog database initialized")

	// 4. Build the trading core with its injected capabilities
	b.Ledger = ledger.NewCurrencyLedger()
	b.Custody = ledger.NewTokenCustody()
	b.Clock = engine.NewStepClock(1)
	b.Market = engine.NewMarket(b.Ledger, b.Custody, b.Clock, engine.NewCounterAllocator(1), engine.Policy{
		MinListingDeposit: cfg.Market.MinListingDeposit,
		AuctionDelay:      cfg.Market.AuctionDelay,
	})

	// 5. Event fan-out: read model, websocket feed, metrics
	b.Feed = feed.NewBroadcaster()
	b.Market.OnEvent(b.handleEvent)
	slog.Info("✅ Market engine ready")

	return nil
}

func (b *Bootstrap) handleEvent(ev event.Event) {
	if err := b.Catalog.Apply(ev); err != nil {
		// The engine state is authoritative; a stale read model is
		// tolerable, a failed trade is not.
		slog.Error("Catalog projection failed",
			slog.String("kind", string(ev.Kind)), slog.Any("error", err))
	}
	b.Feed.Broadcast(ev)

	switch ev.Kind {
	case event.KindOrderCreated, event.KindOfferCreated, event.KindAuctionCreated:
		infra.GlobalMetrics.RecordListingCreated()
	case event.KindOrderRemoved, event.KindOfferRemoved:
		infra.GlobalMetrics.RecordListingRemoved()
	case event.KindOrderTaken:
		infra.GlobalMetrics.RecordOrderTaken()
	case event.KindAuctionBid:
		infra.GlobalMetrics.RecordBidAccepted()
	case event.KindAuctionSettled:
		infra.GlobalMetrics.RecordAuctionSettled()
	}
}
