package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	listingsCreated atomic.Uint64
	listingsRemoved atomic.Uint64
	ordersTaken     atomic.Uint64
	bidsAccepted    atomic.Uint64
	auctionsSettled atomic.Uint64
	errorsTotal     atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordListingCreated records an order, offer or auction entering the market.
func (m *Metrics) RecordListingCreated() {
	m.listingsCreated.Add(1)
}

// RecordListingRemoved records an explicit removal.
func (m *Metrics) RecordListingRemoved() {
	m.listingsRemoved.Add(1)
}

// RecordOrderTaken records a completed fixed-price swap.
func (m *Metrics) RecordOrderTaken() {
	m.ordersTaken.Add(1)
}

// RecordBidAccepted records an accepted auction raise.
func (m *Metrics) RecordBidAccepted() {
	m.bidsAccepted.Add(1)
}

// RecordAuctionSettled records a hammer settlement.
func (m *Metrics) RecordAuctionSettled() {
	m.auctionsSettled.Add(1)
}

// RecordError records a rejected dispatch operation.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// IncrementConnections increments active feed connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active feed connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	ListingsCreated   uint64
	ListingsRemoved   uint64
	OrdersTaken       uint64
	BidsAccepted      uint64
	AuctionsSettled   uint64
	ErrorsTotal       uint64
	ActiveConnections int32
	Timestamp         time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ListingsCreated:   m.listingsCreated.Load(),
		ListingsRemoved:   m.listingsRemoved.Load(),
		OrdersTaken:       m.ordersTaken.Load(),
		BidsAccepted:      m.bidsAccepted.Load(),
		AuctionsSettled:   m.auctionsSettled.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.listingsCreated.Store(0)
	m.listingsRemoved.Store(0)
	m.ordersTaken.Store(0)
	m.bidsAccepted.Store(0)
	m.auctionsSettled.Store(0)
	m.errorsTotal.Store(0)
	m.activeConnections.Store(0)
}
