// Package store provides data persistence implementations.
package store

import (
	"context"
	"time"

	"signal-trader/internal/models"
)

// SignalRecord is a journaled parse outcome.
type SignalRecord struct {
	ID            int64
	ReceivedAt    time.Time
	RawText       string
	Instruction   string
	Ticker        string
	StrikePrice   string
	ContractType  string
	Expiration    string
	ContractPrice string
	Comments      string
	StopLoss      string
	HighRisk      bool
	ReducePercent int
}

// OrderRecord is a journaled broker order.
type OrderRecord struct {
	ID       int64
	SignalID int64
	OrderID  string
	Symbol   string
	Side     string
	Type     string
	Quantity int
	Price    float64
	Status   string
	PlacedAt time.Time
}

// Journal defines the persistence interface for processed signals.
type Journal interface {
	SaveSignal(ctx context.Context, raw string, sig *models.OrderSignal) (int64, error)
	SaveOrder(ctx context.Context, signalID int64, order *models.Order) error
	ListSignals(ctx context.Context, limit int) ([]SignalRecord, error)
	ListOrders(ctx context.Context, signalID int64) ([]OrderRecord, error)
	Close() error
}
