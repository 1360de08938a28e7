package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"signal-trader/internal/models"
)

func newTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteJournal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSaveAndListSignals(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	sig := &models.OrderSignal{
		Instruction:   models.InstructionOpen,
		Ticker:        "INTC",
		StrikePrice:   "50.5",
		ContractType:  models.ContractCall,
		Expiration:    "12/31",
		ContractPrice: "0.45",
		Comments:      " risky",
		Open:          &models.OpenFlags{StopLoss: "0.35", HighRisk: true},
	}
	id, err := j.SaveSignal(ctx, "BTO INTC 50.5C 12/31 @0.45 risky", sig)
	if err != nil {
		t.Fatalf("SaveSignal: %v", err)
	}
	if id == 0 {
		t.Fatal("SaveSignal returned id 0")
	}

	records, err := j.ListSignals(ctx, 10)
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	r := records[0]
	if r.ID != id {
		t.Errorf("ID = %d, want %d", r.ID, id)
	}
	if r.Instruction != "BTO" || r.Ticker != "INTC" || r.StrikePrice != "50.5" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.StopLoss != "0.35" || !r.HighRisk {
		t.Errorf("flags not persisted: stop_loss=%q high_risk=%v", r.StopLoss, r.HighRisk)
	}
	if r.ReceivedAt.IsZero() {
		t.Error("ReceivedAt is zero")
	}
}

func TestListSignalsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	tickers := []string{"GME", "INTC", "TSLA"}
	for _, ticker := range tickers {
		sig := &models.OrderSignal{
			Instruction:   models.InstructionOpen,
			Ticker:        ticker,
			StrikePrice:   "50",
			ContractType:  models.ContractCall,
			Expiration:    "12/31",
			ContractPrice: "0.45",
			Open:          &models.OpenFlags{},
		}
		if _, err := j.SaveSignal(ctx, "BTO "+ticker+" 50C 12/31 @0.45", sig); err != nil {
			t.Fatalf("SaveSignal(%s): %v", ticker, err)
		}
	}

	records, err := j.ListSignals(ctx, 2)
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	// Most recent first.
	if records[0].Ticker != "TSLA" || records[1].Ticker != "INTC" {
		t.Errorf("order = [%s %s], want [TSLA INTC]", records[0].Ticker, records[1].Ticker)
	}
}

func TestSaveAndListOrders(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	sig := &models.OrderSignal{
		Instruction:   models.InstructionClose,
		Ticker:        "INTC",
		StrikePrice:   "50",
		ContractType:  models.ContractCall,
		Expiration:    "12/31",
		ContractPrice: "0.90",
		Close:         &models.CloseFlags{ReducePercent: 50},
	}
	signalID, err := j.SaveSignal(ctx, "STC INTC 50C 12/31 @0.90 Closing 50%", sig)
	if err != nil {
		t.Fatalf("SaveSignal: %v", err)
	}

	orders := []*models.Order{
		{ID: "PAPER-000001", Symbol: "INTC_123126C50", Side: models.OrderSideSell,
			Type: models.OrderTypeMarket, Quantity: 5, Status: models.OrderStatusFilled, PlacedAt: time.Now()},
		{ID: "PAPER-000002", Symbol: "INTC_123126C50", Side: models.OrderSideSell,
			Type: models.OrderTypeStopLoss, Quantity: 5, TriggerPrice: 0.63,
			Status: models.OrderStatusOpen, PlacedAt: time.Now()},
	}
	for _, o := range orders {
		if err := j.SaveOrder(ctx, signalID, o); err != nil {
			t.Fatalf("SaveOrder(%s): %v", o.ID, err)
		}
	}

	records, err := j.ListOrders(ctx, signalID)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].OrderID != "PAPER-000001" || records[1].OrderID != "PAPER-000002" {
		t.Errorf("order ids = [%s %s]", records[0].OrderID, records[1].OrderID)
	}
	if records[0].Side != "SELL" || records[0].Type != "MARKET" || records[0].Quantity != 5 {
		t.Errorf("unexpected record: %+v", records[0])
	}

	// Orders for an unknown signal come back empty.
	none, err := j.ListOrders(ctx, signalID+1000)
	if err != nil {
		t.Fatalf("ListOrders(unknown): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len(none) = %d, want 0", len(none))
	}
}
