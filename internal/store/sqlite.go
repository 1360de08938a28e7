package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"signal-trader/internal/models"
)

// SQLiteJournal implements Journal using SQLite.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal creates a new SQLite-backed signal journal.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return j, nil
}

func (j *SQLiteJournal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS signals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at DATETIME NOT NULL,
		raw_text TEXT NOT NULL,
		instruction TEXT NOT NULL,
		ticker TEXT NOT NULL,
		strike_price TEXT NOT NULL,
		contract_type TEXT NOT NULL,
		expiration TEXT NOT NULL,
		contract_price TEXT NOT NULL,
		comments TEXT,
		stop_loss TEXT,
		high_risk INTEGER DEFAULT 0,
		reduce_percent INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		signal_id INTEGER REFERENCES signals(id),
		order_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		type TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL,
		status TEXT NOT NULL,
		placed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_signals_ticker ON signals(ticker);
	CREATE INDEX IF NOT EXISTS idx_orders_signal ON orders(signal_id);
	`
	_, err := j.db.Exec(schema)
	return err
}

// SaveSignal journals a parsed signal and returns its row id.
func (j *SQLiteJournal) SaveSignal(ctx context.Context, raw string, sig *models.OrderSignal) (int64, error) {
	var stopLoss string
	var highRisk bool
	var reducePercent int
	if sig.Open != nil {
		stopLoss = sig.Open.StopLoss
		highRisk = sig.Open.HighRisk
	}
	if sig.Close != nil {
		reducePercent = sig.Close.ReducePercent
	}

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO signals (received_at, raw_text, instruction, ticker, strike_price,
			contract_type, expiration, contract_price, comments, stop_loss, high_risk, reduce_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now(), raw, string(sig.Instruction), sig.Ticker, sig.StrikePrice,
		string(sig.ContractType), sig.Expiration, sig.ContractPrice, sig.Comments,
		stopLoss, highRisk, reducePercent,
	)
	if err != nil {
		return 0, fmt.Errorf("saving signal: %w", err)
	}
	return res.LastInsertId()
}

// SaveOrder journals a placed broker order against its signal.
func (j *SQLiteJournal) SaveOrder(ctx context.Context, signalID int64, order *models.Order) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO orders (signal_id, order_id, symbol, side, type, quantity, price, status, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		signalID, order.ID, order.Symbol, string(order.Side), string(order.Type),
		order.Quantity, order.Price, string(order.Status), order.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("saving order: %w", err)
	}
	return nil
}

// ListSignals returns the most recent journaled signals.
func (j *SQLiteJournal) ListSignals(ctx context.Context, limit int) ([]SignalRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, received_at, raw_text, instruction, ticker, strike_price,
			contract_type, expiration, contract_price, comments, stop_loss, high_risk, reduce_percent
		FROM signals ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing signals: %w", err)
	}
	defer rows.Close()

	var records []SignalRecord
	for rows.Next() {
		var r SignalRecord
		if err := rows.Scan(&r.ID, &r.ReceivedAt, &r.RawText, &r.Instruction, &r.Ticker,
			&r.StrikePrice, &r.ContractType, &r.Expiration, &r.ContractPrice,
			&r.Comments, &r.StopLoss, &r.HighRisk, &r.ReducePercent); err != nil {
			return nil, fmt.Errorf("scanning signal: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListOrders returns the journaled orders for a signal.
func (j *SQLiteJournal) ListOrders(ctx context.Context, signalID int64) ([]OrderRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, signal_id, order_id, symbol, side, type, quantity, price, status, placed_at
		FROM orders WHERE signal_id = ? ORDER BY id`, signalID)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var records []OrderRecord
	for rows.Next() {
		var r OrderRecord
		if err := rows.Scan(&r.ID, &r.SignalID, &r.OrderID, &r.Symbol, &r.Side,
			&r.Type, &r.Quantity, &r.Price, &r.Status, &r.PlacedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
