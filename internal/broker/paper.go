package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"signal-trader/internal/errors"
	"signal-trader/internal/models"
)

// PaperBroker implements the Broker interface for paper trading
// simulation. Buy orders fill immediately at their limit price; sell
// market orders fill against the held position; stop orders rest open
// until cancelled.
type PaperBroker struct {
	positions map[string]*models.Position
	orders    map[string]*models.Order

	orderCounter int
	balance      float64

	mu sync.RWMutex
}

// PaperBrokerConfig holds configuration for the paper broker.
type PaperBrokerConfig struct {
	InitialBalance float64
}

// NewPaperBroker creates a new paper trading broker.
func NewPaperBroker(cfg PaperBrokerConfig) *PaperBroker {
	balance := cfg.InitialBalance
	if balance == 0 {
		balance = 25000
	}
	return &PaperBroker{
		positions: make(map[string]*models.Position),
		orders:    make(map[string]*models.Order),
		balance:   balance,
	}
}

// Login is a no-op for paper trading.
func (p *PaperBroker) Login(ctx context.Context) error {
	return nil
}

// IsAuthenticated always returns true for paper trading.
func (p *PaperBroker) IsAuthenticated() bool {
	return true
}

// PlaceOrder simulates order placement.
func (p *PaperBroker) PlaceOrder(ctx context.Context, order *models.Order) (*OrderResult, error) {
	if order.Quantity <= 0 {
		return nil, errors.Wrap(errors.ErrInvalidOrder, "quantity must be positive")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.orderCounter++
	placed := *order
	placed.ID = fmt.Sprintf("PAPER-%06d", p.orderCounter)
	placed.PlacedAt = time.Now()
	placed.Status = models.OrderStatusOpen

	switch {
	case placed.Side == models.OrderSideBuy:
		// Fill immediately at the limit price.
		cost := placed.Price * float64(placed.Quantity) * 100
		if cost > p.balance {
			return nil, errors.NewBrokerError("place", placed.Symbol, "insufficient balance", errors.ErrOrderRejected)
		}
		p.balance -= cost
		pos, ok := p.positions[placed.Symbol]
		if !ok {
			pos = &models.Position{Symbol: placed.Symbol}
			p.positions[placed.Symbol] = pos
		}
		total := float64(pos.Quantity)*pos.AveragePrice + float64(placed.Quantity)*placed.Price
		pos.Quantity += placed.Quantity
		pos.AveragePrice = total / float64(pos.Quantity)
		placed.Status = models.OrderStatusFilled

	case placed.Type == models.OrderTypeMarket:
		// Sell market fills against the held position.
		pos, ok := p.positions[placed.Symbol]
		if !ok || pos.Quantity < placed.Quantity {
			return nil, errors.NewBrokerError("place", placed.Symbol, "insufficient position", errors.ErrOrderRejected)
		}
		pos.Quantity -= placed.Quantity
		p.balance += float64(placed.Quantity) * pos.AveragePrice * 100
		if pos.Quantity == 0 {
			delete(p.positions, placed.Symbol)
		}
		placed.Status = models.OrderStatusFilled

	default:
		// Sell stop rests open until cancelled.
	}

	p.orders[placed.ID] = &placed
	return &OrderResult{
		OrderID: placed.ID,
		Status:  placed.Status,
		Message: "paper order accepted",
	}, nil
}

// CancelOrder cancels a resting order.
func (p *PaperBroker) CancelOrder(ctx context.Context, orderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	order, ok := p.orders[orderID]
	if !ok {
		return errors.Wrapf(errors.ErrOrderNotFound, "order %s", orderID)
	}
	if order.Status != models.OrderStatusOpen {
		return errors.NewBrokerError("cancel", order.Symbol, "order is not open", errors.ErrInvalidOrder)
	}
	order.Status = models.OrderStatusCancelled
	return nil
}

// GetOrders returns all orders placed in this session.
func (p *PaperBroker) GetOrders(ctx context.Context) ([]models.Order, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	orders := make([]models.Order, 0, len(p.orders))
	for _, o := range p.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

// PositionQuantity returns the held quantity for a symbol, 0 if none.
func (p *PaperBroker) PositionQuantity(ctx context.Context, symbol string) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if pos, ok := p.positions[symbol]; ok {
		return pos.Quantity, nil
	}
	return 0, nil
}

// Balance returns the remaining simulated cash balance.
func (p *PaperBroker) Balance() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.balance
}
