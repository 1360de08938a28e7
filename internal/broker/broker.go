// Package broker provides broker integration interfaces and implementations.
package broker

import (
	"context"

	"signal-trader/internal/models"
)

// Broker defines the interface for order execution operations.
type Broker interface {
	// Authentication
	Login(ctx context.Context) error
	IsAuthenticated() bool

	// Orders
	PlaceOrder(ctx context.Context, order *models.Order) (*OrderResult, error)
	CancelOrder(ctx context.Context, orderID string) error
	GetOrders(ctx context.Context) ([]models.Order, error)

	// Positions
	PositionQuantity(ctx context.Context, symbol string) (int, error)
}

// OrderResult represents the result of an order placement.
type OrderResult struct {
	OrderID string
	Status  models.OrderStatus
	Message string
}

// OpenSellOrders returns the ids of working sell orders for the given
// symbol. A close signal cancels these before re-selling so a resting
// stop does not double-fill against the new exit.
func OpenSellOrders(ctx context.Context, b Broker, symbol string) ([]string, error) {
	orders, err := b.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, o := range orders {
		if o.Symbol == symbol && o.Side == models.OrderSideSell && o.Status == models.OrderStatusOpen {
			ids = append(ids, o.ID)
		}
	}
	return ids, nil
}
