// Package trading wires signal parsing, order sizing, and broker
// execution into a message-processing pipeline.
package trading

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"signal-trader/internal/broker"
	"signal-trader/internal/errors"
	"signal-trader/internal/logging"
	"signal-trader/internal/models"
	"signal-trader/internal/signal"
	"signal-trader/internal/sizing"
	"signal-trader/internal/store"
)

// Processor turns incoming chat messages into broker orders.
type Processor struct {
	broker   broker.Broker
	journal  store.Journal
	settings models.RiskSettings
	logger   zerolog.Logger
}

// NewProcessor creates a new signal processor. The journal may be nil,
// in which case processed signals are not persisted.
func NewProcessor(b broker.Broker, journal store.Journal, settings models.RiskSettings, logger zerolog.Logger) *Processor {
	return &Processor{
		broker:   b,
		journal:  journal,
		settings: settings,
		logger:   logger,
	}
}

// Result describes the outcome of processing one message.
type Result struct {
	// Signal is nil when the message contained no order signal.
	Signal *models.OrderSignal
	// Plan is set for an open signal.
	Plan *models.OpenPlan
	// Reduction is set for a partial close.
	Reduction *models.ReductionPlan
	// Orders are the broker orders placed for this message.
	Orders []models.Order
	// SkipReason is set when a valid signal produced no orders: a
	// zero-quantity plan or a close with no position. These are normal
	// outcomes, not errors.
	SkipReason string
}

// ProcessMessage parses a chat message and, when it carries a signal,
// derives and places the corresponding orders. A message with no signal
// is skipped silently: that is the common case for free-form chat.
func (p *Processor) ProcessMessage(ctx context.Context, text string) (*Result, error) {
	sig := signal.Parse(text)
	if sig == nil {
		p.logger.Debug().Msg("No signal in message")
		return &Result{}, nil
	}

	logging.LogSignal(p.logger, string(sig.Instruction), sig.Ticker, sig.StrikePrice,
		string(sig.ContractType), sig.Expiration, sig.ContractPrice)

	var signalID int64
	if p.journal != nil {
		id, err := p.journal.SaveSignal(ctx, text, sig)
		if err != nil {
			p.logger.Error().Err(err).Msg("Failed to journal signal")
		} else {
			signalID = id
		}
	}

	symbol, err := broker.BuildOptionSymbol(sig.Ticker, sig.Expiration, sig.ContractType, sig.StrikePrice)
	if err != nil {
		return nil, errors.Wrap(err, "building option symbol")
	}

	if sig.IsOpen() {
		return p.processOpen(ctx, sig, signalID, symbol)
	}
	return p.processClose(ctx, sig, signalID, symbol)
}

// processOpen sizes and places a buy-limit order with a protective
// sell-stop for the same quantity.
func (p *Processor) processOpen(ctx context.Context, sig *models.OrderSignal, signalID int64, symbol string) (*Result, error) {
	plan, err := sizing.OpenPlan(sig, p.settings)
	if err != nil {
		return nil, err
	}
	result := &Result{Signal: sig, Plan: plan}

	if plan.Quantity == 0 {
		// Order too small to place under the current settings: a low
		// max order value or a high buy limit percent.
		p.logger.Warn().
			Str("symbol", symbol).
			Str("contract_price", sig.ContractPrice).
			Msg("Purchase quantity is 0, skipping order")
		result.SkipReason = "purchase quantity is 0"
		return result, nil
	}

	buy := &models.Order{
		Symbol:   symbol,
		Side:     models.OrderSideBuy,
		Type:     models.OrderTypeLimit,
		Quantity: plan.Quantity,
		Price:    plan.BuyLimitPrice,
		Tag:      "signal-open",
	}
	if err := p.place(ctx, signalID, buy, result); err != nil {
		return result, err
	}

	stop := &models.Order{
		Symbol:       symbol,
		Side:         models.OrderSideSell,
		Type:         models.OrderTypeStopLoss,
		Quantity:     plan.Quantity,
		TriggerPrice: plan.StopLossPrice,
		Tag:          "signal-stop",
	}
	if err := p.place(ctx, signalID, stop, result); err != nil {
		return result, err
	}
	return result, nil
}

// processClose sells the position, either in full or split per the
// reduce flag with a replacement stop for the kept remainder. Existing
// working sell orders are cancelled first so a resting stop cannot
// double-fill against the new exit.
func (p *Processor) processClose(ctx context.Context, sig *models.OrderSignal, signalID int64, symbol string) (*Result, error) {
	result := &Result{Signal: sig}

	posQty, err := p.broker.PositionQuantity(ctx, symbol)
	if err != nil {
		return result, errors.Wrap(err, "querying position")
	}
	if posQty < 1 {
		p.logger.Warn().Str("symbol", symbol).Msg("No position to close")
		result.SkipReason = "no position to close"
		return result, nil
	}

	openSells, err := broker.OpenSellOrders(ctx, p.broker, symbol)
	if err != nil {
		return result, errors.Wrap(err, "querying open orders")
	}
	for _, id := range openSells {
		if err := p.broker.CancelOrder(ctx, id); err != nil {
			return result, errors.Wrapf(err, "cancelling order %s", id)
		}
		p.logger.Info().Str("order_id", id).Str("symbol", symbol).Msg("Cancelled working sell order")
	}

	sellQty := posQty
	if sig.HasReduce() {
		reduction, err := sizing.Reduction(posQty, sig.Close.ReducePercent)
		if err != nil {
			return result, err
		}
		result.Reduction = &reduction
		sellQty = reduction.SellQuantity
	}

	sell := &models.Order{
		Symbol:   symbol,
		Side:     models.OrderSideSell,
		Type:     models.OrderTypeMarket,
		Quantity: sellQty,
		Tag:      "signal-close",
	}
	if err := p.place(ctx, signalID, sell, result); err != nil {
		return result, err
	}

	if result.Reduction != nil && result.Reduction.KeepQuantity > 0 {
		stopPrice, err := sizing.ReplacementStopPrice(sig, p.settings)
		if err != nil {
			return result, err
		}
		stop := &models.Order{
			Symbol:       symbol,
			Side:         models.OrderSideSell,
			Type:         models.OrderTypeStopLoss,
			Quantity:     result.Reduction.KeepQuantity,
			TriggerPrice: stopPrice,
			Tag:          "signal-trim-stop",
		}
		if err := p.place(ctx, signalID, stop, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (p *Processor) place(ctx context.Context, signalID int64, order *models.Order, result *Result) error {
	res, err := p.broker.PlaceOrder(ctx, order)
	if err != nil {
		return errors.Wrapf(err, "placing %s %s order", order.Side, order.Type)
	}
	order.ID = res.OrderID
	order.Status = res.Status
	order.PlacedAt = time.Now()

	price := order.Price
	if order.Type == models.OrderTypeStopLoss {
		price = order.TriggerPrice
	}
	logging.LogOrder(p.logger, order.ID, order.Symbol, string(order.Side), string(order.Type), order.Quantity, price)

	if p.journal != nil {
		if err := p.journal.SaveOrder(ctx, signalID, order); err != nil {
			p.logger.Error().Err(err).Str("order_id", order.ID).Msg("Failed to journal order")
		}
	}
	result.Orders = append(result.Orders, *order)
	return nil
}
