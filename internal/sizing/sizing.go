// Package sizing derives concrete order quantities and prices from a
// parsed order signal and the user's risk settings.
//
// Every numeric input has already passed the signal grammar, so the
// engine treats an unparseable number as a contract breach and returns
// an IntegrityError instead of computing garbage.
package sizing

import (
	"math"
	"strconv"

	"signal-trader/internal/errors"
	"signal-trader/internal/models"
)

// LotSize is the number of underlying shares per standard option contract.
const LotSize = 100

// OpenPlan derives the sizing for a buy-to-open signal.
//
// The order value is the user's high-risk value when the signal carries
// a risk marker, the standard maximum otherwise. Quantity truncates
// toward zero; zero is a valid plan meaning the order is too small to
// place. The stop-loss uses the smaller fractional drop of the
// message-supplied stop and the user default.
func OpenPlan(sig *models.OrderSignal, settings models.RiskSettings) (*models.OpenPlan, error) {
	price, err := parsePrice("contract_price", sig.ContractPrice)
	if err != nil {
		return nil, err
	}

	orderValue := settings.MaxOrderValue
	if sig.Open != nil && sig.Open.HighRisk {
		orderValue = settings.HighRiskOrderValue
	}

	slPercent := settings.StopLossPercent
	if sig.Open != nil && sig.Open.StopLoss != "" {
		slPrice, err := parsePrice("stop_loss", sig.Open.StopLoss)
		if err != nil {
			return nil, err
		}
		if p := stopLossPercent(price, slPrice); p < slPercent {
			slPercent = p
		}
	}

	return &models.OpenPlan{
		Quantity:        buyQuantity(price, orderValue, settings.BuyLimitPercent),
		BuyLimitPrice:   roundCents(price * (1 + settings.BuyLimitPercent)),
		StopLossPrice:   stopLossPrice(price, slPercent),
		StopLossPercent: slPercent,
	}, nil
}

// Reduction splits a position into the quantity to sell immediately and
// the quantity to keep under a replacement stop. The sell side rounds
// up, so any position of at least one contract sells at least one
// contract for any positive percentage.
func Reduction(positionQty, reducePercent int) (models.ReductionPlan, error) {
	if positionQty < 0 {
		return models.ReductionPlan{}, errors.NewValidationError("position_quantity", positionQty, "must be non-negative")
	}
	if reducePercent < 0 {
		return models.ReductionPlan{}, errors.NewValidationError("reduce_percent", reducePercent, "must be non-negative")
	}
	sell := (positionQty*reducePercent + 99) / 100 // integer ceiling
	if sell > positionQty {
		sell = positionQty
	}
	return models.ReductionPlan{
		SellQuantity: sell,
		KeepQuantity: positionQty - sell,
	}, nil
}

// ReplacementStopPrice derives the stop price protecting the kept
// remainder of a partially closed position.
func ReplacementStopPrice(sig *models.OrderSignal, settings models.RiskSettings) (float64, error) {
	price, err := parsePrice("contract_price", sig.ContractPrice)
	if err != nil {
		return 0, err
	}
	return stopLossPrice(price, settings.StopLossPercent), nil
}

// buyQuantity returns the number of contracts affordable within
// orderValue at the limit price, truncated toward zero.
func buyQuantity(price, orderValue, buyLimitPercent float64) int {
	lotValue := price * LotSize * (1 + buyLimitPercent)
	return int(orderValue / lotValue)
}

// stopLossPercent returns the fractional drop from the contract price
// to the given stop price.
func stopLossPercent(contractPrice, stopPrice float64) float64 {
	return (contractPrice - stopPrice) / contractPrice
}

// stopLossPrice returns the price slPercent below the contract price,
// rounded to cents.
func stopLossPrice(contractPrice, slPercent float64) float64 {
	return roundCents(contractPrice * (1 - slPercent))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func parsePrice(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.NewIntegrityError(field, value, err)
	}
	return v, nil
}
