package models

// RiskSettings holds the per-user sizing configuration consumed by the
// sizing engine. Values are validated by the config layer before they
// reach the engine; the engine never mutates them.
type RiskSettings struct {
	// MaxOrderValue is the maximum dollar value of a standard open order.
	MaxOrderValue float64
	// HighRiskOrderValue is the order value used when the signal carries
	// a high-risk marker.
	HighRiskOrderValue float64
	// BuyLimitPercent is the fraction above the quoted contract price at
	// which the buy limit is set, e.g. 0.05.
	BuyLimitPercent float64
	// StopLossPercent is the default fractional drop from the contract
	// price at which the protective stop triggers, e.g. 0.30.
	StopLossPercent float64
}

// OpenPlan is the derived sizing for a buy-to-open signal.
type OpenPlan struct {
	// Quantity is the number of contracts to buy. Zero is a valid plan
	// meaning the order is too small to place under the settings.
	Quantity int
	// BuyLimitPrice is the limit price, rounded to cents.
	BuyLimitPrice float64
	// StopLossPrice is the protective stop price, rounded to cents.
	StopLossPrice float64
	// StopLossPercent is the fractional drop the stop price was derived
	// from: the smaller of the message stop and the default.
	StopLossPercent float64
}

// ReductionPlan is the sell/keep split for a partial position close.
type ReductionPlan struct {
	SellQuantity int
	KeepQuantity int
}
