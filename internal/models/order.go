package models

import "time"

// Order represents a broker order for a single option contract.
type Order struct {
	ID           string
	Symbol       string
	Side         OrderSide
	Type         OrderType
	Quantity     int
	Price        float64
	TriggerPrice float64
	Status       OrderStatus
	Tag          string
	PlacedAt     time.Time
}

// Position represents an open option position held at the broker.
type Position struct {
	Symbol       string
	Quantity     int
	AveragePrice float64
}
