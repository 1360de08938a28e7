// Package models provides domain models for the signal trading application.
package models

// Instruction represents the direction of an order signal.
type Instruction string

const (
	// InstructionOpen is a buy-to-open signal (source token "BTO").
	InstructionOpen Instruction = "BTO"
	// InstructionClose is a sell-to-close signal (source token "STC").
	InstructionClose Instruction = "STC"
)

// ContractType represents the option contract type.
type ContractType string

const (
	ContractCall ContractType = "C"
	ContractPut  ContractType = "P"
)

// OrderSide represents the side of a broker order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderType represents the type of a broker order.
type OrderType string

const (
	OrderTypeMarket   OrderType = "MARKET"
	OrderTypeLimit    OrderType = "LIMIT"
	OrderTypeStopLoss OrderType = "STOP"
)

// OrderStatus represents the lifecycle state of a broker order.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)
