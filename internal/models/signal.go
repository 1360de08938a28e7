package models

// OrderSignal is the structured result of parsing a chat message that
// contains exactly one order signal. Numeric fields are kept as the
// decimal strings matched in the text; conversion happens in the sizing
// engine so that a conversion failure can be reported as a contract
// breach rather than silently altering the message.
type OrderSignal struct {
	Instruction   Instruction
	Ticker        string
	StrikePrice   string
	ContractType  ContractType
	Expiration    string
	ContractPrice string
	// Comments is the text strictly after the matched signal, empty if none.
	Comments string

	// Exactly one of the two flag sets is non-nil, matching Instruction.
	// Open flags never populate for a close signal and vice versa, even
	// when the comment text would otherwise match.
	Open  *OpenFlags
	Close *CloseFlags
}

// OpenFlags holds the optional refinement flags of a buy-to-open signal.
type OpenFlags struct {
	// StopLoss is the message-supplied stop-loss price, empty if absent.
	StopLoss string
	// HighRisk is set when the comments carry a risk marker term.
	HighRisk bool
}

// CloseFlags holds the optional refinement flags of a sell-to-close signal.
type CloseFlags struct {
	// ReducePercent is the percentage of the position to liquidate,
	// 0 if the message does not ask for a partial close.
	ReducePercent int
}

// IsOpen reports whether the signal is a buy-to-open instruction.
func (s *OrderSignal) IsOpen() bool {
	return s.Instruction == InstructionOpen
}

// HasReduce reports whether the signal asks for a partial position close.
func (s *OrderSignal) HasReduce() bool {
	return s.Close != nil && s.Close.ReducePercent > 0
}
