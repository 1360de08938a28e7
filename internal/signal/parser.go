package signal

import (
	"strings"

	"signal-trader/internal/models"
)

var markdownReplacer = strings.NewReplacer("*", "", "_", "")

// StripMarkdown removes the markdown emphasis characters chat platforms
// wrap around message fragments. Idempotent.
func StripMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}

// Parse scans a raw chat message for an order signal.
//
// The message is stripped of markdown, then matched against the signal
// grammar. Parse returns a signal only when the cleaned text contains
// exactly one match; zero matches or two and more (an ambiguous
// message) both return nil. Absence of a signal is a valid outcome,
// not an error.
//
// Flags are extracted from the text following the match, and only for
// the matching direction: stop-loss and risk markers for an open,
// reduce percent for a close.
func Parse(raw string) *models.OrderSignal {
	clean := StripMarkdown(raw)

	var match []int
	count := 0
	for _, c := range signalRe.FindAllStringSubmatchIndex(clean, -1) {
		if !leadingBoundaryOK(clean, c[0]) || !trailingBoundaryOK(clean, c[1]) {
			continue
		}
		match = c
		count++
	}
	if count != 1 {
		return nil
	}

	group := func(i int) string { return clean[match[2*i]:match[2*i+1]] }
	sig := &models.OrderSignal{
		Instruction:   models.Instruction(group(1)),
		Ticker:        group(2),
		StrikePrice:   group(3),
		ContractType:  models.ContractType(group(4)),
		Expiration:    group(5),
		ContractPrice: group(6),
		Comments:      clean[match[1]:],
	}

	switch sig.Instruction {
	case models.InstructionOpen:
		sig.Open = &models.OpenFlags{
			StopLoss: ParseStopLoss(sig.Comments),
			HighRisk: ParseRisk(sig.Comments),
		}
	case models.InstructionClose:
		sig.Close = &models.CloseFlags{
			ReducePercent: ParseReduce(sig.Comments),
		}
	}
	return sig
}
