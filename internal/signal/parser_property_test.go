package signal

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// signalText builds a grammatically valid signal message from generated
// component values.
func signalText(instruction, ticker string, strike int, contractType string, month, day, priceCents int) string {
	return fmt.Sprintf("%s %s %d%s %d/%d @%.2f",
		instruction, ticker, strike, contractType, month, day, float64(priceCents)/100)
}

// Property: any grammatically valid signal parses, and parsing extracts
// exactly the component values the message was built from.
func TestProperty_ValidSignalRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Constructed valid signal parses to its components", prop.ForAll(
		func(instruction, ticker string, strike int, contractType string, month, day, priceCents int) bool {
			text := signalText(instruction, ticker, strike, contractType, month, day, priceCents)
			sig := Parse(text)
			if sig == nil {
				t.Logf("FAILED: Parse(%q) = nil", text)
				return false
			}
			return string(sig.Instruction) == instruction &&
				sig.Ticker == ticker &&
				sig.StrikePrice == fmt.Sprintf("%d", strike) &&
				string(sig.ContractType) == contractType &&
				sig.Expiration == fmt.Sprintf("%d/%d", month, day) &&
				sig.ContractPrice == fmt.Sprintf("%.2f", float64(priceCents)/100)
		},
		gen.OneConstOf("BTO", "STC"),
		gen.OneConstOf("I", "GME", "INTC", "TSLA", "SPXW"),
		gen.IntRange(1, 99999),
		gen.OneConstOf("C", "P"),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
		gen.IntRange(1, 99999),
	))

	properties.TestingRun(t)
}

// Property: a message containing the same valid signal twice never
// yields a result, regardless of the signal's contents.
func TestProperty_DuplicatedSignalRejected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Concatenated duplicate signals yield no result", prop.ForAll(
		func(ticker string, strike int, month, day, priceCents int, sep string) bool {
			text := signalText("BTO", ticker, strike, "C", month, day, priceCents)
			return Parse(text+sep+text) == nil
		},
		gen.OneConstOf("I", "GME", "INTC", "TSLA", "SPXW"),
		gen.IntRange(1, 99999),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
		gen.IntRange(1, 99999),
		gen.OneConstOf(" ", "\n", "  "),
	))

	properties.TestingRun(t)
}

// Property: markdown emphasis never changes a parse result. Parsing a
// message equals parsing its markdown-stripped form, and wrapping
// fields of a valid signal in emphasis markers leaves the result intact.
func TestProperty_MarkdownInvariance(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Emphasis markers around fields do not change the parse", prop.ForAll(
		func(ticker string, strike int, month, day, priceCents int, marker string) bool {
			plain := signalText("BTO", ticker, strike, "C", month, day, priceCents)
			marked := fmt.Sprintf("BTO %s%s%s %d%s %s%d/%d%s @%.2f",
				marker, ticker, marker, strike, "C",
				marker, month, day, marker, float64(priceCents)/100)

			want := Parse(plain)
			got := Parse(marked)
			if want == nil || got == nil {
				return false
			}
			return *want == *got || (want.Ticker == got.Ticker &&
				want.StrikePrice == got.StrikePrice &&
				want.Expiration == got.Expiration &&
				want.ContractPrice == got.ContractPrice)
		},
		gen.OneConstOf("I", "GME", "INTC", "TSLA", "SPXW"),
		gen.IntRange(1, 99999),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
		gen.IntRange(1, 99999),
		gen.OneConstOf("*", "**", "__", "*_"),
	))

	properties.Property("Parse equals parse of the stripped message", prop.ForAll(
		func(text string) bool {
			a := Parse(text)
			b := Parse(StripMarkdown(text))
			if (a == nil) != (b == nil) {
				return false
			}
			if a == nil {
				return true
			}
			return a.Ticker == b.Ticker && a.ContractPrice == b.ContractPrice
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Property: a non-whitespace character glued to the instruction voids
// the signal.
func TestProperty_GluedPrefixRejected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Instruction preceded by a non-whitespace character is rejected", prop.ForAll(
		func(prefix string, ticker string, strike int) bool {
			text := prefix + signalText("BTO", ticker, strike, "C", 12, 31, 45)
			return Parse(text) == nil
		},
		gen.OneConstOf("x", "9", ".", ")", "comments"),
		gen.OneConstOf("I", "GME", "INTC"),
		gen.IntRange(1, 99999),
	))

	properties.TestingRun(t)
}
