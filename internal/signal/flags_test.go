package signal

import "testing"

func TestParseStopLossValid(t *testing.T) {
	bases := []string{"SL@", "SL@ ", "SL @", "SL @ "}
	prices := []string{"1.45", "1.4", ".4", ".45"}
	for _, base := range bases {
		for _, price := range prices {
			comment := base + price
			if got := ParseStopLoss(comment); got != price {
				t.Errorf("ParseStopLoss(%q) = %q, want %q", comment, got, price)
			}
			wrapped := "comments(" + comment + ")comments"
			if got := ParseStopLoss(wrapped); got != price {
				t.Errorf("ParseStopLoss(%q) = %q, want %q", wrapped, got, price)
			}
		}
	}
}

func TestParseStopLossInvalid(t *testing.T) {
	invalidBases := []string{"SL", "@ ", "L@", "L @", "S@", "S @", ""}
	prices := []string{"1.45", "1.4", ".4", ".45"}
	for _, base := range invalidBases {
		for _, price := range prices {
			comment := base + price
			if got := ParseStopLoss(comment); got != "" {
				t.Errorf("ParseStopLoss(%q) = %q, want empty", comment, got)
			}
		}
	}

	bases := []string{"SL@", "SL@ ", "SL @", "SL @ "}
	invalidPrices := []string{"1.453", "1234.4", "@ .4", "a.45", "1.45a", ""}
	for _, base := range bases {
		for _, price := range invalidPrices {
			comment := base + price
			if got := ParseStopLoss(comment); got != "" {
				t.Errorf("ParseStopLoss(%q) = %q, want empty", comment, got)
			}
		}
	}
}

// mixCase alternates upper and lower case through a term.
func mixCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		if i%2 == 0 && r >= 'a' && r <= 'z' {
			out[i] = r - ('a' - 'A')
		}
	}
	return string(out)
}

func TestParseRiskValid(t *testing.T) {
	terms := []string{"risky", "daytrade", "small position", "light position"}
	for _, term := range terms {
		for _, comment := range []string{term, mixCase(term)} {
			if !ParseRisk(comment) {
				t.Errorf("ParseRisk(%q) = false, want true", comment)
			}
			if !ParseRisk("(" + comment + ")") {
				t.Errorf("ParseRisk(%q) wrapped = false, want true", comment)
			}
		}
	}
}

func TestParseRiskInvalid(t *testing.T) {
	terms := []string{
		"", "brisky", "risk", "day trade", "smallposition",
		"small_position", "flight position", "light positions", "light position5",
	}
	for _, term := range terms {
		if ParseRisk(term) {
			t.Errorf("ParseRisk(%q) = true, want false", term)
		}
	}
}

func TestParseReduceValid(t *testing.T) {
	terms := []string{"closing", "trim"}
	percents := map[string]int{"25%": 25, "33%": 33, "50%": 50, "75%": 75, "100%": 100}
	for _, term := range terms {
		for text, want := range percents {
			for _, keyword := range []string{term, mixCase(term)} {
				comment := keyword + " " + text
				if got := ParseReduce(comment); got != want {
					t.Errorf("ParseReduce(%q) = %d, want %d", comment, got, want)
				}
				if got := ParseReduce("(" + comment + ")"); got != want {
					t.Errorf("ParseReduce(%q) wrapped = %d, want %d", comment, got, want)
				}
			}
		}
	}
}

func TestParseReduceInvalid(t *testing.T) {
	comments := []string{"closing 50", "close 50%", "trim50%", "", "closing  50%", "retrim 50%", "closing 50%x"}
	for _, comment := range comments {
		if got := ParseReduce(comment); got != 0 {
			t.Errorf("ParseReduce(%q) = %d, want 0", comment, got)
		}
	}
}
