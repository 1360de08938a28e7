// Package signal parses chat-style text messages for option order signals.
//
// A signal is a rigid single-line pattern embedded in free text:
//
//	BTO INTC 50C 12/31 @0.45 (SL @.35)
//	<open/close> <ticker> <strike + C/P> <expiration> <@ price> <comments>
//
// Parsing is maximally defensive: anything that does not match the
// grammar exactly, or matches it more than once, yields no signal.
package signal

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Grammar fragments. Alternatives are tried left to right, so the
// decimal strike is preferred over the bare-digit strike and the
// four-digit year over the two-digit year.
const (
	patternInstruction = `(BTO|STC)`
	patternTicker      = `([A-Z]{1,5})`
	patternStrike      = `([0-9]{1,5}\.[0-9]{1,2}|[0-9]{1,5})`
	patternContract    = `([CP])`
	patternExpiration  = `([0-9]{1,2}/[0-9]{1,2}/[0-9]{4}|[0-9]{1,2}/[0-9]{1,2}/[0-9]{2}|[0-9]{1,2}/[0-9]{1,2})`
	patternPrice       = `([0-9]{0,3}\.[0-9]{1,2})`
	patternSpace       = `\s{1,2}`
	patternAt          = `@\s?`
)

var signalRe = regexp.MustCompile(
	patternInstruction + patternSpace +
		patternTicker + patternSpace +
		patternStrike + patternContract + patternSpace +
		patternExpiration + patternSpace +
		patternAt + patternPrice,
)

// leadingBoundaryOK reports whether a match starting at start is not
// immediately preceded by a non-whitespace character. The instruction
// token must stand at the start of the text or after whitespace;
// "commentsBTO" is not a signal.
//
// Go's regexp has no lookbehind, so the assertion is checked here on
// each candidate match. This is equivalent to the lookbehind form: a
// candidate rejected on its leading boundary cannot hide another match,
// because no grammar token past the instruction can start a signal.
func leadingBoundaryOK(s string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:start])
	return unicode.IsSpace(r)
}

// trailingBoundaryOK reports whether the character following a price at
// end is an acceptable terminator: end of text, whitespace, or an open
// parenthesis. The parenthesis case lets a "(comment)" abut the price
// with no space while a stray trailing character voids the signal.
//
// Checked as a predicate in place of a lookahead. Equivalent: the only
// characters the price could shed to satisfy a shorter match are
// digits, and a digit never satisfies the boundary either.
func trailingBoundaryOK(s string, end int) bool {
	if end == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return unicode.IsSpace(r) || r == '('
}

// isWordChar mirrors the \w class used for whole-word flag terms.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBoundaryOK reports whether the match spanning [start, end) is not
// embedded in a longer word on either side.
func wordBoundaryOK(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordChar(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordChar(r) {
			return false
		}
	}
	return true
}
