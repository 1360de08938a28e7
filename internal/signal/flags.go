package signal

import (
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	stopLossRe = regexp.MustCompile(`SL\s?@\s?([0-9]{0,3}\.[0-9]{1,2})`)
	riskRe     = regexp.MustCompile(`(?i)risky|daytrade|small\sposition|light\sposition`)
	reduceRe   = regexp.MustCompile(`(?i)(closing|trim)\s([0-9]{1,3})%`)
)

// ParseStopLoss extracts a recommended stop-loss price from signal
// comments, e.g. "(SL @.35)". The token "SL" is case-sensitive and the
// price must be terminated by end of text, whitespace, or a close
// parenthesis. Returns the price string, or "" when no stop-loss is
// present.
func ParseStopLoss(comments string) string {
	for _, c := range stopLossRe.FindAllStringSubmatchIndex(comments, -1) {
		if stopLossPriceBoundaryOK(comments, c[1]) {
			return comments[c[2]:c[3]]
		}
	}
	return ""
}

func stopLossPriceBoundaryOK(s string, end int) bool {
	if end == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return unicode.IsSpace(r) || r == ')'
}

// ParseRisk reports whether signal comments carry a marker term for an
// elevated-risk entry: "risky", "daytrade", "small position", or
// "light position", case-insensitive. Terms embedded in longer words do
// not count ("brisky", "light positions").
func ParseRisk(comments string) bool {
	for _, c := range riskRe.FindAllStringIndex(comments, -1) {
		if wordBoundaryOK(comments, c[0], c[1]) {
			return true
		}
	}
	return false
}

// ParseReduce extracts a position-reduction percentage from signal
// comments, e.g. "(Closing 50%)" or "trim 25%". The keyword is
// case-insensitive, followed by exactly one whitespace character and a
// 1-3 digit percentage. Returns 0 when no reduction is requested.
func ParseReduce(comments string) int {
	for _, c := range reduceRe.FindAllStringSubmatchIndex(comments, -1) {
		if !wordBoundaryOK(comments, c[0], c[1]) {
			continue
		}
		// 1-3 digits, cannot fail
		percent, err := strconv.Atoi(comments[c[4]:c[5]])
		if err != nil {
			return 0
		}
		return percent
	}
	return 0
}
