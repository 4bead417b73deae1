// Package grading decides whether a learner's answer is correct and writes
// the feedback shown afterwards.
package grading

import (
	"math"
	"strconv"
	"strings"
)

// Tolerance is the largest absolute difference, exclusive, at which an
// answer still counts as correct.
const Tolerance = 0.001

// ParseAnswer converts raw learner input to a number. It accepts decimals
// ("0.75", "-3", "1,200"), fractions ("3/4"), mixed numbers ("1 1/2"), and
// tolerates a leading "$" or a trailing "%". It reports false for anything
// else, including non-finite values.
func ParseAnswer(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, false
	}

	var (
		f   float64
		err error
	)
	switch {
	case strings.Contains(s, "/"):
		f, err = parseMixed(s)
	default:
		f, err = strconv.ParseFloat(stripThousands(s), 64)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsCorrect reports whether raw is within Tolerance of correct.
// Unparseable input is incorrect.
func IsCorrect(raw string, correct float64) bool {
	f, ok := ParseAnswer(raw)
	if !ok {
		return false
	}
	return math.Abs(f-correct) < Tolerance
}

// FormatNumber renders f without trailing zeros, e.g. 0.75 or 12.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseMixed parses "a/b" or "w a/b" into a float.
func parseMixed(s string) (float64, error) {
	if num, den, err := parseFraction(s); err == nil {
		return ratio(num, den)
	}

	wholeStr, fracStr, ok := strings.Cut(s, " ")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	whole, err := strconv.ParseInt(wholeStr, 10, 64)
	if err != nil {
		return 0, err
	}
	num, den, err := parseFraction(strings.TrimSpace(fracStr))
	if err != nil {
		return 0, err
	}
	if num < 0 {
		return 0, strconv.ErrSyntax
	}
	f, err := ratio(num, den)
	if err != nil {
		return 0, err
	}
	if strings.HasPrefix(wholeStr, "-") {
		return float64(whole) - f, nil
	}
	return float64(whole) + f, nil
}

func ratio(num, den int64) (float64, error) {
	if den == 0 {
		return 0, strconv.ErrRange
	}
	return float64(num) / float64(den), nil
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	numStr, denStr, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, strconv.ErrSyntax
	}
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if den < 0 {
		num, den = -num, -den
	}
	return num, den, nil
}

// stripThousands removes "," separators from digit groups like "1,200".
// Strings with misplaced commas are returned unchanged and fail to parse.
func stripThousands(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	intPart, _, _ := strings.Cut(strings.TrimLeft(s, "+-"), ".")
	groups := strings.Split(intPart, ",")
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return s
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return s
		}
	}
	return strings.ReplaceAll(s, ",", "")
}
