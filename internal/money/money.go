package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// ToMinor converts a decimal amount (like 12.34) to integer minor units.
// The API stores and returns minor units; this is only for parsing
// user-entered decimal values such as query filters.
func ToMinor(decimal float64) (int64, error) {
	if math.IsNaN(decimal) || math.IsInf(decimal, 0) {
		return 0, ErrInvalidAmount
	}
	if decimal < 0 {
		return 0, ErrInvalidAmount
	}
	// int64 max ~9e18 => decimal max ~9e16
	if decimal > 9e16 {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	minor := int64(math.Round(decimal * 100.0))
	if minor < 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

// ParseMinor parses an amount string that is either plain minor units
// ("1234") or a decimal ("12.34") into minor units.
func ParseMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if !strings.Contains(s, ".") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return 0, ErrInvalidAmount
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return ToMinor(f)
}

// Format renders minor units as a decimal string without going through float.
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
