// Package money represents monetary amounts as an integer number of
// cents. Amounts never pass through binary floating point: the JSON
// codec parses and formats the decimal text digit by digit, so values
// like 0.10 survive a round trip exactly.
package money

import (
	"errors"
	"fmt"
	"strings"
)

// Money is an amount in cents.
type Money int64

// ErrInvalidAmount is returned when a decimal string cannot be parsed
// as a monetary amount.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// maxSafeCents bounds parsed amounts well below int64 overflow.
const maxSafeCents = int64(1) << 62

// Parse converts a decimal string such as "1200.00" or "89,9" into
// cents. It accepts an optional sign, either '.' or ',' as the decimal
// separator, and at most two fraction digits; more precision than a
// cent is rejected rather than rounded.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexAny(s, ".,"); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.ContainsAny(fracPart, ".,") {
			return 0, ErrInvalidAmount
		}
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if len(fracPart) > 2 {
		return 0, ErrInvalidAmount
	}

	cents := int64(0)
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
		cents = cents*10 + int64(r-'0')
		if cents > maxSafeCents/100 {
			return 0, ErrInvalidAmount
		}
	}
	cents *= 100

	switch len(fracPart) {
	case 0:
	case 1:
		if fracPart[0] < '0' || fracPart[0] > '9' {
			return 0, ErrInvalidAmount
		}
		cents += int64(fracPart[0]-'0') * 10
	case 2:
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, ErrInvalidAmount
			}
		}
		cents += int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
	}

	if negative {
		cents = -cents
	}
	return Money(cents), nil
}

// Cents returns the amount as a raw cent count.
func (m Money) Cents() int64 { return int64(m) }

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON writes the amount as a plain two-decimal JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
