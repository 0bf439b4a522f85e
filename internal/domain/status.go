package domain

import (
	"fmt"
	"strings"
)

// HomeStatus is the housing state of a scenario in a given month.
//
// Rent is the initial state, Buy is held only for the month a purchase is
// recognised and Mortgage is absorbing.
type HomeStatus int

const (
	StatusRent HomeStatus = iota
	StatusBuy
	StatusMortgage
)

// String returns the label used in tables and reports
func (s HomeStatus) String() string {
	switch s {
	case StatusRent:
		return "Rent"
	case StatusBuy:
		return "Buy"
	case StatusMortgage:
		return "Mortgage"
	default:
		return fmt.Sprintf("HomeStatus(%d)", int(s))
	}
}

// Owned reports whether the household holds the property in this state
func (s HomeStatus) Owned() bool {
	return s == StatusBuy || s == StatusMortgage
}

// Valid reports whether s is one of the declared states
func (s HomeStatus) Valid() bool {
	return s >= StatusRent && s <= StatusMortgage
}

// ParseHomeStatus parses a status label, ignoring case
func ParseHomeStatus(label string) (HomeStatus, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "rent":
		return StatusRent, nil
	case "buy":
		return StatusBuy, nil
	case "mortgage":
		return StatusMortgage, nil
	default:
		return StatusRent, fmt.Errorf("unknown home status %q", label)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s HomeStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *HomeStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseHomeStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
