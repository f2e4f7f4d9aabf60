package acl

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// The quote service is loosely typed: identifiers arrive as numbers or
// strings, flags as booleans, 0/1 or "Yes"/"No", and amounts as numbers,
// numeric strings or garbage. These scalars absorb that variance so a single
// odd field never fails the whole list.

var jsonNull = []byte("null")

// flexString accepts a JSON string or number. Anything else is absent.
type flexString struct {
	Value string
	Set   bool
}

func (f *flexString) UnmarshalJSON(raw []byte) error {
	*f = flexString{}
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexString{Value: s, Set: true}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*f = flexString{Value: string(raw), Set: true}
	}

	return nil
}

// Ptr returns nil for absent or empty values.
func (f flexString) Ptr() *string {
	if !f.Set || f.Value == "" {
		return nil
	}

	v := f.Value

	return &v
}

// flexBool treats true, non-zero numbers and "true"/"yes"/"y"/"1" as true.
type flexBool bool

func (f *flexBool) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	*f = false

	switch {
	case len(raw) == 0 || bytes.Equal(raw, jsonNull):
		return nil
	case bytes.Equal(raw, []byte("true")):
		*f = true
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "1":
			*f = true
		}
	default:
		if n, err := strconv.ParseFloat(string(raw), 64); err == nil && n != 0 {
			*f = true
		}
	}

	return nil
}

// flexInt accepts a JSON number or numeric string; fractions are truncated.
// Non-finite values and values outside the int32 range are absent.
type flexInt struct {
	Value int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	*f = flexInt{}

	var s flexString
	if err := s.UnmarshalJSON(raw); err != nil {
		return err
	}

	if !s.Set {
		return nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil
	}

	*f = flexInt{Value: int(n), Set: true}

	return nil
}

// Ptr returns nil when the value was absent or non-numeric.
func (f flexInt) Ptr() *int {
	if !f.Set {
		return nil
	}

	v := f.Value

	return &v
}

// flexAmount keeps the exact decimal text of numbers so large rupee values
// are not rounded through float64. Out-of-range values are invalid.
type flexAmount struct {
	domain.Amount
}

func (f *flexAmount) UnmarshalJSON(raw []byte) error {
	f.Amount = domain.Amount{}

	var s flexString
	if err := s.UnmarshalJSON(raw); err != nil {
		return err
	}

	if !s.Set {
		return nil
	}

	f.Amount = domain.ParseAmount(s.Value)

	return nil
}
