package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number, boolean or null and keeps it as text.
// Values that are falsy in a JSON sense (null, false, 0, "") decode to "" and
// are treated as absent. Objects and arrays are rejected.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty value")
	}

	switch b[0] {
	case 'n':
		*s = ""
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	case 't':
		*s = "true"
	case 'f':
		*s = ""
	case '{', '[':
		return fmt.Errorf("expected a string, number or boolean, got %s", kindOf(b[0]))
	default:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("invalid number %s", b)
		}
		if f == 0 {
			*s = ""
			return nil
		}
		*s = FlexString(formatNumber(f))
	}
	return nil
}

// formatNumber renders f the way JavaScript's Number#toString does:
// plain decimal in [1e-6, 1e21), exponent form outside it.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// String returns the text value.
func (s FlexString) String() string {
	return string(s)
}

func kindOf(c byte) string {
	if c == '{' {
		return "object"
	}
	return "array"
}
