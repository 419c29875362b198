package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decimal is a server-computed aggregate that may be absent. The backend
// sends SQL aggregates either as JSON numbers or as numeric strings.
type Decimal struct {
	Value float64
	Valid bool
}

// Dec returns a present Decimal.
func Dec(v float64) Decimal { return Decimal{Value: v, Valid: true} }

func (d *Decimal) UnmarshalJSON(b []byte) error {
	raw, isNull, err := numericToken(b)
	if err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	if isNull {
		*d = Decimal{}
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	*d = Decimal{Value: v, Valid: true}
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// String renders the value with one decimal, or an empty string when absent.
func (d Decimal) String() string {
	if !d.Valid {
		return ""
	}
	return strconv.FormatFloat(d.Value, 'f', 1, 64)
}

// Count is a non-negative counter. Null decodes as zero.
type Count int64

func (c *Count) UnmarshalJSON(b []byte) error {
	raw, isNull, err := numericToken(b)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	if isNull {
		*c = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	*c = Count(v)
	return nil
}

// numericToken unwraps a JSON number, numeric string or null.
func numericToken(b []byte) (raw string, isNull bool, err error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", true, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", true, nil
		}
		return s, false, nil
	}
	return string(b), false, nil
}
