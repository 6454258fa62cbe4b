package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat is an optional number that also accepts numeric strings.
// null, "" and anything that does not parse are treated as absent.
type FlexFloat struct {
	Value float64
	Valid bool
}

// Float returns a present FlexFloat.
func Float(v float64) FlexFloat {
	return FlexFloat{Value: v, Valid: true}
}

// Ptr returns nil when the value is absent.
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = FlexFloat{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*f = Float(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		*f = Float(n)
	case bool:
		if v {
			*f = Float(1)
		} else {
			*f = Float(0)
		}
	}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
