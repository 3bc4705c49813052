package pvgis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Response is the subset of the PVcalc JSON answer solarcalc reads.
type Response struct {
	Outputs Outputs         `json:"outputs"`
	Inputs  json.RawMessage `json:"inputs,omitempty"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}

// Outputs contains the per mounting type results.
type Outputs struct {
	Totals  TotalsByMounting          `json:"totals"`
	Monthly map[string][]MonthlyEntry `json:"monthly"`
}

// Totals are the yearly aggregates for one mounting type. Pointers
// distinguish an absent value from zero.
type Totals struct {
	EnergyDaily   *float64 `json:"E_d,omitempty"`
	EnergyMonthly *float64 `json:"E_m,omitempty"`
	EnergyYearly  *float64 `json:"E_y,omitempty"`
	IrradYearly   *float64 `json:"H(i)_y,omitempty"`
	StdDevYearly  *float64 `json:"SD_y,omitempty"`
	LossTotal     *float64 `json:"l_total,omitempty"`
}

// MonthlyEntry is one month of a mounting type's breakdown.
type MonthlyEntry struct {
	Month        int      `json:"month"`
	EnergyDaily  *float64 `json:"E_d,omitempty"`
	EnergyMonth  *float64 `json:"E_m,omitempty"`
	IrradMonthly *float64 `json:"H(i)_m,omitempty"`
}

// TotalsByMounting maps mounting type to totals, remembering key order.
// A key whose value is JSON null maps to a nil *Totals.
type TotalsByMounting struct {
	keys   []string
	values map[string]*Totals
}

// NewTotalsByMounting builds an ordered mapping, mostly for tests.
func NewTotalsByMounting(keys []string, values map[string]*Totals) TotalsByMounting {
	return TotalsByMounting{keys: keys, values: values}
}

// Keys returns mounting types in response order.
func (t TotalsByMounting) Keys() []string {
	return t.keys
}

// Get returns the totals for key, or nil.
func (t TotalsByMounting) Get(key string) *Totals {
	return t.values[key]
}

// First returns the first mounting type and its totals.
func (t TotalsByMounting) First() (string, *Totals, bool) {
	if len(t.keys) == 0 {
		return "", nil, false
	}
	key := t.keys[0]
	return key, t.values[key], true
}

var errTotalsNotObject = errors.New("totals must be a JSON object")

// UnmarshalJSON decodes an object while keeping its key order.
func (t *TotalsByMounting) UnmarshalJSON(data []byte) error {
	t.keys = nil
	t.values = map[string]*Totals{}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errTotalsNotObject
	}

	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return keyErr
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected totals key %v", keyTok)
		}

		var value *Totals
		if err = dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding totals %q: %w", key, err)
		}
		if _, seen := t.values[key]; !seen {
			t.keys = append(t.keys, key)
		}
		t.values[key] = value
	}

	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the mapping in key order.
func (t TotalsByMounting) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(t.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a PVcalc response body.
func Decode(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding PVGIS response: %w", err)
	}
	return &resp, nil
}
