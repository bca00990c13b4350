package model

import (
	"encoding/json"
	"strconv"
)

// Value is an indicator reading that may be undefined, either during an
// indicator's warm-up window or when the formula has no answer (e.g. a
// flat stochastic range). Consumers must check OK before using V;
// an undefined reading is never coerced to zero.
type Value struct {
	V  float64
	OK bool
}

// Defined wraps a concrete reading.
func Defined(v float64) Value { return Value{V: v, OK: true} }

// Undefined returns the zero reading.
func Undefined() Value { return Value{} }

// Format renders the reading with the given precision, or "-" when
// undefined.
func (v Value) Format(prec int) string {
	if !v.OK {
		return "-"
	}
	return strconv.FormatFloat(v.V, 'f', prec, 64)
}

// MarshalJSON encodes an undefined reading as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// UnmarshalJSON decodes null as undefined.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}

// IndicatorSnapshot holds all indicator readings for one trading day.
type IndicatorSnapshot struct {
	RSI        Value `json:"rsi"`
	MACD       Value `json:"macd"`
	MACDSignal Value `json:"macd_signal"`
	BollUpper  Value `json:"bollinger_upper"`
	BollMid    Value `json:"bollinger_mid"`
	BollLower  Value `json:"bollinger_lower"`
	StochK     Value `json:"stochastic_k"`
}

// IndicatorSeries holds per-day indicator readings aligned positionally
// with the price series they were computed from. All slices share the
// series length; entries before each indicator's warm-up are undefined.
type IndicatorSeries struct {
	RSI        []Value
	MACD       []Value
	MACDSignal []Value
	BollUpper  []Value
	BollMid    []Value
	BollLower  []Value
	StochK     []Value
}

// Len returns the number of trading days covered.
func (s *IndicatorSeries) Len() int { return len(s.RSI) }

// At returns the snapshot for day i.
func (s *IndicatorSeries) At(i int) IndicatorSnapshot {
	return IndicatorSnapshot{
		RSI:        s.RSI[i],
		MACD:       s.MACD[i],
		MACDSignal: s.MACDSignal[i],
		BollUpper:  s.BollUpper[i],
		BollMid:    s.BollMid[i],
		BollLower:  s.BollLower[i],
		StochK:     s.StochK[i],
	}
}

// Latest returns the snapshot for the most recent day. The second
// return value is false for an empty series.
func (s *IndicatorSeries) Latest() (IndicatorSnapshot, bool) {
	if s.Len() == 0 {
		return IndicatorSnapshot{}, false
	}
	return s.At(s.Len() - 1), true
}
