package features

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// RawInput maps field names to what the caller submitted. Values may be
// numbers, json.Number or strings; the river field takes "Yes" or "No".
type RawInput map[string]any

// Normalize turns raw input into a Vector in schema order. Every field is
// checked independently of any widget clamping upstream; all violations
// are returned together, each as a *ValidationError.
func Normalize(raw RawInput) (Vector, error) {
	var v Vector
	var errs error
	for i, f := range schema {
		val, ok := raw[f.Name]
		if !ok || val == nil {
			errs = multierr.Append(errs, &ValidationError{Field: f.Name, Min: f.Min, Max: f.Max, Reason: ReasonRequired})
			continue
		}
		x, err := f.parse(val)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		v[i] = x
	}
	if errs != nil {
		return Vector{}, errs
	}
	return v, nil
}

func (f Field) parse(val any) (float64, error) {
	if f.Kind == Binary {
		s, _ := val.(string)
		switch s {
		case Yes:
			return 1, nil
		case No:
			return 0, nil
		}
		return 0, &ValidationError{Field: f.Name, Min: f.Min, Max: f.Max, Value: val, Reason: ReasonBadChoice}
	}
	x, ok := toFloat(val)
	if !ok {
		return 0, &ValidationError{Field: f.Name, Min: f.Min, Max: f.Max, Value: val, Reason: ReasonNotNumber}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &ValidationError{Field: f.Name, Min: f.Min, Max: f.Max, Value: val, Reason: ReasonNotFinite}
	}
	if x < f.Min || x > f.Max {
		return 0, &ValidationError{Field: f.Name, Min: f.Min, Max: f.Max, Value: x, Reason: ReasonOutOfRange}
	}
	return x, nil
}

func toFloat(val any) (float64, bool) {
	switch x := val.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}
