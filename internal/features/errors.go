package features

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
)

const (
	ReasonRequired   = "required"
	ReasonNotNumber  = "not a number"
	ReasonNotFinite  = "not a finite number"
	ReasonOutOfRange = "out of range"
	ReasonBadChoice  = "must be Yes or No"
)

// ValidationError reports one submitted field outside its declared domain.
type ValidationError struct {
	Field  string
	Min    float64
	Max    float64
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonRequired:
		return fmt.Sprintf("field %q is required", e.Field)
	case ReasonBadChoice:
		return fmt.Sprintf("field %q: %v %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("field %q: %v %s, expected [%s, %s]", e.Field, e.Value, e.Reason, formatNum(e.Min), formatNum(e.Max))
}

// Message is the text shown next to the offending form control.
func (e *ValidationError) Message() string {
	switch e.Reason {
	case ReasonRequired:
		return "This field is required."
	case ReasonBadChoice:
		return "Choose Yes or No."
	}
	return fmt.Sprintf("Enter a number between %s and %s.", formatNum(e.Min), formatNum(e.Max))
}

// FieldErrors flattens a Normalize error into field name -> message.
// It returns nil when err carries no validation errors.
func FieldErrors(err error) map[string]string {
	var out map[string]string
	for _, e := range multierr.Errors(err) {
		var ve *ValidationError
		if !errors.As(e, &ve) {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[ve.Field] = ve.Message()
	}
	return out
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
