package field

import (
	"fmt"

	"github.com/formcast/formcast"
)

// String returns a converter that coerces input to a string. Non-string
// scalars are stringified; the outbound direction is the identity.
func String(opts ...formcast.Option) formcast.Converter {
	return formcast.NewLeaf(formcast.NewOptions(opts...), stringIn, nil, nil)
}

// StringLen returns a string converter that additionally bounds the length
// in bytes. A max of 0 means unbounded.
func StringLen(min, max int, opts ...formcast.Option) formcast.Converter {
	validate := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		s, ok := value.(string)
		if !ok {
			return nil, notAString(value, st)
		}
		if len(s) < min {
			return nil, formcast.NewInvalid(
				formcast.KindValidation,
				"validation.min_length",
				"must be at least %{min} characters long",
				value, st,
				formcast.Args{"min": min},
			)
		}
		if max > 0 && len(s) > max {
			return nil, formcast.NewInvalid(
				formcast.KindValidation,
				"validation.max_length",
				"must be at most %{max} characters long",
				value, st,
				formcast.Args{"max": max},
			)
		}
		return s, nil
	}
	return formcast.NewLeaf(formcast.NewOptions(opts...), stringIn, nil, validate)
}

func stringIn(value any, st *formcast.State) (any, *formcast.Invalid) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []any, map[string]any:
		return nil, notAString(value, st)
	default:
		return fmt.Sprint(v), nil
	}
}

func notAString(value any, st *formcast.State) *formcast.Invalid {
	return formcast.NewInvalid(
		formcast.KindConversion,
		"conversion.string",
		"must be a string",
		value, st, nil,
	)
}
