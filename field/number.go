package field

import (
	"strconv"

	"github.com/formcast/formcast"
)

// Int returns a converter between decimal strings and int values.
func Int(opts ...formcast.Option) formcast.Converter {
	return formcast.NewLeaf(formcast.NewOptions(opts...), intIn, intOut, nil)
}

// IntRange returns an int converter that additionally bounds the value to
// the inclusive [min, max] interval.
func IntRange(min, max int, opts ...formcast.Option) formcast.Converter {
	validate := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		n, ok := value.(int)
		if !ok {
			return nil, notAnInteger(value, st)
		}
		if n < min || n > max {
			return nil, formcast.NewInvalid(
				formcast.KindValidation,
				"validation.int_range",
				"must be between %{min} and %{max}",
				value, st,
				formcast.Args{"min": min, "max": max},
			)
		}
		return n, nil
	}
	return formcast.NewLeaf(formcast.NewOptions(opts...), intIn, intOut, validate)
}

// Float returns a converter between decimal strings and float64 values.
func Float(opts ...formcast.Option) formcast.Converter {
	return formcast.NewLeaf(formcast.NewOptions(opts...), floatIn, floatOut, nil)
}

// FloatRange returns a float converter bounded to the inclusive [min, max]
// interval.
func FloatRange(min, max float64, opts ...formcast.Option) formcast.Converter {
	validate := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		f, ok := value.(float64)
		if !ok {
			return nil, notANumber(value, st)
		}
		if f < min || f > max {
			return nil, formcast.NewInvalid(
				formcast.KindValidation,
				"validation.float_range",
				"must be between %{min} and %{max}",
				value, st,
				formcast.Args{"min": min, "max": max},
			)
		}
		return f, nil
	}
	return formcast.NewLeaf(formcast.NewOptions(opts...), floatIn, floatOut, validate)
}

func intIn(value any, st *formcast.State) (any, *formcast.Invalid) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers arrive as float64; only integral ones qualify.
		if v == float64(int(v)) {
			return int(v), nil
		}
		return nil, notAnInteger(value, st)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, notAnInteger(value, st)
		}
		return n, nil
	default:
		return nil, notAnInteger(value, st)
	}
}

func intOut(value any, st *formcast.State) (any, *formcast.Invalid) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return nil, notAnInteger(value, st)
	}
}

func floatIn(value any, st *formcast.State) (any, *formcast.Invalid) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, notANumber(value, st)
		}
		return f, nil
	default:
		return nil, notANumber(value, st)
	}
}

func floatOut(value any, st *formcast.State) (any, *formcast.Invalid) {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return nil, notANumber(value, st)
	}
}

func notAnInteger(value any, st *formcast.State) *formcast.Invalid {
	return formcast.NewInvalid(
		formcast.KindConversion,
		"conversion.integer",
		"must be an integer value",
		value, st, nil,
	)
}

func notANumber(value any, st *formcast.State) *formcast.Invalid {
	return formcast.NewInvalid(
		formcast.KindConversion,
		"conversion.number",
		"must be a number",
		value, st, nil,
	)
}
