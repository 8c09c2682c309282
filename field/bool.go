package field

import (
	"strings"

	"github.com/formcast/formcast"
)

// Bool returns a converter between the usual form encodings of a boolean
// ("true"/"false", "yes"/"no", "on"/"off", "1"/"0") and bool values. Note
// that an absent checkbox never reaches the converter: pair Bool with
// IfMissing(false) in a Schema to treat absence as false.
func Bool(opts ...formcast.Option) formcast.Converter {
	return formcast.NewLeaf(formcast.NewOptions(opts...), boolIn, boolOut, nil)
}

func boolIn(value any, st *formcast.State) (any, *formcast.Invalid) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "t", "yes", "y", "on", "1":
			return true, nil
		case "false", "f", "no", "n", "off", "0":
			return false, nil
		}
	}
	return nil, formcast.NewInvalid(
		formcast.KindConversion,
		"conversion.boolean",
		"must be a boolean value",
		value, st, nil,
	)
}

func boolOut(value any, st *formcast.State) (any, *formcast.Invalid) {
	b, ok := value.(bool)
	if !ok {
		return nil, formcast.NewInvalid(
			formcast.KindConversion,
			"conversion.boolean",
			"must be a boolean value",
			value, st, nil,
		)
	}
	if b {
		return "true", nil
	}
	return "false", nil
}
