package field

import (
	"time"

	"github.com/formcast/formcast"
)

// Time returns a converter between strings in the given layout and
// time.Time values. The outbound direction formats with the same layout, so
// canonical values round-trip.
func Time(layout string, opts ...formcast.Option) formcast.Converter {
	in := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := time.Parse(layout, v)
			if err == nil {
				return t, nil
			}
		}
		return nil, badTime(layout, value, st)
	}

	out := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		t, ok := value.(time.Time)
		if !ok {
			return nil, badTime(layout, value, st)
		}
		return t.Format(layout), nil
	}

	return formcast.NewLeaf(formcast.NewOptions(opts...), in, out, nil)
}

func badTime(layout string, value any, st *formcast.State) *formcast.Invalid {
	return formcast.NewInvalid(
		formcast.KindConversion,
		"conversion.time",
		"must be a date/time in the format %{layout}",
		value, st,
		formcast.Args{"layout": layout},
	)
}
