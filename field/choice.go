package field

import (
	"strings"

	"github.com/formcast/formcast"
)

// Choice returns a converter that accepts only values from the allowed set.
// Membership is checked in both directions, so a stale internal value is
// caught on re-serialization too.
func Choice(allowed []string, opts ...formcast.Option) formcast.Converter {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	validate := func(value any, st *formcast.State) (any, *formcast.Invalid) {
		s, ok := value.(string)
		if ok {
			if _, member := set[s]; member {
				return s, nil
			}
		}
		return nil, formcast.NewInvalid(
			formcast.KindValidation,
			"validation.choice",
			"must be one of: %{choices}",
			value, st,
			formcast.Args{"choices": strings.Join(allowed, ", ")},
		)
	}

	return formcast.NewLeaf(formcast.NewOptions(opts...), stringIn, nil, validate)
}
