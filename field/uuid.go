package field

import (
	"github.com/google/uuid"

	"github.com/formcast/formcast"
)

// UUID returns a converter between canonical UUID strings and uuid.UUID
// values.
func UUID(opts ...formcast.Option) formcast.Converter {
	return formcast.NewLeaf(formcast.NewOptions(opts...), uuidIn, uuidOut, nil)
}

func uuidIn(value any, st *formcast.State) (any, *formcast.Invalid) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err == nil {
			return id, nil
		}
	}
	return nil, notAUUID(value, st)
}

func uuidOut(value any, st *formcast.State) (any, *formcast.Invalid) {
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil, notAUUID(value, st)
	}
	return id.String(), nil
}

func notAUUID(value any, st *formcast.State) *formcast.Invalid {
	return formcast.NewInvalid(
		formcast.KindConversion,
		"conversion.uuid",
		"must be a valid UUID",
		value, st, nil,
	)
}
