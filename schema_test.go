package formcast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formcast/formcast"
	"github.com/formcast/formcast/field"
)

func TestSchemaConvertIn(t *testing.T) {
	t.Run("converts every declared field", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("name", field.String()),
			formcast.Field("age", field.Int()),
		)
		v, inv := schema.ConvertIn(map[string]any{"name": "Ada", "age": "36"}, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{"name": "Ada", "age": 36}, v)
	})

	t.Run("collects every failing field in one pass", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("a", field.Int()),
			formcast.Field("b", field.Int()),
			formcast.Field("c", field.Int()),
		)
		_, inv := schema.ConvertIn(map[string]any{"a": "x", "b": "2", "c": "y"}, nil)
		require.NotNil(t, inv)
		assert.Equal(t, formcast.KindAggregateField, inv.Kind)
		assert.Contains(t, inv.ErrorDict, "a")
		assert.Contains(t, inv.ErrorDict, "c")
		assert.NotContains(t, inv.ErrorDict, "b")
		assert.Len(t, inv.ErrorDict, 2)
	})

	t.Run("missing field without if_missing is an error", func(t *testing.T) {
		schema := formcast.NewSchema(formcast.Field("name", field.String()))
		_, inv := schema.ConvertIn(map[string]any{}, nil)
		require.NotNil(t, inv)
		require.Contains(t, inv.ErrorDict, "name")
		assert.Equal(t, formcast.KindEmpty, inv.ErrorDict["name"].Kind)
	})

	t.Run("if_missing substitutes without invoking the converter", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("newsletter", field.Bool(formcast.IfMissing(false))),
		)
		v, inv := schema.ConvertIn(map[string]any{}, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{"newsletter": false}, v)
	})

	t.Run("partial skips absent fields", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("name", field.String()),
			formcast.Field("age", field.Int()),
			formcast.Partial(),
		)
		v, inv := schema.ConvertIn(map[string]any{"age": "30"}, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{"age": 30}, v)
	})

	t.Run("rejects a non-mapping value", func(t *testing.T) {
		schema := formcast.NewSchema(formcast.Field("a", field.String()))
		_, inv := schema.ConvertIn("not a map", nil)
		require.NotNil(t, inv)
		assert.Equal(t, formcast.KindConversion, inv.Kind)
	})

	t.Run("nil input counts as an empty mapping", func(t *testing.T) {
		schema := formcast.NewSchema(formcast.Field("a", field.String()), formcast.Partial())
		v, inv := schema.ConvertIn(nil, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{}, v)
	})
}

func TestSchemaExtraKeys(t *testing.T) {
	input := map[string]any{"name": "Ada", "stray": "x"}

	t.Run("rejected by default", func(t *testing.T) {
		schema := formcast.NewSchema(formcast.Field("name", field.String()))
		_, inv := schema.ConvertIn(input, nil)
		require.NotNil(t, inv)
		require.Contains(t, inv.ErrorDict, "stray")
		assert.Equal(t, formcast.KindValidation, inv.ErrorDict["stray"].Kind)
	})

	t.Run("allow_extra passes them through", func(t *testing.T) {
		schema := formcast.NewSchema(formcast.Field("name", field.String()), formcast.AllowExtra())
		v, inv := schema.ConvertIn(input, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{"name": "Ada", "stray": "x"}, v)
	})

	t.Run("filter_extra drops them", func(t *testing.T) {
		schema := formcast.NewSchema(formcast.Field("name", field.String()), formcast.FilterExtra())
		v, inv := schema.ConvertIn(input, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{"name": "Ada"}, v)
	})
}

func TestSchemaPreValidators(t *testing.T) {
	failPre := formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
		return nil, formcast.NewInvalid(formcast.KindValidation, "validation.pre", "pre failed", v, st, nil)
	}, nil)

	t.Run("failure aborts the pass by default", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("a", field.Int()),
			formcast.Pre(failPre),
		)
		_, inv := schema.ConvertIn(map[string]any{"a": "also bad"}, nil)
		require.NotNil(t, inv)
		assert.Equal(t, "pre failed", inv.Message)
		assert.Nil(t, inv.ErrorDict)
	})

	t.Run("continue_on_pre_failure merges and proceeds", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("a", field.Int()),
			formcast.Pre(failPre),
			formcast.ContinueOnPreFailure(),
		)
		_, inv := schema.ConvertIn(map[string]any{"a": "bad"}, nil)
		require.NotNil(t, inv)
		assert.Contains(t, inv.ErrorDict, formcast.SchemaErrorKey)
		assert.Contains(t, inv.ErrorDict, "a")
	})

	t.Run("pre validators refine the input mapping", func(t *testing.T) {
		lowerKeys := formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
			in := v.(map[string]any)
			out := map[string]any{}
			for k, val := range in {
				out[k] = val
			}
			out["added"] = "1"
			return out, nil
		}, nil)
		schema := formcast.NewSchema(
			formcast.Field("added", field.Int()),
			formcast.Pre(lowerKeys),
		)
		v, inv := schema.ConvertIn(map[string]any{}, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{"added": 1}, v)
	})
}

// matchFields reports a mismatch on the confirm field when two converted
// fields differ.
func matchFields(name, confirm string) formcast.Converter {
	return formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
		m, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		if m[name] != m[confirm] {
			return nil, formcast.FieldErrors(v, st, map[string]string{confirm: "does not match " + name})
		}
		return v, nil
	}, nil)
}

func TestSchemaChainedValidators(t *testing.T) {
	newSchema := func(opts ...formcast.SchemaOption) *formcast.Schema {
		base := []formcast.SchemaOption{
			formcast.Field("password", field.String()),
			formcast.Field("password_confirm", field.String()),
			formcast.Field("email", field.String()),
			formcast.Field("email_confirm", field.String()),
			formcast.Chained(
				matchFields("password", "password_confirm"),
				matchFields("email", "email_confirm"),
			),
		}
		return formcast.NewSchema(append(base, opts...)...)
	}

	t.Run("all chained rules run and both failures surface", func(t *testing.T) {
		_, inv := newSchema().ConvertIn(map[string]any{
			"password":         "a",
			"password_confirm": "b",
			"email":            "x@example.com",
			"email_confirm":    "y@example.com",
		}, nil)
		require.NotNil(t, inv)
		assert.Contains(t, inv.ErrorDict, "password_confirm")
		assert.Contains(t, inv.ErrorDict, "email_confirm")
	})

	t.Run("chained messages accumulate on an already failing field", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("a", field.String()),
			formcast.Chained(
				formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
					return nil, formcast.FieldErrors(v, st, map[string]string{"a": "first"})
				}, nil),
				formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
					return nil, formcast.FieldErrors(v, st, map[string]string{"a": "second"})
				}, nil),
			),
		)
		_, inv := schema.ConvertIn(map[string]any{"a": "v"}, nil)
		require.NotNil(t, inv)
		assert.Equal(t, "first; second", inv.ErrorDict["a"].Message)
	})

	t.Run("chained stage is skipped on field failures by default", func(t *testing.T) {
		var ran bool
		schema := formcast.NewSchema(
			formcast.Field("n", field.Int()),
			formcast.Chained(formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
				ran = true
				return v, nil
			}, nil)),
		)
		_, inv := schema.ConvertIn(map[string]any{"n": "bad"}, nil)
		require.NotNil(t, inv)
		assert.False(t, ran)
	})

	t.Run("chain_on_failure runs the chained stage regardless", func(t *testing.T) {
		var ran bool
		schema := formcast.NewSchema(
			formcast.Field("n", field.Int()),
			formcast.ChainOnFailure(),
			formcast.Chained(formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
				ran = true
				return v, nil
			}, nil)),
		)
		_, inv := schema.ConvertIn(map[string]any{"n": "bad"}, nil)
		require.NotNil(t, inv)
		assert.True(t, ran)
	})

	t.Run("dict-less chained failure lands under the schema error key", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("a", field.String()),
			formcast.Chained(formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
				return nil, formcast.NewInvalid(formcast.KindValidation, "validation.whole", "the form is inconsistent", v, st, nil)
			}, nil)),
		)
		_, inv := schema.ConvertIn(map[string]any{"a": "v"}, nil)
		require.NotNil(t, inv)
		require.Contains(t, inv.ErrorDict, formcast.SchemaErrorKey)
		assert.Equal(t, "the form is inconsistent", inv.ErrorDict[formcast.SchemaErrorKey].Message)
	})
}

func TestSchemaStateExtension(t *testing.T) {
	t.Run("children see their key and siblings, not each other's", func(t *testing.T) {
		seen := map[string]map[string]any{}
		spy := formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
			key, ok := st.Key()
			if ok {
				seen[key] = st.Siblings()
			}
			return v, nil
		}, nil)

		input := map[string]any{"a": "1", "b": "2"}
		schema := formcast.NewSchema(
			formcast.Field("a", spy),
			formcast.Field("b", spy),
		)
		outer := &formcast.State{Data: "payload"}
		_, inv := schema.ConvertIn(input, outer)
		require.Nil(t, inv)

		assert.Equal(t, input, seen["a"])
		assert.Equal(t, input, seen["b"])

		// The caller's state is never mutated in place.
		_, ok := outer.Key()
		assert.False(t, ok)
		assert.Equal(t, "payload", outer.Data)
	})

	t.Run("declaration order drives iteration order", func(t *testing.T) {
		var order []string
		spy := formcast.Func(func(v any, st *formcast.State) (any, *formcast.Invalid) {
			key, _ := st.Key()
			order = append(order, key)
			return v, nil
		}, nil)
		schema := formcast.NewSchema(
			formcast.Field("z", spy),
			formcast.Field("a", spy),
			formcast.Field("m", spy),
		)
		_, inv := schema.ConvertIn(map[string]any{"z": "1", "a": "2", "m": "3"}, nil)
		require.Nil(t, inv)
		assert.Equal(t, []string{"z", "a", "m"}, order)
	})
}

func TestSchemaConvertOut(t *testing.T) {
	t.Run("re-serializes every field", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("name", field.String()),
			formcast.Field("age", field.Int()),
		)
		v, inv := schema.ConvertOut(map[string]any{"name": "Ada", "age": 36}, nil)
		require.Nil(t, inv)
		assert.Equal(t, map[string]any{"name": "Ada", "age": "36"}, v)
	})

	t.Run("round trips a valid mapping", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("age", field.Int()),
			formcast.Field("score", field.Float()),
		)
		external := map[string]any{"age": "36", "score": "4.5"}
		internal, inv := schema.ConvertIn(external, nil)
		require.Nil(t, inv)
		back, inv := schema.ConvertOut(internal, nil)
		require.Nil(t, inv)
		assert.Equal(t, external, back)
	})

	t.Run("collects outbound failures exhaustively", func(t *testing.T) {
		schema := formcast.NewSchema(
			formcast.Field("a", field.Int()),
			formcast.Field("b", field.Int()),
		)
		_, inv := schema.ConvertOut(map[string]any{"a": "wrong type", "b": "also wrong"}, nil)
		require.NotNil(t, inv)
		assert.Len(t, inv.ErrorDict, 2)
	})
}

func TestNestedSchema(t *testing.T) {
	t.Run("schemas nest inside schemas and foreach", func(t *testing.T) {
		address := formcast.NewSchema(
			formcast.Field("street", field.String(formcast.NotEmpty())),
			formcast.Field("city", field.String(formcast.NotEmpty())),
		)
		person := formcast.NewSchema(
			formcast.Field("name", field.String(formcast.NotEmpty())),
			formcast.Field("addresses", formcast.NewForEach(address)),
		)

		_, inv := person.ConvertIn(map[string]any{
			"name": "Ada",
			"addresses": []any{
				map[string]any{"street": "Main St", "city": "Springfield"},
				map[string]any{"street": "", "city": "Shelbyville"},
			},
		}, nil)
		require.NotNil(t, inv)

		report := inv.Unpack().(map[string]any)
		addresses := report["addresses"].([]any)
		require.Len(t, addresses, 2)
		assert.Nil(t, addresses[0])
		second := addresses[1].(map[string]any)
		assert.Contains(t, second, "street")
	})
}
