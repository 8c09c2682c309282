package flatkey_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formcast/formcast/flatkey"
)

func TestDecode(t *testing.T) {
	t.Run("bare keys are top-level leaves", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "name", Value: "Ada"},
			{Key: "city", Value: "London"},
		})
		assert.Equal(t, map[string]any{"name": "Ada", "city": "London"}, got)
	})

	t.Run("dots descend into nested mappings", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "person.name", Value: "Ada"},
			{Key: "person.address.city", Value: "London"},
		})
		assert.Equal(t, map[string]any{
			"person": map[string]any{
				"name":    "Ada",
				"address": map[string]any{"city": "London"},
			},
		}, got)
	})

	t.Run("integer suffixes build ordered sequences", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "names-1.fname", Value: "John"},
			{Key: "names-2.fname", Value: "Jane"},
		})
		assert.Equal(t, map[string]any{
			"names": []any{
				map[string]any{"fname": "John"},
				map[string]any{"fname": "Jane"},
			},
		}, got)
	})

	t.Run("indices are sort keys and gaps are ignored", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "tags-10", Value: "c"},
			{Key: "tags-0", Value: "a"},
			{Key: "tags-5", Value: "b"},
		})
		assert.Equal(t, map[string]any{"tags": []any{"a", "b", "c"}}, got)
	})

	t.Run("duplicate indices merge with the last scalar winning", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "tags-1", Value: "first"},
			{Key: "tags-1", Value: "second"},
		})
		assert.Equal(t, map[string]any{"tags": []any{"second"}}, got)
	})

	t.Run("duplicate indices deep-merge mappings", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "rows-3.a", Value: "1"},
			{Key: "rows-3.b", Value: "2"},
		})
		assert.Equal(t, map[string]any{
			"rows": []any{map[string]any{"a": "1", "b": "2"}},
		}, got)
	})

	t.Run("a scalar sharing a mapping position survives under the sentinel", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "a", Value: "scalar"},
			{Key: "a.b", Value: "nested"},
		})
		assert.Equal(t, map[string]any{
			"a": map[string]any{
				flatkey.ValueKey: "scalar",
				"b":              "nested",
			},
		}, got)
	})

	t.Run("sentinel relocation is order independent", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "a.b", Value: "nested"},
			{Key: "a", Value: "scalar"},
		})
		assert.Equal(t, map[string]any{
			"a": map[string]any{
				flatkey.ValueKey: "scalar",
				"b":              "nested",
			},
		}, got)
	})

	t.Run("repeated suffixes nest sequences", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "grid-0-0", Value: "a"},
			{Key: "grid-0-1", Value: "b"},
			{Key: "grid-1-0", Value: "c"},
		})
		assert.Equal(t, map[string]any{
			"grid": []any{
				[]any{"a", "b"},
				[]any{"c"},
			},
		}, got)
	})

	t.Run("a non-numeric suffix is part of the literal name", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "file-name", Value: "x"},
		})
		assert.Equal(t, map[string]any{"file-name": "x"}, got)
	})

	t.Run("named children win over indexed ones at the same node", func(t *testing.T) {
		got := flatkey.Decode([]flatkey.Pair{
			{Key: "mixed.a", Value: "named"},
			{Key: "mixed-1", Value: "indexed"},
		})
		assert.Equal(t, map[string]any{
			"mixed": map[string]any{
				"a": "named",
				"1": "indexed",
			},
		}, got)
	})

	t.Run("empty input decodes to an empty mapping", func(t *testing.T) {
		assert.Equal(t, map[string]any{}, flatkey.Decode(nil))
	})
}

func TestEncode(t *testing.T) {
	t.Run("emits dotted keys for nested mappings", func(t *testing.T) {
		got := flatkey.Encode(map[string]any{
			"person": map[string]any{"name": "Ada"},
		})
		assert.Equal(t, []flatkey.Pair{{Key: "person.name", Value: "Ada"}}, got)
	})

	t.Run("synthesizes indices from final sequence positions", func(t *testing.T) {
		got := flatkey.Encode(map[string]any{
			"names": []any{
				map[string]any{"fname": "John"},
				map[string]any{"fname": "Jane"},
			},
		})
		assert.Equal(t, []flatkey.Pair{
			{Key: "names-0.fname", Value: "John"},
			{Key: "names-1.fname", Value: "Jane"},
		}, got)
	})

	t.Run("re-emits the sentinel scalar as the bare key", func(t *testing.T) {
		got := flatkey.Encode(map[string]any{
			"a": map[string]any{
				flatkey.ValueKey: "scalar",
				"b":              "nested",
			},
		})
		assert.Equal(t, []flatkey.Pair{
			{Key: "a", Value: "scalar"},
			{Key: "a.b", Value: "nested"},
		}, got)
	})

	t.Run("stringifies non-string leaves", func(t *testing.T) {
		got := flatkey.Encode(map[string]any{"age": 36})
		assert.Equal(t, []flatkey.Pair{{Key: "age", Value: "36"}}, got)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Run("encode of decode reproduces an equivalent flat mapping", func(t *testing.T) {
		pairs := []flatkey.Pair{
			{Key: "name", Value: "Ada"},
			{Key: "addresses-1.street", Value: "Main St"},
			{Key: "addresses-1.city", Value: "Springfield"},
			{Key: "addresses-2.street", Value: "Oak Ave"},
			{Key: "tags-0", Value: "x"},
			{Key: "tags-1", Value: "y"},
		}
		nested := flatkey.Decode(pairs)
		flat := flatkey.Encode(nested)
		// Indices are re-synthesized from position, so compare after a
		// second decode.
		assert.Equal(t, nested, flatkey.Decode(flat))
	})
}

func TestDecodeValues(t *testing.T) {
	t.Run("visits keys deterministically", func(t *testing.T) {
		values := url.Values{
			"b.x": {"2"},
			"a":   {"1"},
		}
		got := flatkey.DecodeValues(values)
		assert.Equal(t, map[string]any{
			"a": "1",
			"b": map[string]any{"x": "2"},
		}, got)
	})

	t.Run("repeated keys become a sequence", func(t *testing.T) {
		values := url.Values{"tags": {"go", "web"}}
		got := flatkey.DecodeValues(values)
		require.Contains(t, got, "tags")
		assert.Equal(t, []any{"go", "web"}, got["tags"])
	})
}
