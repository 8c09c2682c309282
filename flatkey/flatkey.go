// Package flatkey implements the bidirectional codec between flat
// string-keyed form data and nested mapping/sequence structures.
//
// The key grammar uses "." for nested-mapping descent and a trailing
// "-<integer>" suffix for sequence membership with explicit ordering:
//
//	"names-1.fname=John" and "names-2.fname=Jane"
//	  decode to {"names": [{"fname": "John"}, {"fname": "Jane"}]}
//
// Integer suffixes are pure sort keys: gaps are ignored and duplicate
// indices merge, with the last scalar winning. Suffixes strip repeatedly, so
// "grid-0-1" addresses a sequence nested directly inside another sequence.
//
// When a key binds a scalar where a mapping also grows (both "a" and "a.b"
// present), the scalar is preserved inside the mapping under the ValueKey
// sentinel; Encode re-emits it as the bare key.
package flatkey

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ValueKey is the sentinel mapping key holding a scalar that shares its
// position with named children. The NUL byte cannot appear in a parsed form
// key, so it never collides with a real field name.
const ValueKey = "\x00"

// Pair is one entry of the flat mapping interface: an ordered (key, value)
// pair as produced by a form submission.
type Pair struct {
	Key   string
	Value string
}

// segment is one dot-separated component of a flat key: a literal name
// followed by zero or more integer suffixes.
type segment struct {
	name    string
	indexes []int
}

// parseKey splits a flat key into its path of segments. Parsing never
// fails: a malformed suffix is simply part of the literal name.
func parseKey(key string) []segment {
	parts := strings.Split(key, ".")
	segments := make([]segment, len(parts))
	for i, part := range parts {
		segments[i] = parseSegment(part)
	}
	return segments
}

func parseSegment(part string) segment {
	name := part
	var reversed []int
	for {
		dash := strings.LastIndexByte(name, '-')
		if dash < 0 {
			break
		}
		suffix := name[dash+1:]
		idx, err := strconv.Atoi(suffix)
		if err != nil || suffix == "" || idx < 0 {
			break
		}
		reversed = append(reversed, idx)
		name = name[:dash]
	}
	indexes := make([]int, len(reversed))
	for i, idx := range reversed {
		indexes[len(reversed)-1-i] = idx
	}
	return segment{name: name, indexes: indexes}
}

// node is one position in the intermediate decode tree. A position may hold
// a scalar, named children and indexed children at the same time; finalize
// resolves the ambiguities.
type node struct {
	value    *string
	children map[string]*node
	items    map[int]*node
}

func (n *node) child(name string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	c, ok := n.children[name]
	if !ok {
		c = &node{}
		n.children[name] = c
	}
	return c
}

func (n *node) item(idx int) *node {
	if n.items == nil {
		n.items = make(map[int]*node)
	}
	c, ok := n.items[idx]
	if !ok {
		c = &node{}
		n.items[idx] = c
	}
	return c
}

// Decode transforms ordered flat pairs into a nested structure of
// map[string]any, []any and string values.
func Decode(pairs []Pair) map[string]any {
	root := &node{}
	for _, pair := range pairs {
		cur := root
		for _, seg := range parseKey(pair.Key) {
			cur = cur.child(seg.name)
			for _, idx := range seg.indexes {
				cur = cur.item(idx)
			}
		}
		v := pair.Value
		cur.value = &v
	}
	out, _ := root.finalize().(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

// DecodeValues decodes url.Values through the codec. Keys are visited in
// lexicographic order for determinism; a key repeated n>1 times has its
// occurrences rewritten with positional suffixes so they decode to a
// sequence.
func DecodeValues(values url.Values) map[string]any {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var pairs []Pair
	for _, key := range keys {
		vs := values[key]
		if len(vs) == 1 {
			pairs = append(pairs, Pair{Key: key, Value: vs[0]})
			continue
		}
		for i, v := range vs {
			pairs = append(pairs, Pair{Key: key + "-" + strconv.Itoa(i), Value: v})
		}
	}
	return Decode(pairs)
}

// finalize collapses the intermediate tree into the external representation.
// Named children force a mapping: a co-located scalar moves under ValueKey
// and indexed children fold in under their decimal keys. A position with
// only indexed children becomes a sequence ordered by ascending index.
func (n *node) finalize() any {
	if len(n.children) > 0 || (n.value != nil && len(n.items) > 0) {
		m := make(map[string]any, len(n.children)+len(n.items)+1)
		for name, child := range n.children {
			m[name] = child.finalize()
		}
		for idx, child := range n.items {
			m[strconv.Itoa(idx)] = child.finalize()
		}
		if n.value != nil {
			m[ValueKey] = *n.value
		}
		return m
	}

	if len(n.items) > 0 {
		idxs := make([]int, 0, len(n.items))
		for idx := range n.items {
			idxs = append(idxs, idx)
		}
		sort.Ints(idxs)
		out := make([]any, 0, len(idxs))
		for _, idx := range idxs {
			out = append(out, n.items[idx].finalize())
		}
		return out
	}

	if n.value != nil {
		return *n.value
	}
	return map[string]any{}
}

// Encode is the inverse transform: it walks a nested structure and emits one
// pair per leaf, re-synthesizing integer suffixes from final sequence
// positions. Mapping keys are visited in sorted order so the listing is
// deterministic; Encode(Decode(pairs)) reproduces an equivalent flat mapping.
func Encode(nested map[string]any) []Pair {
	var pairs []Pair
	encodeMap("", nested, &pairs)
	return pairs
}

func encodeMap(prefix string, m map[string]any, pairs *[]Pair) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key == ValueKey {
			encodeLeaf(prefix, m[key], pairs)
			continue
		}
		encodeValue(joinKey(prefix, key), m[key], pairs)
	}
}

func encodeValue(prefix string, v any, pairs *[]Pair) {
	switch val := v.(type) {
	case map[string]any:
		encodeMap(prefix, val, pairs)
	case []any:
		for i, elem := range val {
			encodeValue(prefix+"-"+strconv.Itoa(i), elem, pairs)
		}
	case []string:
		for i, elem := range val {
			encodeValue(prefix+"-"+strconv.Itoa(i), elem, pairs)
		}
	default:
		encodeLeaf(prefix, v, pairs)
	}
}

func encodeLeaf(key string, v any, pairs *[]Pair) {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	*pairs = append(*pairs, Pair{Key: key, Value: s})
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
