package formcast

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a conversion failure.
type Kind string

const (
	// KindEmpty reports a required value that was missing or blank.
	KindEmpty Kind = "empty"
	// KindConversion reports a failed type or format conversion.
	KindConversion Kind = "conversion"
	// KindValidation reports a post-conversion rule failure.
	KindValidation Kind = "validation"
	// KindAggregateField reports one or more failed named fields; ErrorDict is populated.
	KindAggregateField Kind = "aggregate_field"
	// KindAggregateIndex reports one or more failed sequence positions; ErrorList is populated.
	KindAggregateIndex Kind = "aggregate_index"
	// KindCompoundAll reports a failed member of an all-must-pass chain.
	KindCompoundAll Kind = "compound_all"
	// KindCompoundAny reports that no alternative of an Any chain matched.
	KindCompoundAny Kind = "compound_any"
)

// Invalid is the failure value produced by every converter. It is a rich
// error, not a status flag: it preserves the rejected input and, when the
// failure happened inside an aggregator, a nested tree of per-child
// failures.
//
// Exactly one or neither of ErrorDict and ErrorList is populated. A leaf
// converter's Invalid carries neither; a Schema's Invalid carries ErrorDict
// keyed by failing field (passing fields are absent); a ForEach's Invalid
// carries ErrorList with the same length as the input where nil slots mark
// passing positions.
type Invalid struct {
	Kind    Kind
	Message string
	Value   any
	State   *State

	ErrorDict map[string]*Invalid
	ErrorList []*Invalid
}

// NewInvalid builds a leaf failure. The message is resolved through the
// State's Translator when one is bound, using key and args; otherwise the
// fallback template is rendered with %{name} substitution from args.
func NewInvalid(kind Kind, key, fallback string, value any, st *State, args Args) *Invalid {
	return &Invalid{
		Kind:    kind,
		Message: resolveMessage(st, key, fallback, args),
		Value:   value,
		State:   st,
	}
}

// FieldErrors builds an aggregate_field Invalid from plain per-field
// messages. It is the convenient shape for chained validators that target
// specific fields of an already-converted mapping.
func FieldErrors(value any, st *State, messages map[string]string) *Invalid {
	dict := make(map[string]*Invalid, len(messages))
	for field, msg := range messages {
		dict[field] = &Invalid{
			Kind:    KindValidation,
			Message: msg,
			State:   st,
		}
	}
	return aggregateDict(value, st, dict)
}

// aggregateDict wraps a non-empty error dict into an aggregate_field Invalid.
func aggregateDict(value any, st *State, dict map[string]*Invalid) *Invalid {
	return &Invalid{
		Kind:      KindAggregateField,
		Message:   summarizeDict(dict),
		Value:     value,
		State:     st,
		ErrorDict: dict,
	}
}

// aggregateList wraps an error list into an aggregate_index Invalid.
func aggregateList(value any, st *State, list []*Invalid) *Invalid {
	return &Invalid{
		Kind:      KindAggregateIndex,
		Message:   summarizeList(list),
		Value:     value,
		State:     st,
		ErrorList: list,
	}
}

func summarizeDict(dict map[string]*Invalid) string {
	fields := make([]string, 0, len(dict))
	for field := range dict {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, dict[field].Message))
	}
	return strings.Join(parts, "; ")
}

func summarizeList(list []*Invalid) string {
	var parts []string
	for i, child := range list {
		if child != nil {
			parts = append(parts, fmt.Sprintf("%d: %s", i, child.Message))
		}
	}
	return strings.Join(parts, "; ")
}

// Error implements the error interface.
func (e *Invalid) Error() string {
	return e.Message
}

// Unpack recursively flattens the failure tree into a plain structure of
// map[string]any, []any, string and nil values mirroring the shape of the
// validated input. This is the canonical externally consumable error report:
// callers render it directly instead of walking typed trees.
func (e *Invalid) Unpack() any {
	switch {
	case e.ErrorDict != nil:
		out := make(map[string]any, len(e.ErrorDict))
		for field, child := range e.ErrorDict {
			out[field] = child.Unpack()
		}
		return out
	case e.ErrorList != nil:
		out := make([]any, len(e.ErrorList))
		for i, child := range e.ErrorList {
			if child == nil {
				out[i] = nil
				continue
			}
			out[i] = child.Unpack()
		}
		return out
	default:
		return e.Message
	}
}
