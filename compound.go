package formcast

import "strings"

// allConverter chains converters as sequential refinement: each child
// receives the previous child's output.
type allConverter struct {
	children []Converter
}

// All combines converters into one that passes only when every child passes.
// ConvertIn feeds each child the previous child's output, left to right, and
// stops at the first failure, surfacing that child's message and detail under
// a compound_all kind. ConvertOut runs the chain in reverse so the outbound
// pipeline mirrors the inbound one.
func All(children ...Converter) Converter {
	return &allConverter{children: children}
}

func (a *allConverter) ConvertIn(value any, st *State) (any, *Invalid) {
	current := value
	for _, child := range a.children {
		converted, inv := child.ConvertIn(current, st)
		if inv != nil {
			return nil, compoundAll(inv)
		}
		current = converted
	}
	return current, nil
}

func (a *allConverter) ConvertOut(value any, st *State) (any, *Invalid) {
	current := value
	for i := len(a.children) - 1; i >= 0; i-- {
		converted, inv := a.children[i].ConvertOut(current, st)
		if inv != nil {
			return nil, compoundAll(inv)
		}
		current = converted
	}
	return current, nil
}

// compoundAll re-tags a failing member's Invalid so the failure is
// attributable to the chain. Message, rejected value and any nested error
// tree survive unchanged.
func compoundAll(inv *Invalid) *Invalid {
	tagged := *inv
	tagged.Kind = KindCompoundAll
	return &tagged
}

// anyConverter tries alternatives against the same original input.
type anyConverter struct {
	children []Converter
}

// Any combines converters into one that passes when at least one child
// passes. Every child receives the original input; the first success wins.
// When all children fail the result is a compound_any Invalid whose message
// lists every alternative's failure.
func Any(children ...Converter) Converter {
	return &anyConverter{children: children}
}

func (a *anyConverter) ConvertIn(value any, st *State) (any, *Invalid) {
	return a.convert(value, st, Converter.ConvertIn)
}

func (a *anyConverter) ConvertOut(value any, st *State) (any, *Invalid) {
	return a.convert(value, st, Converter.ConvertOut)
}

func (a *anyConverter) convert(value any, st *State, direction func(Converter, any, *State) (any, *Invalid)) (any, *Invalid) {
	var messages []string
	for _, child := range a.children {
		converted, inv := direction(child, value, st)
		if inv == nil {
			return converted, nil
		}
		messages = append(messages, inv.Message)
	}
	return nil, NewInvalid(
		KindCompoundAny,
		"validation.no_alternative",
		"no alternative matched: %{reasons}",
		value, st,
		Args{"reasons": strings.Join(messages, "; ")},
	)
}
