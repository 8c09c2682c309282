package formcast

// ForEach is the sequence aggregator: one converter applied to every element
// of an ordered sequence, preserving order and length. Like the Schema,
// validation is exhaustive: every element is attempted regardless of
// earlier failures.
type ForEach struct {
	child Converter
	opts  Options
}

// NewForEach builds a sequence aggregator around child. The core options
// cover the aggregator itself (empty and missing handling for the whole
// sequence), not its elements.
func NewForEach(child Converter, opts ...Option) *ForEach {
	return &ForEach{child: child, opts: NewOptions(opts...)}
}

// Options exposes the aggregator's configuration to enclosing aggregators.
func (f *ForEach) Options() Options {
	return f.opts
}

// ConvertIn validates every element of the input sequence. A scalar input is
// promoted to a one-element sequence; []string input is accepted for
// convenience. On failure the Invalid carries an ErrorList of the same
// length as the input, with nil slots for passing positions.
func (f *ForEach) ConvertIn(value any, st *State) (any, *Invalid) {
	return f.convert(value, st, Converter.ConvertIn)
}

// ConvertOut re-serializes every element, mirroring ConvertIn.
func (f *ForEach) ConvertOut(value any, st *State) (any, *Invalid) {
	return f.convert(value, st, Converter.ConvertOut)
}

func (f *ForEach) convert(value any, st *State, direction func(Converter, any, *State) (any, *Invalid)) (any, *Invalid) {
	if IsEmpty(value) {
		if sub, ok := f.opts.IfEmpty(); ok {
			return sub, nil
		}
		if f.opts.NotEmpty() {
			return nil, NewInvalid(KindEmpty, "validation.empty", "a value is required", value, st, nil)
		}
		return []any{}, nil
	}

	input := asSequence(value)

	output := make([]any, len(input))
	errorList := make([]*Invalid, len(input))
	failed := false

	for i, elem := range input {
		childSt := st.withIndex(i, input)
		converted, inv := direction(f.child, elem, childSt)
		if inv != nil {
			errorList[i] = inv
			failed = true
			continue
		}
		output[i] = converted
	}

	if failed {
		return nil, aggregateList(value, st, errorList)
	}
	return output, nil
}

// asSequence normalizes the accepted input shapes to []any. A non-sequence
// value counts as a sequence of one.
func asSequence(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []any{value}
	}
}
