package formcast

import "strings"

// Converter is the atomic unit of the engine: it transforms one value in one
// direction and may fail. ConvertIn turns untrusted external input into a
// trusted internal value; ConvertOut reverses it for re-serialization.
// Failure is the returned *Invalid; a nil Invalid means the value converted.
//
// Converters must be stateless with respect to the data they validate:
// configuration is fixed at construction, so a single converter is safely
// shared across concurrent validation trees. They are composed by reference,
// never copied mid-validation.
type Converter interface {
	ConvertIn(value any, st *State) (any, *Invalid)
	ConvertOut(value any, st *State) (any, *Invalid)
}

// ConvertFunc is a single directional conversion or validation step used to
// assemble a Leaf.
type ConvertFunc func(value any, st *State) (any, *Invalid)

// Func adapts plain functions to the Converter contract. A nil direction is
// the identity. It is the lightest way to write pre and chained validators
// as closures.
func Func(in, out ConvertFunc) Converter {
	return funcConverter{in: in, out: out}
}

type funcConverter struct {
	in  ConvertFunc
	out ConvertFunc
}

func (f funcConverter) ConvertIn(value any, st *State) (any, *Invalid) {
	if f.in == nil {
		return value, nil
	}
	return f.in(value, st)
}

func (f funcConverter) ConvertOut(value any, st *State) (any, *Invalid) {
	if f.out == nil {
		return value, nil
	}
	return f.out(value, st)
}

// Leaf implements the standard behavior matrix around a type-specific
// conversion: strip, empty handling, conversion, post-conversion validation
// and failure substitution, in that order. All concrete leaf converters are
// built on it.
type Leaf struct {
	opts     Options
	in       ConvertFunc
	out      ConvertFunc
	validate ConvertFunc
}

// NewLeaf assembles a leaf converter. in converts external input to the
// internal type; out formats the internal value back to its external form;
// validate runs value-level checks after conversion in both directions. out
// and validate may be nil.
func NewLeaf(opts Options, in, out, validate ConvertFunc) *Leaf {
	return &Leaf{opts: opts, in: in, out: out, validate: validate}
}

// Options exposes the leaf's configuration to enclosing aggregators.
func (l *Leaf) Options() Options {
	return l.opts
}

// ConvertIn applies the inbound behavior matrix:
//  1. strip whitespace when configured and the input is textual,
//  2. empty input short-circuits to the IfEmpty substitute when configured,
//  3. empty input fails with KindEmpty when NotEmpty is set,
//  4. otherwise conversion runs, then validation,
//  5. any failure is replaced by the IfInvalid substitute when configured.
//
// Empty input with neither IfEmpty nor NotEmpty configured passes through
// as nil without invoking the conversion.
func (l *Leaf) ConvertIn(value any, st *State) (any, *Invalid) {
	if l.opts.strip {
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
	}

	if IsEmpty(value) {
		if sub, ok := l.opts.ifEmpty.value, l.opts.ifEmpty.set; ok {
			return sub, nil
		}
		if l.opts.notEmpty {
			return nil, NewInvalid(KindEmpty, "validation.empty", "a value is required", value, st, nil)
		}
		return nil, nil
	}

	converted := value
	if l.in != nil {
		var inv *Invalid
		converted, inv = l.in(value, st)
		if inv != nil {
			return l.recoverIn(inv)
		}
	}

	if l.validate != nil {
		validated, inv := l.validate(converted, st)
		if inv != nil {
			return l.recoverIn(inv)
		}
		converted = validated
	}

	return converted, nil
}

// ConvertOut applies the outbound matrix: unless AcceptLocal is set the
// internal value is re-validated first, then formatted. Failures are
// replaced by the IfInvalidOut substitute when configured.
func (l *Leaf) ConvertOut(value any, st *State) (any, *Invalid) {
	if IsEmpty(value) {
		if sub, ok := l.opts.ifEmpty.value, l.opts.ifEmpty.set; ok {
			return sub, nil
		}
		if l.opts.notEmpty {
			return nil, NewInvalid(KindEmpty, "validation.empty", "a value is required", value, st, nil)
		}
		return nil, nil
	}

	if !l.opts.acceptLocal && l.validate != nil {
		validated, inv := l.validate(value, st)
		if inv != nil {
			return l.recoverOut(inv)
		}
		value = validated
	}

	if l.out != nil {
		formatted, inv := l.out(value, st)
		if inv != nil {
			return l.recoverOut(inv)
		}
		return formatted, nil
	}

	return value, nil
}

func (l *Leaf) recoverIn(inv *Invalid) (any, *Invalid) {
	if sub, ok := l.opts.ifInvalid.value, l.opts.ifInvalid.set; ok {
		return sub, nil
	}
	return nil, inv
}

func (l *Leaf) recoverOut(inv *Invalid) (any, *Invalid) {
	if sub, ok := l.opts.ifInvalidOut.value, l.opts.ifInvalidOut.set; ok {
		return sub, nil
	}
	return nil, inv
}
