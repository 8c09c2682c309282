package formcast

// SchemaErrorKey is the pseudo-field under which a chained or pre validator
// failure that does not target specific fields is reported.
const SchemaErrorKey = "_form"

// Schema is the field aggregator: a mapping of named converters applied to a
// mapping of named input values. Validation is exhaustive: every declared
// field is attempted even after earlier failures, so one pass reports every
// invalid field. Fields are iterated in declaration order.
//
// A Schema satisfies the Converter contract and therefore nests inside other
// Schemas, ForEach aggregators and compound combinators.
type Schema struct {
	fields map[string]Converter
	order  []string

	pre     []Converter
	chained []Converter

	allowExtra     bool
	filterExtra    bool
	partial        bool
	chainOnFailure bool
	continueOnPre  bool

	opts Options
}

// SchemaOption configures a Schema at construction time.
type SchemaOption func(*Schema)

// NewSchema builds an immutable field aggregator.
func NewSchema(opts ...SchemaOption) *Schema {
	s := &Schema{fields: make(map[string]Converter)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Field declares a named field and its converter. Declaration order is the
// iteration order during validation.
func Field(name string, c Converter) SchemaOption {
	return func(s *Schema) {
		if _, dup := s.fields[name]; !dup {
			s.order = append(s.order, name)
		}
		s.fields[name] = c
	}
}

// Pre appends validators that run against the whole input mapping before any
// per-field validation. A pre validator failure aborts the schema pass
// unless ContinueOnPreFailure is set.
func Pre(cs ...Converter) SchemaOption {
	return func(s *Schema) { s.pre = append(s.pre, cs...) }
}

// Chained appends validators that run against the whole validated output
// mapping after per-field validation. Every chained validator runs even when
// earlier ones in the list fail; their failures merge into the same error
// dict.
func Chained(cs ...Converter) SchemaOption {
	return func(s *Schema) { s.chained = append(s.chained, cs...) }
}

// AllowExtra accepts undeclared input keys and carries them through to the
// output unchanged. The default is to reject them.
func AllowExtra() SchemaOption {
	return func(s *Schema) { s.allowExtra = true }
}

// FilterExtra accepts undeclared input keys but drops them from the output.
func FilterExtra() SchemaOption {
	return func(s *Schema) {
		s.allowExtra = true
		s.filterExtra = true
	}
}

// Partial skips declared fields that are absent from the input instead of
// reporting them as missing. Fields with an IfMissing substitute still
// receive it.
func Partial() SchemaOption {
	return func(s *Schema) { s.partial = true }
}

// ChainOnFailure runs the chained validators even when per-field validation
// produced errors. By default the chained stage is skipped on a partially
// failed field set.
func ChainOnFailure() SchemaOption {
	return func(s *Schema) { s.chainOnFailure = true }
}

// ContinueOnPreFailure records a pre validator failure and proceeds to
// per-field validation instead of aborting the pass.
func ContinueOnPreFailure() SchemaOption {
	return func(s *Schema) { s.continueOnPre = true }
}

// WithOptions attaches a core Options record to the schema itself, so a
// nested schema participates in its parent's missing-field handling.
func WithOptions(opts ...Option) SchemaOption {
	return func(s *Schema) { s.opts = NewOptions(opts...) }
}

// Options exposes the schema's own configuration to enclosing aggregators.
func (s *Schema) Options() Options {
	return s.opts
}

// Fields returns the declared field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ConvertIn validates an input mapping. The stages run in order: pre
// validators over the whole input, per-field conversion (exhaustive),
// extra-key policy, then chained validators over the assembled output.
func (s *Schema) ConvertIn(value any, st *State) (any, *Invalid) {
	input, inv := s.asMapping(value, st)
	if inv != nil {
		return nil, inv
	}

	errors := make(map[string]*Invalid)

	current := any(input)
	for _, p := range s.pre {
		refined, pinv := p.ConvertIn(current, st)
		if pinv != nil {
			if !s.continueOnPre {
				return nil, pinv
			}
			mergeInvalid(errors, pinv, st)
			continue
		}
		current = refined
	}
	if refined, ok := current.(map[string]any); ok {
		input = refined
	}

	output := make(map[string]any, len(input))

	for _, name := range s.order {
		conv := s.fields[name]
		raw, present := input[name]
		if !present {
			if sub, ok := missingSubstitute(conv); ok {
				output[name] = sub
				continue
			}
			if s.partial {
				continue
			}
			childSt := st.withField(name, input)
			errors[name] = NewInvalid(KindEmpty, "validation.missing", "missing value", nil, childSt, nil)
			continue
		}

		childSt := st.withField(name, input)
		converted, cinv := conv.ConvertIn(raw, childSt)
		if cinv != nil {
			errors[name] = cinv
			continue
		}
		output[name] = converted
	}

	for name, raw := range input {
		if _, declared := s.fields[name]; declared {
			continue
		}
		if !s.allowExtra {
			childSt := st.withField(name, input)
			errors[name] = NewInvalid(KindValidation, "validation.unexpected_field", "unexpected field", raw, childSt, nil)
			continue
		}
		if !s.filterExtra {
			output[name] = raw
		}
	}

	if len(errors) == 0 || s.chainOnFailure {
		for _, c := range s.chained {
			refined, cinv := c.ConvertIn(output, st)
			if cinv != nil {
				mergeInvalid(errors, cinv, st)
				continue
			}
			if m, ok := refined.(map[string]any); ok {
				output = m
			}
		}
	}

	if len(errors) > 0 {
		return nil, aggregateDict(value, st, errors)
	}
	return output, nil
}

// ConvertOut re-serializes a trusted internal mapping: chained validators
// run first in reverse order, then every field's ConvertOut (exhaustive),
// then the pre validators in reverse.
func (s *Schema) ConvertOut(value any, st *State) (any, *Invalid) {
	input, inv := s.asMapping(value, st)
	if inv != nil {
		return nil, inv
	}

	current := any(input)
	for i := len(s.chained) - 1; i >= 0; i-- {
		refined, cinv := s.chained[i].ConvertOut(current, st)
		if cinv != nil {
			return nil, cinv
		}
		current = refined
	}
	if refined, ok := current.(map[string]any); ok {
		input = refined
	}

	errors := make(map[string]*Invalid)
	output := make(map[string]any, len(input))

	for _, name := range s.order {
		conv := s.fields[name]
		raw, present := input[name]
		if !present {
			if sub, ok := missingSubstitute(conv); ok {
				output[name] = sub
				continue
			}
			if s.partial {
				continue
			}
			childSt := st.withField(name, input)
			errors[name] = NewInvalid(KindEmpty, "validation.missing", "missing value", nil, childSt, nil)
			continue
		}

		childSt := st.withField(name, input)
		formatted, cinv := conv.ConvertOut(raw, childSt)
		if cinv != nil {
			errors[name] = cinv
			continue
		}
		output[name] = formatted
	}

	for name, raw := range input {
		if _, declared := s.fields[name]; declared {
			continue
		}
		if !s.allowExtra {
			childSt := st.withField(name, input)
			errors[name] = NewInvalid(KindValidation, "validation.unexpected_field", "unexpected field", raw, childSt, nil)
			continue
		}
		if !s.filterExtra {
			output[name] = raw
		}
	}

	if len(errors) > 0 {
		return nil, aggregateDict(value, st, errors)
	}

	result := any(output)
	for i := len(s.pre) - 1; i >= 0; i-- {
		refined, pinv := s.pre[i].ConvertOut(result, st)
		if pinv != nil {
			return nil, pinv
		}
		result = refined
	}
	return result, nil
}

func (s *Schema) asMapping(value any, st *State) (map[string]any, *Invalid) {
	switch m := value.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	default:
		return nil, NewInvalid(KindConversion, "conversion.mapping", "must be a mapping of fields", value, st, nil)
	}
}

// missingSubstitute reads the IfMissing substitute off a converter that
// exposes its Options.
func missingSubstitute(c Converter) (any, bool) {
	provider, ok := c.(OptionsProvider)
	if !ok {
		return nil, false
	}
	return provider.Options().IfMissing()
}

// mergeInvalid folds a chained or pre validator failure into the per-field
// error dict. Field-targeted failures merge per field, accumulating messages;
// failures without field detail land under SchemaErrorKey.
func mergeInvalid(errors map[string]*Invalid, inv *Invalid, st *State) {
	if inv.ErrorDict == nil {
		mergeField(errors, SchemaErrorKey, inv, st)
		return
	}
	for field, child := range inv.ErrorDict {
		mergeField(errors, field, child, st)
	}
}

func mergeField(errors map[string]*Invalid, field string, inv *Invalid, st *State) {
	existing, ok := errors[field]
	if !ok {
		errors[field] = inv
		return
	}
	errors[field] = &Invalid{
		Kind:    existing.Kind,
		Message: existing.Message + "; " + inv.Message,
		Value:   existing.Value,
		State:   st,
	}
}
