package formcast

// Options is the immutable per-converter configuration record. It is fixed
// at construction and shared safely across concurrent validation trees;
// there is no way to mutate it afterwards.
//
// The three substitute slots (IfEmpty, IfMissing, IfInvalid, IfInvalidOut)
// are presence-aware: an unset slot is distinguishable from one explicitly
// configured to nil.
type Options struct {
	notEmpty    bool
	strip       bool
	acceptLocal bool

	ifEmpty      optionalValue
	ifMissing    optionalValue
	ifInvalid    optionalValue
	ifInvalidOut optionalValue
}

type optionalValue struct {
	value any
	set   bool
}

// Option configures an Options record at construction time.
type Option func(*Options)

// NewOptions assembles an Options record from the given settings.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NotEmpty rejects empty input with an empty-kind failure instead of
// passing it through.
func NotEmpty() Option {
	return func(o *Options) { o.notEmpty = true }
}

// Strip trims leading and trailing whitespace from textual input before any
// other handling.
func Strip() Option {
	return func(o *Options) { o.strip = true }
}

// AcceptLocal suppresses re-validation of trusted internal values during
// ConvertOut; only the outbound formatting runs.
func AcceptLocal() Option {
	return func(o *Options) { o.acceptLocal = true }
}

// IfEmpty short-circuits empty input to v without running conversion or
// validation.
func IfEmpty(v any) Option {
	return func(o *Options) { o.ifEmpty = optionalValue{value: v, set: true} }
}

// IfMissing supplies v when the field is absent from the input structure
// entirely. It is applied by the enclosing aggregator; the converter itself
// is never invoked for a missing field.
func IfMissing(v any) Option {
	return func(o *Options) { o.ifMissing = optionalValue{value: v, set: true} }
}

// IfInvalid swallows ConvertIn failures and substitutes v.
func IfInvalid(v any) Option {
	return func(o *Options) { o.ifInvalid = optionalValue{value: v, set: true} }
}

// IfInvalidOut swallows ConvertOut failures and substitutes v.
func IfInvalidOut(v any) Option {
	return func(o *Options) { o.ifInvalidOut = optionalValue{value: v, set: true} }
}

// NotEmpty reports whether empty input is rejected.
func (o Options) NotEmpty() bool { return o.notEmpty }

// Strip reports whether textual input is whitespace-trimmed first.
func (o Options) Strip() bool { return o.strip }

// AcceptLocal reports whether ConvertOut skips re-validation.
func (o Options) AcceptLocal() bool { return o.acceptLocal }

// IfEmpty returns the configured empty substitute, if any.
func (o Options) IfEmpty() (any, bool) { return o.ifEmpty.value, o.ifEmpty.set }

// IfMissing returns the configured missing-field substitute, if any.
func (o Options) IfMissing() (any, bool) { return o.ifMissing.value, o.ifMissing.set }

// IfInvalid returns the configured inbound failure substitute, if any.
func (o Options) IfInvalid() (any, bool) { return o.ifInvalid.value, o.ifInvalid.set }

// IfInvalidOut returns the configured outbound failure substitute, if any.
func (o Options) IfInvalidOut() (any, bool) { return o.ifInvalidOut.value, o.ifInvalidOut.set }

// OptionsProvider is implemented by converters that expose their Options so
// enclosing aggregators can apply missing-field handling.
type OptionsProvider interface {
	Options() Options
}

// IsEmpty reports whether v counts as empty input: nil, the zero-length
// string (whitespace-only strings are not empty), an empty slice or an empty
// map. Numeric zero and boolean false are never empty.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
