package formcast

// State is the caller-supplied context threaded unchanged through every
// converter call in one validation tree. The engine never inspects Data; it
// only extends the State with ephemeral positional metadata while a single
// child of an aggregator runs. Extension copies the State, so sibling calls
// never observe each other's position.
type State struct {
	// Data is an opaque caller payload (request identity, database handle
	// for collaborator validators, and so on). The engine never touches it.
	Data any

	// Lang selects the message catalog language when a Translator is bound.
	Lang string

	// Translator resolves message keys into localized text. When nil, or
	// when a lookup misses, converters fall back to their builtin templates.
	Translator Translator

	key      string
	hasKey   bool
	siblings map[string]any

	index       int
	hasIndex    bool
	siblingList []any
}

// Key reports the field name currently being validated when the call sits
// inside a Schema.
func (st *State) Key() (string, bool) {
	if st == nil {
		return "", false
	}
	return st.key, st.hasKey
}

// Siblings returns the whole input mapping the current field belongs to, for
// validators that need to look across fields.
func (st *State) Siblings() map[string]any {
	if st == nil {
		return nil
	}
	return st.siblings
}

// Index reports the sequence position currently being validated when the
// call sits inside a ForEach.
func (st *State) Index() (int, bool) {
	if st == nil {
		return 0, false
	}
	return st.index, st.hasIndex
}

// SiblingList returns the whole input sequence the current element belongs to.
func (st *State) SiblingList() []any {
	if st == nil {
		return nil
	}
	return st.siblingList
}

// withField returns a copy of st positioned at the named field of full.
// The copy clears any sequence position inherited from an outer aggregator.
func (st *State) withField(key string, full map[string]any) *State {
	child := State{}
	if st != nil {
		child = *st
	}
	child.key = key
	child.hasKey = true
	child.siblings = full
	child.index = 0
	child.hasIndex = false
	child.siblingList = nil
	return &child
}

// withIndex returns a copy of st positioned at element i of full.
func (st *State) withIndex(i int, full []any) *State {
	child := State{}
	if st != nil {
		child = *st
	}
	child.index = i
	child.hasIndex = true
	child.siblingList = full
	child.key = ""
	child.hasKey = false
	child.siblings = nil
	return &child
}
