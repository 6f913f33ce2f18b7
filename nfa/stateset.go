package nfa

// StateSet is a deduplicated, insertion-order-preserving collection of
// active NFA states, as used by the lexer's simulation loop.
type StateSet struct {
	order []StateId
	has   map[StateId]bool
}

// NewStateSet returns an empty StateSet.
func NewStateSet() *StateSet {
	return &StateSet{has: make(map[StateId]bool)}
}

// Add appends s if it is not already present. Garbage is never added: a
// transition into Garbage means "no such transition".
func (ss *StateSet) Add(s StateId) {
	if s == Garbage || ss.has[s] {
		return
	}
	ss.has[s] = true
	ss.order = append(ss.order, s)
}

// States returns the set's members in discovery order.
func (ss *StateSet) States() []StateId {
	return ss.order
}

// Len reports how many states are in the set.
func (ss *StateSet) Len() int {
	return len(ss.order)
}

// Contains reports whether s is a member.
func (ss *StateSet) Contains(s StateId) bool {
	return ss.has[s]
}

// EpsilonClosure returns the set containing every state in states together
// with every state reachable from them via exactly one epsilon edge: a
// single-hop closure, not a fixpoint. This is not because the builder never
// produces a state that is both an epsilon source and an epsilon target —
// a cycle-closing intermediate from one quantified atom can be exactly that
// for the next atom (e.g. in "a*b*", the state a* loops back through also
// gains an incoming epsilon edge from b*'s own cycle-closing state). One
// hop still suffices because emitBitmap always writes a following atom's
// transitions directly from every state in the current front, epsilon
// targets included, so whatever a second hop would reach is already
// reachable by a transition written straight from the first hop's target —
// chasing further never discovers a new transition, only a state already
// accounted for.
func EpsilonClosure(n *NFA, states []StateId) *StateSet {
	out := NewStateSet()
	for _, s := range states {
		out.Add(s)
	}
	// Iterate over the original input only: a true single-hop closure does
	// not chase epsilon edges out of states discovered by this same pass.
	for _, s := range states {
		for _, e := range n.Epsilon(s) {
			out.Add(e)
		}
	}
	return out
}
