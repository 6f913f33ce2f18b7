package nfa

import (
	"sort"
	"strconv"
)

// Dfa is an optional, build-time-only compilation of an NFA via subset
// construction followed by state minimization, adapted from the teacher's
// DfaBuilder (subset construction + groupEquivalentStates partition
// refinement). It trades build time and worst-case state blow-up for an
// O(1)-per-byte simulation step; the contract of the lexer's NextToken is
// identical whether or not a Lexer is built WithDFA.
type Dfa struct {
	transitions [][NumSymbols]int32
	accept      []int32
}

// DfaStart is the DFA's initial state index.
const DfaStart = int32(0)

// Next returns the successor of state on byte c, or -1 if the DFA dies.
// Like nfa.(*NFA).Next, a byte outside the 7-bit ASCII alphabet (c >=
// NumSymbols) always dies rather than indexing past the transition row.
func (d *Dfa) Next(state int32, c byte) int32 {
	if c >= NumSymbols {
		return -1
	}
	return d.transitions[state][c]
}

// Accept returns the token id state accepts, or 0 if it does not accept.
func (d *Dfa) Accept(state int32) int32 {
	return d.accept[state]
}

// CompileDFA performs subset construction over the NFA's states starting
// from Begin's epsilon-closure, then minimizes the result.
func (n *NFA) CompileDFA() *Dfa {
	raw := subsetConstruct(n)
	return minimize(raw)
}

func subsetConstruct(n *NFA) *Dfa {
	dfa := &Dfa{}
	indexOf := make(map[string]int32)
	var pending [][]StateId

	add := func(states []StateId) int32 {
		k := setKey(states)
		if idx, ok := indexOf[k]; ok {
			return idx
		}
		idx := int32(len(dfa.transitions))
		var row [NumSymbols]int32
		for i := range row {
			row[i] = -1
		}
		dfa.transitions = append(dfa.transitions, row)
		dfa.accept = append(dfa.accept, priorityAccept(n, states))
		indexOf[k] = idx
		pending = append(pending, states)
		return idx
	}

	start := EpsilonClosure(n, []StateId{Begin}).States()
	add(start)

	for i := 0; i < len(pending); i++ {
		states := pending[i]
		for c := 0; c < NumSymbols; c++ {
			var nextStates []StateId
			for _, s := range states {
				if t := n.Next(s, byte(c)); t != Garbage {
					nextStates = append(nextStates, t)
				}
			}
			if len(nextStates) == 0 {
				continue
			}
			closure := EpsilonClosure(n, nextStates).States()
			dfa.transitions[i][c] = add(closure)
		}
	}
	return dfa
}

// priorityAccept applies the lexer's tie-break directly at DFA-compile
// time: the accepting NFA state with the smallest StateId in the set
// determines the DFA state's accept id, matching "earlier-added rule wins
// on tie" (state ids are allocated in AddRule call order).
func priorityAccept(n *NFA, states []StateId) int32 {
	best := StateId(-1)
	var acceptID int32
	for _, s := range states {
		if a := n.Accept(s); a != 0 {
			if best == -1 || s < best {
				best = s
				acceptID = a
			}
		}
	}
	return acceptID
}

func setKey(states []StateId) string {
	sorted := append([]StateId(nil), states...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	buf := make([]byte, 0, len(sorted)*4)
	for _, s := range sorted {
		buf = strconv.AppendInt(buf, int64(s), 36)
		buf = append(buf, ',')
	}
	return string(buf)
}

// minimize groups equivalent DFA states (same accept id, and transitions
// that land in the same group for every byte) and rebuilds the table over
// the reduced group set. This is partition refinement in the style of the
// teacher's groupEquivalentStates/splitGroupsIfNecessary, generalized from
// its accept-action-set equality to this package's single accept id.
func minimize(d *Dfa) *Dfa {
	n := len(d.transitions)
	group := make([]int, n)
	groupsByAccept := make(map[int32]int)
	numGroups := 0
	for i := 0; i < n; i++ {
		a := d.accept[i]
		g, ok := groupsByAccept[a]
		if !ok {
			g = numGroups
			groupsByAccept[a] = g
			numGroups++
		}
		group[i] = g
	}

	for {
		changed := false
		signatureGroups := make(map[string]int)
		newGroup := make([]int, n)
		newNumGroups := 0
		for i := 0; i < n; i++ {
			sig := signature(d, group, i)
			g, ok := signatureGroups[sig]
			if !ok {
				g = newNumGroups
				signatureGroups[sig] = g
				newNumGroups++
			}
			newGroup[i] = g
			if g != group[i] {
				changed = true
			}
		}
		group = newGroup
		numGroups = newNumGroups
		if !changed {
			break
		}
	}

	out := &Dfa{
		transitions: make([][NumSymbols]int32, numGroups),
		accept:      make([]int32, numGroups),
	}
	seen := make([]bool, numGroups)
	for i := 0; i < n; i++ {
		g := group[i]
		if seen[g] {
			continue
		}
		seen[g] = true
		out.accept[g] = d.accept[i]
		for c := 0; c < NumSymbols; c++ {
			if t := d.transitions[i][c]; t != -1 {
				out.transitions[g][c] = int32(group[t])
			} else {
				out.transitions[g][c] = -1
			}
		}
	}
	return out
}

func signature(d *Dfa, group []int, state int) string {
	buf := make([]byte, 0, NumSymbols*4)
	buf = strconv.AppendInt(buf, int64(group[state]), 36)
	buf = append(buf, '|')
	for c := 0; c < NumSymbols; c++ {
		t := d.transitions[state][c]
		if t == -1 {
			buf = append(buf, '-')
		} else {
			buf = strconv.AppendInt(buf, int64(group[t]), 36)
		}
		buf = append(buf, ',')
	}
	return string(buf)
}
