package lexer

import (
	"github.com/pkg/errors"

	"github.com/rexlex/rexlex/nfa"
)

type phase int

const (
	phaseBuild phase = iota
	phaseQuery
)

// Lexer compiles a set of (regex, token id) rules into a shared NFA and
// drives it over a bound input slice to produce tokens. It passes through
// a BUILD phase (AddRule calls) and a QUERY phase (NextToken calls),
// exactly as described by the add_rule/build/next_token contract this
// package implements.
type Lexer struct {
	automaton *nfa.NFA
	dfa       *nfa.Dfa
	useDFA    bool
	phase     phase
	it        *iterator
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithDFA compiles the NFA to a minimized DFA during Build and simulates
// against that DFA instead of the NFA's active-state set directly.
// NextToken's observable behavior (the sequence of tokens produced) is
// identical either way; this only changes the per-byte simulation cost.
func WithDFA() Option {
	return func(l *Lexer) { l.useDFA = true }
}

// New returns a Lexer in the BUILD phase with an empty NFA.
func New(opts ...Option) *Lexer {
	l := &Lexer{automaton: nfa.New(), phase: phaseBuild}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	// ErrBuildPhaseClosed is returned by AddRule once Build has run.
	ErrBuildPhaseClosed = errors.New("AddRule called after Build")
	// ErrReservedTokenID is returned when a caller tries to register 0,
	// the reserved "not accepting" sentinel, as a token id.
	ErrReservedTokenID = errors.New("token id 0 is reserved")
)

// AddRule parses regex and extends the shared NFA so that it accepts
// tokenID on a full match, per §4.2/§4.3's add_rule contract: a rule
// whose final states are already accepting for an earlier-added rule
// does not overwrite them — the earlier rule wins the tie. A malformed
// regex aborts just this rule; prior rules remain valid.
func (l *Lexer) AddRule(regex string, tokenID int32) error {
	if l.phase != phaseBuild {
		return ErrBuildPhaseClosed
	}
	if tokenID == 0 {
		return ErrReservedTokenID
	}
	if err := l.automaton.AddRule(regex, tokenID); err != nil {
		return errors.Wrapf(err, "add rule %q", regex)
	}
	return nil
}

// Build freezes rule registration and transitions the Lexer into the
// QUERY phase. If WithDFA was supplied, this is also where subset
// construction and minimization run.
func (l *Lexer) Build() {
	if l.useDFA {
		l.dfa = l.automaton.CompileDFA()
	}
	l.phase = phaseQuery
}

// SetStream binds a new input slice and resets the iterator to its start.
// The slice must outlive the Lexer's use of it; the Lexer never copies it.
func (l *Lexer) SetStream(stream []byte) {
	l.it = newIterator(stream)
}

// Rewind resets the bound stream's cursor to its start without rebinding
// it, per §4.3: itr <- begin, line_count <- 1, last_line_begin <- begin-1.
func (l *Lexer) Rewind() {
	if l.it != nil {
		l.it.reset()
	}
}

// NextToken advances the bound stream and returns the next recognized
// token, or the EOF token (and every call thereafter) once the stream is
// exhausted. It must be called in the QUERY phase with a stream bound by
// SetStream.
func (l *Lexer) NextToken() Token {
	if l.it == nil {
		return Token{ID: EOF}
	}
	if l.useDFA && l.dfa != nil {
		return l.nextTokenDFA()
	}
	return l.nextTokenNFA()
}

func (l *Lexer) eofToken() Token {
	it := l.it
	return Token{Index: it.itr, Length: 0, ID: EOF, Line: it.lineCount, Column: it.columnAt(it.itr)}
}

// bestAccept implements the priority rule within a single step: among the
// active set's accepting states, the one with the smallest StateId wins.
// Because state ids are allocated in AddRule call order, an earlier rule's
// accepting states always carry smaller ids than a later rule's, so this
// is a deterministic restatement of "earlier-added rule wins on tie" that
// does not depend on active-set iteration order.
func bestAccept(n *nfa.NFA, active *nfa.StateSet) (int32, bool) {
	var best nfa.StateId
	var id int32
	found := false
	for _, s := range active.States() {
		if a := n.Accept(s); a != 0 {
			if !found || s < best {
				best = s
				id = a
				found = true
			}
		}
	}
	return id, found
}

// nextTokenNFA is the longest-match simulation loop described in §4.3,
// run directly against the NFA's active-state set.
func (l *Lexer) nextTokenNFA() Token {
	it := l.it
	n := l.automaton

	if it.atEnd() {
		return l.eofToken()
	}

	it.beginToken()
	active := nfa.EpsilonClosure(n, []nfa.StateId{nfa.Begin})

	var best Token
	var bestSnap snapshot
	haveBest := false

	for {
		if id, ok := bestAccept(n, active); ok {
			best = Token{
				Index:  it.tokenBegin,
				Length: uint32(it.itr - it.tokenBegin),
				ID:     id,
				Line:   it.tokenLine,
				Column: it.tokenColumn,
			}
			bestSnap = it.snapshot()
			haveBest = true
		}

		if it.atEnd() {
			break
		}

		c := it.peek()
		var nextRaw []nfa.StateId
		for _, s := range active.States() {
			if t := n.Next(s, c); t != nfa.Garbage {
				nextRaw = append(nextRaw, t)
			}
		}

		if len(nextRaw) == 0 {
			if haveBest {
				it.restore(bestSnap)
				return best
			}
			l.skipAndRetry()
			active = nfa.EpsilonClosure(n, []nfa.StateId{nfa.Begin})
			haveBest = false
			continue
		}

		active = nfa.EpsilonClosure(n, nextRaw)
		it.advance()
	}

	if haveBest {
		it.restore(bestSnap)
		return best
	}
	return l.eofToken()
}

// nextTokenDFA is the same simulation loop, specialized for a compiled
// DFA: a single int32 state replaces the active StateSet and epsilon
// closure is unnecessary, since subset construction already folded it in.
func (l *Lexer) nextTokenDFA() Token {
	it := l.it
	d := l.dfa

	if it.atEnd() {
		return l.eofToken()
	}

	it.beginToken()
	state := nfa.DfaStart

	var best Token
	var bestSnap snapshot
	haveBest := false

	for {
		if a := d.Accept(state); a != 0 {
			best = Token{
				Index:  it.tokenBegin,
				Length: uint32(it.itr - it.tokenBegin),
				ID:     a,
				Line:   it.tokenLine,
				Column: it.tokenColumn,
			}
			bestSnap = it.snapshot()
			haveBest = true
		}

		if it.atEnd() {
			break
		}

		c := it.peek()
		next := d.Next(state, c)
		if next == -1 {
			if haveBest {
				it.restore(bestSnap)
				return best
			}
			l.skipAndRetry()
			state = nfa.DfaStart
			haveBest = false
			continue
		}

		state = next
		it.advance()
	}

	if haveBest {
		it.restore(bestSnap)
		return best
	}
	return l.eofToken()
}

// skipAndRetry implements §4.3's recovery action: advance the cursor one
// byte past the current token's start, and begin a fresh token there.
func (l *Lexer) skipAndRetry() {
	it := l.it
	// The failed attempt may have advanced line tracking past newlines
	// after tokenBegin; put it back to the token's own line first.
	it.lineCount = it.tokenLine
	it.lastLineBegin = int64(it.tokenBegin) - int64(it.tokenColumn)
	if it.stream[it.tokenBegin] == '\n' {
		it.lineCount++
		it.lastLineBegin = int64(it.tokenBegin)
	}
	it.itr = it.tokenBegin + 1
	it.beginToken()
}
