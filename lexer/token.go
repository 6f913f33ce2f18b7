// Package lexer drives a compiled nfa.NFA over an input byte slice to
// produce a stream of tokens, using longest-match simulation with
// earliest-rule-wins priority on ties.
package lexer

// EOF is the synthetic token id returned once the input is exhausted, and
// on every subsequent call to NextToken.
const EOF int32 = -52

// Token is one recognized (or synthetic end-of-input) lexeme.
type Token struct {
	// Index is the byte offset of the token's first byte from the start
	// of the bound stream.
	Index uint64
	// Length is the number of bytes the token spans. EOF always has
	// length 0.
	Length uint32
	// ID is the token id supplied to AddRule, or EOF.
	ID int32
	// Line is the 1-based line number of the token's first byte.
	Line uint32
	// Column is the 1-based column of the token's first byte.
	Column uint32
}
