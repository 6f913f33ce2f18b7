package lexer

// iterator is a cursor over the bound input slice. It tracks enough state
// to compute 1-based line/column numbers without rescanning the input,
// and to rewind to the start of the token currently being recognized.
type iterator struct {
	stream []byte
	itr    uint64 // current read position, relative to the start of stream

	lastLineBegin int64 // position where the current line started; begin-1 initially
	lineCount     uint32

	tokenBegin  uint64
	tokenLine   uint32
	tokenColumn uint32
}

// newIterator binds stream and resets the cursor to its start.
func newIterator(stream []byte) *iterator {
	it := &iterator{stream: stream}
	it.reset()
	return it
}

// reset re-seeds the cursor to the start of the bound stream, per rewind's
// contract: itr <- begin, line_count <- 1, last_line_begin <- begin-1.
func (it *iterator) reset() {
	it.itr = 0
	it.lineCount = 1
	it.lastLineBegin = -1
	it.tokenBegin = 0
	it.tokenLine = 1
	it.tokenColumn = 1
}

// atEnd reports whether the cursor has consumed the whole stream.
func (it *iterator) atEnd() bool {
	return it.itr >= uint64(len(it.stream))
}

// peek returns the byte at the current position. Must not be called when
// atEnd().
func (it *iterator) peek() byte {
	return it.stream[it.itr]
}

// columnAt returns the 1-based column of position pos, given the line it
// started on.
func (it *iterator) columnAt(pos uint64) uint32 {
	return uint32(int64(pos) - it.lastLineBegin)
}

// advance consumes the current byte, updating line tracking on '\n'.
func (it *iterator) advance() {
	if it.stream[it.itr] == '\n' {
		it.lineCount++
		it.lastLineBegin = int64(it.itr)
	}
	it.itr++
}

// beginToken marks the current position as the start of the token now
// being recognized.
func (it *iterator) beginToken() {
	it.tokenBegin = it.itr
	it.tokenLine = it.lineCount
	it.tokenColumn = it.columnAt(it.itr)
}

// snapshot captures enough of the cursor to rewind to an earlier position
// without recomputing line tracking backward: the simulation loops in
// lexer.go snapshot the cursor at every best-match update and restore it
// before returning that match, per §4.3's "restore the iterator to the
// snapshot" step.
type snapshot struct {
	itr           uint64
	lineCount     uint32
	lastLineBegin int64
}

func (it *iterator) snapshot() snapshot {
	return snapshot{itr: it.itr, lineCount: it.lineCount, lastLineBegin: it.lastLineBegin}
}

func (it *iterator) restore(s snapshot) {
	it.itr = s.itr
	it.lineCount = s.lineCount
	it.lastLineBegin = s.lastLineBegin
}
