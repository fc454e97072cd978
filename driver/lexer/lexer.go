package lexer

import (
	"fmt"
	"io"

	uerr "ucc/error"
	"ucc/grammar/symbol"
)

// Lexer drives the scanner table over a source program. The whole source
// is tokenized up front into an ordered queue so the parser can show the
// remaining input while tracing; Next pops from the front and keeps
// returning the end-of-input token once the queue drains.
type Lexer struct {
	toks   []*Token
	pos    int
	eofTok *Token
}

func NewLexer(table *Table, src io.Reader, tracker *uerr.Tracker) (*Lexer, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	run := &scanRun{
		table:   table,
		tracker: tracker,
		src:     data,
		row:     1,
		col:     1,
	}

	l := &Lexer{}
	for {
		tok := run.next()
		if tok == nil {
			break
		}
		l.toks = append(l.toks, tok)
	}
	l.eofTok = &Token{
		Lexeme:   symbol.LexemeEof,
		Terminal: table.eofSymbol(),
		EOF:      true,
		Row:      run.row,
		Col:      run.col,
	}
	return l, nil
}

// Next returns the next token. Past the end of input it returns the EOF
// token indefinitely.
func (l *Lexer) Next() *Token {
	if l.pos >= len(l.toks) {
		return l.eofTok
	}
	tok := l.toks[l.pos]
	l.pos++
	return tok
}

// Remaining returns the unconsumed tail of the token queue, excluding the
// EOF token.
func (l *Lexer) Remaining() []*Token {
	return l.toks[l.pos:]
}

// scanRun is the state of the pre-run over the source bytes.
type scanRun struct {
	table   *Table
	tracker *uerr.Tracker
	src     []byte
	cursor  int
	row     int
	col     int
}

func (r *scanRun) peek() (byte, bool) {
	if r.cursor >= len(r.src) {
		return 0, false
	}
	return r.src[r.cursor], true
}

func (r *scanRun) consume() {
	ch := r.src[r.cursor]
	r.cursor++
	if ch == '\n' {
		r.row++
		r.col = 1
	} else {
		r.col++
	}
}

// next scans one token, or returns nil at end of input. Lexical errors are
// reported and scanning restarts from a fresh token; halts on the
// no-terminal id (whitespace, comments) restart the same way.
func (r *scanRun) next() *Token {
	var lexeme []byte
	state := 0
	startRow, startCol := 0, 0

	reset := func() {
		lexeme = lexeme[:0]
		state = 0
		startRow, startCol = 0, 0
	}

	markStart := func() {
		if startRow == 0 {
			startRow, startCol = r.row, r.col
		}
	}

	for {
		ch, ok := r.peek()
		if !ok {
			// A lexeme pending at end of input yields no token; the
			// parser sees the EOF token instead.
			return nil
		}

		e := r.table.lookup(state, ch)
		switch e.action {
		case ActionError:
			markStart()
			lexeme = append(lexeme, ch)
			errRow, errCol := r.row, r.col
			r.consume()
			r.tracker.ReportErrorAt(errRow, errCol, fmt.Sprintf("invalid token: '%s'", lexeme))
			reset()

		case ActionMoveAppend:
			markStart()
			lexeme = append(lexeme, ch)
			state = e.nextState
			r.consume()

		case ActionMoveNoAppend:
			state = e.nextState
			r.consume()

		case ActionHaltAppend:
			markStart()
			lexeme = append(lexeme, ch)
			term := r.table.checkReservedWord(e.terminal, string(lexeme))
			r.consume()
			if r.table.isNoTerminal(term) {
				reset()
				continue
			}
			return &Token{Lexeme: string(lexeme), Terminal: term, Row: startRow, Col: startCol}

		case ActionHaltNoAppend:
			markStart()
			term := r.table.checkReservedWord(e.terminal, string(lexeme))
			r.consume()
			if r.table.isNoTerminal(term) {
				reset()
				continue
			}
			return &Token{Lexeme: string(lexeme), Terminal: term, Row: startRow, Col: startCol}

		case ActionHaltReuse:
			markStart()
			term := r.table.checkReservedWord(e.terminal, string(lexeme))
			if r.table.isNoTerminal(term) {
				reset()
				continue
			}
			return &Token{Lexeme: string(lexeme), Terminal: term, Row: startRow, Col: startCol}
		}
	}
}
