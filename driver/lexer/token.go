package lexer

import (
	"ucc/grammar/symbol"
)

// Token is one lexical unit of the source program. Terminal is always
// non-nil after a successful scan; the end-of-input token carries the
// synthetic lexeme `$` and EOF set.
type Token struct {
	Lexeme   string
	Terminal symbol.Symbol
	EOF      bool

	// Row and Col are the 1-based position of the token's first
	// character (for EOF, the position where end of input was observed).
	Row int
	Col int
}
