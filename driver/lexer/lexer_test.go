package lexer

import (
	"bytes"
	"strings"
	"testing"

	uerr "ucc/error"
	"ucc/grammar"
	"ucc/grammar/symbol"
	"ucc/spec"
)

// scanGrammar declares identifiers, integer literals, a `+` operator, two
// reserved words, and `--`-to-end-of-line comments. A lone `-` has no
// token and must trip the error action.
const scanGrammar = `
1 Id
2 IntLiteral
3 PlusOp
4 BeginSym begin
5 EndSym end
-----
letter digit whitespace EOL - + Other
1:MA:0 2:MA:0 0:MNA:0 0:MNA:0 3:MA:0 0:HA:3 E
1:MA:0 1:MA:0 0:HR:1 0:HR:1 0:HR:1 0:HR:1 0:HR:1
E 2:MA:0 0:HR:2 0:HR:2 0:HR:2 0:HR:2 0:HR:2
E E E E 4:MNA:0 E E
4:MNA:0 4:MNA:0 4:MNA:0 0:HNA:98 4:MNA:0 4:MNA:0 4:MNA:0
-----
<program> -> BeginSym EndSym
-----
<program>
`

func newTestLexer(t *testing.T, source string) (*Lexer, *uerr.Tracker, *bytes.Buffer) {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(scanGrammar))
	if err != nil {
		t.Fatal(err)
	}
	b := grammar.Builder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	table, err := NewTable(ast.ScannerTable, g.SymbolTable())
	if err != nil {
		t.Fatal(err)
	}

	diag := &bytes.Buffer{}
	tracker := uerr.NewTracker(diag, "test.src")
	lex, err := NewLexer(table, strings.NewReader(source), tracker)
	if err != nil {
		t.Fatal(err)
	}
	return lex, tracker, diag
}

func testToken(lexeme, terminal string, row, col int) *Token {
	return &Token{
		Lexeme: lexeme,
		Row:    row,
		Col:    col,
	}
}

func assertTokens(t *testing.T, lex *Lexer, want []*Token, names map[symbol.Symbol]string, terminals []string) {
	t.Helper()

	for i, wantTok := range want {
		got := lex.Next()
		if got.Lexeme != wantTok.Lexeme {
			t.Errorf("unexpected lexeme at #%v\nwant: %#v\ngot: %#v", i, wantTok.Lexeme, got.Lexeme)
		}
		if names[got.Terminal] != terminals[i] {
			t.Errorf("unexpected terminal at #%v\nwant: %v\ngot: %v", i, terminals[i], names[got.Terminal])
		}
		if wantTok.Row != 0 && (got.Row != wantTok.Row || got.Col != wantTok.Col) {
			t.Errorf("unexpected position at #%v\nwant: %v:%v\ngot: %v:%v", i, wantTok.Row, wantTok.Col, got.Row, got.Col)
		}
	}
}

func terminalNames(t *testing.T) map[symbol.Symbol]string {
	t.Helper()

	// Rebuild the name map from the grammar used by newTestLexer.
	ast, err := spec.Parse(strings.NewReader(scanGrammar))
	if err != nil {
		t.Fatal(err)
	}
	b := grammar.Builder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	names := map[symbol.Symbol]string{}
	for _, sym := range g.SymbolTable().TerminalSymbols() {
		names[sym] = g.SymbolTable().Text(sym)
	}
	return names
}

func TestLexer_TokenStream(t *testing.T) {
	lex, tracker, _ := newTestLexer(t, "begin X1 + 42 end\n")
	names := terminalNames(t)

	assertTokens(t, lex,
		[]*Token{
			testToken("begin", "BeginSym", 1, 1),
			testToken("X1", "Id", 1, 7),
			testToken("+", "PlusOp", 1, 10),
			testToken("42", "IntLiteral", 1, 12),
			testToken("end", "EndSym", 1, 15),
		},
		names,
		[]string{"BeginSym", "Id", "PlusOp", "IntLiteral", "EndSym"},
	)

	if tracker.HasError() {
		t.Error("a clean source must scan without errors")
	}
}

func TestLexer_ReservedWordsIgnoreCase(t *testing.T) {
	lex, _, _ := newTestLexer(t, "BEGIN End\n")
	names := terminalNames(t)

	assertTokens(t, lex,
		[]*Token{
			testToken("BEGIN", "BeginSym", 1, 1),
			testToken("End", "EndSym", 1, 7),
		},
		names,
		[]string{"BeginSym", "EndSym"},
	)
}

func TestLexer_CommentsYieldNoToken(t *testing.T) {
	lex, tracker, _ := newTestLexer(t, "begin -- this is ignored\nend\n")
	names := terminalNames(t)

	assertTokens(t, lex,
		[]*Token{
			testToken("begin", "BeginSym", 1, 1),
			testToken("end", "EndSym", 2, 1),
		},
		names,
		[]string{"BeginSym", "EndSym"},
	)

	if tracker.HasError() {
		t.Error("a comment must not raise an error")
	}
}

func TestLexer_InvalidTokenRecovers(t *testing.T) {
	lex, tracker, diag := newTestLexer(t, "begin - end\n")
	names := terminalNames(t)

	assertTokens(t, lex,
		[]*Token{
			testToken("begin", "BeginSym", 1, 1),
			testToken("end", "EndSym", 0, 0),
		},
		names,
		[]string{"BeginSym", "EndSym"},
	)

	if tracker.ErrorCount() != 1 {
		t.Fatalf("unexpected error count: %v", tracker.ErrorCount())
	}
	if !strings.Contains(diag.String(), "invalid token") {
		t.Errorf("unexpected diagnostic: %v", diag.String())
	}
}

func TestLexer_EOFRepeats(t *testing.T) {
	lex, _, _ := newTestLexer(t, "begin\n")

	lex.Next() // begin
	for i := 0; i < 3; i++ {
		tok := lex.Next()
		if !tok.EOF {
			t.Fatal("scanning past the end must keep returning EOF")
		}
		if tok.Lexeme != symbol.LexemeEof {
			t.Errorf("the EOF token must carry the synthetic lexeme $; got: %#v", tok.Lexeme)
		}
	}
}

func TestLexer_EOFPosition(t *testing.T) {
	lex, _, _ := newTestLexer(t, "begin end\n")

	lex.Next()
	lex.Next()
	tok := lex.Next()
	if !tok.EOF {
		t.Fatal("expected the EOF token")
	}
	if tok.Row != 2 || tok.Col != 1 {
		t.Errorf("unexpected EOF position\nwant: 2:1\ngot: %v:%v", tok.Row, tok.Col)
	}
}

func TestLexer_Remaining(t *testing.T) {
	lex, _, _ := newTestLexer(t, "begin 1 end\n")

	if got := len(lex.Remaining()); got != 3 {
		t.Fatalf("unexpected remaining count: %v", got)
	}
	lex.Next()
	remaining := lex.Remaining()
	if len(remaining) != 2 {
		t.Fatalf("unexpected remaining count: %v", len(remaining))
	}
	if remaining[0].Lexeme != "1" || remaining[1].Lexeme != "end" {
		t.Errorf("unexpected remaining tokens: %v, %v", remaining[0].Lexeme, remaining[1].Lexeme)
	}
}
