package grammar

import (
	"strings"
	"testing"

	uerr "ucc/error"
	"ucc/grammar/symbol"
	"ucc/spec"
)

func TestGrammarBuilder_ProductionNumbering(t *testing.T) {
	g := genGrammar(t, analysisGrammar)

	if g.ProductionCount() != 6 {
		t.Fatalf("unexpected production count: %v", g.ProductionCount())
	}
	for num := 1; num <= g.ProductionCount(); num++ {
		prod, ok := g.Production(num)
		if !ok {
			t.Fatalf("a production was not found; number: %v", num)
		}
		if prod.Num() != num {
			t.Errorf("production numbers must be dense; want: %v, got: %v", num, prod.Num())
		}
	}

	if _, ok := g.Production(0); ok {
		t.Error("production 0 must not exist")
	}
	if _, ok := g.Production(7); ok {
		t.Error("a production past the last number must not exist")
	}
}

func TestGrammarBuilder_EmptyRHSBecomesLambda(t *testing.T) {
	g := genGrammar(t, analysisGrammar)

	prod, _ := g.Production(3) // <A> ->
	rhs := prod.RHS()
	if len(rhs) != 1 || !rhs[0].IsLambda() {
		t.Fatalf("an ε-production must store exactly [λ]; got: %v", rhs)
	}
	if prod.GrammarSymbolCount() != 0 {
		t.Errorf("λ must not count as a semantic slot; got: %v", prod.GrammarSymbolCount())
	}
}

func TestGrammarBuilder_EOFTerminal(t *testing.T) {
	g := genGrammar(t, analysisGrammar)

	prod, _ := g.Production(1) // <S> -> <A> <B> $
	rhs := prod.RHS()
	eof := rhs[len(rhs)-1]
	id, ok := g.SymbolTable().ToTerminalID(eof)
	if !ok || id != symbol.TerminalIDEof {
		t.Errorf("a bare $ must resolve to the built-in EOF terminal; got id: %v", id)
	}
}

func TestGrammarBuilder_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
		row     int
	}{
		{
			caption: "undeclared terminal in a production",
			src: `
1 a
-----
Other
E
-----
<S> -> b
-----
<S>
`,
			cause: semErrUndefinedTerminal,
			row:   7,
		},
		{
			caption: "start symbol is not a defined non-terminal",
			src: `
1 a
-----
Other
E
-----
<S> -> a
-----
<T>
`,
			cause: semErrUndefinedStart,
			row:   9,
		},
		{
			caption: "duplicate terminal id",
			src: `
1 a
1 b
-----
Other
E
-----
<S> -> a
-----
<S>
`,
			cause: semErrDuplicateTerminal,
			row:   3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			b := Builder{
				AST: ast,
			}
			_, err = b.Build()
			if err == nil {
				t.Fatal("an expected error didn't occur")
			}
			specErr, ok := err.(*uerr.SpecError)
			if !ok {
				t.Fatalf("unexpected error type: %T (%v)", err, err)
			}
			if specErr.Cause != tt.cause {
				t.Errorf("unexpected cause\nwant: %v\ngot: %v", tt.cause, specErr.Cause)
			}
			if specErr.Row != tt.row {
				t.Errorf("unexpected row\nwant: %v\ngot: %v", tt.row, specErr.Row)
			}
		})
	}
}

func TestGrammar_ProductionString(t *testing.T) {
	g := genGrammar(t, analysisGrammar)

	prod, _ := g.Production(1)
	want := "<S> -> <A> <B> EofSym"
	if got := g.ProductionString(prod); got != want {
		t.Errorf("unexpected rendering\nwant: %v\ngot: %v", want, got)
	}

	prod, _ = g.Production(3)
	want = "<A> -> λ"
	if got := g.ProductionString(prod); got != want {
		t.Errorf("unexpected rendering\nwant: %v\ngot: %v", want, got)
	}
}
