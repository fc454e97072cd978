package grammar

import (
	"sort"
	"strings"
	"testing"

	"ucc/grammar/symbol"
	"ucc/spec"
)

// analysisGrammar exercises λ-derivations, FIRST/FOLLOW propagation, and
// the built-in end-of-input terminal. The scanner section is inert; these
// tests never scan.
const analysisGrammar = `
1 a
2 b
3 c
-----
Other
E
-----
<S> -> <A> <B> $
<A> -> a <A>
<A> ->
<B> -> b
<B> ->
<C> -> c
-----
<S>
`

func genGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := Builder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func mustSymbol(t *testing.T, g *Grammar, text string) symbol.Symbol {
	t.Helper()

	sym, ok := g.SymbolTable().ToSymbol(text)
	if !ok {
		t.Fatalf("a symbol was not found; symbol: %v", text)
	}
	return sym
}

func assertSymbolSet(t *testing.T, g *Grammar, got []symbol.Symbol, want []string) {
	t.Helper()

	gotNames := make([]string, len(got))
	for i, sym := range got {
		gotNames[i] = g.SymbolTable().Text(sym)
	}
	wantNames := append([]string{}, want...)
	sort.Strings(gotNames)
	sort.Strings(wantNames)

	if len(gotNames) != len(wantNames) {
		t.Fatalf("unexpected symbol set\nwant: %v\ngot: %v", wantNames, gotNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Fatalf("unexpected symbol set\nwant: %v\ngot: %v", wantNames, gotNames)
		}
	}
}
