package grammar

import (
	"testing"
)

func TestGenFollow(t *testing.T) {
	g := genGrammar(t, analysisGrammar)

	tests := []struct {
		sym    string
		follow []string
	}{
		// λ is seeded into FOLLOW(start).
		{sym: "<S>", follow: []string{"λ"}},
		{sym: "<A>", follow: []string{"b", "EofSym"}},
		{sym: "<B>", follow: []string{"EofSym"}},
		{sym: "<C>", follow: []string{}},
	}
	for _, tt := range tests {
		follow, err := g.Follow(mustSymbol(t, g, tt.sym))
		if err != nil {
			t.Fatal(err)
		}
		assertSymbolSet(t, g, follow, tt.follow)
	}
}

func TestGenFollow_LambdaSuffixPropagatesLHSFollow(t *testing.T) {
	g := genGrammar(t, `
1 a
2 b
-----
Other
E
-----
<S> -> <X> b
<X> -> <Y> <Z>
<Y> -> a
<Z> ->
-----
<S>
`)

	// The suffix after <Y> can derive λ, so FOLLOW(<Y>) includes
	// FOLLOW(<X>).
	follow, err := g.Follow(mustSymbol(t, g, "<Y>"))
	if err != nil {
		t.Fatal(err)
	}
	assertSymbolSet(t, g, follow, []string{"b"})

	follow, err = g.Follow(mustSymbol(t, g, "<Z>"))
	if err != nil {
		t.Fatal(err)
	}
	assertSymbolSet(t, g, follow, []string{"b"})
}

func TestGenFollow_ActionsExcludedFromSuffix(t *testing.T) {
	g := genGrammar(t, `
1 a
2 b
-----
Other
E
-----
<S> -> <X> #emit($1) b
<X> -> a
-----
<S>
`)

	// The action between <X> and b is not part of the grammar suffix.
	follow, err := g.Follow(mustSymbol(t, g, "<X>"))
	if err != nil {
		t.Fatal(err)
	}
	assertSymbolSet(t, g, follow, []string{"b"})
}
