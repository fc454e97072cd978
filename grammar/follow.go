package grammar

import (
	"fmt"

	"ucc/grammar/symbol"
)

type followSet struct {
	set map[symbol.Symbol]*symbolSet
}

func newFollowSet(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*symbolSet{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newSymbolSet()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*symbolSet, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", sym)
	}
	return e, nil
}

// genFollowSet seeds λ into FOLLOW(start) and iterates to a fixpoint over
// every occurrence of a non-terminal on a right-hand side. The suffix after
// an occurrence excludes action symbols.
func genFollowSet(prods *productionSet, first *firstSet, start symbol.Symbol) (*followSet, error) {
	flw := newFollowSet(prods)

	startFollow, err := flw.find(start)
	if err != nil {
		return nil, err
	}
	startFollow.add(symbol.SymbolLambda)

	for {
		changed := false
		for _, prod := range prods.getAllProductions() {
			for i, sym := range prod.rhs {
				if !sym.IsNonTerminal() {
					continue
				}

				e, err := flw.find(sym)
				if err != nil {
					return nil, err
				}

				var rest []symbol.Symbol
				for _, s := range prod.rhs[i+1:] {
					if s.IsGrammarSymbol() {
						rest = append(rest, s)
					}
				}

				firstOfRest, err := first.computeFirst(rest)
				if err != nil {
					return nil, err
				}

				if e.mergeExceptLambda(firstOfRest) {
					changed = true
				}
				if firstOfRest.containsLambda() {
					lhsFollow, err := flw.find(prod.lhs)
					if err != nil {
						return nil, err
					}
					if e.merge(lhsFollow) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return flw, nil
}
