package grammar

import (
	"fmt"

	"ucc/grammar/symbol"
)

// derivesLambdaSet records which symbols can derive the empty string.
// Terminals and action symbols never do; λ always does.
type derivesLambdaSet map[symbol.Symbol]bool

func (dl derivesLambdaSet) derivesLambda(sym symbol.Symbol) bool {
	if sym.IsLambda() {
		return true
	}
	return dl[sym]
}

// genDerivesLambda iterates over the productions to a fixpoint. A
// non-terminal derives λ when some production's whole right-hand side does.
// An action symbol on the RHS keeps the production from deriving λ, the
// same way a terminal does.
func genDerivesLambda(prods *productionSet) derivesLambdaSet {
	dl := derivesLambdaSet{}
	for {
		changed := false
		for _, prod := range prods.getAllProductions() {
			rhsDerivesLambda := true
			for _, sym := range prod.rhs {
				rhsDerivesLambda = rhsDerivesLambda && dl.derivesLambda(sym)
			}
			if rhsDerivesLambda && !dl[prod.lhs] {
				dl[prod.lhs] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return dl
}

// firstOfLambda is the constant FIRST set of λ. Attempts to grow it are
// silently ignored; see firstSet.addToFirst.
var firstOfLambda = newSymbolSet(symbol.SymbolLambda)

type firstSet struct {
	set map[symbol.Symbol]*symbolSet
}

func newFirstSet(symTab *symbol.SymbolTable, prods *productionSet, dl derivesLambdaSet) *firstSet {
	fst := &firstSet{
		set: map[symbol.Symbol]*symbolSet{},
	}

	// FIRST(T) = {T} for every terminal; FIRST(N) starts with {λ} when N
	// derives λ, empty otherwise.
	for _, term := range symTab.TerminalSymbols() {
		fst.set[term] = newSymbolSet(term)
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		e := newSymbolSet()
		if dl[prod.lhs] {
			e.add(symbol.SymbolLambda)
		}
		fst.set[prod.lhs] = e
	}

	return fst
}

// findBySymbol returns the shared constant firstOfLambda for λ rather than
// a per-grammar entry: λ's FIRST set is the fixed {λ}, and addToFirst
// never grows it.
func (fst *firstSet) findBySymbol(sym symbol.Symbol) (*symbolSet, error) {
	if sym.IsLambda() {
		return firstOfLambda, nil
	}
	e, ok := fst.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", sym)
	}
	return e, nil
}

// addToFirst grows FIRST(owner). Growing λ's FIRST set is a silent no-op.
func (fst *firstSet) addToFirst(owner, sym symbol.Symbol) (bool, error) {
	if owner.IsLambda() {
		return false, nil
	}
	e, ok := fst.set[owner]
	if !ok {
		return false, fmt.Errorf("an entry of FIRST was not found; symbol: %v", owner)
	}
	return e.add(sym), nil
}

// computeFirst is FIRST over a symbol string. Action symbols are skipped;
// λ stays in the result only when every grammar symbol of the string can
// derive λ (or the string is empty).
func (fst *firstSet) computeFirst(syms []symbol.Symbol) (*symbolSet, error) {
	result := newSymbolSet()

	containsLambda := true
	for _, sym := range syms {
		if !sym.IsGrammarSymbol() {
			continue
		}

		symFirst, err := fst.findBySymbol(sym)
		if err != nil {
			return nil, err
		}
		result.mergeExceptLambda(symFirst)
		if !symFirst.containsLambda() {
			containsLambda = false
			break
		}
	}

	if containsLambda {
		result.add(symbol.SymbolLambda)
	}
	return result, nil
}

// genFirstSet seeds and iterates FIRST to a fixpoint.
func genFirstSet(symTab *symbol.SymbolTable, prods *productionSet, dl derivesLambdaSet) (*firstSet, error) {
	fst := newFirstSet(symTab, prods, dl)

	// Seed: a production whose first grammar symbol is a terminal puts
	// that terminal into FIRST(LHS).
	for _, prod := range prods.getAllProductions() {
		for _, sym := range prod.rhs {
			if !sym.IsGrammarSymbol() {
				continue
			}
			if sym.IsTerminal() {
				if _, err := fst.addToFirst(prod.lhs, sym); err != nil {
					return nil, err
				}
			}
			break
		}
	}

	for {
		changed := false
		for _, prod := range prods.getAllProductions() {
			rhsFirst, err := fst.computeFirst(prod.rhs)
			if err != nil {
				return nil, err
			}
			for _, sym := range rhsFirst.values() {
				added, err := fst.addToFirst(prod.lhs, sym)
				if err != nil {
					return nil, err
				}
				if added {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return fst, nil
}
