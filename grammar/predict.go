package grammar

import (
	"ucc/grammar/symbol"
)

// genPredictSets fills each production's PREDICT set:
// FIRST(RHS), with λ replaced by FOLLOW(LHS). The stored sets are λ-free.
func genPredictSets(prods *productionSet, first *firstSet, follow *followSet) error {
	for _, prod := range prods.getAllProductions() {
		predict, err := first.computeFirst(prod.rhs)
		if err != nil {
			return err
		}
		if predict.containsLambda() {
			lhsFollow, err := follow.find(prod.lhs)
			if err != nil {
				return err
			}
			predict.merge(lhsFollow)
		}
		predict.remove(symbol.SymbolLambda)
		prod.predict = predict
	}
	return nil
}

// PredictConflict reports two productions claiming the same predict-table
// cell. The grammar is then not LL(1); the later production wins, matching
// the loader's historical behavior, and the conflict surfaces as a warning.
type PredictConflict struct {
	NonTerminal symbol.Symbol
	Terminal    symbol.Symbol
	OldProd     int
	NewProd     int
}

// PredictTable maps (non-terminal, terminal) to a production number.
// 0 means no production.
type PredictTable struct {
	termCount int
	entries   []uint32
}

func genPredictTable(symTab *symbol.SymbolTable, prods *productionSet) (*PredictTable, []*PredictConflict) {
	ntCount := len(symTab.NonTerminalSymbols())
	termCount := len(symTab.TerminalSymbols())
	tab := &PredictTable{
		termCount: termCount,
		entries:   make([]uint32, (ntCount+1)*(termCount+1)),
	}

	var conflicts []*PredictConflict
	for _, prod := range prods.getAllProductions() {
		for _, term := range prod.predict.values() {
			cell := tab.index(prod.lhs, term)
			if old := tab.entries[cell]; old != 0 {
				conflicts = append(conflicts, &PredictConflict{
					NonTerminal: prod.lhs,
					Terminal:    term,
					OldProd:     int(old),
					NewProd:     prod.Num(),
				})
			}
			tab.entries[cell] = uint32(prod.num)
		}
	}
	return tab, conflicts
}

func (t *PredictTable) index(nonTerm, term symbol.Symbol) int {
	return nonTerm.Num().Int()*(t.termCount+1) + term.Num().Int()
}

// Lookup returns the number of the production to predict, or 0 when the
// cell is empty. It never fails.
func (t *PredictTable) Lookup(nonTerm, term symbol.Symbol) uint32 {
	if !nonTerm.IsNonTerminal() || !term.IsTerminal() {
		return 0
	}
	i := t.index(nonTerm, term)
	if i < 0 || i >= len(t.entries) {
		return 0
	}
	return t.entries[i]
}
