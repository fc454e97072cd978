package grammar

import (
	"fmt"

	"ucc/grammar/symbol"
)

type productionNum uint32

const productionNumNil = productionNum(0)

func (n productionNum) Int() int {
	return int(n)
}

// Production is one rule of the loaded grammar. RHS symbols may be
// terminals, non-terminals, action symbols, or a single λ (for an empty
// right-hand side).
type Production struct {
	num     productionNum
	lhs     symbol.Symbol
	rhs     []symbol.Symbol
	predict *symbolSet
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("an empty RHS must be represented by λ; LHS: %v", lhs)
	}

	return &Production{
		lhs: lhs,
		rhs: rhs,
	}, nil
}

// Num is the production's 1-based number, dense in file order.
func (p *Production) Num() int {
	return p.num.Int()
}

func (p *Production) LHS() symbol.Symbol {
	return p.lhs
}

func (p *Production) RHS() []symbol.Symbol {
	return p.rhs
}

// GrammarSymbolCount counts the RHS symbols that occupy semantic-stack
// slots: terminals and non-terminals. Actions and λ do not count.
func (p *Production) GrammarSymbolCount() int {
	n := 0
	for _, sym := range p.rhs {
		if sym.IsTerminal() || sym.IsNonTerminal() {
			n++
		}
	}
	return n
}

// Predict is the production's PREDICT set. Populated by the analyzer;
// never contains λ.
func (p *Production) Predict() []symbol.Symbol {
	return p.predict.values()
}

type productionSet struct {
	lhs2Prods map[symbol.Symbol][]*Production
	num2Prod  []*Production
	num       productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*Production{},
		num2Prod:  []*Production{nil}, // production numbers are 1-based
		num:       productionNumNil,
	}
}

func (ps *productionSet) append(prod *Production) {
	ps.num++
	prod.num = ps.num
	ps.num2Prod = append(ps.num2Prod, prod)
	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
}

func (ps *productionSet) findByNum(num int) (*Production, bool) {
	if num < 1 || num >= len(ps.num2Prod) {
		return nil, false
	}
	return ps.num2Prod[num], true
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*Production, bool) {
	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

// getAllProductions returns productions in number order.
func (ps *productionSet) getAllProductions() []*Production {
	return ps.num2Prod[1:]
}

func (ps *productionSet) count() int {
	return int(ps.num)
}
