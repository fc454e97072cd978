package grammar

import (
	"strings"

	uerr "ucc/error"
	"ucc/grammar/symbol"
	"ucc/spec"
)

var (
	semErrUndefinedTerminal = newSemanticError("undefined terminal symbol; check it against the terminals declared at the top of the language definition")
	semErrUndefinedStart    = newSemanticError("the start symbol is not a defined non-terminal")
	semErrDuplicateTerminal = newSemanticError("invalid terminal declaration")
	semErrInvalidProduction = newSemanticError("invalid production")
)

// Grammar is the analyzed grammar: symbols, numbered productions, the
// start symbol, and the LL(1) analysis results.
type Grammar struct {
	symbolTable   *symbol.SymbolTable
	productionSet *productionSet
	start         symbol.Symbol

	derivesLambda derivesLambdaSet
	first         *firstSet
	follow        *followSet
	predictTable  *PredictTable
	conflicts     []*PredictConflict
}

// Builder turns a parsed language definition into an analyzed Grammar.
type Builder struct {
	AST *spec.RootNode
}

func (b *Builder) Build() (*Grammar, error) {
	symTab := symbol.NewSymbolTable()

	for _, term := range b.AST.Terminals {
		_, err := symTab.RegisterTerminal(term.Name, symbol.TerminalID(term.ID), term.ReservedWord)
		if err != nil {
			return nil, &uerr.SpecError{
				Cause:  semErrDuplicateTerminal,
				Detail: err.Error(),
				Row:    term.Row,
			}
		}
	}

	prods := newProductionSet()
	for _, prodNode := range b.AST.Productions {
		lhs, err := symTab.RegisterNonTerminal(prodNode.LHS)
		if err != nil {
			return nil, &uerr.SpecError{
				Cause:  semErrInvalidProduction,
				Detail: err.Error(),
				Row:    prodNode.Row,
			}
		}

		var rhs []symbol.Symbol
		for _, name := range prodNode.RHS {
			sym, err := b.makeRHSSymbol(symTab, name, prodNode.Row)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, sym)
		}
		if len(rhs) == 0 {
			rhs = []symbol.Symbol{symbol.SymbolLambda}
		}

		prod, err := newProduction(lhs, rhs)
		if err != nil {
			return nil, err
		}
		prods.append(prod)
	}

	start, ok := symTab.ToSymbol(b.AST.Start.Name)
	if !ok || !start.IsNonTerminal() {
		return nil, &uerr.SpecError{
			Cause:  semErrUndefinedStart,
			Detail: b.AST.Start.Name,
			Row:    b.AST.Start.Row,
		}
	}

	g := &Grammar{
		symbolTable:   symTab,
		productionSet: prods,
		start:         start,
	}
	if err := g.analyze(); err != nil {
		return nil, err
	}
	return g, nil
}

// makeRHSSymbol resolves one RHS token: `<…>` is a non-terminal, `$` is the
// built-in end-of-input terminal, `#…` is an action symbol, and anything
// else must be a declared terminal name.
func (b *Builder) makeRHSSymbol(symTab *symbol.SymbolTable, name string, row int) (symbol.Symbol, error) {
	switch {
	case strings.HasPrefix(name, "<"):
		return symTab.RegisterNonTerminal(name)
	case name == symbol.LexemeEof:
		sym, _ := symTab.ToTerminalSymbol(symbol.TerminalIDEof)
		return sym, nil
	case strings.HasPrefix(name, "#"):
		return symTab.RegisterAction(name)
	default:
		sym, ok := symTab.ToSymbol(name)
		if !ok || !sym.IsTerminal() {
			return symbol.SymbolNil, &uerr.SpecError{
				Cause:  semErrUndefinedTerminal,
				Detail: name,
				Row:    row,
			}
		}
		return sym, nil
	}
}

// analyze runs the four attribute computations in their fixed order.
func (g *Grammar) analyze() error {
	g.derivesLambda = genDerivesLambda(g.productionSet)

	first, err := genFirstSet(g.symbolTable, g.productionSet, g.derivesLambda)
	if err != nil {
		return err
	}
	g.first = first

	follow, err := genFollowSet(g.productionSet, g.first, g.start)
	if err != nil {
		return err
	}
	g.follow = follow

	if err := genPredictSets(g.productionSet, g.first, g.follow); err != nil {
		return err
	}
	g.predictTable, g.conflicts = genPredictTable(g.symbolTable, g.productionSet)
	return nil
}

func (g *Grammar) SymbolTable() *symbol.SymbolTable {
	return g.symbolTable
}

func (g *Grammar) StartSymbol() symbol.Symbol {
	return g.start
}

// Production returns the production with the given 1-based number.
func (g *Grammar) Production(num int) (*Production, bool) {
	return g.productionSet.findByNum(num)
}

func (g *Grammar) ProductionCount() int {
	return g.productionSet.count()
}

// Productions returns all productions in number order.
func (g *Grammar) Productions() []*Production {
	return g.productionSet.getAllProductions()
}

func (g *Grammar) ProductionsByLHS(lhs symbol.Symbol) []*Production {
	prods, _ := g.productionSet.findByLHS(lhs)
	return prods
}

func (g *Grammar) PredictTable() *PredictTable {
	return g.predictTable
}

// PredictConflicts lists the LL(1) violations found while building the
// predict table; empty for an LL(1) grammar.
func (g *Grammar) PredictConflicts() []*PredictConflict {
	return g.conflicts
}

func (g *Grammar) DerivesLambda(sym symbol.Symbol) bool {
	return g.derivesLambda.derivesLambda(sym)
}

// First returns FIRST(sym) for a terminal or non-terminal.
func (g *Grammar) First(sym symbol.Symbol) ([]symbol.Symbol, error) {
	e, err := g.first.findBySymbol(sym)
	if err != nil {
		return nil, err
	}
	return e.values(), nil
}

// Follow returns FOLLOW(sym) for a non-terminal.
func (g *Grammar) Follow(sym symbol.Symbol) ([]symbol.Symbol, error) {
	e, err := g.follow.find(sym)
	if err != nil {
		return nil, err
	}
	return e.values(), nil
}
