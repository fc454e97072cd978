package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"ucc/grammar/symbol"
)

// ProductionString renders a production as it appeared in the language
// definition, e.g. `<statement> -> Id AssignOp <expression>`.
func (g *Grammar) ProductionString(p *Production) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", g.symbolTable.Text(p.lhs))
	for _, sym := range p.rhs {
		fmt.Fprintf(&b, " %v", g.symbolTable.Text(sym))
	}
	return b.String()
}

func (g *Grammar) symbolSetString(syms []symbol.Symbol) string {
	var b strings.Builder
	b.WriteString("{")
	for i, sym := range syms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.symbolTable.Text(sym))
	}
	b.WriteString("}")
	return b.String()
}

// WriteDescription prints the grammar definition and the analysis results:
// productions, start symbol, terminals, non-terminals, then the FIRST,
// FOLLOW, and PREDICT sets.
func (g *Grammar) WriteDescription(w io.Writer) {
	fmt.Fprintf(w, "Grammar Definition\n==================\n\n")

	fmt.Fprintf(w, "Productions\n-----------\n")
	for _, prod := range g.Productions() {
		fmt.Fprintf(w, "%v. %v\n", prod.Num(), g.ProductionString(prod))
	}
	fmt.Fprintf(w, "\nStart Symbol: %v\n\n", g.symbolTable.Text(g.start))

	fmt.Fprintf(w, "Terminal Symbols\n----------------\n")
	for _, term := range g.symbolTable.TerminalSymbols() {
		id, _ := g.symbolTable.ToTerminalID(term)
		if word, ok := g.symbolTable.ReservedWordOf(term); ok {
			fmt.Fprintf(w, "%v (id %v, reserved word %v)\n", g.symbolTable.Text(term), id.Int(), word)
		} else {
			fmt.Fprintf(w, "%v (id %v)\n", g.symbolTable.Text(term), id.Int())
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Non-Terminal Symbols\n--------------------\n")
	for _, nt := range g.symbolTable.NonTerminalSymbols() {
		fmt.Fprintf(w, "%v\n", g.symbolTable.Text(nt))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Grammar Analysis\n================\n\n")

	fmt.Fprintf(w, "First Sets\n----------\n")
	for _, term := range g.symbolTable.TerminalSymbols() {
		first, _ := g.First(term)
		fmt.Fprintf(w, "%v = %v\n", g.symbolTable.Text(term), g.symbolSetString(first))
	}
	for _, nt := range g.symbolTable.NonTerminalSymbols() {
		first, err := g.First(nt)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%v = %v\n", g.symbolTable.Text(nt), g.symbolSetString(first))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Follow Sets\n-----------\n")
	for _, nt := range g.symbolTable.NonTerminalSymbols() {
		follow, err := g.Follow(nt)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%v = %v\n", g.symbolTable.Text(nt), g.symbolSetString(follow))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Predict Sets\n------------\n")
	for _, prod := range g.Productions() {
		fmt.Fprintf(w, "%v = %v\n", g.ProductionString(prod), g.symbolSetString(prod.Predict()))
	}
	fmt.Fprintln(w)
}

// WritePredictTable renders the predict table as a matrix: one row per
// non-terminal, one column per terminal that predicts at least one
// production.
func (g *Grammar) WritePredictTable(w io.Writer) error {
	terms := g.symbolTable.TerminalSymbols()
	nonTerms := g.symbolTable.NonTerminalSymbols()

	// Hide terminals whose column is entirely empty.
	used := make([]symbol.Symbol, 0, len(terms))
	for _, term := range terms {
		for _, nt := range nonTerms {
			if g.predictTable.Lookup(nt, term) != 0 {
				used = append(used, term)
				break
			}
		}
	}

	header := make([]string, 0, len(used)+1)
	header = append(header, "")
	for _, term := range used {
		header = append(header, g.symbolTable.Text(term))
	}

	data := pterm.TableData{header}
	for _, nt := range nonTerms {
		row := make([]string, 0, len(used)+1)
		row = append(row, g.symbolTable.Text(nt))
		for _, term := range used {
			if num := g.predictTable.Lookup(nt, term); num != 0 {
				row = append(row, fmt.Sprintf("%v", num))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, rendered)
	return nil
}
