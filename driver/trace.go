package driver

import (
	"fmt"
	"strings"

	"ucc/driver/lexer"
)

const (
	parseActionWidth = 17
	parseTokensWidth = 40

	// Sized to fit a GenInfix action symbol.
	genColumnWidth = 22
)

var genColumnNames = []string{
	"Remaining Tokens",
	"Parse Stack",
	"Semantic Stack",
	"Symbol Table",
	"Generated Code",
}

func (p *Parser) printToken(tok *lexer.Token) {
	if p.tokensW == nil {
		return
	}
	fmt.Fprintf(p.tokensW, "%v:%v: %v '%v'\n", tok.Row, tok.Col, p.symbolText(tok.Terminal), tok.Lexeme)
}

func (p *Parser) printParseHeader() {
	if p.parseW == nil {
		return
	}
	fmt.Fprintf(p.parseW, "%-*v | %-*v | %v\n", parseActionWidth, "Parser Action", parseTokensWidth, "Remaining Tokens", "Stack")
}

func (p *Parser) printParseStep(action, remaining, stack string) {
	if p.parseW == nil || p.tracker.HasError() {
		return
	}
	fmt.Fprintf(p.parseW, "%-*v | %-*v | %v\n", parseActionWidth, action, parseTokensWidth, remaining, stack)
}

// remainingTokensString renders the look-ahead and the unconsumed queue.
// The synthetic `$` look-ahead is omitted so the final steps do not show a
// stray end marker.
func (p *Parser) remainingTokensString() string {
	var b strings.Builder
	if p.lookahead != nil && !p.lookahead.EOF {
		b.WriteString(p.lookahead.Lexeme)
	}
	for _, tok := range p.lex.Remaining() {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(tok.Lexeme)
	}
	return b.String()
}

// stackString renders the parse stack top first.
func (p *Parser) stackString() string {
	var b strings.Builder
	for i := len(p.stack) - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p.itemString(p.stack[i]))
	}
	return b.String()
}

// printState dumps the full compiler state in five aligned columns. The
// header prints once; each step appends a block closed by a divider.
func (p *Parser) printState() {
	if p.genW == nil {
		return
	}

	if !p.genHeaderOut {
		p.genHeaderOut = true
		for i, name := range genColumnNames {
			if i > 0 {
				fmt.Fprint(p.genW, " | ")
			}
			fmt.Fprintf(p.genW, "%*v", genColumnWidth, name)
		}
		fmt.Fprintln(p.genW)
		p.printStateDivider()
	}

	var tokens []string
	if p.lookahead != nil && !p.lookahead.EOF {
		tokens = append(tokens, p.lookahead.Lexeme)
	}
	for _, tok := range p.lex.Remaining() {
		tokens = append(tokens, tok.Lexeme)
	}

	var stack []string
	for i := len(p.stack) - 1; i >= 0; i-- {
		stack = append(stack, p.itemString(p.stack[i]))
	}

	// The bottom semantic-stack element is the sentinel; skip it.
	var semantic []string
	records := p.semStack.Records()
	for _, rec := range records[1:] {
		semantic = append(semantic, rec.Extract())
	}

	symbols := p.routines.AllSymbols()
	code := p.routines.Code()

	tokenRows := packStrings(tokens, genColumnWidth)

	rows := len(tokenRows)
	for _, col := range [][]string{stack, semantic, symbols, code} {
		if len(col) > rows {
			rows = len(col)
		}
	}

	for row := 0; row < rows; row++ {
		fmt.Fprintf(p.genW, "%*v", genColumnWidth, at(tokenRows, row))
		fmt.Fprintf(p.genW, " | %*v", genColumnWidth, at(stack, row))
		fmt.Fprintf(p.genW, " | %*v", genColumnWidth, at(semantic, row))
		fmt.Fprintf(p.genW, " | %-*v", genColumnWidth, at(symbols, row))
		fmt.Fprintf(p.genW, " | %-*v", genColumnWidth, at(code, row))
		fmt.Fprintln(p.genW)
	}

	p.printStateDivider()
}

func (p *Parser) printStateDivider() {
	fmt.Fprintln(p.genW, strings.Repeat("-", (genColumnWidth+3)*len(genColumnNames)))
}

func at(col []string, row int) string {
	if row < len(col) {
		return col[row]
	}
	return ""
}

// packStrings fills rows of the given width with as many space-separated
// items as fit; an item wider than the row gets a row of its own.
func packStrings(items []string, width int) []string {
	var rows []string
	var b strings.Builder
	for _, item := range items {
		if b.Len() > 0 && b.Len()+len(item)+1 > width {
			rows = append(rows, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(item)
	}
	if b.Len() > 0 {
		rows = append(rows, b.String())
	}
	return rows
}
