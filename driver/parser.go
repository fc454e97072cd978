package driver

import (
	"fmt"
	"io"

	"ucc/driver/lexer"
	uerr "ucc/error"
	"ucc/grammar"
	"ucc/grammar/symbol"
)

// stackItem is one parse-stack element: a grammar symbol, or an
// end-of-production marker carrying a semantic-stack snapshot.
type stackItem struct {
	sym symbol.Symbol
	eop *EOP
}

type ParserOption func(p *Parser) error

// TraceTokens prints every token as the parser consumes it.
func TraceTokens(w io.Writer) ParserOption {
	return func(p *Parser) error {
		p.tokensW = w
		return nil
	}
}

// TraceParse prints the three-column parse trace: parser action, remaining
// tokens, parse stack.
func TraceParse(w io.Writer) ParserOption {
	return func(p *Parser) error {
		p.parseW = w
		return nil
	}
}

// TraceGeneration prints the five-column state dump after every parse
// step: remaining tokens, parse stack, semantic stack, symbol table,
// generated code.
func TraceGeneration(w io.Writer) ParserOption {
	return func(p *Parser) error {
		p.genW = w
		return nil
	}
}

// Parser is the LL(1) driver. It pops grammar symbols off the parse stack,
// predicts productions from the predict table, matches terminals against
// the look-ahead, executes action symbols, and restores semantic frames at
// end-of-production markers.
type Parser struct {
	gram     *grammar.Grammar
	lex      *lexer.Lexer
	tracker  *uerr.Tracker
	semStack *SemanticStack
	routines *SemanticRoutines

	stack     []stackItem
	lookahead *lexer.Token

	tokensW      io.Writer
	parseW       io.Writer
	genW         io.Writer
	genHeaderOut bool
}

func NewParser(gram *grammar.Grammar, lex *lexer.Lexer, semStack *SemanticStack, routines *SemanticRoutines, tracker *uerr.Tracker, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram:     gram,
		lex:      lex,
		tracker:  tracker,
		semStack: semStack,
		routines: routines,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse runs the driver until the parse stack empties. There is no
// distinct accept state: the parse succeeded when the stack is empty and
// no error was recorded. Every parse error is recovered by popping the
// offending stack symbol, so a single run can report several diagnostics;
// the first one closes the emission gate.
func (p *Parser) Parse() {
	p.printParseHeader()

	p.semStack.Initialize()
	p.stack = p.stack[:0]
	p.push(stackItem{sym: p.gram.StartSymbol()})

	p.lookahead = p.lex.Next()
	p.printToken(p.lookahead)
	p.printState()

	for len(p.stack) > 0 {
		var remaining, stackTrace string
		if p.parseW != nil {
			remaining = p.remainingTokensString()
			stackTrace = p.stackString()
		}
		action := ""

		top := p.top()
		switch {
		case top.eop != nil:
			p.semStack.Restore(*top.eop)
			p.pop()

		case top.sym.IsNonTerminal():
			num := p.gram.PredictTable().Lookup(top.sym, p.lookahead.Terminal)
			if num > 0 {
				action = fmt.Sprintf("Predict(%v)", num)
				p.predict(int(num))
			} else {
				p.tracker.ReportErrorAt(p.lookahead.Row, p.lookahead.Col,
					fmt.Sprintf("No production found for symbol %v and token %v.",
						p.symbolText(top.sym), p.symbolText(p.lookahead.Terminal)))
				p.pop()
			}

		case top.sym.IsTerminal():
			if top.sym == p.lookahead.Terminal {
				action = "Match"
				p.semStack.ReplaceAtCurrent(NewPlaceholderRecord(p.lookahead))
				p.pop()
				p.lookahead = p.lex.Next()
				p.printToken(p.lookahead)
			} else {
				p.tracker.ReportErrorAt(p.lookahead.Row, p.lookahead.Col,
					fmt.Sprintf("Expected %v, instead found %v.",
						p.symbolText(top.sym), p.symbolText(p.lookahead.Terminal)))
				p.pop()
			}

		case top.sym.IsAction():
			p.pop()
			p.routines.ExecuteActionSymbol(p.symbolText(top.sym))
		}

		p.printParseStep(action, remaining, stackTrace)
		p.printState()
	}
}

// predict replaces the non-terminal on top of the stack with an EOP marker
// and the production's right-hand side (λ is never pushed), then opens the
// semantic frame. The snapshot is taken before Expand mutates the indices.
func (p *Parser) predict(num int) {
	prod, ok := p.gram.Production(num)
	if !ok {
		return
	}

	p.pop()
	snapshot := p.semStack.EOPSnapshot()
	p.push(stackItem{eop: &snapshot})

	rhs := prod.RHS()
	for i := len(rhs) - 1; i >= 0; i-- {
		if rhs[i].IsLambda() {
			continue
		}
		p.push(stackItem{sym: rhs[i]})
	}

	p.semStack.Expand(prod.GrammarSymbolCount())
}

func (p *Parser) top() stackItem {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(item stackItem) {
	p.stack = append(p.stack, item)
}

func (p *Parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Parser) symbolText(sym symbol.Symbol) string {
	return p.gram.SymbolTable().Text(sym)
}

func (p *Parser) itemString(item stackItem) string {
	if item.eop != nil {
		return fmt.Sprintf("EOP(%v,%v,%v,%v)", item.eop.Current, item.eop.Left, item.eop.Right, item.eop.Top)
	}
	return p.symbolText(item.sym)
}
