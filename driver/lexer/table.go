package lexer

import (
	"fmt"
	"strconv"
	"strings"

	uerr "ucc/error"
	"ucc/grammar/symbol"
	"ucc/spec"
)

// Action is what the scanner does on one (state, character-class) step.
type Action int

const (
	ActionError Action = iota
	ActionMoveAppend
	ActionMoveNoAppend
	ActionHaltAppend
	ActionHaltNoAppend
	ActionHaltReuse
)

var actionAcronyms = map[string]Action{
	"E":   ActionError,
	"MA":  ActionMoveAppend,
	"MNA": ActionMoveNoAppend,
	"HA":  ActionHaltAppend,
	"HNA": ActionHaltNoAppend,
	"HR":  ActionHaltReuse,
}

type entry struct {
	nextState int
	action    Action
	terminal  symbol.Symbol
}

var (
	synErrBadEntry    = fmt.Errorf("syntax error: a scanner table entry must be `E` or `nextState:action:terminalId`")
	synErrBadAction   = fmt.Errorf("syntax error: unknown scanner action acronym")
	synErrBadTerminal = fmt.Errorf("syntax error: a scanner table entry names an undeclared terminal id")
)

// Table is the finite-state transducer loaded from the scanner-table
// section. A character belongs to the first declared column whose
// predicate matches.
type Table struct {
	columns []string
	states  [][]entry
	symTab  *symbol.SymbolTable
}

// NewTable interprets the raw scanner-table rows. State numbers follow row
// order from 0; every halt entry's terminal id must be declared (or be one
// of the built-ins, 98 and 99).
func NewTable(ast *spec.ScannerTableNode, symTab *symbol.SymbolTable) (*Table, error) {
	t := &Table{
		columns: ast.Columns,
		symTab:  symTab,
	}

	for _, row := range ast.Rows {
		state := make([]entry, len(ast.Columns))
		for i, raw := range row.Entries {
			e, err := parseEntry(raw, symTab)
			if err != nil {
				return nil, &uerr.SpecError{
					Cause:  err,
					Detail: raw,
					Row:    row.Row,
				}
			}
			state[i] = e
		}
		t.states = append(t.states, state)
	}

	return t, nil
}

func parseEntry(raw string, symTab *symbol.SymbolTable) (entry, error) {
	if raw == "E" {
		return entry{action: ActionError}, nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return entry{}, synErrBadEntry
	}

	nextState, err := strconv.Atoi(parts[0])
	if err != nil || nextState < 0 {
		return entry{}, synErrBadEntry
	}

	action, ok := actionAcronyms[parts[1]]
	if !ok {
		return entry{}, synErrBadAction
	}

	id, err := strconv.Atoi(parts[2])
	if err != nil || id < 0 {
		return entry{}, synErrBadEntry
	}

	e := entry{
		nextState: nextState,
		action:    action,
	}
	switch action {
	case ActionHaltAppend, ActionHaltNoAppend, ActionHaltReuse:
		sym, ok := symTab.ToTerminalSymbol(symbol.TerminalID(id))
		if !ok {
			return entry{}, synErrBadTerminal
		}
		e.terminal = sym
	}
	return e, nil
}

// classify returns the index of the first column whose predicate matches
// ch, or -1 when none does.
func (t *Table) classify(ch byte) int {
	for i, class := range t.columns {
		switch class {
		case "letter":
			if isLetter(ch) {
				return i
			}
		case "digit":
			if ch >= '0' && ch <= '9' {
				return i
			}
		case "whitespace":
			if ch == ' ' || ch == '\t' {
				return i
			}
		case "EOL":
			if ch == '\n' {
				return i
			}
		case "Other":
			return i
		default:
			if ch == class[0] {
				return i
			}
		}
	}
	return -1
}

// lookup resolves the scanner step for ch in the given state. Anything
// outside the table is an error step.
func (t *Table) lookup(state int, ch byte) entry {
	col := t.classify(ch)
	if col < 0 || state < 0 || state >= len(t.states) {
		return entry{action: ActionError}
	}
	return t.states[state][col]
}

// checkReservedWord rewrites the halted terminal when the complete lexeme
// matches a reserved-word spelling, ignoring case. This post-check is what
// keeps the transition table language-independent: the table halts with a
// generic identifier terminal and the reserved-word map refines it.
func (t *Table) checkReservedWord(halted symbol.Symbol, lexeme string) symbol.Symbol {
	if sym, ok := t.symTab.LookupReservedWord(lexeme); ok {
		return sym
	}
	return halted
}

func (t *Table) isNoTerminal(sym symbol.Symbol) bool {
	id, ok := t.symTab.ToTerminalID(sym)
	return ok && id == symbol.TerminalIDNoTerminal
}

func (t *Table) eofSymbol() symbol.Symbol {
	sym, _ := t.symTab.ToTerminalSymbol(symbol.TerminalIDEof)
	return sym
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
