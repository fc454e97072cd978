package symbol

import (
	"fmt"
	"sort"
	"strings"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
	symbolKindAction      = symbolKind("action")
	symbolKindLambda      = symbolKind("lambda")
)

func (k symbolKind) String() string {
	return string(k)
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol is a compact handle for a grammar element. Productions, FIRST/FOLLOW
// sets, the predict table, and the parse stack all share symbols by handle;
// the SymbolTable owns the backing data.
type Symbol uint16

const (
	maskKindPart    = uint16(0xc000) // 1100 0000 0000 0000
	maskNonTerminal = uint16(0x0000)
	maskTerminal    = uint16(0x4000)
	maskAction      = uint16(0x8000)
	maskLambda      = uint16(0xc000)

	maskNumberPart = uint16(0x3fff)

	SymbolNil = Symbol(0)

	// SymbolLambda is the process-wide λ. Its FIRST set is the constant
	// {SymbolLambda}, and growing it is a silent no-op by contract.
	SymbolLambda = Symbol(maskLambda | 0x0001)

	symbolNumMin = SymbolNum(1)
	symbolNumMax = SymbolNum(0x3fff)
)

// TerminalID is a terminal's stable numeric id from the language-definition
// file. Ids 98 and 99 are reserved.
type TerminalID int

const (
	// TerminalIDNoTerminal marks scanner halts that yield no token
	// (whitespace, comments).
	TerminalIDNoTerminal = TerminalID(98)

	// TerminalIDEof is the end-of-input terminal. The scanner synthesizes
	// it; a bare `$` in a production refers to it.
	TerminalIDEof = TerminalID(99)

	terminalIDMax = TerminalID(99)
)

func (id TerminalID) Int() int {
	return int(id)
}

func newSymbol(kind symbolKind, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}

	var kindMask uint16
	switch kind {
	case symbolKindNonTerminal:
		kindMask = maskNonTerminal
	case symbolKindTerminal:
		kindMask = maskTerminal
	case symbolKindAction:
		kindMask = maskAction
	case symbolKindLambda:
		kindMask = maskLambda
	}
	return Symbol(kindMask | uint16(num)), nil
}

func (s Symbol) String() string {
	kind, num := s.describe()
	var prefix string
	switch kind {
	case symbolKindNonTerminal:
		prefix = "n"
	case symbolKindTerminal:
		prefix = "t"
	case symbolKindAction:
		prefix = "a"
	case symbolKindLambda:
		return "λ"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

func (s Symbol) Num() SymbolNum {
	_, num := s.describe()
	return num
}

func (s Symbol) IsNil() bool {
	_, num := s.describe()
	return num == 0
}

func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _ := s.describe()
	return kind == symbolKindNonTerminal
}

func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _ := s.describe()
	return kind == symbolKindTerminal
}

func (s Symbol) IsAction() bool {
	if s.IsNil() {
		return false
	}
	kind, _ := s.describe()
	return kind == symbolKindAction
}

func (s Symbol) IsLambda() bool {
	return s == SymbolLambda
}

// IsGrammarSymbol reports whether s participates in derivations. Action
// symbols are invisible to FIRST/FOLLOW computation.
func (s Symbol) IsGrammarSymbol() bool {
	return s.IsTerminal() || s.IsNonTerminal() || s.IsLambda()
}

func (s Symbol) describe() (symbolKind, SymbolNum) {
	var kind symbolKind
	switch uint16(s) & maskKindPart {
	case maskNonTerminal:
		kind = symbolKindNonTerminal
	case maskTerminal:
		kind = symbolKindTerminal
	case maskAction:
		kind = symbolKindAction
	case maskLambda:
		kind = symbolKindLambda
	}
	return kind, SymbolNum(uint16(s) & maskNumberPart)
}

const (
	// λ's name is not ASCII, so a grammar file cannot declare it. The two
	// built-in terminals are registered before any declaration, so a
	// terminal declared under either name is rejected as a duplicate.
	symbolNameLambda = "λ"

	TerminalNameEof        = "EofSym"
	TerminalNameNoTerminal = "NoTerminal"

	// LexemeEof is the synthetic lexeme of the end-of-input token.
	LexemeEof = "$"
)

// SymbolTable interns every symbol of a grammar and maps between handles,
// display text, and terminal ids.
type SymbolTable struct {
	text2Sym map[string]Symbol
	sym2Text map[Symbol]string

	id2Sym map[TerminalID]Symbol
	sym2ID map[Symbol]TerminalID

	reserved map[string]Symbol

	nonTermNum SymbolNum
	termNum    SymbolNum
	actionNum  SymbolNum
}

func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		text2Sym: map[string]Symbol{
			symbolNameLambda: SymbolLambda,
		},
		sym2Text: map[Symbol]string{
			SymbolLambda: symbolNameLambda,
		},
		id2Sym:     map[TerminalID]Symbol{},
		sym2ID:     map[Symbol]TerminalID{},
		reserved:   map[string]Symbol{},
		nonTermNum: symbolNumMin,
		termNum:    symbolNumMin,
		actionNum:  symbolNumMin,
	}

	// The two built-in terminals exist before the grammar file declares
	// anything.
	_, _ = t.RegisterTerminal(TerminalNameNoTerminal, TerminalIDNoTerminal, "")
	_, _ = t.RegisterTerminal(TerminalNameEof, TerminalIDEof, "")

	return t
}

func (t *SymbolTable) RegisterNonTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a %v", text, kindOf(sym))
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, t.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	t.nonTermNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	return sym, nil
}

func (t *SymbolTable) RegisterTerminal(text string, id TerminalID, reservedWord string) (Symbol, error) {
	if id < 0 || id > terminalIDMax {
		return SymbolNil, fmt.Errorf("a terminal id must be 0..%v; passed: %v", terminalIDMax.Int(), id.Int())
	}
	if prev, ok := t.id2Sym[id]; ok {
		return SymbolNil, fmt.Errorf("terminal id %v is already used by %v", id.Int(), t.sym2Text[prev])
	}
	if _, ok := t.text2Sym[text]; ok {
		return SymbolNil, fmt.Errorf("terminal %v is declared twice", text)
	}
	sym, err := newSymbol(symbolKindTerminal, t.termNum)
	if err != nil {
		return SymbolNil, err
	}
	t.termNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	t.id2Sym[id] = sym
	t.sym2ID[sym] = id
	if reservedWord != "" {
		t.reserved[strings.ToLower(reservedWord)] = sym
	}
	return sym, nil
}

func (t *SymbolTable) RegisterAction(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsAction() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a %v", text, kindOf(sym))
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindAction, t.actionNum)
	if err != nil {
		return SymbolNil, err
	}
	t.actionNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	return sym, nil
}

func (t *SymbolTable) ToSymbol(text string) (Symbol, bool) {
	sym, ok := t.text2Sym[text]
	return sym, ok
}

func (t *SymbolTable) ToText(sym Symbol) (string, bool) {
	text, ok := t.sym2Text[sym]
	return text, ok
}

// Text is ToText for contexts that cannot fail usefully; unknown handles
// render as the debug form.
func (t *SymbolTable) Text(sym Symbol) string {
	if text, ok := t.sym2Text[sym]; ok {
		return text
	}
	return sym.String()
}

func (t *SymbolTable) ToTerminalID(sym Symbol) (TerminalID, bool) {
	id, ok := t.sym2ID[sym]
	return id, ok
}

func (t *SymbolTable) ToTerminalSymbol(id TerminalID) (Symbol, bool) {
	sym, ok := t.id2Sym[id]
	return sym, ok
}

// LookupReservedWord reports the terminal whose reserved-word spelling
// matches the lexeme, ignoring case.
func (t *SymbolTable) LookupReservedWord(lexeme string) (Symbol, bool) {
	sym, ok := t.reserved[strings.ToLower(lexeme)]
	return sym, ok
}

// ReservedWordOf reports the reserved-word spelling attached to a
// terminal, if any.
func (t *SymbolTable) ReservedWordOf(sym Symbol) (string, bool) {
	for word, s := range t.reserved {
		if s == sym {
			return word, true
		}
	}
	return "", false
}

// TerminalSymbols returns all terminals in declaration order, the built-ins
// first.
func (t *SymbolTable) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, t.termNum.Int()-symbolNumMin.Int())
	for sym := range t.sym2ID {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// NonTerminalSymbols returns all non-terminals in declaration order.
func (t *SymbolTable) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, t.nonTermNum.Int()-symbolNumMin.Int())
	for sym := range t.sym2Text {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

func kindOf(sym Symbol) symbolKind {
	kind, _ := sym.describe()
	return kind
}

// Compare orders symbols by handle, which is kind-major and then
// declaration order. Used as a gods comparator for symbol sets.
func Compare(a, b interface{}) int {
	sa := a.(Symbol)
	sb := b.(Symbol)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
