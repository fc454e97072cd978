package driver

import (
	"fmt"
	"io"
	"strings"

	uerr "ucc/error"
)

// SemanticRoutines hosts the named action routines and the tuple emitter.
// Routines read and write semantic-stack frames through the `$$`/`$k`
// arguments of the action symbol that invoked them.
type SemanticRoutines struct {
	tracker  *uerr.Tracker
	stack    *SemanticStack
	symbols  *SymbolTable
	routines map[string]func(args []string)

	code     []string
	tupleNum int
	nextTemp int
}

func NewSemanticRoutines(stack *SemanticStack, symbols *SymbolTable, tracker *uerr.Tracker) *SemanticRoutines {
	sr := &SemanticRoutines{
		tracker: tracker,
		stack:   stack,
		symbols: symbols,
	}
	sr.routines = map[string]func(args []string){
		"assign":         sr.assign,
		"copy":           sr.copy,
		"finish":         sr.finish,
		"geninfix":       sr.genInfix,
		"processid":      sr.processID,
		"processliteral": sr.processLiteral,
		"processop":      sr.processOp,
		"readid":         sr.readID,
		"start":          sr.start,
		"writeexpr":      sr.writeExpr,
	}
	return sr
}

// ExecuteActionSymbol parses `#name(arg, …)` and dispatches the routine.
// Routine names are matched lowercased. An unknown routine is reported as
// an error against the language definition; the parse continues.
func (sr *SemanticRoutines) ExecuteActionSymbol(text string) {
	name := strings.TrimPrefix(text, "#")
	var args []string
	if lparen := strings.IndexByte(name, '('); lparen >= 0 {
		argText := name[lparen+1:]
		if rparen := strings.IndexByte(argText, ')'); rparen >= 0 {
			argText = argText[:rparen]
		}
		name = name[:lparen]
		if argText != "" {
			args = strings.Split(argText, ",")
		}
	}

	routine, ok := sr.routines[strings.ToLower(name)]
	if !ok {
		sr.tracker.ReportError(fmt.Sprintf("unknown semantic routine: %v", text))
		return
	}
	routine(args)
}

// Code returns the emitted program, in emission order.
func (sr *SemanticRoutines) Code() []string {
	return sr.code
}

// WriteCode writes the emitted program, one tuple per line.
func (sr *SemanticRoutines) WriteCode(w io.Writer) error {
	for _, tuple := range sr.code {
		if _, err := fmt.Fprintln(w, tuple); err != nil {
			return err
		}
	}
	return nil
}

// AllSymbols exposes the symbol-table snapshot for the generation trace.
func (sr *SemanticRoutines) AllSymbols() []string {
	return sr.symbols.AllSymbols()
}

// generate appends one tuple. Once any error has been recorded all
// emission is suppressed, so a failed parse never produces partial code.
func (sr *SemanticRoutines) generate(instruction string, operands ...string) {
	if sr.tracker.HasError() {
		return
	}
	sr.tupleNum++
	var b strings.Builder
	fmt.Fprintf(&b, "(%02d) (%v", sr.tupleNum, instruction)
	for _, operand := range operands {
		fmt.Fprintf(&b, ", %v", operand)
	}
	b.WriteString(")")
	sr.code = append(sr.code, b.String())
}

func (sr *SemanticRoutines) getTemp() SemanticRecord {
	sr.nextTemp++
	return NewExpressionRecord(ExpressionTemporary, fmt.Sprintf("Temp&%d", sr.nextTemp))
}

// start resets the temporary counter.
func (sr *SemanticRoutines) start(args []string) {
	sr.nextTemp = 0
}

func (sr *SemanticRoutines) finish(args []string) {
	sr.generate("HALT")
}

// processID wraps the most recently matched identifier, declares it on
// first use, and stores it at the target slot.
func (sr *SemanticRoutines) processID(args []string) {
	identifier := sr.stack.RecordAtCurrentMinusOne()
	rec := NewExpressionRecord(ExpressionID, identifier.Extract())
	sr.checkID(rec)
	*sr.stack.RecordFromArgument(args[0]) = rec
}

// checkID declares an identifier with the built-in integer type unless
// some visible scope already has it.
func (sr *SemanticRoutines) checkID(identifier SemanticRecord) {
	name := identifier.Extract()
	if _, found := sr.symbols.Find(name); found {
		return
	}
	sr.symbols.Add(name, SymbolAttributes{Type: AttributeInteger})
	sr.generate("DECLARE", name, AttributeInteger.String())
}

func (sr *SemanticRoutines) processLiteral(args []string) {
	literal := sr.stack.RecordAtCurrentMinusOne()
	*sr.stack.RecordFromArgument(args[0]) = NewExpressionRecord(ExpressionLiteral, literal.Extract())
}

func (sr *SemanticRoutines) processOp(args []string) {
	operator := sr.stack.RecordAtCurrentMinusOne()
	rec, err := NewOperatorRecord(operator.Extract())
	if err != nil {
		tok := operator.Token()
		if tok != nil {
			sr.tracker.ReportErrorAt(tok.Row, tok.Col, err.Error())
		} else {
			sr.tracker.ReportError(err.Error())
		}
	}
	*sr.stack.RecordFromArgument(args[0]) = rec
}

// copy moves frame[src] to frame[dst].
func (sr *SemanticRoutines) copy(args []string) {
	source := sr.stack.RecordFromArgument(args[0])
	*sr.stack.RecordFromArgument(args[1]) = *source
}

// assign emits the store of source into target.
func (sr *SemanticRoutines) assign(args []string) {
	target := sr.stack.RecordFromArgument(args[0])
	source := sr.stack.RecordFromArgument(args[1])
	sr.generate("ASSIGN", source.Operand(), target.Operand())
}

// genInfix emits `op e1 e2 temp` into a fresh temporary and stores the
// temporary at the result slot.
func (sr *SemanticRoutines) genInfix(args []string) {
	e1 := sr.stack.RecordFromArgument(args[0])
	op := sr.stack.RecordFromArgument(args[1])
	e2 := sr.stack.RecordFromArgument(args[2])

	temp := sr.getTemp()
	sr.generate(op.Extract(), e1.Operand(), e2.Operand(), temp.Extract())
	*sr.stack.RecordFromArgument(args[3]) = temp
}

func (sr *SemanticRoutines) readID(args []string) {
	variable := sr.stack.RecordFromArgument(args[0])
	sr.generate("READI", variable.Extract())
}

func (sr *SemanticRoutines) writeExpr(args []string) {
	expression := sr.stack.RecordFromArgument(args[0])
	sr.generate("WRITEI", expression.Operand())
}
