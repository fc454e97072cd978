package driver

import (
	"fmt"

	"ucc/driver/lexer"
)

// RecordKind discriminates the semantic-record variants. The zero value is
// the error record, which is what freshly expanded stack slots hold.
type RecordKind int

const (
	RecordError RecordKind = iota
	RecordExpression
	RecordOperator
	RecordPlaceholder
)

type ExpressionKind int

const (
	ExpressionID ExpressionKind = iota
	ExpressionLiteral
	ExpressionTemporary
)

type Operator int

const (
	OperatorAdd Operator = iota
	OperatorSub
)

// SemanticRecord is one cell of the semantic stack.
type SemanticRecord struct {
	kind     RecordKind
	exprKind ExpressionKind
	op       Operator
	value    string
	token    *lexer.Token
}

func NewExpressionRecord(kind ExpressionKind, value string) SemanticRecord {
	return SemanticRecord{
		kind:     RecordExpression,
		exprKind: kind,
		value:    value,
	}
}

// NewOperatorRecord parses an infix operator lexeme, `+` or `-`.
func NewOperatorRecord(text string) (SemanticRecord, error) {
	var op Operator
	switch text {
	case "+":
		op = OperatorAdd
	case "-":
		op = OperatorSub
	default:
		return SemanticRecord{}, fmt.Errorf("invalid operator: '%v'", text)
	}
	return SemanticRecord{
		kind: RecordOperator,
		op:   op,
	}, nil
}

// NewPlaceholderRecord wraps a matched token until a semantic routine
// consumes it.
func NewPlaceholderRecord(tok *lexer.Token) SemanticRecord {
	return SemanticRecord{
		kind:  RecordPlaceholder,
		token: tok,
	}
}

func (r SemanticRecord) Kind() RecordKind {
	return r.kind
}

func (r SemanticRecord) ExpressionKind() ExpressionKind {
	return r.exprKind
}

func (r SemanticRecord) Token() *lexer.Token {
	return r.token
}

// Extract renders the record as an instruction operand: an expression's
// value, an operator's opcode, a placeholder's lexeme. Error records render
// empty.
func (r SemanticRecord) Extract() string {
	switch r.kind {
	case RecordExpression:
		return r.value
	case RecordOperator:
		if r.op == OperatorSub {
			return "SUBI"
		}
		return "ADDI"
	case RecordPlaceholder:
		return r.token.Lexeme
	}
	return ""
}

// Operand renders the record as an instruction operand reference: integer
// literals and temporaries stand for themselves, anything else is a
// variable reference wrapped in Addr().
func (r SemanticRecord) Operand() string {
	s := r.Extract()
	if len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		return s
	}
	if r.kind == RecordExpression && r.exprKind == ExpressionTemporary {
		return s
	}
	return "Addr(" + s + ")"
}

// Equal compares by variant and rendered form.
func (r SemanticRecord) Equal(other SemanticRecord) bool {
	return r.kind == other.kind && r.Extract() == other.Extract()
}
