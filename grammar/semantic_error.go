package grammar

import "fmt"

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error: %s", e.message)
}
