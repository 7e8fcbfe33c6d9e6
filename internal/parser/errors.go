package parser

import (
	"fmt"

	"github.com/echosoar/jsi-sub000/internal/lexer"
)

// ParseError is a structured SyntaxError with its source position, following
// the teacher's pattern of attaching a Position to every diagnostic rather
// than formatting a bare string.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SyntaxError: %s at %s", e.Message, e.Pos)
}
