package query

import (
	"errors"
	"fmt"

	"github.com/roach88/caseset/internal/enum"
)

// Query error codes. Lookup failures keep their enum codes.
const (
	CodeParse   = "PARSE_ERROR"
	CodeInvalid = "INVALID_QUERY"
)

// Error is a parse or shape error in a pipeline.
type Error struct {
	Code    string
	Stage   int // 1-based stage index, 0 when not tied to a stage
	Message string
}

func (e *Error) Error() string {
	if e.Stage > 0 {
		return fmt.Sprintf("%s: stage %d: %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func parseErrorf(stage int, format string, args ...any) *Error {
	return &Error{Code: CodeParse, Stage: stage, Message: fmt.Sprintf(format, args...)}
}

func invalidf(stage int, format string, args ...any) *Error {
	return &Error{Code: CodeInvalid, Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the error code carried by err: an enum lookup code or a
// query code. It returns "" for other errors.
func CodeOf(err error) string {
	if code, ok := enum.CodeOf(err); ok {
		return string(code)
	}
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}
