package enum

import (
	"errors"
	"fmt"

	"github.com/roach88/caseset/internal/ir"
)

// Code categorizes lookup errors.
type Code string

const (
	// CodeNotFound indicates a must-succeed name or value lookup found nothing.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInvalidKey indicates a must-succeed key lookup matched no case.
	CodeInvalidKey Code = "INVALID_KEY"

	// CodeUnknownKey indicates a key names an attribute the enum does not declare.
	CodeUnknownKey Code = "UNKNOWN_KEY"

	// CodeUnsupported indicates a value operation on an unbacked enum, or an
	// unrecognized dynamic invocation name.
	CodeUnsupported Code = "UNSUPPORTED_OPERATION"
)

// ErrUnknownAttribute is returned (wrapped) by Set.Attribute for names the
// collaborator does not recognize.
var ErrUnknownAttribute = errors.New("unknown attribute")

// errMissingBackingValue is the detail behind UNSUPPORTED_OPERATION when the
// value key is resolved on an unbacked enum.
var errMissingBackingValue = errors.New("missing backing value")

// Error is returned by every failing lookup.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Enum is the SetName of the enum involved.
	Enum string

	// Key describes the key descriptor, when one was involved.
	Key string

	// Target is the requested name, value or key target, when one was involved.
	Target ir.IRValue

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the Code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

func hasCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// IsNotFound returns true if err is a NOT_FOUND error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidKey returns true if err is an INVALID_KEY error.
func IsInvalidKey(err error) bool { return hasCode(err, CodeInvalidKey) }

// IsUnknownKey returns true if err is an UNKNOWN_KEY error.
func IsUnknownKey(err error) bool { return hasCode(err, CodeUnknownKey) }

// IsUnsupported returns true if err is an UNSUPPORTED_OPERATION error.
func IsUnsupported(err error) bool { return hasCode(err, CodeUnsupported) }

func newNameNotFound(enum string, name ir.IRValue) *Error {
	return &Error{
		Code:    CodeNotFound,
		Enum:    enum,
		Key:     KeyName,
		Target:  name,
		Message: fmt.Sprintf("%s is not a valid name for enum %q", ir.Format(name), enum),
	}
}

func newValueNotFound(enum string, value ir.IRValue) *Error {
	return &Error{
		Code:    CodeNotFound,
		Enum:    enum,
		Key:     KeyValue,
		Target:  value,
		Message: fmt.Sprintf("%s is not a valid backing value for enum %q", ir.Format(value), enum),
	}
}

func newInvalidKey(enum, key string, target ir.IRValue) *Error {
	return &Error{
		Code:    CodeInvalidKey,
		Enum:    enum,
		Key:     key,
		Target:  target,
		Message: fmt.Sprintf("invalid value for the %s for enum %q", key, enum),
	}
}

func newUnknownKey(enum, name string, cause error) *Error {
	return &Error{
		Code:    CodeUnknownKey,
		Enum:    enum,
		Key:     name,
		Message: fmt.Sprintf("%q is not a valid key for enum %q", name, enum),
		Err:     cause,
	}
}

func newNotBacked(enum string) *Error {
	return &Error{
		Code:    CodeUnsupported,
		Enum:    enum,
		Key:     KeyValue,
		Message: fmt.Sprintf("enum %q is not backed", enum),
		Err:     errMissingBackingValue,
	}
}

func newUnsupportedCall(enum, name string) *Error {
	return &Error{
		Code:    CodeUnsupported,
		Enum:    enum,
		Key:     name,
		Message: fmt.Sprintf("%q is not a recognized lookup for enum %q", name, enum),
	}
}
