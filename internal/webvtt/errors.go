package webvtt

import "fmt"

// ErrorCode identifies the kind of a ParseError.
type ErrorCode int

const (
	BadSignature ErrorCode = 0
	BadTimeStamp ErrorCode = 1
)

func (c ErrorCode) String() string {
	switch c {
	case BadSignature:
		return "BadSignature"
	case BadTimeStamp:
		return "BadTimeStamp"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

func (c ErrorCode) defaultMessage() string {
	switch c {
	case BadSignature:
		return "Malformed WebVTT signature."
	case BadTimeStamp:
		return "Malformed time stamp."
	default:
		return "Malformed input."
	}
}

// ParseError is reported through Handlers.OnParsingError. A BadSignature is
// fatal to the session, a BadTimeStamp only discards the current cue.
type ParseError struct {
	Code    ErrorCode
	Message string
	// 1-based input line, 0 when the error is not tied to a line
	Line int
}

var (
	ErrBadSignature = &ParseError{Code: BadSignature, Message: BadSignature.defaultMessage()}
	ErrBadTimeStamp = &ParseError{Code: BadTimeStamp, Message: BadTimeStamp.defaultMessage()}
)

func newParseError(code ErrorCode, message string) *ParseError {
	if message == "" {
		message = code.defaultMessage()
	}
	return &ParseError{Code: code, Message: message}
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("webvtt: line %d: %s", e.Line, e.Message)
	}
	return "webvtt: " + e.Message
}

// Is matches any ParseError carrying the same code.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// InvalidValueError is returned by cue setters for values outside the
// accepted range or set.
type InvalidValueError struct {
	Field string
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("webvtt: invalid %s value %v", e.Field, e.Value)
}
