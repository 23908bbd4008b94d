package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind partitions failures the way callers need to branch on them.
// It is carried inside CustomizedError so call sites never string-match.
type Kind string

const (
	KIND_INTERNAL          Kind = "internal"
	KIND_INVALID_ARGUMENT  Kind = "invalid_argument"
	KIND_NOT_FOUND         Kind = "not_found"
	KIND_CONFLICT          Kind = "conflict"
	KIND_NOT_INDEXED       Kind = "not_indexed"
	KIND_INDEX_BUILD       Kind = "index_build_failed"
	KIND_GENERATION_FAILED Kind = "generation_failed"
)

type CustomizedError struct {
	cause   error
	message string
	trace   []string
	wrap    error
	code    int
	kind    Kind
}

func New(trace, message string, err error) *CustomizedError {
	return &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		code:    http.StatusInternalServerError,
		kind:    KIND_INTERNAL,
	}
}

func (e *CustomizedError) Code(c int) *CustomizedError {
	e.code = c
	return e
}

func (e *CustomizedError) GetCode() int {
	return e.code
}

func (e *CustomizedError) Kind(k Kind) *CustomizedError {
	e.kind = k
	return e
}

func (e *CustomizedError) GetKind() Kind {
	return e.kind
}

func (e *CustomizedError) Trace(trace string) *CustomizedError {
	e.trace = append(e.trace, trace)
	return e
}

func Wrap(err error, trace, message string) *CustomizedError {
	ce := &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		wrap:    err,
		code:    http.StatusInternalServerError,
		kind:    KIND_INTERNAL,
	}
	if income, ok := err.(*CustomizedError); ok {
		ce.code = income.code
		ce.kind = income.kind
	}
	return ce
}

func Trace(trace string, err error) *CustomizedError {
	if ce, ok := err.(*CustomizedError); ok {
		ce.trace = append(ce.trace, trace)
		return ce
	}
	return Wrap(err, trace, err.Error())
}

// Is reports whether err is a CustomizedError of the given kind,
// walking the wrap chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		ce, ok := err.(*CustomizedError)
		if !ok {
			return false
		}
		if ce.kind == kind {
			return true
		}
		err = ce.wrap
	}
	return false
}

func (e *CustomizedError) Message() string {
	if e.message == "" {
		return e.cause.Error()
	}
	return e.message
}

func (e *CustomizedError) Unwrap() error {
	return e.wrap
}

func (e *CustomizedError) Error() string {
	otherDetails := `""`
	if ce, ok := e.wrap.(*CustomizedError); ok {
		otherDetails = ce.Error()
	} else if e.wrap != nil {
		otherDetails = fmt.Sprint("\"", e.wrap.Error(), "\"")
	}
	return fmt.Sprintf(`{"trace":"%s","code":%d,"kind":"%s","msg":"%s","error":"%v","wrapd":%s}`, strings.Join(e.trace, "->"), e.code, e.kind, e.message, e.cause, otherDetails)
}
