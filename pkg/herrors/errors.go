// Package herrors provides a tagged, timestamped error type for the
// orchestration engine. Every failure surfaced across OpDoc, the
// ServiceRegistry, JobStore, and the HTTP surfaces carries one of the Kinds
// below so the HTTP layer can map it to a status code in one place instead
// of inspecting error strings.
package herrors

import (
	"fmt"
	"runtime"
	"time"
)

// Kind categorizes an error by how the caller should react to it.
type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindNotFound           Kind = "NOT_FOUND"
	KindForbidden          Kind = "FORBIDDEN"
	KindExternalValidation Kind = "EXTERNAL_VALIDATION" // registry no-match, schema mismatch
	KindUnsupported        Kind = "UNSUPPORTED"
	KindConflict           Kind = "CONFLICT" // terminal work item re-completion
	KindServer             Kind = "SERVER"
)

// Location captures where an error was constructed, for log correlation.
type Location struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Error is Harmony's rich error type. It is always constructed through
// Builder so every site that raises one records a Kind.
type Error struct {
	Kind      Kind                   `json:"kind"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Location  *Location              `json:"location,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
	CauseText string                 `json:"cause,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match on Kind, since two Harmony errors of the same
// kind are considered equivalent for control-flow purposes.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// WithContext records a context key/value pair, mutating and returning the
// same error so call sites can chain it after construction.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Build returns e itself, so a convenience constructor's result can end a
// chain with .Build() the same way a Builder does.
func (e *Error) Build() *Error { return e }

// Builder provides the fluent construction API used throughout the engine.
type Builder struct {
	err *Error
}

// New starts a builder defaulted to KindServer; call Kind to override.
func New() *Builder {
	return &Builder{err: &Error{Timestamp: time.Now(), Kind: KindServer}}
}

func (b *Builder) Kind(k Kind) *Builder {
	b.err.Kind = k
	return b
}

func (b *Builder) Message(msg string) *Builder {
	b.err.Message = msg
	return b
}

func (b *Builder) Messagef(format string, args ...interface{}) *Builder {
	b.err.Message = fmt.Sprintf(format, args...)
	return b
}

func (b *Builder) Context(key string, value interface{}) *Builder {
	b.err.WithContext(key, value)
	return b
}

func (b *Builder) Cause(cause error) *Builder {
	b.err.Cause = cause
	if cause != nil {
		b.err.CauseText = cause.Error()
	}
	return b
}

// WithLocation captures the caller's file/line/function for the error.
func (b *Builder) WithLocation() *Builder {
	pc, file, line, ok := runtime.Caller(1)
	if ok {
		fn := runtime.FuncForPC(pc)
		name := ""
		if fn != nil {
			name = fn.Name()
		}
		b.err.Location = &Location{File: file, Line: line, Function: name}
	}
	return b
}

func (b *Builder) Build() *Error { return b.err }

// Convenience constructors for the most common kinds, mirroring how
// validation/not-found/conflict errors are raised throughout JobStore and
// the registry.
func Validation(format string, args ...interface{}) *Error {
	return New().Kind(KindValidation).Messagef(format, args...).WithLocation().Build()
}

func NotFound(format string, args ...interface{}) *Error {
	return New().Kind(KindNotFound).Messagef(format, args...).WithLocation().Build()
}

func Conflict(format string, args ...interface{}) *Error {
	return New().Kind(KindConflict).Messagef(format, args...).WithLocation().Build()
}

func Unsupported(format string, args ...interface{}) *Error {
	return New().Kind(KindUnsupported).Messagef(format, args...).WithLocation().Build()
}

func ExternalValidation(format string, args ...interface{}) *Error {
	return New().Kind(KindExternalValidation).Messagef(format, args...).WithLocation().Build()
}

func Internal(cause error, format string, args ...interface{}) *Error {
	return New().Kind(KindServer).Messagef(format, args...).Cause(cause).WithLocation().Build()
}

// KindOf extracts the Kind of err if it is (or wraps) a *Error, returning
// KindServer as the safe default for opaque errors.
func KindOf(err error) Kind {
	var he *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			he = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if he == nil {
		return KindServer
	}
	return he.Kind
}
