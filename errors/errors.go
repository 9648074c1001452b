package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // code unit to UTF-8 transcoding
	PhaseParse  Phase = "parse"  // config string parsing
	PhaseTrack  Phase = "track"  // session slot tracking
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidScalar Kind = "invalid_scalar"
	KindSyntax        Kind = "syntax"
	KindDuplicateKey  Kind = "duplicate_key"
	KindInvalidInput  Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Index  int // position in the input (code unit index or byte offset), -1 if not set
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Index >= 0 {
		fmt.Fprintf(&b, " (index %d)", e.Index)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Index: -1,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Index sets the input position
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidScalar creates an error for a code unit that cannot form a Unicode
// scalar value. The unit is widened to uint32 regardless of input width and
// carried in Value; index is its position in the input slice.
func InvalidScalar(phase Phase, reason string, unit uint32, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidScalar,
		Detail: fmt.Sprintf("%s 0x%X", reason, unit),
		Value:  unit,
		Index:  index,
	}
}

// Syntax creates a config string syntax error at a byte offset
func Syntax(index int, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Detail: detail,
		Index:  index,
	}
}

// DuplicateKey creates an error for a key that appears twice in a config string
func DuplicateKey(index int, key string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindDuplicateKey,
		Detail: fmt.Sprintf("duplicate key %q", key),
		Value:  key,
		Index:  index,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
		Index:  -1,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Index:  -1,
	}
}

// Scalar extracts the offending code unit from an encode error, widened to
// uint32. The second return is false if err does not carry one.
func Scalar(err error) (uint32, bool) {
	var e *Error
	if !stderrors.As(err, &e) {
		return 0, false
	}
	v, ok := e.Value.(uint32)
	return v, ok
}

// Index extracts the input position from an error. The second return is
// false if err does not carry one.
func Index(err error) (int, bool) {
	var e *Error
	if !stderrors.As(err, &e) {
		return 0, false
	}
	if e.Index < 0 {
		return 0, false
	}
	return e.Index, true
}
