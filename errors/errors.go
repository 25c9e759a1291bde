package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a document defect.
type ErrorCode string

const (
	// ErrParse indicates the document text could not be parsed.
	ErrParse ErrorCode = "sdf-parse-error"
	// ErrUnknownRoot indicates the document root element is not <sdf>.
	ErrUnknownRoot ErrorCode = "sdf-unknown-root"
	// ErrMissingName indicates an entity is missing its name attribute.
	ErrMissingName ErrorCode = "sdf-missing-name"
	// ErrDuplicateName indicates a name collision within a scope.
	ErrDuplicateName ErrorCode = "sdf-duplicate-name"
	// ErrMissingLink indicates a model declares no link and no canonical link.
	ErrMissingLink ErrorCode = "sdf-model-without-link"
	// ErrPoseSyntax indicates a pose value is not six numbers.
	ErrPoseSyntax ErrorCode = "sdf-pose-syntax"
	// ErrReservedName indicates a declared entity uses a reserved name.
	ErrReservedName ErrorCode = "sdf-reserved-name"

	// ErrUnresolvedReference indicates an attached_to or relative_to name
	// has no matching entity in the applicable scope.
	ErrUnresolvedReference ErrorCode = "frame-unresolved-reference"
	// ErrCycle indicates an attachment or pose graph contains a cycle.
	ErrCycle ErrorCode = "frame-graph-cycle"
	// ErrUnresolvedGraph indicates pose resolution was requested against a
	// graph with outstanding validation defects.
	ErrUnresolvedGraph ErrorCode = "frame-unresolved-graph"
)

// Diagnostic describes a single document defect with the names involved.
//
//nolint:errname // public API name uses SDF domain term.
type Diagnostic struct {
	Code    ErrorCode
	Message string
	Scope   string   // owning world or model name, empty for the root
	Source  string   // entity the defect originates from
	Target  string   // referenced name, when the defect involves one
	Path    []string // cycle path for ErrCycle, in walk order
}

// DiagnosticList is an error that aggregates one or more diagnostics.
type DiagnosticList []Diagnostic //nolint:errname // list type, keep for API symmetry.

// Error returns a compact summary of the collected diagnostics.
func (d DiagnosticList) Error() string {
	switch len(d) {
	case 0:
		return "no diagnostics"
	case 1:
		return d[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", d[0].Error(), len(d)-1)
	}
}

// Empty reports whether the list holds no diagnostics.
func (d DiagnosticList) Empty() bool {
	return len(d) == 0
}

// ErrOrNil returns the list as an error, or nil when it is empty.
func (d DiagnosticList) ErrOrNil() error {
	if len(d) == 0 {
		return nil
	}
	return d
}

// Error formats the diagnostic for display, including code and context names.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "diagnostic <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", d.Code, d.Message))
	if d.Scope != "" {
		b.WriteString(fmt.Sprintf(" in scope %q", d.Scope))
	}
	if d.Source != "" {
		b.WriteString(fmt.Sprintf(" (source: %s)", d.Source))
	}
	if d.Target != "" {
		b.WriteString(fmt.Sprintf(" (target: %s)", d.Target))
	}
	if len(d.Path) > 0 {
		b.WriteString(fmt.Sprintf(" (path: %s)", strings.Join(d.Path, " -> ")))
	}
	return b.String()
}

// New builds a diagnostic with a code, message, and owning scope.
func New(code ErrorCode, scope, msg string) Diagnostic {
	return Diagnostic{Code: code, Message: msg, Scope: scope}
}

// Newf formats a message and builds a diagnostic.
func Newf(code ErrorCode, scope, format string, args ...any) Diagnostic {
	return New(code, scope, fmt.Sprintf(format, args...))
}

// AsDiagnostics extracts diagnostics from an error returned by load or
// validation helpers.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	list, ok := asDiagnosticList(err)
	if !ok {
		return nil, false
	}
	return []Diagnostic(list), true
}

func asDiagnosticList(err error) (DiagnosticList, bool) {
	if err == nil {
		return nil, false
	}
	var list DiagnosticList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *DiagnosticList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	var single *Diagnostic
	if errors.As(err, &single) && single != nil {
		return DiagnosticList{*single}, true
	}

	return nil, false
}
