// Package errs defines the error taxonomy shared by the division engine and
// the multi-repository coordinator (see spec §7).
package errs

import (
	"errors"
	"fmt"
)

// Kind is a closed enumeration of the error classes the engine can surface.
type Kind string

const (
	// InvalidInput covers malformed revision ranges, missing required
	// arguments, and invalid strategy/size tokens.
	InvalidInput Kind = "InvalidInput"
	// NotARepository is returned when the VCS collaborator rejects a path.
	NotARepository Kind = "NotARepository"
	// CyclicDependency is returned by dependencyOrder when the repository
	// graph has a cycle over present nodes.
	CyclicDependency Kind = "CyclicDependency"
	// VCSError wraps any collaborator failure during diff or commit creation.
	VCSError Kind = "VCSError"
	// ConfigLoadError marks a repository-manager persistence file that could
	// not be read or parsed. Non-fatal: callers fall back to an empty manager.
	ConfigLoadError Kind = "ConfigLoadError"
	// ConfigSaveError marks a repository-manager persistence write failure.
	// Fatal to the save call; the in-memory manager is left unchanged.
	ConfigSaveError Kind = "ConfigSaveError"
)

// Error is the typed wrapper every boundary returns, so callers can
// errors.As against a fixed taxonomy instead of matching on message text.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error of the given kind with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error of the given kind around an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether the first *Error in err's chain has the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
