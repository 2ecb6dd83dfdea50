package analysis

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// Common sentinel errors
var (
	// ErrInvalidInput rejects a run before any work starts.
	ErrInvalidInput = errors.New("invalid analysis input")
	// ErrInconsistent marks a broken graph invariant found during a pass.
	ErrInconsistent = network.ErrInconsistent
	// ErrAlreadyStarted is returned by a second Start or Execute.
	ErrAlreadyStarted = errors.New("analysis run already started")
	// ErrCancelled is the cause carried by passes that observed cancellation.
	ErrCancelled = algorithms.ErrCancelled
)

// AnalysisError provides structured error information for a failed run.
type AnalysisError struct {
	Op    string // Operation that failed (e.g., "NewRun", "Run")
	Pass  string // Analysis pass (e.g., "sweep"), empty outside a pass
	Node  int    // Node index, -1 if not applicable
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	switch {
	case e.Pass != "" && e.Node >= 0:
		return fmt.Sprintf("%s %s (node %d): %v", e.Op, e.Pass, e.Node, e.Cause)
	case e.Pass != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Pass, e.Cause)
	case e.Node >= 0:
		return fmt.Sprintf("%s (node %d): %v", e.Op, e.Node, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *AnalysisError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func invalidInput(node int, format string, args ...any) error {
	return &AnalysisError{
		Op:    "NewRun",
		Node:  node,
		Cause: fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...)),
	}
}

func passError(pass string, cause error) error {
	return &AnalysisError{Op: "Run", Pass: pass, Node: -1, Cause: cause}
}
