package network

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrEmptyNetwork      = errors.New("network has no nodes")
	ErrNodeOutOfRange    = errors.New("node index out of range")
	ErrNotDirected       = errors.New("graph is not directed")
	ErrInconsistent      = errors.New("graph adjacency is inconsistent")
	ErrNegativeNodeCount = errors.New("negative node count")
)

// GraphError provides structured error information for graph construction
// and inspection.
type GraphError struct {
	Op    string // Operation that failed (e.g., "Interpret", "Build")
	Node  int    // Node index involved, -1 if none
	Edge  int    // Edge position in the input list, -1 if none
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.Edge >= 0 && e.Node >= 0:
		return fmt.Sprintf("%s edge #%d (node %d): %v", e.Op, e.Edge, e.Node, e.Cause)
	case e.Edge >= 0:
		return fmt.Sprintf("%s edge #%d: %v", e.Op, e.Edge, e.Cause)
	case e.Node >= 0:
		return fmt.Sprintf("%s node %d: %v", e.Op, e.Node, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

func newGraphError(op string, node, edge int, cause error) *GraphError {
	return &GraphError{Op: op, Node: node, Edge: edge, Cause: cause}
}
