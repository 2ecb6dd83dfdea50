package algorithms

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// ErrCancelled is returned when a pass observes its cancellation check.
var ErrCancelled = errors.New("computation cancelled")

// cancelCheckInterval is how many nodes a per-node pass processes between
// cancellation checks.
const cancelCheckInterval = 256

// inconsistent wraps network.ErrInconsistent with traversal context.
func inconsistent(source, node int, format string, args ...any) error {
	return fmt.Errorf("%w: source %d node %d: %s",
		network.ErrInconsistent, source, node, fmt.Sprintf(format, args...))
}

func checkCancelled(cancelled func() bool, i int) error {
	if cancelled != nil && i%cancelCheckInterval == 0 && cancelled() {
		return ErrCancelled
	}
	return nil
}
