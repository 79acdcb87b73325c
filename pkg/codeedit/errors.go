package codeedit

import (
	"errors"
	"fmt"

	"github.com/yaklabco/reindent/pkg/syntax"
)

// Sentinel errors wrapped by FatalEditError.
var (
	// ErrForeignInjection is reported when an edit reaches an injection node
	// that was not approved with ApproveInjection.
	ErrForeignInjection = errors.New("foreign language injection cannot be edited without approval")

	// ErrAnchorLost is reported when a node cannot be recovered after formatting.
	ErrAnchorLost = errors.New("anchor node lost during formatting")
)

// FatalEditError aborts the enclosing edit command. The tree is left as it was
// before the failing operation started.
type FatalEditError struct {
	// Op is the operation that failed, e.g. "add" or "format".
	Op string

	// Node is the offending node.
	Node *syntax.Node

	// Err is the underlying cause.
	Err error
}

func (e *FatalEditError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Node, e.Err)
}

func (e *FatalEditError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if err is or wraps a FatalEditError.
func IsFatal(err error) bool {
	var fatal *FatalEditError
	return errors.As(err, &fatal)
}

// checkInjections fails if any node, or any node below it, is an unapproved injection.
func checkInjections(op string, nodes ...*syntax.Node) error {
	for _, node := range nodes {
		found := syntax.FindFirst(node, func(n *syntax.Node) bool {
			return n.IsInjection() && !n.Meta.InjectionApproved
		})
		if found != nil {
			return &FatalEditError{Op: op, Node: found, Err: ErrForeignInjection}
		}
	}
	return nil
}
