package traversal

import "fmt"

// MissingPropertyError records a save of a property the node does not have.
type MissingPropertyError struct {
	Key     string
	NodeKey string
}

// Error implements error.
func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("Key %s not found for node %s", e.Key, e.NodeKey)
}

// ErrorStrings returns the messages of errs in order.
func ErrorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}

	return out
}
