package loader

import "fmt"

// DanglingReferenceError reports an edge upsert whose source or target
// node is absent from the store. The affected row is skipped and logged;
// the rest of the table still loads.
type DanglingReferenceError struct {
	Kind   string
	Source string
	Target string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: %s from %s to %s", e.Kind, e.Source, e.Target)
}
