package queue

import "fmt"

// PathCollisionError reports a select whose destination is already claimed
// by a pending selection or occupied on disk. It is recoverable: the caller
// may re-select with overwrite set, or pick another destination.
type PathCollisionError struct {
	Destination string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("a file already exists at %s", e.Destination)
}
