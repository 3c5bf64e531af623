package extract

import "errors"

var (
	// ErrEntryIO marks a member that could not be staged. It is logged and
	// counted, never returned to the caller that scheduled the task.
	ErrEntryIO = errors.New("entry extraction failed")

	ErrPoolClosed = errors.New("extraction pool is closed")
)
