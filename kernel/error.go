package kernel

// Error describes a kernel error. All kernel errors must be defined as global
// variables that are pointers to the Error structure so that error paths
// inside the resource-management core do not allocate.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message.
	Message string

	// Fatal flags the error as unrecoverable. A fatal error indicates
	// state corruption or a violated boot contract; callers must not
	// retry or mask it but propagate it into a full-system halt via
	// Panic.
	Fatal bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
