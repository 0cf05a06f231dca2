package kernel

import (
	"os"

	"slateos/kernel/kfmt"
)

var (
	// haltFn is mocked by tests.
	haltFn = func() { os.Exit(1) }

	errRuntimePanic = &Error{Module: "rt", Message: "unknown cause", Fatal: true}
)

// Panic outputs the supplied error (if not nil) to the active output sink and
// halts the system. Calls to Panic never return. Fatal errors produced by the
// memory and scheduling subsystems are expected to end up here; they are
// never downgraded to recoverable conditions.
func Panic(e interface{}) {
	var err *Error

	switch t := e.(type) {
	case *Error:
		err = t
	case string:
		errRuntimePanic.Message = t
		err = errRuntimePanic
	case error:
		errRuntimePanic.Message = t.Error()
		err = errRuntimePanic
	}

	kfmt.Printf("\n-----------------------------------\n")
	if err != nil {
		kfmt.Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	kfmt.Printf("*** kernel panic: system halted ***")
	kfmt.Printf("\n-----------------------------------\n")

	haltFn()
}
