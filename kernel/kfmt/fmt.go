// Package kfmt provides formatted diagnostic output for the kernel
// subsystems. Output produced before a sink is registered is accumulated in
// an early buffer and flushed once SetOutputSink is invoked by the boot code.
package kfmt

import (
	"bytes"
	"fmt"
	"io"
)

var (
	// earlyPrintBuffer stores Printf output that arrives before the boot
	// code registers an output sink.
	earlyPrintBuffer bytes.Buffer

	// outputSink is an io.Writer where Printf will send its output. If set
	// to nil, then the output will be redirected to the earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the default target for calls to Printf to w and copies
// any data accumulated in the earlyPrintBuffer to it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
		earlyPrintBuffer.Reset()
	}
}

// Printf formats its arguments according to the fmt formatting rules and
// writes the result to the currently active output sink.
func Printf(format string, args ...interface{}) {
	if outputSink == nil {
		fmt.Fprintf(&earlyPrintBuffer, format, args...)
		return
	}

	fmt.Fprintf(outputSink, format, args...)
}
