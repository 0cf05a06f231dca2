package kfmt

import (
	"bytes"
	"io"
)

// PrefixWriter is an io.Writer that wraps another io.Writer and injects a
// prefix at the beginning of each line. It is used to tag the diagnostic
// output of a subsystem with a header such as "[BUDDY ]" or "[SCHED ]".
type PrefixWriter struct {
	// A writer where all writes get sent to.
	Sink io.Writer

	// The prefix injected at the beginning of each line.
	Prefix []byte

	bytesAfterPrefix int
}

// Write writes len(p) bytes from p to the underlying data stream and returns
// back the number of bytes written. The PrefixWriter keeps track of the
// beginning of new lines and injects the configured prefix at each new line.
// The injected prefix is not included in the number of written bytes returned
// by this method.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written int

	for len(p) != 0 {
		if w.bytesAfterPrefix == 0 {
			if _, err := w.Sink.Write(w.Prefix); err != nil {
				return written, err
			}
		}

		chunk := p
		if nlIndex := bytes.IndexByte(p, '\n'); nlIndex != -1 {
			chunk = p[:nlIndex+1]
		}

		n, err := w.Sink.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}

		if chunk[len(chunk)-1] == '\n' {
			w.bytesAfterPrefix = 0
		} else {
			w.bytesAfterPrefix += n
		}

		p = p[len(chunk):]
	}

	return written, nil
}
