package kfmt

import (
	"bytes"
	"testing"
)

func TestPrintfBeforeAndAfterSinkRegistration(t *testing.T) {
	defer func() {
		outputSink = nil
		earlyPrintBuffer.Reset()
	}()

	// Output emitted before a sink is registered must be buffered.
	Printf("zone %s: %d free pages\n", "normal", 512)

	if outputSink != nil {
		t.Fatal("expected outputSink to be nil before SetOutputSink is called")
	}

	var buf bytes.Buffer
	SetOutputSink(&buf)

	if exp, got := "zone normal: 512 free pages\n", buf.String(); got != exp {
		t.Fatalf("expected early output %q to be flushed to the sink; got %q", exp, got)
	}

	buf.Reset()
	Printf("order %2d ", 3)

	if exp, got := "order  3 ", buf.String(); got != exp {
		t.Fatalf("expected output %q; got %q", exp, got)
	}
}
