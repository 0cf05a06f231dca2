// Command slateos boots the resource management core in a hosted environment.
// It is primarily a development harness: it loads the boot configuration,
// runs the allocator and scheduler smoke tests and dumps the final state of
// the managed memory zone.
package main

import (
	"flag"
	"os"

	"slateos/kernel"
	"slateos/kernel/kfmt"
	"slateos/kernel/kmain"
)

func main() {
	configPath := flag.String("config", "boot.json", "path to the boot configuration file")
	flag.Parse()

	kfmt.SetOutputSink(&kfmt.PrefixWriter{
		Sink:   os.Stdout,
		Prefix: []byte("[slateos] "),
	})

	if err := kmain.Kmain(*configPath); err != nil {
		kernel.Panic(err)
	}
}
