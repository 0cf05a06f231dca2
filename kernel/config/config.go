// Package config loads the boot-time configuration for the resource
// management core. The configuration selects exactly one scheduling policy
// and describes the geometry of the physical memory zone handed to the buddy
// allocator.
package config

import (
	"encoding/json"
	"os"

	"slateos/kernel"
)

// Config is the root of the boot configuration file.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler"`
	Memory    MemoryConfig    `json:"memory"`
}

// SchedulerConfig selects the scheduling policy for this boot. Algorithm must
// name one of the policies registered by the sched package; leaving it empty
// is a boot-time error.
type SchedulerConfig struct {
	Algorithm string `json:"algorithm"`
}

// MemoryConfig describes the physical memory zone managed by the buddy
// allocator.
type MemoryConfig struct {
	ZoneName  string `json:"zone_name"`
	BaseFrame uint64 `json:"base_frame"`
	PageCount uint32 `json:"page_count"`
}

// Load reads the JSON configuration file at path into cfg. A missing or
// malformed file is a fatal boot error; the core cannot pick defaults on
// behalf of the dispatcher.
func Load(path string, cfg *Config) *kernel.Error {
	f, err := os.Open(path)
	if err != nil {
		return &kernel.Error{Module: "config", Message: err.Error(), Fatal: true}
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return &kernel.Error{Module: "config", Message: err.Error(), Fatal: true}
	}

	return nil
}
