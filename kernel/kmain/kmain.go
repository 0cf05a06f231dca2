// Package kmain wires the resource management subsystems together at boot:
// it loads the configuration file, brings up the physical page allocator and
// the scheduler, and exercises them with a short workload so a misconfigured
// system fails before any real task is admitted.
package kmain

import (
	"slateos/kernel"
	"slateos/kernel/config"
	"slateos/kernel/kfmt"
	"slateos/kernel/mem/pmm"
	"slateos/kernel/mem/pmm/buddy"
	"slateos/kernel/sched"
)

// bootTaskCount is the number of synthetic tasks admitted to the run queue
// during the boot smoke test.
const bootTaskCount = 4

// bootDecisions is the number of scheduling decisions driven during the boot
// smoke test.
const bootDecisions = 16

// Kmain boots the resource management core using the configuration stored at
// configPath. Any returned error is fatal; the caller is expected to hand it
// to kernel.Panic.
func Kmain(configPath string) *kernel.Error {
	var cfg config.Config
	if err := config.Load(configPath, &cfg); err != nil {
		return err
	}

	var zone buddy.Zone
	if err := zone.Init(cfg.Memory.ZoneName, pmm.Frame(cfg.Memory.BaseFrame), cfg.Memory.PageCount); err != nil {
		return err
	}

	// The tick source is a plain monotonic counter; each scheduling
	// decision samples it exactly once.
	var ticks sched.Ticks
	nowFn := func() sched.Ticks {
		ticks++
		return ticks
	}

	scheduler, err := sched.New(cfg.Scheduler.Algorithm, nowFn)
	if err != nil {
		return err
	}

	kfmt.Printf("kmain: policy %s, zone %s (%d pages)\n",
		scheduler.Policy().Name(), zone.Name(), cfg.Memory.PageCount)

	if err = smokeTestAllocator(&zone); err != nil {
		return err
	}
	if err = smokeTestScheduler(scheduler); err != nil {
		return err
	}

	zone.Dump()
	return nil
}

// smokeTestAllocator pushes a few pages through the single-page cache and the
// core allocator and verifies that nothing leaked.
func smokeTestAllocator(zone *buddy.Zone) *kernel.Error {
	total := zone.TotalSpace()

	var cached [8]*buddy.Page
	for i := range cached {
		pg, err := zone.AllocPageCached()
		if err != nil {
			return err
		}
		cached[i] = pg
	}

	block, err := zone.AllocPages(3)
	if err != nil {
		return err
	}
	if err = zone.FreePages(block); err != nil {
		return err
	}

	for _, pg := range cached {
		if err = zone.FreePageCached(pg); err != nil {
			return err
		}
	}

	if got := zone.FreeSpace() + zone.CachedSpace(); got != total {
		return &kernel.Error{Module: "kmain", Message: "allocator smoke test leaked pages", Fatal: true}
	}

	kfmt.Printf("kmain: allocator ok, %d bytes free\n", uint64(zone.FreeSpace()))
	return nil
}

// smokeTestScheduler admits a mixed batch of synthetic tasks and drives a few
// scheduling decisions through the configured policy.
func smokeTestScheduler(scheduler *sched.Scheduler) *kernel.Error {
	var rq sched.RunQueue

	for i := uint32(0); i < bootTaskCount; i++ {
		task := &sched.Task{
			ID:       i + 1,
			State:    sched.TaskRunning,
			Prio:     120 + int(i),
			VRuntime: sched.Ticks(i),
		}
		// Every other task is periodic so the real-time policies have
		// candidates to pick from.
		if i%2 == 1 {
			task.Periodic = true
			task.Period = sched.Ticks(10 * (i + 1))
			task.Deadline = task.Period
			task.NextPeriod = task.Period
		}
		rq.Enqueue(task)
		if rq.Curr() == nil {
			rq.SetCurr(task)
		}
	}

	for i := 0; i < bootDecisions; i++ {
		next, err := scheduler.PickNext(&rq)
		if err != nil {
			return err
		}
		rq.SetCurr(next)
	}

	kfmt.Printf("kmain: scheduler ok, %d decisions, last task %d\n",
		bootDecisions, rq.Curr().ID)
	return nil
}
