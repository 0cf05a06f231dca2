package sched

import "slateos/kernel"

// Policy is a pure selection function invoked once per scheduling decision
// point. Policies retain no state between calls beyond what is stored in the
// task entities themselves.
type Policy interface {
	// Name returns the configuration name of the policy.
	Name() string

	// pick selects the next task to run, or nil if no task is eligible.
	pick(rq *RunQueue, now Ticks) *Task

	// updatesStats reports whether the current task's statistics must be
	// refreshed before this policy runs.
	updatesStats() bool
}

var errUnknownPolicy = &kernel.Error{Module: "sched", Message: "unknown scheduling policy", Fatal: true}

// NewPolicy returns the policy registered under the given configuration
// name. Exactly one policy must be selected per boot; an empty or unknown
// name is a fatal configuration error.
func NewPolicy(name string) (Policy, *kernel.Error) {
	switch name {
	case "rr":
		return rrPolicy{}, nil
	case "priority":
		return priorityPolicy{}, nil
	case "fair":
		return fairPolicy{}, nil
	case "edf":
		return edfPolicy{}, nil
	case "rm":
		return rmPolicy{}, nil
	case "aedf":
		return aedfPolicy{}, nil
	case "llf":
		return llfPolicy{}, nil
	}
	return nil, errUnknownPolicy
}

// rollover resets a periodic task whose period has elapsed since it last
// executed. A rolled-over task is deliberately not a candidate in the pass
// that resets it; it becomes eligible at the following decision point.
func rollover(entry *Task, now Ticks) bool {
	if entry.Executed && entry.NextPeriod <= now {
		entry.Executed = false
		entry.Deadline += entry.Period
		entry.NextPeriod += entry.Period
		return true
	}
	return false
}

// pickRoundRobin returns the first runnable task strictly after the current
// one in queue order; the current task is only returned when it is alone on
// the queue.
func pickRoundRobin(rq *RunQueue, skipPeriodic bool) *Task {
	if rq.Len() <= 1 {
		return rq.curr
	}

	count := len(rq.tasks)
	start := rq.currIndex()
	for offset := 1; offset < count; offset++ {
		entry := rq.tasks[(start+offset)%count]
		if entry.State != TaskRunning {
			continue
		}
		if skipPeriodic && entry.realTime() {
			continue
		}
		return entry
	}
	return nil
}

// pickPriority returns the runnable task with the lowest static priority
// value. Only strictly lower values displace the candidate, so the earliest
// task among ties wins.
func pickPriority(rq *RunQueue, skipPeriodic bool) *Task {
	if rq.Len() <= 1 {
		return rq.curr
	}

	var next *Task
	for _, entry := range rq.tasks {
		if entry.State != TaskRunning {
			continue
		}
		if skipPeriodic && entry.realTime() {
			continue
		}
		if next == nil || entry.Prio < next.Prio {
			next = entry
		}
	}
	return next
}

// pickFair returns the runnable task with the smallest virtual runtime, the
// task that has executed least so far in weighted terms. First minimal
// candidate wins.
func pickFair(rq *RunQueue, skipPeriodic bool) *Task {
	if rq.Len() <= 1 {
		return rq.curr
	}

	var next *Task
	for _, entry := range rq.tasks {
		if entry.State != TaskRunning {
			continue
		}
		if skipPeriodic && entry.realTime() {
			continue
		}
		if next == nil || entry.VRuntime < next.VRuntime {
			next = entry
		}
	}
	return next
}

// rrPolicy employs time sharing: each decision hands the CPU to the next
// runnable task after the current one in queue order.
type rrPolicy struct{}

func (rrPolicy) Name() string       { return "rr" }
func (rrPolicy) updatesStats() bool { return false }
func (rrPolicy) pick(rq *RunQueue, _ Ticks) *Task {
	return pickRoundRobin(rq, false)
}

// priorityPolicy always selects the runnable task with the highest static
// priority (lowest value); tasks of equal priority run first-come
// first-served.
type priorityPolicy struct{}

func (priorityPolicy) Name() string       { return "priority" }
func (priorityPolicy) updatesStats() bool { return false }
func (priorityPolicy) pick(rq *RunQueue, _ Ticks) *Task {
	return pickPriority(rq, false)
}

// fairPolicy splits CPU time between runnable tasks as close to ideal
// multitasking hardware as possible by always running the task with the
// smallest virtual runtime.
type fairPolicy struct{}

func (fairPolicy) Name() string       { return "fair" }
func (fairPolicy) updatesStats() bool { return true }
func (fairPolicy) pick(rq *RunQueue, _ Ticks) *Task {
	return pickFair(rq, false)
}

// edfPolicy selects the eligible periodic task with the earliest absolute
// deadline, falling back to fair-share (periodic tasks excluded) when no
// periodic task is eligible.
type edfPolicy struct{}

func (edfPolicy) Name() string       { return "edf" }
func (edfPolicy) updatesStats() bool { return true }
func (edfPolicy) pick(rq *RunQueue, now Ticks) *Task {
	var next *Task
	for _, entry := range rq.tasks {
		if !entry.realTime() {
			continue
		}
		if rollover(entry, now) || entry.Executed {
			continue
		}
		if next == nil || entry.Deadline < next.Deadline {
			next = entry
		}
	}
	if next == nil {
		next = pickFair(rq, true)
	}
	return next
}

// rmPolicy selects the eligible periodic task with the earliest next period,
// which under rate-monotonic analysis is the task with the highest request
// rate. Same fallback as edfPolicy.
type rmPolicy struct{}

func (rmPolicy) Name() string       { return "rm" }
func (rmPolicy) updatesStats() bool { return true }
func (rmPolicy) pick(rq *RunQueue, now Ticks) *Task {
	var next *Task
	for _, entry := range rq.tasks {
		if !entry.realTime() {
			continue
		}
		if rollover(entry, now) || entry.Executed {
			continue
		}
		if next == nil || entry.NextPeriod < next.NextPeriod {
			next = entry
		}
	}
	if next == nil {
		next = pickFair(rq, true)
	}
	return next
}

// aedfPolicy is the admission-agnostic EDF variant: it considers every task
// carrying a nonzero deadline, periodic or not, with no rollover bookkeeping.
type aedfPolicy struct{}

func (aedfPolicy) Name() string       { return "aedf" }
func (aedfPolicy) updatesStats() bool { return true }
func (aedfPolicy) pick(rq *RunQueue, _ Ticks) *Task {
	var next *Task
	for _, entry := range rq.tasks {
		if entry.Deadline == 0 {
			continue
		}
		// Non-strict comparison: the last task among equal deadlines
		// wins. This intentionally differs from the strict comparison
		// used by the admission-aware variant.
		if next == nil || entry.Deadline <= next.Deadline {
			next = entry
		}
	}
	if next == nil {
		next = pickFair(rq, true)
	}
	return next
}

// llfPolicy selects the eligible periodic task with the least laxity, the
// slack between its deadline and the execution time consumed so far. Same
// fallback as edfPolicy.
type llfPolicy struct{}

func (llfPolicy) Name() string       { return "llf" }
func (llfPolicy) updatesStats() bool { return true }
func (llfPolicy) pick(rq *RunQueue, now Ticks) *Task {
	var (
		next   *Task
		minLax Ticks
	)
	for _, entry := range rq.tasks {
		if !entry.realTime() {
			continue
		}
		if rollover(entry, now) || entry.Executed {
			continue
		}
		laxity := (entry.Deadline - now) - entry.SumExecRuntime
		if next == nil || laxity < minLax {
			next = entry
			minLax = laxity
		}
	}
	if next == nil {
		next = pickFair(rq, true)
	}
	return next
}
