// Package sched implements the CPU scheduling decision core: a run queue
// view over the dispatcher's tasks and a set of interchangeable selection
// policies, exactly one of which is active per boot configuration.
//
// The scheduler assumes single-threaded, run-to-completion invocation; the
// external dispatcher is responsible for serializing calls and for all run
// queue membership changes.
package sched

// State identifies the dispatcher-visible execution state of a task.
type State uint8

const (
	// TaskRunning marks a runnable task. The round-robin, priority and
	// fair-share policies only consider runnable tasks.
	TaskRunning State = iota

	// TaskWaiting marks a task blocked on an external event.
	TaskWaiting

	// TaskStopped marks a task removed from execution by the dispatcher.
	TaskStopped
)

// Ticks counts scheduler timer ticks. Runtimes, deadlines and periods are all
// expressed in ticks.
type Ticks int64

// Task carries the per-task bookkeeping read and updated by the scheduling
// policies. Tasks are created and destroyed by the external process
// subsystem; this core only updates the timing, deadline and virtual-runtime
// fields as a side effect of decision making.
type Task struct {
	// ID identifies the task; it is assigned by the process subsystem.
	ID uint32

	State State

	// Prio is the static priority (100..139); lower values mean higher
	// priority. The default of 120 corresponds to nice 0.
	Prio int

	// VRuntime is the priority-weighted accumulation of execution time
	// used by the fair-share policy; lower means scheduled sooner.
	VRuntime Ticks

	// SumExecRuntime accumulates the raw (unweighted) execution time.
	SumExecRuntime Ticks

	// ExecStart is the tick at which the task was last put on the CPU.
	ExecStart Ticks

	// ExecRuntime is the execution delta observed at the last statistics
	// update, weighted for non-periodic tasks.
	ExecRuntime Ticks

	// Periodic marks a real-time task with a recurring activation period.
	Periodic bool

	// UnderAnalysis marks a periodic task still undergoing admission
	// analysis. The real-time policies treat it as non-real-time until
	// the analysis completes, so it executes under the fallback policy.
	UnderAnalysis bool

	// Executed is set by the dispatcher once the task has run within its
	// current period and cleared again when the period rolls over.
	Executed bool

	Deadline   Ticks
	Period     Ticks
	NextPeriod Ticks
}

// realTime returns true if the task is periodic and no longer under
// admission analysis.
func (t *Task) realTime() bool {
	return t.Periodic && !t.UnderAnalysis
}
