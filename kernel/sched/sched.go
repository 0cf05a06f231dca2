package sched

import "slateos/kernel"

var (
	errRunQueueEmpty  = &kernel.Error{Module: "sched", Message: "run queue is empty", Fatal: true}
	errNoTaskSelected = &kernel.Error{Module: "sched", Message: "no valid task selected by the scheduling policy", Fatal: true}

	// updateProfilingTimerFn performs the profiling-timer bookkeeping for
	// the task about to be preempted. The implementation is owned by the
	// external process subsystem; tests mock it.
	updateProfilingTimerFn = func(*Task) {}
)

// Scheduler dispatches scheduling decisions to the policy selected at boot
// configuration time.
type Scheduler struct {
	policy Policy

	// nowFn is the timer tick source. Each decision samples it once; the
	// sample feeds the statistics update, the period rollovers, the
	// laxity computation and the ExecStart stamp of the chosen task.
	nowFn func() Ticks
}

// New returns a Scheduler driving the policy registered under policyName and
// reading time from nowFn.
func New(policyName string, nowFn func() Ticks) (*Scheduler, *kernel.Error) {
	policy, err := NewPolicy(policyName)
	if err != nil {
		return nil, err
	}
	return &Scheduler{policy: policy, nowFn: nowFn}, nil
}

// Policy returns the active scheduling policy.
func (s *Scheduler) Policy() Policy { return s.policy }

// PickNext selects the task to run next. The statistics of the current task
// are refreshed first when the active policy requires them. The dispatcher
// contract guarantees that the run queue always holds at least the current
// task; an empty queue, or a policy finding no task at all, is unrecoverable.
func (s *Scheduler) PickNext(rq *RunQueue) (*Task, *kernel.Error) {
	if rq == nil || rq.Len() == 0 || rq.Curr() == nil {
		return nil, errRunQueueEmpty
	}

	now := s.nowFn()

	if s.policy.updatesStats() {
		updateTaskStatistics(rq.Curr(), now)
	}

	next := s.policy.pick(rq, now)
	if next == nil {
		return nil, errNoTaskSelected
	}

	next.ExecStart = now
	return next, nil
}

// updateTaskStatistics refreshes the bookkeeping of the task about to be
// preempted. Periodic tasks under admission analysis execute under the
// aperiodic policies and can be preempted by true periodic tasks; summing
// every execution spot keeps the worst-case estimate pessimistic but safe.
func updateTaskStatistics(task *Task, now Ticks) {
	task.ExecRuntime = now - task.ExecStart

	updateProfilingTimerFn(task)

	task.SumExecRuntime += task.ExecRuntime

	if task.Periodic {
		return
	}

	// Weight the observed runtime so that lower-priority tasks accumulate
	// virtual runtime faster and therefore get picked less often.
	if weight := weightOf(task.Prio); weight != nice0Load {
		factor := float64(nice0Load) / float64(weight)
		task.ExecRuntime = Ticks(float64(task.ExecRuntime) * factor)
	}
	task.VRuntime += task.ExecRuntime
}
