package sched

// RunQueue is the circular membership of schedulable tasks together with the
// task currently holding the CPU. Membership changes (admission, removal) are
// owned by the external dispatcher; the scheduling policies only traverse the
// queue and read curr.
type RunQueue struct {
	tasks []*Task
	curr  *Task
}

// Enqueue adds a task to the back of the queue.
func (rq *RunQueue) Enqueue(task *Task) {
	rq.tasks = append(rq.tasks, task)
}

// Dequeue removes a task from the queue. Removing the current task leaves
// curr pointing at it until the dispatcher installs a replacement.
func (rq *RunQueue) Dequeue(task *Task) {
	for i, entry := range rq.tasks {
		if entry == task {
			rq.tasks = append(rq.tasks[:i], rq.tasks[i+1:]...)
			return
		}
	}
}

// Len returns the number of tasks on the queue.
func (rq *RunQueue) Len() int { return len(rq.tasks) }

// Curr returns the task currently holding the CPU.
func (rq *RunQueue) Curr() *Task { return rq.curr }

// SetCurr installs the task currently holding the CPU.
func (rq *RunQueue) SetCurr(task *Task) { rq.curr = task }

// currIndex returns the queue position of the current task, or -1 when the
// dispatcher has not enqueued it.
func (rq *RunQueue) currIndex() int {
	for i, entry := range rq.tasks {
		if entry == rq.curr {
			return i
		}
	}
	return -1
}
