package sched

import "testing"

func newRunQueue(curr *Task, tasks ...*Task) *RunQueue {
	var rq RunQueue
	for _, task := range tasks {
		rq.Enqueue(task)
	}
	rq.SetCurr(curr)
	return &rq
}

func TestRoundRobin(t *testing.T) {
	taskA := &Task{ID: 1, State: TaskRunning}
	taskB := &Task{ID: 2, State: TaskRunning}
	taskC := &Task{ID: 3, State: TaskRunning}

	policy := rrPolicy{}

	specs := []struct {
		curr *Task
		exp  *Task
	}{
		{taskA, taskB},
		{taskB, taskC},
		{taskC, taskA}, // wraps around the queue
	}

	for specIndex, spec := range specs {
		rq := newRunQueue(spec.curr, taskA, taskB, taskC)
		if got := policy.pick(rq, 0); got != spec.exp {
			t.Errorf("[spec %d] expected task %d to be picked; got %d", specIndex, spec.exp.ID, got.ID)
		}
	}

	t.Run("single task", func(t *testing.T) {
		rq := newRunQueue(taskA, taskA)
		for i := 0; i < 3; i++ {
			if got := policy.pick(rq, 0); got != taskA {
				t.Fatalf("expected the sole task to keep running; got task %d", got.ID)
			}
		}
	})

	t.Run("skips non-runnable tasks", func(t *testing.T) {
		blocked := &Task{ID: 4, State: TaskWaiting}
		rq := newRunQueue(taskA, taskA, blocked, taskC)
		if got := policy.pick(rq, 0); got != taskC {
			t.Fatalf("expected task %d; got %d", taskC.ID, got.ID)
		}
	})

	t.Run("no candidate", func(t *testing.T) {
		blocked := &Task{ID: 4, State: TaskWaiting}
		rq := newRunQueue(taskA, taskA, blocked)
		if got := policy.pick(rq, 0); got != nil {
			t.Fatalf("expected no candidate; got task %d", got.ID)
		}
	})
}

func TestPriority(t *testing.T) {
	policy := priorityPolicy{}

	t.Run("lowest value wins", func(t *testing.T) {
		taskA := &Task{ID: 1, State: TaskRunning, Prio: 120}
		taskB := &Task{ID: 2, State: TaskRunning, Prio: 105}
		taskC := &Task{ID: 3, State: TaskRunning, Prio: 110}

		rq := newRunQueue(taskA, taskA, taskB, taskC)
		if got := policy.pick(rq, 0); got != taskB {
			t.Fatalf("expected task %d; got %d", taskB.ID, got.ID)
		}
	})

	t.Run("first of equal priorities wins", func(t *testing.T) {
		taskA := &Task{ID: 1, State: TaskRunning, Prio: 120}
		taskB := &Task{ID: 2, State: TaskRunning, Prio: 110}
		taskC := &Task{ID: 3, State: TaskRunning, Prio: 110}

		// Later tasks with an equal priority must not displace the
		// earlier candidate.
		rq := newRunQueue(taskA, taskA, taskB, taskC)
		if got := policy.pick(rq, 0); got != taskB {
			t.Fatalf("expected task %d; got %d", taskB.ID, got.ID)
		}
	})
}

func TestFairShare(t *testing.T) {
	policy := fairPolicy{}

	taskA := &Task{ID: 1, State: TaskRunning, VRuntime: 30}
	taskB := &Task{ID: 2, State: TaskRunning, VRuntime: 10}
	taskC := &Task{ID: 3, State: TaskRunning, VRuntime: 10}

	// Smallest vruntime wins; the first of equal vruntimes is retained.
	rq := newRunQueue(taskA, taskA, taskB, taskC)
	if got := policy.pick(rq, 0); got != taskB {
		t.Fatalf("expected task %d; got %d", taskB.ID, got.ID)
	}
}

func TestEDF(t *testing.T) {
	policy := edfPolicy{}

	t.Run("earliest deadline wins", func(t *testing.T) {
		taskA := &Task{ID: 1, Periodic: true, Deadline: 10, Period: 20, NextPeriod: 20}
		taskB := &Task{ID: 2, Periodic: true, Deadline: 5, Period: 20, NextPeriod: 20}

		rq := newRunQueue(taskA, taskA, taskB)
		if got := policy.pick(rq, 0); got != taskB {
			t.Fatalf("expected task %d; got %d", taskB.ID, got.ID)
		}
	})

	t.Run("strict comparison keeps the first of equal deadlines", func(t *testing.T) {
		// The admission-aware variant uses <, unlike the absolute
		// variant; the asymmetry is deliberate.
		taskA := &Task{ID: 1, Periodic: true, Deadline: 5, Period: 20, NextPeriod: 20}
		taskB := &Task{ID: 2, Periodic: true, Deadline: 5, Period: 20, NextPeriod: 20}

		rq := newRunQueue(taskA, taskA, taskB)
		if got := policy.pick(rq, 0); got != taskA {
			t.Fatalf("expected task %d; got %d", taskA.ID, got.ID)
		}
	})

	t.Run("skips executed and under-analysis tasks", func(t *testing.T) {
		executed := &Task{ID: 1, Periodic: true, Executed: true, Deadline: 1, Period: 20, NextPeriod: 100}
		analyzed := &Task{ID: 2, Periodic: true, UnderAnalysis: true, Deadline: 2, Period: 20, NextPeriod: 20}
		taskC := &Task{ID: 3, Periodic: true, Deadline: 9, Period: 20, NextPeriod: 20}

		rq := newRunQueue(executed, executed, analyzed, taskC)
		if got := policy.pick(rq, 0); got != taskC {
			t.Fatalf("expected task %d; got %d", taskC.ID, got.ID)
		}
	})

	t.Run("falls back to fair-share without periodic candidates", func(t *testing.T) {
		periodic := &Task{ID: 1, Periodic: true, Executed: true, Deadline: 1, Period: 20, NextPeriod: 100}
		fairA := &Task{ID: 2, State: TaskRunning, VRuntime: 50}
		fairB := &Task{ID: 3, State: TaskRunning, VRuntime: 20}

		rq := newRunQueue(periodic, periodic, fairA, fairB)
		if got := policy.pick(rq, 0); got != fairB {
			t.Fatalf("expected fallback to pick task %d; got %d", fairB.ID, got.ID)
		}
	})
}

func TestAbsoluteEDF(t *testing.T) {
	policy := aedfPolicy{}

	t.Run("last of equal deadlines wins", func(t *testing.T) {
		// Non-strict comparison: with deadlines (5,5) the later-scanned
		// task is selected.
		taskA := &Task{ID: 1, Deadline: 5}
		taskB := &Task{ID: 2, Deadline: 5}

		rq := newRunQueue(taskA, taskA, taskB)
		if got := policy.pick(rq, 0); got != taskB {
			t.Fatalf("expected task %d; got %d", taskB.ID, got.ID)
		}
	})

	t.Run("considers non-periodic tasks with a deadline", func(t *testing.T) {
		periodic := &Task{ID: 1, Periodic: true, Deadline: 7}
		plain := &Task{ID: 2, Deadline: 3}

		rq := newRunQueue(periodic, periodic, plain)
		if got := policy.pick(rq, 0); got != plain {
			t.Fatalf("expected task %d; got %d", plain.ID, got.ID)
		}
	})

	t.Run("ignores zero deadlines and falls back", func(t *testing.T) {
		periodic := &Task{ID: 1, Periodic: true, State: TaskRunning, VRuntime: 1}
		plain := &Task{ID: 2, State: TaskRunning, VRuntime: 9}

		rq := newRunQueue(periodic, periodic, plain)
		if got := policy.pick(rq, 0); got != plain {
			t.Fatalf("expected the fallback to skip periodic tasks and pick task %d; got %d", plain.ID, got.ID)
		}
	})
}

func TestRM(t *testing.T) {
	policy := rmPolicy{}

	taskA := &Task{ID: 1, Periodic: true, Deadline: 30, Period: 30, NextPeriod: 30}
	taskB := &Task{ID: 2, Periodic: true, Deadline: 40, Period: 10, NextPeriod: 10}

	// The task with the earliest next period has the highest request rate.
	rq := newRunQueue(taskA, taskA, taskB)
	if got := policy.pick(rq, 0); got != taskB {
		t.Fatalf("expected task %d; got %d", taskB.ID, got.ID)
	}
}

func TestLLF(t *testing.T) {
	policy := llfPolicy{}

	// laxity(A) = (10 - 2) - 3 = 5, laxity(B) = (6 - 2) - 1 = 3.
	taskA := &Task{ID: 1, Periodic: true, Deadline: 10, SumExecRuntime: 3, Period: 20, NextPeriod: 20}
	taskB := &Task{ID: 2, Periodic: true, Deadline: 6, SumExecRuntime: 1, Period: 20, NextPeriod: 20}

	rq := newRunQueue(taskA, taskA, taskB)
	if got := policy.pick(rq, 2); got != taskB {
		t.Fatalf("expected the least-laxity task %d; got %d", taskB.ID, got.ID)
	}
}

func TestPeriodicRollover(t *testing.T) {
	for _, policyName := range []string{"edf", "rm", "llf"} {
		t.Run(policyName, func(t *testing.T) {
			policy, err := NewPolicy(policyName)
			if err != nil {
				t.Fatal(err)
			}

			rolled := &Task{ID: 1, Periodic: true, Executed: true, Deadline: 5, Period: 10, NextPeriod: 5}
			other := &Task{ID: 2, Periodic: true, Deadline: 100, Period: 200, NextPeriod: 200}

			rq := newRunQueue(rolled, rolled, other)

			// At now=6 the rolled task's period has elapsed: it must be
			// reset in place but not selected in the same pass.
			if got := policy.pick(rq, 6); got != other {
				t.Fatalf("expected the rolled-over task to be skipped this pass; got task %d", got.ID)
			}

			if rolled.Executed {
				t.Error("expected Executed to be cleared by the rollover")
			}
			if exp, got := Ticks(15), rolled.Deadline; got != exp {
				t.Errorf("expected deadline %d; got %d", exp, got)
			}
			if exp, got := Ticks(15), rolled.NextPeriod; got != exp {
				t.Errorf("expected next period %d; got %d", exp, got)
			}

			// The following decision sees the reset task as eligible.
			if got := policy.pick(rq, 7); got != rolled {
				t.Fatalf("expected the rolled-over task to be eligible on the next pass; got task %d", got.ID)
			}
		})
	}
}

func TestNewPolicy(t *testing.T) {
	for _, name := range []string{"rr", "priority", "fair", "edf", "rm", "aedf", "llf"} {
		policy, err := NewPolicy(name)
		if err != nil {
			t.Fatalf("expected %q to name a policy; got error %v", name, err)
		}
		if policy.Name() != name {
			t.Errorf("expected policy name %q; got %q", name, policy.Name())
		}
	}

	for _, name := range []string{"", "lottery"} {
		if _, err := NewPolicy(name); err != errUnknownPolicy {
			t.Errorf("expected NewPolicy(%q) to fail with errUnknownPolicy; got %v", name, err)
		}
	}

	if !errUnknownPolicy.Fatal {
		t.Error("expected an unselected policy to be a fatal configuration error")
	}
}
