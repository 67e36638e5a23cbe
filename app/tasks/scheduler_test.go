package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingTask struct {
	Task
	executions atomic.Int32
}

func (t *countingTask) Execute(_ context.Context) error {
	t.executions.Add(1)
	return nil
}

func newTestScheduler(workers int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		interval:    time.Hour,
		workerCount: workers,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 2),
	}
}

func TestSchedulerExecutesEnqueuedTasks(t *testing.T) {
	scheduler := newTestScheduler(2)
	for i := 0; i < scheduler.workerCount; i++ {
		scheduler.wg.Add(1)
		go scheduler.worker(i)
	}

	task := &countingTask{Task: NewTask(TaskTypeReconcilePosts)}
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("EnqueueTask failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for task.executions.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("task was never executed")
		case <-time.After(10 * time.Millisecond):
		}
	}

	scheduler.Stop()
}

func TestSchedulerRejectsWhenQueueFull(t *testing.T) {
	scheduler := newTestScheduler(0)

	for i := 0; i < cap(scheduler.taskQueue); i++ {
		if err := scheduler.EnqueueTask(&countingTask{Task: NewTask(TaskTypeReconcilePosts)}); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}

	if err := scheduler.EnqueueTask(&countingTask{Task: NewTask(TaskTypeReconcilePosts)}); err == nil {
		t.Fatal("expected error when the queue is full")
	}

	scheduler.Stop()
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeReconcilePosts)

	if !task.CanRetry() {
		t.Fatal("fresh task should be retryable")
	}
	for task.CanRetry() {
		task.IncrementRetryCount()
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("expected %d retries, got %d", DefaultMaxRetries, task.GetRetryCount())
	}

	if task.GetDuration() != 0 {
		t.Error("duration should be zero before Start")
	}
	task.Start()
	if task.GetDuration() < 0 {
		t.Error("duration should be non-negative after Start")
	}
}
