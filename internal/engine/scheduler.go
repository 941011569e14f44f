package engine

import (
	"fmt"
	"sync"
)

// Task is a named unit of validation work.
type Task struct {
	Name    string
	Execute func() error
}

// Scheduler runs validation tasks off the caller's goroutine, one at
// a time, draining outstanding work on stop.
type Scheduler struct {
	taskQueue chan Task
	stopChan  chan struct{}
	wg        sync.WaitGroup

	// mu serializes Schedule against Stop so no task can slip into
	// the queue after the drain loop has exited.
	mu      sync.Mutex
	stopped bool
}

// NewScheduler creates a new Scheduler with the specified queue size
func NewScheduler(queueSize int) *Scheduler {
	return &Scheduler{
		taskQueue: make(chan Task, queueSize),
		stopChan:  make(chan struct{}),
	}
}

// Run starts the scheduler loop
func (s *Scheduler) Run() {
	go func() {
		for {
			select {
			case task, ok := <-s.taskQueue:
				if !ok {
					// Channel closed, exit the loop
					return
				}
				s.execute(task)
			case <-s.stopChan:
				// Stop signal received, drain the taskQueue and exit
				for {
					select {
					case task := <-s.taskQueue:
						s.execute(task)
					default:
						return
					}
				}
			}
		}
	}()
}

func (s *Scheduler) execute(task Task) {
	defer s.wg.Done()
	task.Execute()
}

// Schedule queues a task; it fails when the queue is full or the
// scheduler has been stopped.
func (s *Scheduler) Schedule(task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return fmt.Errorf("scheduler stopped, rejecting task %q", task.Name)
	}

	s.wg.Add(1)
	select {
	case s.taskQueue <- task:
		return nil
	default:
		s.wg.Done()
		return fmt.Errorf("task queue full, rejecting task %q", task.Name)
	}
}

// Stop signals the scheduler to drain and waits for queued tasks to
// finish. Tasks queued before Stop are guaranteed to run; later
// Schedule calls are rejected.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
}
