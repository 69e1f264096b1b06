package game

import (
	"sync"
	"time"
)

// Timer is a cancellable single-shot task.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clock struct{}

func (clock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler runs callbacks on their own goroutine. Hosts that also
// touch the controller from elsewhere should wrap it in LockedScheduler.
func RealScheduler() Scheduler { return clock{} }

// LockedScheduler holds Locker while a callback runs, so timers never
// race with request handlers sharing the same lock.
type LockedScheduler struct {
	Locker sync.Locker
	Next   Scheduler
}

func (s LockedScheduler) AfterFunc(d time.Duration, f func()) Timer {
	next := s.Next
	if next == nil {
		next = clock{}
	}
	return next.AfterFunc(d, func() {
		s.Locker.Lock()
		defer s.Locker.Unlock()
		f()
	})
}
