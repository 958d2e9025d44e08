package game

import "time"

// Timer is a pending one-shot continuation.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The controller uses it for the settle delay
// between tearing a game down and starting the next one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler is backed by time.AfterFunc.
func RealScheduler() Scheduler {
	return realScheduler{}
}
