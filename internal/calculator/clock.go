package calculator

import "time"

// Clock schedules callbacks. Callbacks may run on any goroutine.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

// RealClock is backed by time.AfterFunc.
func RealClock() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// timerSlot holds at most one pending callback. Re-arming or stopping bumps
// the generation so a callback that already fired but has not yet taken the
// machine lock becomes a no-op.
type timerSlot struct {
	timer Timer
	gen   uint64
}

func (s *timerSlot) pending() bool {
	return s.timer != nil
}

func (s *timerSlot) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}
