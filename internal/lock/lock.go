package lock

import (
	"errors"
	"time"
)

// ErrTimeout is returned by Acquire when the bounded wait expires.
var ErrTimeout = errors.New("lock wait expired")

// Locker serializes the duplicate-check-then-append critical section of the
// submit operation. One locker guards the whole process, not one per record.
type Locker interface {
	// Acquire blocks until the lock is held or the bounded wait expires,
	// in which case it returns ErrTimeout.
	Acquire() error
	// Release frees the lock. It must only be called after a successful
	// Acquire.
	Release()
}

// MutexLocker is the in-process implementation. It is sufficient while the
// service runs as a single instance.
type MutexLocker struct {
	sem  chan struct{}
	wait time.Duration
}

// NewMutexLocker creates an in-process locker with the given maximum wait.
func NewMutexLocker(wait time.Duration) *MutexLocker {
	return &MutexLocker{
		sem:  make(chan struct{}, 1),
		wait: wait,
	}
}

func (l *MutexLocker) Acquire() error {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrTimeout
	}
}

func (l *MutexLocker) Release() {
	<-l.sem
}
