package ledger

import (
	"sync"
	"time"
)

// Scheduler defers a callback by a duration. The returned cancel function
// stops the callback if it has not fired yet and reports whether it did.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// TimerScheduler runs callbacks on real timers.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// ManualScheduler queues callbacks and only runs them when Fire is called,
// so tests can step through confirmation deterministically instead of
// sleeping through the confirmation delay.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []*manualEntry
}

type manualEntry struct {
	fn       func()
	canceled bool
}

func (m *ManualScheduler) AfterFunc(_ time.Duration, fn func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := &manualEntry{fn: fn}
	m.queue = append(m.queue, entry)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if entry.canceled || entry.fn == nil {
			return false
		}
		entry.canceled = true
		return true
	}
}

// Fire runs every queued callback that has not been canceled and returns
// how many ran.
func (m *ManualScheduler) Fire() int {
	m.mu.Lock()
	pending := m.queue
	m.queue = nil
	m.mu.Unlock()

	ran := 0
	for _, entry := range pending {
		m.mu.Lock()
		canceled := entry.canceled
		m.mu.Unlock()
		if canceled {
			continue
		}
		entry.fn()
		entry.fn = nil
		ran++
	}
	return ran
}

// Len reports how many callbacks are waiting.
func (m *ManualScheduler) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
