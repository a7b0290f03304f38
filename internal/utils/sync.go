package utils

import (
	"sync"
)

// OptionalMutex is a sync.Mutex that can be switched off for consumers that synchronize
// externally. The zero value locks.
type OptionalMutex struct {
	mutex sync.Mutex
	// Disabled turns Lock and Unlock into no-ops. It must not change while the mutex is held.
	Disabled bool
}

func (m *OptionalMutex) Lock() {
	if !m.Disabled {
		m.mutex.Lock()
	}
}

func (m *OptionalMutex) Unlock() {
	if !m.Disabled {
		m.mutex.Unlock()
	}
}

// TryLock reports whether the mutex was acquired. A disabled mutex is always acquired.
func (m *OptionalMutex) TryLock() bool {
	if m.Disabled {
		return true
	}
	return m.mutex.TryLock()
}
