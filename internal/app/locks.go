package app

import "sync"

// LicenseLocks provides per-license mutual exclusion. Every operation that
// checks and then mutates a single license (assign, revoke, seat updates,
// transitions) runs inside the lock for that license id, so no caller
// observes a license between its capacity check and its mutation.
//
// Entries are never evicted; the map grows with the number of distinct
// licenses touched by a process, which is bounded by the license table.
type LicenseLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLicenseLocks creates an empty lock table, shared by every service
// that mutates licenses.
func NewLicenseLocks() *LicenseLocks {
	return &LicenseLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given license id and returns its unlock
// function.
func (l *LicenseLocks) Lock(licenseID string) func() {
	l.mu.Lock()
	m, ok := l.locks[licenseID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[licenseID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
