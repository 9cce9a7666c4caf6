package handlers

import "sync"

// keyedMutex hands out one mutex per match key. Score submission,
// finalize, and reset for the same match must not interleave — two
// racing submissions could otherwise read the same hole set, compute
// divergent results, and leave the stored totals nondeterministic. The
// scoring engine assumes single-writer-at-a-time per match; this is
// where the service upholds that.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its unlock function:
//
//	defer matchLocks.lock(matchKey)()
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// matchLocks serializes all mutating operations per match key.
var matchLocks = newKeyedMutex()
