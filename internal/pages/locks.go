package pages

import "sync"

// keyedMutex serializes mutations per playlist so two concurrent order
// saves for the same playlist cannot interleave their requests.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[int64]*sync.Mutex{}}
}

// lock acquires the mutex for the given key and returns its unlock func.
func (k *keyedMutex) lock(key int64) func() {
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
