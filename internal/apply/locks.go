package apply

import (
	"path/filepath"
	"sync"
)

var (
	locksMu sync.Mutex
	locks   = make(map[string]*sync.Mutex)
)

// lockPath takes the process-wide lock for a file, keyed by absolute
// path so "./init.lua" and "init.lua" contend on the same lock.
func lockPath(path string) (unlock func()) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	locksMu.Lock()
	mu, ok := locks[key]
	if !ok {
		mu = &sync.Mutex{}
		locks[key] = mu
	}
	locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
