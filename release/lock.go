package release

import "sync"

// tagLocks hands out one mutex per tag. Entries are reference counted
// and dropped once the last holder releases them.
type tagLocks struct {
	mu      sync.Mutex
	entries map[string]*tagLock
}

type tagLock struct {
	mu   sync.Mutex
	refs int
}

func newTagLocks() *tagLocks {
	return &tagLocks{entries: make(map[string]*tagLock)}
}

// lock blocks until tag is free and returns the matching unlock.
func (l *tagLocks) lock(tag string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.entries[tag]
	if !ok {
		entry = &tagLock{}
		l.entries[tag] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			l.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(l.entries, tag)
			}
			l.mu.Unlock()
		})
	}
}

func (l *tagLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
