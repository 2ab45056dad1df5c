package combat

import (
	"sort"
	"sync"
)

// characterLocks serializes operations per character. Multi-character
// operations take their locks in id order so two calls can never deadlock.
type characterLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newCharacterLocks() *characterLocks {
	return &characterLocks{locks: make(map[string]*lockEntry)}
}

// lock acquires every id's lock and returns the matching unlock
func (l *characterLocks) lock(ids ...string) func() {
	ordered := uniqueSorted(ids)

	entries := make([]*lockEntry, len(ordered))
	for i, id := range ordered {
		entries[i] = l.acquire(id)
		entries[i].mu.Lock()
	}

	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
			l.release(ordered[i])
		}
	}
}

func (l *characterLocks) acquire(id string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[id]
	if !ok {
		entry = &lockEntry{}
		l.locks[id] = entry
	}
	entry.refs++
	return entry
}

func (l *characterLocks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
}

func (l *characterLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
