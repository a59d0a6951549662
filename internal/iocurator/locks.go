package iocurator

import (
	"slices"
	"sync"

	"github.com/gnames/gntag/pkg/tag"
)

// nameLocks serializes mutations of tags that share a name. Names are
// compared the way curation compares them. Entries are removed when
// nobody holds or waits for them.
type nameLocks struct {
	mu    sync.Mutex
	locks map[string]*nameLock
}

type nameLock struct {
	sync.Mutex
	refs int
}

func newNameLocks() *nameLocks {
	return &nameLocks{locks: make(map[string]*nameLock)}
}

// lock acquires locks of all names in sorted order and returns the
// function that releases them.
func (nl *nameLocks) lock(names ...string) func() {
	keys := make([]string, 0, len(names))
	for _, n := range names {
		keys = append(keys, tag.NameKey(n))
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]*nameLock, 0, len(keys))
	for _, k := range keys {
		l := nl.acquire(k)
		l.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
			nl.release(keys[i])
		}
	}
}

func (nl *nameLocks) acquire(key string) *nameLock {
	nl.mu.Lock()
	defer nl.mu.Unlock()
	l, ok := nl.locks[key]
	if !ok {
		l = &nameLock{}
		nl.locks[key] = l
	}
	l.refs++
	return l
}

func (nl *nameLocks) release(key string) {
	nl.mu.Lock()
	defer nl.mu.Unlock()
	l := nl.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(nl.locks, key)
	}
}

// size returns the number of names that are locked or awaited.
func (nl *nameLocks) size() int {
	nl.mu.Lock()
	defer nl.mu.Unlock()
	return len(nl.locks)
}
