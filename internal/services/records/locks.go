package records

import "sync"

// userLocks hands out one mutex per username. Entries are reference
// counted and dropped when no goroutine holds or waits on them.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

// lock blocks until username is exclusively held and returns the release func
func (l *userLocks) lock(username string) func() {
	l.mu.Lock()
	ul, ok := l.locks[username]
	if !ok {
		ul = &userLock{}
		l.locks[username] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, username)
		}
		l.mu.Unlock()
	}
}

// size reports how many usernames currently have a live lock entry
func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
