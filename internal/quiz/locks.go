package quiz

import "sync"

// userLocks serializes engine transitions per user id so rapid duplicate
// submissions cannot advance one session twice concurrently. Different users
// proceed in parallel. Lock entries are kept for the process lifetime; the
// user population of a single bot is small enough that reclaim is not worth
// the bookkeeping.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

func (u *userLocks) lock(userID int64) func() {
	u.mu.Lock()
	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	u.mu.Unlock()

	l.Lock()
	return l.Unlock
}
