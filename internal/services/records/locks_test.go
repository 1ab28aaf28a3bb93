package records

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserLocksSerializeSameUser(t *testing.T) {
	locks := newUserLocks()
	unlock := locks.lock("alice")

	acquired := make(chan struct{})
	go func() {
		release := locks.lock("alice")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	<-acquired
	assert.Eventually(t, func() bool { return locks.size() == 0 }, time.Second, time.Millisecond)
}

func TestUserLocksDifferentUsersDoNotContend(t *testing.T) {
	locks := newUserLocks()
	unlockAlice := locks.lock("alice")
	defer unlockAlice()

	done := make(chan struct{})
	go func() {
		release := locks.lock("bob")
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for bob blocked on alice")
	}
}

func TestUserLocksReleaseEntries(t *testing.T) {
	locks := newUserLocks()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.lock("alice")()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, locks.size())
}
