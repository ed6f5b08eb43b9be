package service

import (
	"context"
	"sync"
)

// channelLocks сериализует join/leave/rejoin одного канала.
// Блокировку можно освободить из другой горутины: join передаёт её фоновой подписке.
type channelLocks struct {
	mu    sync.Mutex
	locks map[string]*channelLock
}

type channelLock struct {
	sem  chan struct{}
	refs int
}

func newChannelLocks() *channelLocks {
	return &channelLocks{locks: make(map[string]*channelLock)}
}

func (c *channelLocks) acquire(ctx context.Context, login string) (func(), error) {
	c.mu.Lock()
	lock, ok := c.locks[login]
	if !ok {
		lock = &channelLock{sem: make(chan struct{}, 1)}
		c.locks[login] = lock
	}
	lock.refs++
	c.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		c.unref(login, lock)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.sem
			c.unref(login, lock)
		})
	}, nil
}

func (c *channelLocks) unref(login string, lock *channelLock) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(c.locks, login)
	}
}

func (c *channelLocks) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.locks)
}
