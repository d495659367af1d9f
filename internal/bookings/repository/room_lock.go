package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/internal/store"

	"golang.org/x/sync/semaphore"
)

// RoomLockTable hands out one exclusive lock per room. Locks are not
// reentrant: callers must deduplicate room ids before acquiring.
type RoomLockTable interface {
	store.RoomObserver
	Register(roomID int64)
	Unregister(roomID int64)
	Acquire(ctx context.Context, roomID int64, timeout time.Duration) (*RoomLease, error)
	Locked(roomID int64) bool
	LockedCount() int
	Len() int
}

// RoomLease is proof of holding a room lock. Release is safe to call more
// than once; only the first call frees the lock.
type RoomLease struct {
	roomID   int64
	lock     *roomLock
	released atomic.Bool
}

func (l *RoomLease) RoomID() int64 {
	return l.roomID
}

// Release reports whether this call actually freed the lock.
func (l *RoomLease) Release() bool {
	if !l.released.CompareAndSwap(false, true) {
		return false
	}
	l.lock.held.Store(false)
	l.lock.sem.Release(1)
	return true
}

// roomLock pairs the semaphore with a flag that is true while a lease holds
// it, so diagnostics never touch the semaphore itself.
type roomLock struct {
	sem  *semaphore.Weighted
	held atomic.Bool
}

type roomLockTable struct {
	mu    sync.RWMutex
	locks map[int64]*roomLock
}

func NewRoomLockTable() RoomLockTable {
	return &roomLockTable{locks: make(map[int64]*roomLock)}
}

// RoomCreated and RoomRemoved let the table follow the store's room lifecycle.
func (t *roomLockTable) RoomCreated(roomID int64) { t.Register(roomID) }
func (t *roomLockTable) RoomRemoved(roomID int64) { t.Unregister(roomID) }

func (t *roomLockTable) Register(roomID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.locks[roomID]; !ok {
		t.locks[roomID] = &roomLock{sem: semaphore.NewWeighted(1)}
	}
}

// Unregister forgets the room. Leases already held stay valid and release
// their own lock.
func (t *roomLockTable) Unregister(roomID int64) {
	t.mu.Lock()
	delete(t.locks, roomID)
	t.mu.Unlock()
}

// Acquire blocks until the room's lock is free, the timeout elapses or ctx is
// done. An unknown room fails immediately with ErrRoomNotFound; running out of
// time yields ErrLockTimeout.
func (t *roomLockTable) Acquire(ctx context.Context, roomID int64, timeout time.Duration) (*RoomLease, error) {
	t.mu.RLock()
	lock, ok := t.locks[roomID]
	t.mu.RUnlock()
	if !ok {
		return nil, bookingserrors.ErrRoomNotFound
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := lock.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, bookingserrors.ErrLockTimeout
		}
		return nil, err
	}
	lock.held.Store(true)
	return &RoomLease{roomID: roomID, lock: lock}, nil
}

func (t *roomLockTable) Locked(roomID int64) bool {
	t.mu.RLock()
	lock, ok := t.locks[roomID]
	t.mu.RUnlock()
	return ok && lock.held.Load()
}

func (t *roomLockTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.locks)
}

// LockedCount is a racy snapshot for diagnostics.
func (t *roomLockTable) LockedCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, lock := range t.locks {
		if lock.held.Load() {
			n++
		}
	}
	return n
}
