// Package lock grants per-table read, write, and related locks scoped to a
// transaction. Read and related locks are shared with each other and exclude
// writers; a write lock excludes everything. "Related" is a read-strength
// lock taken on tables a mutation's foreign-key validation depends on, so a
// validation that passed cannot be invalidated before the mutation lands.
//
// Locking is implemented with a single map from table name to lock state,
// guarded by a mutex. Waiters park on a channel that the next release closes,
// then retry; acquisition order is the caller's responsibility. Since the
// mutex is a global lock it would be a contention point in a bigger system.
package lock

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mkariuki/memrel/internal/domain/transaction"
	"github.com/mkariuki/memrel/internal/schema"
)

// ErrLockTimeout reports an acquisition that waited past the manager's
// configured timeout. The failed call holds nothing.
var ErrLockTimeout = errors.New("lock wait timeout")

type tableState struct {
	readers int
	related int
	writer  string // transaction ID, empty when unlocked

	// closed and replaced on every release so parked waiters re-check
	changed chan struct{}
}

func newTableState() *tableState {
	return &tableState{changed: make(chan struct{})}
}

func (st *tableState) idle() bool {
	return st.readers == 0 && st.related == 0 && st.writer == ""
}

// Manager is the per-database lock table. There should be one Manager shared
// by every transaction touching the database.
type Manager struct {
	mu     sync.Mutex
	tables map[string]*tableState

	// WaitTimeout bounds every acquisition wait. Zero means wait forever.
	// Set it before commands run.
	WaitTimeout time.Duration
}

func NewManager() *Manager {
	return &Manager{tables: make(map[string]*tableState)}
}

func (m *Manager) state(name string) *tableState {
	st, ok := m.tables[name]
	if !ok {
		st = newTableState()
		m.tables[name] = st
	}
	return st
}

// AcquireRead blocks until no writer holds the table.
func (m *Manager) AcquireRead(t *schema.Table, tx *transaction.Transaction) error {
	return m.acquire(t.Name(), tx.ID, func(st *tableState) bool {
		if st.writer != "" {
			return false
		}
		st.readers++
		return true
	})
}

// AcquireWrite blocks until the table is free of readers, related holders,
// and writers.
func (m *Manager) AcquireWrite(t *schema.Table, tx *transaction.Transaction) error {
	return m.acquire(t.Name(), tx.ID, func(st *tableState) bool {
		if !st.idle() {
			return false
		}
		st.writer = tx.ID
		return true
	})
}

// AcquireRelated blocks until no writer holds the table.
func (m *Manager) AcquireRelated(t *schema.Table, tx *transaction.Transaction) error {
	return m.acquire(t.Name(), tx.ID, func(st *tableState) bool {
		if st.writer != "" {
			return false
		}
		st.related++
		return true
	})
}

// acquire runs the wait-and-retry loop: take the guard, attempt the grant,
// otherwise park on the state's change channel until a release wakes us.
// On timeout nothing has been taken.
func (m *Manager) acquire(name, txID string, grant func(*tableState) bool) error {
	var deadline <-chan time.Time
	if m.WaitTimeout > 0 {
		timer := time.NewTimer(m.WaitTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		m.mu.Lock()
		st := m.state(name)
		if grant(st) {
			m.mu.Unlock()
			return nil
		}
		wait := st.changed
		m.mu.Unlock()

		if deadline == nil {
			<-wait
			continue
		}
		select {
		case <-wait:
		case <-deadline:
			return fmt.Errorf("%w: table %s (tx %s)", ErrLockTimeout, name, txID)
		}
	}
}

// ReleaseRead releases one read hold and wakes waiters.
func (m *Manager) ReleaseRead(t *schema.Table, tx *transaction.Transaction) {
	m.release(t.Name(), func(st *tableState) {
		st.readers--
	})
}

// ReleaseWrite releases the write hold and wakes waiters.
func (m *Manager) ReleaseWrite(t *schema.Table, tx *transaction.Transaction) {
	m.release(t.Name(), func(st *tableState) {
		if st.writer != tx.ID {
			panic(fmt.Sprintf("lock: release of write lock on %s not held by tx %s", t.Name(), tx.ID))
		}
		st.writer = ""
	})
}

// ReleaseRelated releases one related hold and wakes waiters.
func (m *Manager) ReleaseRelated(t *schema.Table, tx *transaction.Transaction) {
	m.release(t.Name(), func(st *tableState) {
		st.related--
	})
}

func (m *Manager) release(name string, apply func(*tableState)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.tables[name]
	if !ok {
		panic(fmt.Sprintf("lock: release on unlocked table %s", name))
	}
	apply(st)
	close(st.changed)
	st.changed = make(chan struct{})
	if st.idle() {
		delete(m.tables, name)
	}
}

// Held reports how many tables currently carry any lock state. Useful for
// leak checks in tests.
func (m *Manager) Held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables)
}
