package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkariuki/memrel/internal/domain/transaction"
	"github.com/mkariuki/memrel/internal/schema"
)

// Engine is the command entry point for one database. It creates a
// transaction and an execution context per command, runs the command
// executor, and notifies observers of lifecycle events.
type Engine struct {
	db        *schema.Database
	locks     LockManager
	observers []Observer
}

// New creates an Engine over db using locks for concurrency control.
func New(db *schema.Database, locks LockManager) *Engine {
	return &Engine{
		db:        db,
		locks:     locks,
		observers: make([]Observer, 0),
	}
}

// Database returns the engine's database.
func (e *Engine) Database() *schema.Database { return e.db }

// Context builds an execution context for one command under tx.
func (e *Engine) Context(tx *transaction.Transaction) *ExecutionContext {
	return &ExecutionContext{Tx: tx, DB: e.db, Locks: e.locks}
}

// Rows runs a row plan in its own transaction and returns the materialized
// snapshot.
func (e *Engine) Rows(plan RowPlan) ([]schema.Row, error) {
	tx := transaction.NewTransaction()
	defer tx.Close()

	e.notify(Event{Type: EventQueryStart, TxID: tx.ID})
	rows, err := QueryRows(plan, e.Context(tx))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	e.notify(Event{Type: EventQueryEnd, TxID: tx.ID, Data: len(rows)})
	return rows, nil
}

// Insert runs an insert command against the named table in its own
// transaction.
func (e *Engine) Insert(tableName string, row schema.Row) error {
	t, err := e.db.Table(tableName)
	if err != nil {
		return err
	}

	tx := transaction.NewTransaction()
	defer tx.Close()

	e.notify(Event{Type: EventInsertStart, TxID: tx.ID, Table: tableName})
	if err := Insert(t, row, e.Context(tx)); err != nil {
		var fkErr *schema.ForeignKeyError
		var cErr *schema.ConstraintError
		if errors.As(err, &fkErr) || errors.As(err, &cErr) {
			e.notify(Event{Type: EventRollback, TxID: tx.ID, Table: tableName, Data: err.Error()})
		}
		return err
	}
	e.notify(Event{Type: EventInsertEnd, TxID: tx.ID, Table: tableName})
	return nil
}

// Scalar runs a scalar plan in its own transaction. A package function
// because methods cannot carry type parameters.
func Scalar[T any](e *Engine, plan ScalarPlan[T]) (T, error) {
	tx := transaction.NewTransaction()
	defer tx.Close()

	e.notify(Event{Type: EventQueryStart, TxID: tx.ID})
	v, err := QueryScalar(plan, e.Context(tx))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("query failed: %w", err)
	}
	e.notify(Event{Type: EventQueryEnd, TxID: tx.ID, Data: v})
	return v, nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
