// Package engine is the command-execution core: it turns a logical operation
// (query, insert) into a sequence of locked, validated, logged mutations
// against a set of indexed tables. The engine performs no internal
// parallelism; concurrency comes from independent transactions invoking
// commands against the shared database.
package engine

import (
	"github.com/mkariuki/memrel/internal/domain/transaction"
	"github.com/mkariuki/memrel/internal/schema"
)

// LockManager is the contract the executor requires from its lock provider.
// Acquisitions may block; a failed acquisition must hold nothing. The
// executor pairs every successful acquire with exactly one release, on every
// exit path.
type LockManager interface {
	AcquireRead(t *schema.Table, tx *transaction.Transaction) error
	AcquireWrite(t *schema.Table, tx *transaction.Transaction) error
	AcquireRelated(t *schema.Table, tx *transaction.Transaction) error
	ReleaseRead(t *schema.Table, tx *transaction.Transaction)
	ReleaseWrite(t *schema.Table, tx *transaction.Transaction)
	ReleaseRelated(t *schema.Table, tx *transaction.Transaction)
}

// ExecutionContext carries everything one command invocation needs. It is
// created per command and owned by the caller.
type ExecutionContext struct {
	Tx    *transaction.Transaction
	DB    *schema.Database
	Locks LockManager
}
