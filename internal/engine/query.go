package engine

import "github.com/mkariuki/memrel/internal/schema"

// RowIter is a lazy row sequence produced by a plan. It may read index
// internals incrementally, so it is only valid while the executor holds the
// plan's read locks; the executor drains it fully before returning.
type RowIter interface {
	// Next returns the next row, or ok=false when the sequence ends.
	Next() (row schema.Row, ok bool)
	// Err reports a failure that ended the sequence early.
	Err() error
}

// RowPlan produces a sequence of rows. Tables must be deterministic for a
// given plan: it declares every table the plan reads. Cloner is the clone
// capability resolved when the plan was built; nil means results need no
// defensive copy.
type RowPlan interface {
	Tables() []*schema.Table
	Run(ctx *ExecutionContext) (RowIter, error)
	Cloner() schema.CloneFunc
}

// ScalarPlan computes a single value, for aggregates and lookups where no
// live index reference escapes.
type ScalarPlan[T any] interface {
	Tables() []*schema.Table
	Run(ctx *ExecutionContext) (T, error)
}

// QueryRows executes a row plan and returns a materialized, consistent
// snapshot. Read locks on the plan's tables are taken in name order, held
// across the whole drain, and released on every path; each drained row is
// cloned through the plan's capability so no returned row aliases stored
// data. The caller consumes the result without holding any lock.
func QueryRows(plan RowPlan, ctx *ExecutionContext) ([]schema.Row, error) {
	for _, t := range sortTables(plan.Tables()) {
		if err := ctx.Locks.AcquireRead(t, ctx.Tx); err != nil {
			return nil, err
		}
		defer ctx.Locks.ReleaseRead(t, ctx.Tx)
	}

	it, err := plan.Run(ctx)
	if err != nil {
		return nil, err
	}

	clone := plan.Cloner()
	var rows []schema.Row
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		if clone != nil {
			row = clone(row)
		}
		rows = append(rows, row)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// QueryScalar executes a scalar plan under the same read-locking discipline
// as QueryRows. The computed value is returned as-is; scalar plans must not
// leak live index references.
func QueryScalar[T any](plan ScalarPlan[T], ctx *ExecutionContext) (T, error) {
	var zero T
	for _, t := range sortTables(plan.Tables()) {
		if err := ctx.Locks.AcquireRead(t, ctx.Tx); err != nil {
			return zero, err
		}
		defer ctx.Locks.ReleaseRead(t, ctx.Tx)
	}
	return plan.Run(ctx)
}
