package engine

import (
	"sort"

	"github.com/mkariuki/memrel/internal/schema"
)

// Insert applies the table's constraints to row, validates referential
// integrity, and inserts the row into every index of the table, all-or-
// nothing. On any failure the table is left exactly as before the call.
//
// The foreign-key asymmetry is deliberate and must stay: validation covers
// only the edges going out of the table (a new row cannot break an edge
// pointing at it, since nothing refers to it yet), while the related locks
// cover the far table of every edge on either side, so neither a referenced
// parent nor a referencing child can be mutated concurrently.
func Insert(t *schema.Table, row schema.Row, ctx *ExecutionContext) error {
	// Constraints run before any lock: they mutate only our private copy.
	rec := row.Copy()
	if err := t.Constraints().Apply(rec); err != nil {
		return err
	}

	group := GroupFor(ctx.DB.Relations(), t, RelationsAll)
	related := group.RelatedTables(t)

	// One globally name-sorted acquisition pass over the whole lock set,
	// write for t, related for the rest. Every command sorts the same way,
	// so overlapping inserts on related tables cannot deadlock.
	for _, lt := range sortLockSet(t, related) {
		if lt == t {
			if err := ctx.Locks.AcquireWrite(lt, ctx.Tx); err != nil {
				return err
			}
			defer ctx.Locks.ReleaseWrite(lt, ctx.Tx)
		} else {
			if err := ctx.Locks.AcquireRelated(lt, ctx.Tx); err != nil {
				return err
			}
			defer ctx.Locks.ReleaseRelated(lt, ctx.Tx)
		}
	}

	// Fail fast on the first violated edge, before any index is touched.
	for _, rel := range group.Referring {
		if err := rel.Validate(rec); err != nil {
			return err
		}
	}

	scope := NewLogScope(ctx.Tx)
	defer scope.Close()

	for _, ix := range t.Indexes() {
		if err := ix.Insert(rec); err != nil {
			// scope stays incomplete; Close rolls back the earlier indexes
			return err
		}
		scope.Record(ix, rec)
	}

	scope.Complete()
	return nil
}

// sortLockSet merges the mutated table and its related tables into the
// global name order used for acquisition.
func sortLockSet(t *schema.Table, related []*schema.Table) []*schema.Table {
	out := make([]*schema.Table, 0, len(related)+1)
	out = append(out, t)
	out = append(out, related...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
