// Package plan provides the concrete plan nodes the engine executes: full
// and filtered table scans, unique-index lookups, and scalar aggregates.
// Plans only declare what they read; the engine supplies locking, draining,
// and cloning.
package plan

import (
	"github.com/mkariuki/memrel/internal/engine"
	"github.com/mkariuki/memrel/internal/schema"
)

// PredicateFunc decides whether a row belongs to a filtered scan's result.
type PredicateFunc func(schema.Row) bool

// sliceIter walks a snapshot slice of rows, optionally filtered.
type sliceIter struct {
	rows []schema.Row
	pos  int
	pred PredicateFunc
}

func (it *sliceIter) Next() (schema.Row, bool) {
	for it.pos < len(it.rows) {
		row := it.rows[it.pos]
		it.pos++
		if it.pred == nil || it.pred(row) {
			return row, true
		}
	}
	return nil, false
}

func (it *sliceIter) Err() error { return nil }

// Scan is a full-table scan over the table's primary index, in insertion
// order.
type Scan struct {
	table *schema.Table
}

// NewScan builds a scan over t. The clone capability is resolved here, once,
// from the table registration.
func NewScan(t *schema.Table) *Scan {
	return &Scan{table: t}
}

func (p *Scan) Tables() []*schema.Table { return []*schema.Table{p.table} }

func (p *Scan) Cloner() schema.CloneFunc { return p.table.Cloner() }

func (p *Scan) Run(ctx *engine.ExecutionContext) (engine.RowIter, error) {
	ix := p.table.PrimaryIndex()
	if ix == nil {
		return &sliceIter{}, nil
	}
	return &sliceIter{rows: ix.Rows()}, nil
}

// ScanWhere is a predicate-filtered scan.
type ScanWhere struct {
	table *schema.Table
	pred  PredicateFunc
}

func NewScanWhere(t *schema.Table, pred PredicateFunc) *ScanWhere {
	return &ScanWhere{table: t, pred: pred}
}

func (p *ScanWhere) Tables() []*schema.Table  { return []*schema.Table{p.table} }
func (p *ScanWhere) Cloner() schema.CloneFunc { return p.table.Cloner() }

func (p *ScanWhere) Run(ctx *engine.ExecutionContext) (engine.RowIter, error) {
	ix := p.table.PrimaryIndex()
	if ix == nil {
		return &sliceIter{}, nil
	}
	return &sliceIter{rows: ix.Rows(), pred: p.pred}, nil
}
