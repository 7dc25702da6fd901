package plan

import (
	"github.com/mkariuki/memrel/internal/engine"
	"github.com/mkariuki/memrel/internal/schema"
)

// Count is a scalar plan returning a table's row count.
type Count struct {
	table *schema.Table
}

func NewCount(t *schema.Table) *Count {
	return &Count{table: t}
}

func (p *Count) Tables() []*schema.Table { return []*schema.Table{p.table} }

func (p *Count) Run(ctx *engine.ExecutionContext) (int, error) {
	return p.table.Len(), nil
}

// CountWhere is a scalar plan counting the rows matching a predicate.
type CountWhere struct {
	table *schema.Table
	pred  PredicateFunc
}

func NewCountWhere(t *schema.Table, pred PredicateFunc) *CountWhere {
	return &CountWhere{table: t, pred: pred}
}

func (p *CountWhere) Tables() []*schema.Table { return []*schema.Table{p.table} }

func (p *CountWhere) Run(ctx *engine.ExecutionContext) (int, error) {
	ix := p.table.PrimaryIndex()
	if ix == nil {
		return 0, nil
	}
	n := 0
	for _, row := range ix.Rows() {
		if p.pred(row) {
			n++
		}
	}
	return n, nil
}
