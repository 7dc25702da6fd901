package plan

import (
	"github.com/mkariuki/memrel/internal/engine"
	"github.com/mkariuki/memrel/internal/schema"
)

// Lookup returns the rows stored under one key of an index.
type Lookup struct {
	index *schema.Index
	key   interface{}
}

func NewLookup(ix *schema.Index, key interface{}) *Lookup {
	// Integer keys are stored normalized to int64
	if n, ok := key.(int); ok {
		key = int64(n)
	}
	return &Lookup{index: ix, key: key}
}

func (p *Lookup) Tables() []*schema.Table  { return []*schema.Table{p.index.Table()} }
func (p *Lookup) Cloner() schema.CloneFunc { return p.index.Table().Cloner() }

func (p *Lookup) Run(ctx *engine.ExecutionContext) (engine.RowIter, error) {
	return &sliceIter{rows: p.index.Lookup(p.key)}, nil
}
