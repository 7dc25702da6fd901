package schema

import "fmt"

// Table owns an ordered sequence of indexes (insertion order = mutation
// order) and the constraint set applied to incoming rows. Whether query
// results over the table are cloned is decided once here, at registration,
// by installing (or not) a CloneFunc.
type Table struct {
	name        string
	columns     []Column
	indexes     []*Index
	constraints *ConstraintSet
	cloner      CloneFunc
}

// NewTable builds a table and one index per primary-key or unique column.
// Tables created this way hold mapped entity rows and clone query results;
// resist sharing result rows with stored ones.
func NewTable(name string, columns []Column) *Table {
	t := &Table{
		name:    name,
		columns: columns,
		cloner:  CloneRow,
	}
	t.constraints = newConstraintSet(name, columns)
	for _, col := range columns {
		if col.PrimaryKey || col.Unique {
			t.addIndex(fmt.Sprintf("%s_%s", name, col.Name), col.Name, true)
		}
	}
	return t
}

func (t *Table) Name() string      { return t.name }
func (t *Table) Columns() []Column { return t.columns }

// Indexes returns the table's indexes in registration order. Commands mutate
// them in exactly this order.
func (t *Table) Indexes() []*Index { return t.indexes }

// Constraints returns the table's constraint set.
func (t *Table) Constraints() *ConstraintSet { return t.constraints }

// Cloner returns the row-cloning capability, nil when results need no
// defensive copy.
func (t *Table) Cloner() CloneFunc { return t.cloner }

// SetCloner overrides the clone capability. Passing nil marks the table's
// rows as safe to hand out uncloned.
func (t *Table) SetCloner(fn CloneFunc) { t.cloner = fn }

// AddIndex registers a secondary index on column. Must happen before rows
// are inserted; the engine does not backfill.
func (t *Table) AddIndex(name, column string, unique bool) *Index {
	return t.addIndex(name, column, unique)
}

func (t *Table) addIndex(name, column string, unique bool) *Index {
	ix := newIndex(name, column, unique, t)
	t.indexes = append(t.indexes, ix)
	return ix
}

// PrimaryIndex returns the table's first index, by convention the primary
// key's, or nil for an indexless table.
func (t *Table) PrimaryIndex() *Index {
	if len(t.indexes) == 0 {
		return nil
	}
	return t.indexes[0]
}

// IndexOn returns the first index over column, or nil.
func (t *Table) IndexOn(column string) *Index {
	for _, ix := range t.indexes {
		if ix.column == column {
			return ix
		}
	}
	return nil
}

// Len returns the table's row count as observed through its primary index.
func (t *Table) Len() int {
	if ix := t.PrimaryIndex(); ix != nil {
		return ix.Len()
	}
	return 0
}
