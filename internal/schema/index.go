package schema

// Index is an in-memory single-column index. It stores the row values
// themselves: a bucket map for key lookups plus an insertion-ordered slice so
// scans are deterministic. An index belongs to exactly one table and is only
// ever mutated by a command holding that table's write lock.
type Index struct {
	name   string
	column string
	unique bool
	table  *Table

	data map[interface{}][]Row
	rows []Row // insertion order
}

func newIndex(name, column string, unique bool, table *Table) *Index {
	return &Index{
		name:   name,
		column: column,
		unique: unique,
		table:  table,
		data:   make(map[interface{}][]Row),
	}
}

func (ix *Index) Name() string   { return ix.name }
func (ix *Index) Column() string { return ix.column }
func (ix *Index) Unique() bool   { return ix.unique }

// Table returns the table this index serves.
func (ix *Index) Table() *Table { return ix.table }

// Insert adds one row to the index. For unique indexes a key collision fails
// the insert and leaves the index untouched.
func (ix *Index) Insert(row Row) error {
	key := row[ix.column]
	if ix.unique {
		if _, found := ix.data[key]; found {
			return NewUniqueViolation(ix.table.Name(), ix.column, key)
		}
	}
	ix.data[key] = append(ix.data[key], row)
	ix.rows = append(ix.rows, row)
	return nil
}

// Remove deletes one previously inserted row. It exists for rollback
// compensation only: the caller passes the exact row it inserted.
func (ix *Index) Remove(row Row) {
	key := row[ix.column]
	bucket := ix.data[key]
	for i := len(bucket) - 1; i >= 0; i-- {
		if bucket[i].Equal(row) {
			ix.data[key] = append(bucket[:i], bucket[i+1:]...)
			if len(ix.data[key]) == 0 {
				delete(ix.data, key)
			}
			break
		}
	}
	for i := len(ix.rows) - 1; i >= 0; i-- {
		if ix.rows[i].Equal(row) {
			ix.rows = append(ix.rows[:i], ix.rows[i+1:]...)
			break
		}
	}
}

// Lookup returns the rows stored under key.
func (ix *Index) Lookup(key interface{}) []Row {
	return ix.data[key]
}

// Contains reports whether any row is stored under key.
func (ix *Index) Contains(key interface{}) bool {
	return len(ix.data[key]) > 0
}

// Rows returns the indexed rows in insertion order. Callers must hold at
// least a read lock on the table while consuming the slice.
func (ix *Index) Rows() []Row { return ix.rows }

// Len returns the number of rows in the index.
func (ix *Index) Len() int { return len(ix.rows) }
