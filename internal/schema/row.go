package schema

// Row represents a single table row
// Key = column name, Value = cell value
type Row map[string]interface{}

// Copy returns a shallow copy of the row. Cell values are scalars after
// normalization, so a shallow copy severs all aliasing with the original.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether two rows hold the same columns and values.
// Used by index removal during rollback, where values are already normalized
// scalars and therefore comparable.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// CloneFunc produces an independently owned copy of a row. A table registered
// as a mapped entity type carries one; tables of computed results carry none.
type CloneFunc func(Row) Row

// CloneRow is the CloneFunc installed by default for mapped entity tables.
func CloneRow(r Row) Row {
	return r.Copy()
}
