package schema

// Relation is a directed foreign-key edge between two tables' indexes:
// the referencing (child) index holds the foreign-key column, the referenced
// (parent) index must contain a matching key for every child row.
type Relation struct {
	name        string
	referencing *Index
	referenced  *Index
}

func NewRelation(name string, referencing, referenced *Index) *Relation {
	return &Relation{
		name:        name,
		referencing: referencing,
		referenced:  referenced,
	}
}

func (r *Relation) Name() string { return r.name }

// ReferencingIndex returns the child side of the edge.
func (r *Relation) ReferencingIndex() *Index { return r.referencing }

// ReferencedIndex returns the parent side of the edge.
func (r *Relation) ReferencedIndex() *Index { return r.referenced }

func (r *Relation) ReferencingTable() *Table { return r.referencing.Table() }
func (r *Relation) ReferencedTable() *Table  { return r.referenced.Table() }

// Validate checks that row's foreign-key value has a matching referenced row.
// A nil foreign-key value is not a violation; NOT NULL is the constraint
// set's concern.
func (r *Relation) Validate(row Row) error {
	key, exists := row[r.referencing.Column()]
	if !exists || key == nil {
		return nil
	}
	if !r.referenced.Contains(key) {
		return &ForeignKeyError{
			Relation: r.name,
			Table:    r.referencing.Table().Name(),
			Column:   r.referencing.Column(),
			Value:    key,
		}
	}
	return nil
}
