package schema

// RelationRegistry answers, for any index, which relations it participates
// in and on which side. It is append-only after schema setup, so commands
// read it without locks.
type RelationRegistry struct {
	byReferencing map[*Index][]*Relation
	byReferenced  map[*Index][]*Relation
}

func NewRelationRegistry() *RelationRegistry {
	return &RelationRegistry{
		byReferencing: make(map[*Index][]*Relation),
		byReferenced:  make(map[*Index][]*Relation),
	}
}

// Add registers a relation under both of its endpoint indexes.
func (rr *RelationRegistry) Add(rel *Relation) {
	rr.byReferencing[rel.ReferencingIndex()] = append(rr.byReferencing[rel.ReferencingIndex()], rel)
	rr.byReferenced[rel.ReferencedIndex()] = append(rr.byReferenced[rel.ReferencedIndex()], rel)
}

// ReferringOf returns the relations in which ix is the referencing (child)
// index: the edges going out of ix's table.
func (rr *RelationRegistry) ReferringOf(ix *Index) []*Relation {
	return rr.byReferencing[ix]
}

// ReferredOf returns the relations in which ix is the referenced (parent)
// index: the edges coming into ix's table.
func (rr *RelationRegistry) ReferredOf(ix *Index) []*Relation {
	return rr.byReferenced[ix]
}
