package schema

import "fmt"

// Database is the in-memory table and relation registry. Table identity is
// stable for the database's lifetime; the set is fixed before commands run.
type Database struct {
	name      string
	tables    map[string]*Table
	relations *RelationRegistry
}

func NewDatabase(name string) *Database {
	return &Database{
		name:      name,
		tables:    make(map[string]*Table),
		relations: NewRelationRegistry(),
	}
}

func (db *Database) Name() string { return db.name }

// AddTable registers a table under its name.
func (db *Database) AddTable(t *Table) error {
	if _, exists := db.tables[t.Name()]; exists {
		return fmt.Errorf("table %q already exists in database %q", t.Name(), db.name)
	}
	db.tables[t.Name()] = t
	return nil
}

// Table returns the named table.
func (db *Database) Table(name string) (*Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("table not found: %s", name)
	}
	return t, nil
}

// AddRelation wires a foreign-key edge between two registered indexes.
func (db *Database) AddRelation(name string, referencing, referenced *Index) *Relation {
	rel := NewRelation(name, referencing, referenced)
	db.relations.Add(rel)
	return rel
}

// Relations returns the database's relation registry.
func (db *Database) Relations() *RelationRegistry { return db.relations }
