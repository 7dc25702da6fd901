package schema

import (
	"fmt"
	"strings"
)

// ConstraintError represents a violation of a table constraint
// (unique, primary key, not null, type mismatch, auto-increment sequence).
type ConstraintError struct {
	Table      string      // table name
	Column     string      // column name (empty if table-level constraint)
	Value      interface{} // offending value (may be nil)
	Constraint string      // "unique", "primary_key", "not_null", "type_mismatch", etc.
	Reason     string      // human-readable explanation (optional)
}

func (e *ConstraintError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("constraint violation in %s.%s", e.Table, e.Column))

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewUniqueViolation(table, column string, value interface{}) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "unique",
		Reason:     "duplicate value",
	}
}

func NewNotNullViolation(table, column string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Constraint: "not_null",
		Reason:     "missing required value",
	}
}

func NewTypeMismatch(table, column string, value interface{}, expected string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "type_mismatch",
		Reason:     fmt.Sprintf("expected %s, got %T", expected, value),
	}
}

// ForeignKeyError reports a row whose foreign-key value has no matching
// referenced row. It identifies the violated relation.
type ForeignKeyError struct {
	Relation string      // relation name
	Table    string      // referencing table
	Column   string      // referencing column
	Value    interface{} // foreign-key value with no parent match
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key violation on relation %s: %s.%s=%v has no referenced row",
		e.Relation, e.Table, e.Column, e.Value)
}
