package schema

import (
	"fmt"
	"regexp"
	"sync/atomic"
)

// Email validation regex - reasonable balance between strictness and practicality
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ConstraintSet prepares and validates a row against its table's column
// definitions. Apply runs before any lock is taken: it mutates only the
// not-yet-shared row, so it needs no synchronization beyond the atomic
// auto-increment counter.
type ConstraintSet struct {
	table   string
	columns []Column
	lastID  atomic.Int64
}

func newConstraintSet(table string, columns []Column) *ConstraintSet {
	return &ConstraintSet{table: table, columns: columns}
}

// Apply fills defaults and the auto-increment primary key, then validates
// NOT NULL and type compatibility, normalizing integer values to int64.
// The row is mutated in place.
func (cs *ConstraintSet) Apply(row Row) error {
	for _, col := range cs.columns {
		if _, exists := row[col.Name]; exists {
			continue
		}
		if col.Default != nil {
			row[col.Name] = col.Default
		}
	}

	if err := cs.applyAutoIncrement(row); err != nil {
		return err
	}

	return cs.validate(row)
}

func (cs *ConstraintSet) applyAutoIncrement(row Row) error {
	var autoIncCol *Column
	for i := range cs.columns {
		if cs.columns[i].AutoIncrement && cs.columns[i].PrimaryKey {
			autoIncCol = &cs.columns[i]
			break
		}
	}

	if autoIncCol == nil {
		// If PK is not auto-increment, it must be provided
		for _, col := range cs.columns {
			if col.PrimaryKey {
				if _, exists := row[col.Name]; !exists {
					return &ConstraintError{
						Table:      cs.table,
						Column:     col.Name,
						Constraint: "primary_key",
						Reason:     "primary key value required",
					}
				}
			}
		}
		return nil
	}

	// Allow callers to override auto-increment (for imports, migrations, etc.)
	if val, exists := row[autoIncCol.Name]; exists {
		userID, ok := normalizeToInt64(val)
		if !ok {
			return &ConstraintError{
				Table:      cs.table,
				Column:     autoIncCol.Name,
				Value:      val,
				Constraint: "type_mismatch",
				Reason:     "auto-increment column must be integer",
			}
		}
		// Keep the sequence ahead of explicit values
		for {
			cur := cs.lastID.Load()
			if userID <= cur {
				return &ConstraintError{
					Table:      cs.table,
					Column:     autoIncCol.Name,
					Value:      userID,
					Constraint: "auto_increment",
					Reason:     "provided value is not greater than current sequence",
				}
			}
			if cs.lastID.CompareAndSwap(cur, userID) {
				break
			}
		}
		row[autoIncCol.Name] = userID
		return nil
	}

	row[autoIncCol.Name] = cs.lastID.Add(1)
	return nil
}

// validate checks NOT NULL and type compatibility for every column.
func (cs *ConstraintSet) validate(row Row) error {
	for _, col := range cs.columns {
		val, exists := row[col.Name]

		if !exists {
			if col.NotNull || col.PrimaryKey {
				return NewNotNullViolation(cs.table, col.Name)
			}
			continue // nullable
		}

		switch col.Type {
		case ColumnTypeText:
			if _, ok := val.(string); !ok {
				return NewTypeMismatch(cs.table, col.Name, val, "string")
			}

		case ColumnTypeInt:
			n, ok := normalizeToInt64(val)
			if !ok {
				return NewTypeMismatch(cs.table, col.Name, val, "integer")
			}
			row[col.Name] = n // normalize to int64

		case ColumnTypeFloat:
			if _, ok := val.(float64); !ok {
				return NewTypeMismatch(cs.table, col.Name, val, "float (number)")
			}

		case ColumnTypeBool:
			if _, ok := val.(bool); !ok {
				return NewTypeMismatch(cs.table, col.Name, val, "boolean")
			}

		case ColumnTypeEmail:
			str, ok := val.(string)
			if !ok {
				return NewTypeMismatch(cs.table, col.Name, val, "string")
			}
			if !emailRegex.MatchString(str) {
				return &ConstraintError{
					Table:      cs.table,
					Column:     col.Name,
					Value:      val,
					Constraint: "invalid_email",
					Reason:     "invalid email format",
				}
			}

		default:
			return fmt.Errorf("unknown column type %q", col.Type)
		}
	}

	return nil
}

// normalizeToInt64 accepts the integer shapes a caller may hand us,
// including JSON numbers arriving as float64
func normalizeToInt64(val interface{}) (int64, bool) {
	switch v := val.(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
