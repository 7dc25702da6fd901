package engine

import (
	"github.com/mkariuki/memrel/internal/domain/transaction"
	"github.com/mkariuki/memrel/internal/schema"
)

// logEntry records that one index received one row.
type logEntry struct {
	index *schema.Index
	row   schema.Row
}

// LogScope is a command-local mutation log. The command records each index
// insert as it lands and calls Complete once every index succeeded. Close
// runs at scope exit (deferred); if Complete was never reached it compensates
// the recorded inserts in reverse order, leaving the table exactly as it was
// before the command. A scope never outlives its command.
type LogScope struct {
	tx        *transaction.Transaction
	entries   []logEntry
	completed bool
	closed    bool
}

// NewLogScope opens a scope bound to tx.
func NewLogScope(tx *transaction.Transaction) *LogScope {
	return &LogScope{tx: tx}
}

// Record appends an entry for an index insert that just succeeded.
// Recording after Complete is a programming error and panics.
func (s *LogScope) Record(ix *schema.Index, row schema.Row) {
	if s.completed {
		panic("engine: LogScope.Record after Complete")
	}
	if s.closed {
		panic("engine: LogScope.Record after Close")
	}
	s.entries = append(s.entries, logEntry{index: ix, row: row})
}

// Complete marks the command's mutations permanent; Close will roll back
// nothing.
func (s *LogScope) Complete() {
	s.completed = true
}

// Completed reports whether Complete was called.
func (s *LogScope) Completed() bool { return s.completed }

// Len returns the number of recorded entries.
func (s *LogScope) Len() int { return len(s.entries) }

// Close ends the scope. Without a prior Complete it removes the recorded
// rows from their indexes in reverse insertion order. Closing twice is a
// no-op.
func (s *LogScope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.completed {
		return
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		e.index.Remove(e.row)
	}
	s.entries = nil
}
