package transaction

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// txIDCounter is an atomic counter for generating monotonic numeric IDs,
// handy where a uint64 ordering key is wanted
var txIDCounter uint64

// Transaction is the identity every lock and log entry in a command is
// scoped to. Its lifecycle (begin/commit/rollback) belongs to the caller.
type Transaction struct {
	ID        string    // Unique transaction identifier (UUID)
	TxID      uint64    // Numeric transaction ID, monotonic per process
	Active    bool      // Whether transaction is currently active
	StartTime time.Time // When the transaction began
}

// NewTransaction creates a new transaction with a unique ID
func NewTransaction() *Transaction {
	return &Transaction{
		ID:        uuid.New().String(),
		TxID:      atomic.AddUint64(&txIDCounter, 1),
		Active:    true,
		StartTime: time.Now(),
	}
}

// Close marks the transaction as inactive
func (tx *Transaction) Close() {
	tx.Active = false
}
