package engine

import (
	"errors"
	"testing"

	"github.com/mkariuki/memrel/internal/lock"
	"github.com/mkariuki/memrel/internal/schema"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) types() []EventType {
	out := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Type
	}
	return out
}

func engineFixture(t *testing.T) *Engine {
	t.Helper()
	db, _, _, _ := fkSchema(t)
	return New(db, lock.NewManager())
}

func TestAddRemoveObserver(t *testing.T) {
	eng := engineFixture(t)
	observer := &MockObserver{}

	eng.AddObserver(observer)
	if len(eng.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(eng.observers))
	}

	eng.RemoveObserver(observer)
	if len(eng.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(eng.observers))
	}
}

func TestEngineInsertNotifies(t *testing.T) {
	eng := engineFixture(t)
	observer := &MockObserver{}
	eng.AddObserver(observer)

	if err := eng.Insert("customers", schema.Row{"id": 1}); err != nil {
		t.Fatal(err)
	}

	types := observer.types()
	if len(types) != 2 || types[0] != EventInsertStart || types[1] != EventInsertEnd {
		t.Errorf("Expected [insert_start insert_end], got %v", types)
	}
	if observer.Events[0].Table != "customers" {
		t.Errorf("Event missing table, got %q", observer.Events[0].Table)
	}
	if observer.Events[0].TxID == "" {
		t.Error("Event missing transaction ID")
	}
}

func TestEngineInsertFailureNotifiesRollback(t *testing.T) {
	eng := engineFixture(t)
	observer := &MockObserver{}
	eng.AddObserver(observer)

	err := eng.Insert("orders", schema.Row{"id": 1, "customer_id": 99})
	var fkErr *schema.ForeignKeyError
	if !errors.As(err, &fkErr) {
		t.Fatalf("Expected ForeignKeyError, got %v", err)
	}

	types := observer.types()
	if len(types) != 2 || types[1] != EventRollback {
		t.Errorf("Expected rollback event after failed insert, got %v", types)
	}
}

func TestEngineInsertUnknownTable(t *testing.T) {
	eng := engineFixture(t)
	if err := eng.Insert("missing", schema.Row{"id": 1}); err == nil {
		t.Error("Expected error for unknown table")
	}
}

func TestEngineRowsAndScalar(t *testing.T) {
	eng := engineFixture(t)
	customers, err := eng.Database().Table("customers")
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := eng.Insert("customers", schema.Row{"id": i}); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := eng.Rows(&stubPlan{table: customers})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(rows))
	}

	n, err := Scalar[int](eng, &stubScalar{table: customers})
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Expected count 3, got %d", n)
	}
}
