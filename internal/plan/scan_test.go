package plan

import (
	"testing"

	"github.com/mkariuki/memrel/internal/domain/transaction"
	"github.com/mkariuki/memrel/internal/engine"
	"github.com/mkariuki/memrel/internal/lock"
	"github.com/mkariuki/memrel/internal/schema"
)

func planFixture(t *testing.T) (*schema.Table, func() *engine.ExecutionContext) {
	t.Helper()
	db := schema.NewDatabase("testdb")
	users := schema.NewTable("users", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true},
		{Name: "name", Type: schema.ColumnTypeText},
	})
	if err := db.AddTable(users); err != nil {
		t.Fatal(err)
	}

	locks := lock.NewManager()
	newCtx := func() *engine.ExecutionContext {
		return &engine.ExecutionContext{Tx: transaction.NewTransaction(), DB: db, Locks: locks}
	}

	for i, name := range []string{"alice", "bob", "carol"} {
		if err := engine.Insert(users, schema.Row{"id": i + 1, "name": name}, newCtx()); err != nil {
			t.Fatal(err)
		}
	}
	return users, newCtx
}

func TestScanYieldsInsertionOrder(t *testing.T) {
	users, newCtx := planFixture(t)

	rows, err := engine.QueryRows(NewScan(users), newCtx())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row["id"] != int64(i+1) {
			t.Errorf("Row %d out of order: %v", i, row)
		}
	}
}

func TestScanWhereFilters(t *testing.T) {
	users, newCtx := planFixture(t)

	rows, err := engine.QueryRows(NewScanWhere(users, func(row schema.Row) bool {
		return row["name"] != "bob"
	}), newCtx())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(rows))
	}
}

func TestLookupNormalizesIntKeys(t *testing.T) {
	users, newCtx := planFixture(t)

	// Stored keys are int64; a plain int key must still match.
	rows, err := engine.QueryRows(NewLookup(users.PrimaryIndex(), 2), newCtx())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["name"] != "bob" {
		t.Errorf("Expected bob, got %v", rows)
	}
}

func TestCountPlans(t *testing.T) {
	users, newCtx := planFixture(t)

	n, err := engine.QueryScalar[int](NewCount(users), newCtx())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Expected 3, got %d", n)
	}

	n, err = engine.QueryScalar[int](NewCountWhere(users, func(row schema.Row) bool {
		return row["id"].(int64) >= 2
	}), newCtx())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Expected 2, got %d", n)
	}
}
