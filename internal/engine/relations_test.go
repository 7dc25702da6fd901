package engine

import (
	"testing"

	"github.com/mkariuki/memrel/internal/schema"
)

// fkSchema builds customers <- orders -> products: orders references both,
// customers and products reference nothing.
func fkSchema(t *testing.T) (*schema.Database, *schema.Table, *schema.Table, *schema.Table) {
	t.Helper()

	db := schema.NewDatabase("testdb")
	customers := schema.NewTable("customers", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true},
	})
	products := schema.NewTable("products", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true},
	})
	orders := schema.NewTable("orders", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true},
		{Name: "customer_id", Type: schema.ColumnTypeInt},
		{Name: "product_id", Type: schema.ColumnTypeInt},
	})
	byCustomer := orders.AddIndex("orders_customer_id", "customer_id", false)
	byProduct := orders.AddIndex("orders_product_id", "product_id", false)

	for _, tbl := range []*schema.Table{customers, products, orders} {
		if err := db.AddTable(tbl); err != nil {
			t.Fatal(err)
		}
	}
	db.AddRelation("orders_customers_fk", byCustomer, customers.PrimaryIndex())
	db.AddRelation("orders_products_fk", byProduct, products.PrimaryIndex())
	return db, customers, products, orders
}

func TestGroupForModes(t *testing.T) {
	db, customers, _, orders := fkSchema(t)

	t.Run("OrdersReferringOnly", func(t *testing.T) {
		g := GroupFor(db.Relations(), orders, RelationsReferring)
		if len(g.Referring) != 2 || len(g.Referred) != 0 {
			t.Errorf("Expected 2 referring / 0 referred, got %d/%d", len(g.Referring), len(g.Referred))
		}
	})

	t.Run("CustomersReferredOnly", func(t *testing.T) {
		g := GroupFor(db.Relations(), customers, RelationsReferred)
		if len(g.Referring) != 0 || len(g.Referred) != 1 {
			t.Errorf("Expected 0 referring / 1 referred, got %d/%d", len(g.Referring), len(g.Referred))
		}
	})

	t.Run("AllSides", func(t *testing.T) {
		g := GroupFor(db.Relations(), orders, RelationsAll)
		if len(g.Referring) != 2 || len(g.Referred) != 0 {
			t.Errorf("Expected 2 referring / 0 referred, got %d/%d", len(g.Referring), len(g.Referred))
		}
	})
}

func TestRelatedTables(t *testing.T) {
	db, customers, products, orders := fkSchema(t)

	t.Run("ChildSeesBothParentsSorted", func(t *testing.T) {
		g := GroupFor(db.Relations(), orders, RelationsAll)
		related := g.RelatedTables(orders)
		if len(related) != 2 {
			t.Fatalf("Expected 2 related tables, got %d", len(related))
		}
		if related[0] != customers || related[1] != products {
			t.Errorf("Expected [customers products], got [%s %s]", related[0].Name(), related[1].Name())
		}
	})

	t.Run("ParentSeesChild", func(t *testing.T) {
		g := GroupFor(db.Relations(), customers, RelationsAll)
		related := g.RelatedTables(customers)
		if len(related) != 1 || related[0] != orders {
			t.Errorf("Expected [orders], got %v", related)
		}
	})

	t.Run("SelfExcluded", func(t *testing.T) {
		g := GroupFor(db.Relations(), orders, RelationsAll)
		for _, tbl := range g.RelatedTables(orders) {
			if tbl == orders {
				t.Error("Related set must exclude the table itself")
			}
		}
	})
}

func TestRelatedTablesDedup(t *testing.T) {
	// Two FK columns referencing the same parent must yield one related table.
	db := schema.NewDatabase("testdb")
	people := schema.NewTable("people", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true},
	})
	transfers := schema.NewTable("transfers", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true},
		{Name: "from_id", Type: schema.ColumnTypeInt},
		{Name: "to_id", Type: schema.ColumnTypeInt},
	})
	from := transfers.AddIndex("transfers_from", "from_id", false)
	to := transfers.AddIndex("transfers_to", "to_id", false)
	for _, tbl := range []*schema.Table{people, transfers} {
		if err := db.AddTable(tbl); err != nil {
			t.Fatal(err)
		}
	}
	db.AddRelation("transfers_from_fk", from, people.PrimaryIndex())
	db.AddRelation("transfers_to_fk", to, people.PrimaryIndex())

	g := GroupFor(db.Relations(), transfers, RelationsAll)
	related := g.RelatedTables(transfers)
	if len(related) != 1 || related[0] != people {
		t.Errorf("Expected deduplicated [people], got %v", related)
	}
}
