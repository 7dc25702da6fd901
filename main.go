package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/mkariuki/memrel/internal/engine"
	"github.com/mkariuki/memrel/internal/lock"
	"github.com/mkariuki/memrel/internal/logging"
	"github.com/mkariuki/memrel/internal/plan"
	"github.com/mkariuki/memrel/internal/schema"
)

func main() {
	logger, closeFn := logging.SetupLogger()
	defer closeFn()

	slog.SetDefault(logger)
	logger.Info("Starting memrel demo...")

	// 1. Build the schema: customers and orders with an FK between them
	db := schema.NewDatabase("demo")

	customers := schema.NewTable("customers", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true, AutoIncrement: true},
		{Name: "name", Type: schema.ColumnTypeText, NotNull: true},
		{Name: "email", Type: schema.ColumnTypeEmail, NotNull: true, Unique: true},
	})
	if err := db.AddTable(customers); err != nil {
		logger.Error("schema setup failed", "error", err)
		closeFn()
		os.Exit(1)
	}

	orders := schema.NewTable("orders", []schema.Column{
		{Name: "id", Type: schema.ColumnTypeInt, PrimaryKey: true, AutoIncrement: true},
		{Name: "customer_id", Type: schema.ColumnTypeInt, NotNull: true},
		{Name: "total", Type: schema.ColumnTypeFloat, NotNull: true},
	})
	ordersByCustomer := orders.AddIndex("orders_customer_id", "customer_id", false)
	if err := db.AddTable(orders); err != nil {
		logger.Error("schema setup failed", "error", err)
		closeFn()
		os.Exit(1)
	}

	db.AddRelation("orders_customers_fk", ordersByCustomer, customers.PrimaryIndex())

	// 2. Wire the engine with per-table locking and a logging observer
	eng := engine.New(db, lock.NewManager())
	eng.AddObserver(engine.NewLoggingObserver())

	// 3. An order without its customer must fail the FK check
	err := eng.Insert("orders", schema.Row{"customer_id": 42, "total": 9.5})
	var fkErr *schema.ForeignKeyError
	if errors.As(err, &fkErr) {
		logger.Info("insert rejected as expected", "error", err.Error())
	}

	// 4. Insert the customer, then the order
	if err := eng.Insert("customers", schema.Row{"name": "frank", "email": "frank@newuser.com"}); err != nil {
		logger.Error("customer insert failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	if err := eng.Insert("orders", schema.Row{"customer_id": 1, "total": 9.5}); err != nil {
		logger.Error("order insert failed", "error", err)
		closeFn()
		os.Exit(1)
	}

	// 5. Query back a snapshot
	rows, err := eng.Rows(plan.NewScan(orders))
	if err != nil {
		logger.Error("query failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	for _, row := range rows {
		logger.Info("order", "id", row["id"], "customer_id", row["customer_id"], "total", row["total"])
	}

	count, err := engine.Scalar(eng, plan.NewCount(customers))
	if err != nil {
		logger.Error("count failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	logger.Info("done", "customers", count, "orders", len(rows))
}
