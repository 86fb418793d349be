package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectBootstrap(mock sqlmock.Sqlmock) {
	for range schemaStatements {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, table := range requiredTables {
		mock.ExpectQuery("information_schema.tables").
			WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(table))
	}
}

func TestEnsureSchemaFreshDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectBootstrap(mock)
	mock.ExpectQuery("information_schema.columns").
		WithArgs("vehicles", "route_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("route_id"))

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaAddsRouteColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectBootstrap(mock)
	// an older vehicles table without route assignment gets the column added
	mock.ExpectQuery("information_schema.columns").
		WithArgs("vehicles", "route_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE vehicles ADD COLUMN route_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasTableMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.tables").
		WithArgs("ghosts").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if HasTable(db, "ghosts") {
		t.Fatal("missing table reported present")
	}
}
