package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Dialect is the goose dialect for the embedded store.
const Dialect = "sqlite3"

func init() {
	goose.SetBaseFS(migrationsFS)
}

// Migrate applies all pending embedded migrations.
func Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := goose.SetDialect(Dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationsDir is the directory inside the embedded filesystem.
func MigrationsDir() string {
	return migrationsDir
}

type columnRepair struct {
	table   string
	column  string
	typedef string
}

// Columns added after the first release. Databases created by older builds
// may lack them; RepairColumns adds whatever is missing and never drops.
var columnRepairs = []columnRepair{
	{"line_items", "total_net_price", "REAL DEFAULT 0"},
	{"jobs", "address", "TEXT DEFAULT ''"},
	{"jobs", "city", "TEXT DEFAULT ''"},
	{"jobs", "state", "TEXT DEFAULT ''"},
	{"jobs", "zip_code", "TEXT DEFAULT ''"},
	{"jobs", "tax_rate", "REAL DEFAULT 0"},
	{"jobs", "supplier_account", "TEXT DEFAULT ''"},
	{"code_sections", "content", "TEXT DEFAULT ''"},
	{"time_entries", "pay_period", "TEXT DEFAULT ''"},
	{"licenses", "file_hash", "TEXT DEFAULT ''"},
	{"closeout_checklists", "file_hash", "TEXT DEFAULT ''"},
	{"supplier_invoices", "ship_to_name", "TEXT DEFAULT ''"},
	{"supplier_invoices", "ship_to_address", "TEXT DEFAULT ''"},
	{"supplier_invoices", "terms", "TEXT DEFAULT ''"},
	{"supplier_invoices", "discount_amount", "REAL DEFAULT 0"},
}

// RepairColumns checks for columns and adds the missing ones with defaults.
func RepairColumns(db *gorm.DB) error {
	m := db.Migrator()
	for _, c := range columnRepairs {
		if !m.HasTable(c.table) || m.HasColumn(c.table, c.column) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.typedef)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

// HasColumn reports whether table has the named column.
func HasColumn(db *gorm.DB, table, column string) bool {
	return db.Migrator().HasColumn(table, column)
}

// NormalizeJobStatuses maps legacy statuses onto the four pipeline stages.
func NormalizeJobStatuses(db *gorm.DB) error {
	if err := db.Exec("UPDATE jobs SET status = 'Needs Bid' WHERE status = 'Active'").Error; err != nil {
		return fmt.Errorf("failed to normalize job statuses: %w", err)
	}
	if err := db.Exec("UPDATE jobs SET status = 'In Progress' WHERE status = 'On Hold'").Error; err != nil {
		return fmt.Errorf("failed to normalize job statuses: %w", err)
	}
	return nil
}
