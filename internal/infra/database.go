package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the models the calling service owns, then applies idempotent SQL
// patches that GORM cannot express (case-insensitive and partial unique
// indexes). TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey and can be mapped to 409s.
func NewDatabase(dsn string, models ...interface{}) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("AutoMigrate: %w", err)
		}
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches adds the uniqueness guarantees the handlers' pre-check
// SELECTs assume. The pre-checks alone are check-then-act and two concurrent
// writers can both pass them; these indexes make the insert itself the
// arbiter. Every statement is guarded by a table-existence check because the
// services migrate different subsets of the schema against a shared
// database, so re-running on any service's startup is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"unique discount name (case-insensitive)", `
DO $$ BEGIN
  IF to_regclass('discounts') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_discounts_name_ci ON discounts (LOWER(name));
  END IF;
END $$`},
		{"unique product name (case-insensitive)", `
DO $$ BEGIN
  IF to_regclass('products') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_products_name_ci ON products (LOWER(name));
  END IF;
END $$`},
		{"unique product type name (case-insensitive)", `
DO $$ BEGIN
  IF to_regclass('product_types') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_product_types_name_ci ON product_types (LOWER(name));
  END IF;
END $$`},
		{"unique size name per product (case-insensitive)", `
DO $$ BEGIN
  IF to_regclass('sizes') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_sizes_product_name_ci ON sizes (product_id, LOWER(name));
  END IF;
END $$`},
		// Username uniqueness only binds admin/manager accounts: cashiers all
		// share the sentinel username and are told apart by passcode.
		{"unique admin/manager username among active users", `
DO $$ BEGIN
  IF to_regclass('users') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_admin_mgr_username ON users (username)
        WHERE role IN ('admin', 'manager') AND disabled = false;
  END IF;
END $$`},
		{"unique email among active users", `
DO $$ BEGIN
  IF to_regclass('users') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_email_active ON users (email)
        WHERE disabled = false;
  END IF;
END $$`},
		{"unique full name among active users", `
DO $$ BEGIN
  IF to_regclass('users') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_fullname_active ON users (full_name)
        WHERE disabled = false;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
