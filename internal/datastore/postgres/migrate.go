package postgres

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghaniswara/people-swipe/pkg/path"
	"github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

// Migrate applies every pending migration found in the nearest migrations
// directory above the working directory.
func Migrate(db *gorm.DB) error {
	basePath, err := os.Getwd()
	if err != nil {
		return err
	}

	root, err := path.FindRoot(basePath, "migrations", true)
	if err != nil {
		return err
	}

	return MigrateFrom(db, root+"/migrations")
}

func MigrateFrom(db *gorm.DB, dir string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate source %s: %w", dir, err)
	}

	// m.Close would close the shared *sql.DB, so it is left open.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}
