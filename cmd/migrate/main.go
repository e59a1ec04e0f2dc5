package main

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	pgstore "github.com/dwarvesf/funds-backend/internal/store/postgres"
	"github.com/dwarvesf/funds-backend/internal/utils/config"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

func newMigrator(db *gorm.DB, dir string) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql connection")
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "create postgres driver")
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(dir), "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "create migrate instance")
	}
	return m, nil
}

// apply runs every pending up migration when steps is 0, otherwise steps
// migrations (negative steps roll back).
func apply(m *migrate.Migrate, steps int) error {
	var err error
	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func main() {
	dir := flag.String("dir", filepath.Join("migrations", "schema"), "migration files directory")
	steps := flag.Int("steps", 0, "number of migrations to apply, negative to roll back; 0 applies all")
	flag.Parse()

	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	db := pgstore.New(appConfig, logger)

	m, err := newMigrator(db, *dir)
	if err != nil {
		logger.Error("[main][newMigrator] failed to prepare migrations", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	if err := apply(m, *steps); err != nil {
		logger.Error("[main][apply] migration failed", map[string]string{
			"dir":   *dir,
			"steps": strconv.Itoa(*steps),
			"error": err.Error(),
		})
		os.Exit(1)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Error("[main][Version] failed to read schema version", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	logger.Info("[main] migrations applied", map[string]string{
		"version": strconv.FormatUint(uint64(version), 10),
		"dirty":   strconv.FormatBool(dirty),
	})
}
