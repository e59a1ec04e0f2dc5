// Package storetest opens throwaway in-memory databases with the funds schema
// for package tests.
package storetest

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dwarvesf/funds-backend/internal/model"
)

// T is the part of testing.TB (and GinkgoT) the helpers need.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}

var seq atomic.Int64

// NewDB returns a migrated in-memory SQLite database. It is capped to one
// connection, so transactions from concurrent goroutines run one at a time
// the same way row locks serialise them on postgres.
func NewDB(t T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:funds_%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Recorder collects the SQL a dry-run session would have sent.
type Recorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *Recorder) record(db *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, db.Statement.SQL.String())
}

func (r *Recorder) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statements...)
}

// NewPostgresDryRun returns a postgres-dialect session that never touches a
// server. SQLite drops locking clauses, so lock assertions run against this.
func NewPostgresDryRun(t T) (*gorm.DB, *Recorder) {
	t.Helper()

	db, err := gorm.Open(postgres.Open("host=localhost user=funds dbname=funds sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres dry run: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	rec := &Recorder{}
	if err := db.Callback().Create().After("gorm:create").Register("storetest:record_create", rec.record); err != nil {
		t.Fatalf("register create recorder: %v", err)
	}
	if err := db.Callback().Query().After("gorm:query").Register("storetest:record_query", rec.record); err != nil {
		t.Fatalf("register query recorder: %v", err)
	}
	return db, rec
}

func Models() []interface{} {
	return []interface{}{
		&model.WithdrawalPlatform{},
		&model.DepositPlatform{},
		&model.WithdrawalRequest{},
		&model.DepositRecord{},
		&model.UserBalance{},
	}
}
