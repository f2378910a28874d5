package store

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// DefaultDSN is used when no database DSN is configured.
const DefaultDSN = "sqlite:rental_tracker.db"

// Database wraps the gorm handle and owns schema management. It is passed
// explicitly into the loader and report generator; there is no process-wide
// default instance.
type Database struct {
	db  *gorm.DB
	dsn string
}

// Open connects to the database described by dsn. Supported forms:
//
//	sqlite:<path>          local SQLite file (also bare paths and :memory:)
//	postgres://...         PostgreSQL
func Open(dsn string) (*Database, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}

	log.WithField("dsn", dsn).Debug("Opened database connection")

	return &Database{db: db, dsn: dsn}, nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite:")), nil
	default:
		// Bare paths (including :memory:) are treated as SQLite files.
		return sqlite.Open(dsn), nil
	}
}

// DB exposes the underlying gorm handle for queries and transactions.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// DSN returns the connection string this database was opened with.
func (d *Database) DSN() string {
	return d.dsn
}

// Migrate creates or updates all tables.
func (d *Database) Migrate() error {
	return d.db.AutoMigrate(
		&Owner{},
		&Property{},
		&MonthlyReport{},
		&PropertyMonth{},
		&Expense{},
		&ImportLog{},
	)
}

// Drop removes all tables. Destructive; used by the db command only.
func (d *Database) Drop() error {
	return d.db.Migrator().DropTable(
		&Expense{},
		&PropertyMonth{},
		&MonthlyReport{},
		&Property{},
		&Owner{},
		&ImportLog{},
	)
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
