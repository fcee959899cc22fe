package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/worldapptech/woosync/internal/entities"
)

// Database wraps the gorm handle for the catalog store.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the catalog database, creating it if needed, and
// migrates the schema. WAL journaling keeps reads served while a sync
// run writes product state.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := dbPath
	if !strings.ContainsRune(dsn, '?') {
		dsn += "?_journal=WAL&_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Product{},
		&entities.Variant{},
		&entities.SyncRun{},
		&entities.WooCategory{},
		&entities.Setting{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Catalog database ready at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
