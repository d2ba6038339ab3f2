// Package store owns the on-device database. It opens the SQLite file,
// creates the collections on first open, and hands out the StorageContext
// that every repository and controller shares.
package store

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soulpatterns-backend/bus"
	"soulpatterns-backend/models"
)

// SchemaVersion is bumped whenever a new collection is introduced. Upgrades
// only ever create what is missing; existing collections are never dropped.
const SchemaVersion = 1

var (
	// ErrStorageUnavailable means the database could not be opened at all.
	// Every persistence feature is dead until this is resolved, so callers
	// surface it to the user instead of silently losing writes.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrTransactionFailed wraps a single failed store operation. It is
	// never retried automatically; the user re-issues the action.
	ErrTransactionFailed = errors.New("transaction failed")
)

// StorageContext bundles the open database with the change bus. It is
// created once at startup and passed by reference everywhere persistence is
// needed; nothing else holds authoritative state.
type StorageContext struct {
	DB  *gorm.DB
	Bus *bus.ChangeBus
}

// schemaMeta is a single-row table recording the schema version the
// database was last opened with.
type schemaMeta struct {
	ID      uint `gorm:"primaryKey"`
	Version int
}

func (schemaMeta) TableName() string { return "schema_meta" }

// Open opens (creating if needed) the database at path and migrates it to
// the current schema version. Calling it again with the same path yields an
// equivalent handle backed by the same file, so it is safe for every part
// of the app to share one StorageContext.
func Open(path string) (*StorageContext, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	ctx := &StorageContext{DB: db, Bus: bus.NewChangeBus()}

	if err := migrateLegacyGallery(ctx, path); err != nil {
		// The canonical store is intact; the legacy file is retried on the
		// next open.
		log.Printf("legacy gallery migration failed: %v", err)
	}

	return ctx, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.GalleryItem{},
		&models.Appointment{},
		&models.Sale{},
		&models.ReminderLog{},
		&schemaMeta{},
	); err != nil {
		return fmt.Errorf("%w: migration: %v", ErrStorageUnavailable, err)
	}

	var meta schemaMeta
	err := db.First(&meta).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		meta = schemaMeta{Version: SchemaVersion}
		if err := db.Create(&meta).Error; err != nil {
			return fmt.Errorf("%w: recording schema version: %v", ErrStorageUnavailable, err)
		}
	case err != nil:
		return fmt.Errorf("%w: reading schema version: %v", ErrStorageUnavailable, err)
	case meta.Version < SchemaVersion:
		// AutoMigrate above already created any collection introduced since
		// meta.Version without touching the others.
		meta.Version = SchemaVersion
		if err := db.Save(&meta).Error; err != nil {
			return fmt.Errorf("%w: recording schema version: %v", ErrStorageUnavailable, err)
		}
	}

	return nil
}
