package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"soulpatterns-backend/models"
)

// LegacyGalleryFile is the flat serialized-list file an earlier generation
// of the app kept the whole gallery in, stored next to the database.
const LegacyGalleryFile = "tattooGallery.json"

// migrateLegacyGallery performs the one-time import of the legacy flat
// gallery file into the gallery collection, then deletes the file. The
// legacy list is newest-first, so entries are inserted oldest-first to keep
// id order aligned with insertion order.
func migrateLegacyGallery(ctx *StorageContext, dbPath string) error {
	legacyPath := filepath.Join(filepath.Dir(dbPath), LegacyGalleryFile)

	raw, err := os.ReadFile(legacyPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		return fmt.Errorf("parsing %s: %w", LegacyGalleryFile, err)
	}

	for i := len(images) - 1; i >= 0; i-- {
		item := models.GalleryItem{Image: images[i]}
		if err := ctx.DB.Create(&item).Error; err != nil {
			return fmt.Errorf("%w: importing legacy gallery item: %v", ErrTransactionFailed, err)
		}
	}

	if err := os.Remove(legacyPath); err != nil {
		return err
	}

	log.Printf("migrated %d legacy gallery items from %s", len(images), LegacyGalleryFile)
	return nil
}
