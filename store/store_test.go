package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulpatterns-backend/models"
)

func TestOpenCreatesCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.db")

	ctx, err := Open(path)
	require.NoError(t, err)

	for _, table := range []string{"gallery_items", "appointments", "sales", "schema_meta"} {
		assert.True(t, ctx.DB.Migrator().HasTable(table), "missing table %s", table)
	}

	var meta schemaMeta
	require.NoError(t, ctx.DB.First(&meta).Error)
	assert.Equal(t, SchemaVersion, meta.Version)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.DB.Create(&models.Sale{ID: "1", Amount: 100, Date: "2024-01-01"}).Error)

	// A second open against the same path sees the same data and does not
	// re-run destructive setup.
	second, err := Open(path)
	require.NoError(t, err)

	var count int64
	require.NoError(t, second.DB.Model(&models.Sale{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOpenUnavailableStorage(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "studio.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestLegacyGalleryMigration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studio.db")
	legacy := filepath.Join(dir, LegacyGalleryFile)

	// Legacy file holds the list newest-first.
	raw, err := json.Marshal([]string{"newest", "middle", "oldest"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(legacy, raw, 0o644))

	ctx, err := Open(path)
	require.NoError(t, err)

	var items []models.GalleryItem
	require.NoError(t, ctx.DB.Order("id DESC").Find(&items).Error)
	require.Len(t, items, 3)
	assert.Equal(t, "newest", items[0].Image)
	assert.Equal(t, "oldest", items[2].Image)

	_, statErr := os.Stat(legacy)
	assert.True(t, os.IsNotExist(statErr), "legacy file should be deleted after import")

	// Reopening must not import twice.
	again, err := Open(path)
	require.NoError(t, err)
	var count int64
	require.NoError(t, again.DB.Model(&models.GalleryItem{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}
