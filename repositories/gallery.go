// Package repositories provides the CRUD contract over each collection.
// Every call opens its own short-lived transaction scoped to a single
// collection, and every successful write is announced on the change bus.
package repositories

import (
	"context"
	"fmt"

	"soulpatterns-backend/models"
	"soulpatterns-backend/store"
)

// GalleryRepository manages the artist's saved designs. Keys are generated
// by the store; items are never mutated in place.
type GalleryRepository struct {
	ctx *store.StorageContext
}

func NewGalleryRepository(ctx *store.StorageContext) *GalleryRepository {
	return &GalleryRepository{ctx: ctx}
}

// Add persists a new image payload and returns the generated id. The
// payload is opaque here: even an empty string is accepted, content checks
// belong to the caller.
func (r *GalleryRepository) Add(ctx context.Context, image string) (uint, error) {
	item := models.GalleryItem{Image: image}
	if err := r.ctx.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, fmt.Errorf("%w: adding gallery item: %v", store.ErrTransactionFailed, err)
	}
	r.ctx.Bus.Publish()
	return item.ID, nil
}

// List returns every saved design, most recently added first.
func (r *GalleryRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	if err := r.ctx.DB.WithContext(ctx).Order("id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: listing gallery: %v", store.ErrTransactionFailed, err)
	}
	return items, nil
}

// Get returns a single design by id.
func (r *GalleryRepository) Get(ctx context.Context, id uint) (models.GalleryItem, error) {
	var item models.GalleryItem
	if err := r.ctx.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.GalleryItem{}, err
	}
	return item, nil
}

// Remove deletes a design by id. Deleting a missing id is a no-op.
func (r *GalleryRepository) Remove(ctx context.Context, id uint) error {
	if err := r.ctx.DB.WithContext(ctx).Delete(&models.GalleryItem{}, id).Error; err != nil {
		return fmt.Errorf("%w: removing gallery item: %v", store.ErrTransactionFailed, err)
	}
	r.ctx.Bus.Publish()
	return nil
}
