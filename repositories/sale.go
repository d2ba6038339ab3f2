package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"soulpatterns-backend/models"
	"soulpatterns-backend/store"
)

// SaleRepository manages the sales log. Append-only in the observed flows,
// though Remove is part of the contract.
type SaleRepository struct {
	ctx *store.StorageContext
}

func NewSaleRepository(ctx *store.StorageContext) *SaleRepository {
	return &SaleRepository{ctx: ctx}
}

// Save inserts or replaces the sale keyed by its caller-supplied id.
func (r *SaleRepository) Save(ctx context.Context, sale models.Sale) error {
	err := r.ctx.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&sale).Error
	if err != nil {
		return fmt.Errorf("%w: saving sale: %v", store.ErrTransactionFailed, err)
	}
	r.ctx.Bus.Publish()
	return nil
}

// List returns every sale in store-native order; aggregation sorts and
// buckets as needed.
func (r *SaleRepository) List(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.ctx.DB.WithContext(ctx).Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("%w: listing sales: %v", store.ErrTransactionFailed, err)
	}
	return sales, nil
}

// Remove deletes by id; a missing id is a no-op.
func (r *SaleRepository) Remove(ctx context.Context, id string) error {
	if err := r.ctx.DB.WithContext(ctx).Delete(&models.Sale{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("%w: removing sale: %v", store.ErrTransactionFailed, err)
	}
	r.ctx.Bus.Publish()
	return nil
}
