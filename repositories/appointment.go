package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"soulpatterns-backend/models"
	"soulpatterns-backend/store"
)

// AppointmentRepository manages the agenda. Ids are supplied by the caller,
// and Save has put semantics: saving an existing id replaces the record.
// This upsert behavior is deliberate, create and edit share one operation.
type AppointmentRepository struct {
	ctx *store.StorageContext
}

func NewAppointmentRepository(ctx *store.StorageContext) *AppointmentRepository {
	return &AppointmentRepository{ctx: ctx}
}

// Save inserts or replaces the appointment keyed by its id.
func (r *AppointmentRepository) Save(ctx context.Context, app models.Appointment) error {
	err := r.ctx.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&app).Error
	if err != nil {
		return fmt.Errorf("%w: saving appointment: %v", store.ErrTransactionFailed, err)
	}
	r.ctx.Bus.Publish()
	return nil
}

// List returns every appointment in store-native order. Callers sort by
// time within a day, duplicated slots are allowed.
func (r *AppointmentRepository) List(ctx context.Context) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := r.ctx.DB.WithContext(ctx).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("%w: listing appointments: %v", store.ErrTransactionFailed, err)
	}
	return apps, nil
}

// Get returns a single appointment by id.
func (r *AppointmentRepository) Get(ctx context.Context, id string) (models.Appointment, error) {
	var app models.Appointment
	if err := r.ctx.DB.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return models.Appointment{}, err
	}
	return app, nil
}

// ListByPhone returns a client's appointment history.
func (r *AppointmentRepository) ListByPhone(ctx context.Context, phone string) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := r.ctx.DB.WithContext(ctx).Where("phone = ?", phone).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("%w: listing appointments by phone: %v", store.ErrTransactionFailed, err)
	}
	return apps, nil
}

// ListByDate returns the appointments for one calendar date.
func (r *AppointmentRepository) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := r.ctx.DB.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing appointments by date: %v", store.ErrTransactionFailed, err)
	}
	return apps, nil
}

// Remove deletes by id; a missing id is a no-op, not an error.
func (r *AppointmentRepository) Remove(ctx context.Context, id string) error {
	if err := r.ctx.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("%w: removing appointment: %v", store.ErrTransactionFailed, err)
	}
	r.ctx.Bus.Publish()
	return nil
}
