package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskapp/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	ListAll(ctx context.Context) ([]model.Event, error)
	ListUpcoming(ctx context.Context, until time.Time, limit int) ([]model.Event, error)
	CountUpcoming(ctx context.Context, until time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ EventRepositoryInterface = (*EventRepository)(nil)

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create adds a new event to the database
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID retrieves an event by its ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event
	result := r.db.WithContext(ctx).First(&event, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, result.Error
	}
	return &event, nil
}

// ListAll retrieves every event, latest date first
func (r *EventRepository) ListAll(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Order("date DESC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

// ListUpcoming retrieves events dated up to the given cutoff, earliest first
func (r *EventRepository) ListUpcoming(ctx context.Context, until time.Time, limit int) ([]model.Event, error) {
	var events []model.Event
	result := r.db.WithContext(ctx).
		Where("date <= ?", until).
		Order("date ASC").
		Limit(limit).
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

// CountUpcoming returns the number of events dated up to the given cutoff
func (r *EventRepository) CountUpcoming(ctx context.Context, until time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("date <= ?", until).
		Count(&count).Error
	return count, err
}

// CountAll returns the total number of events
func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).Count(&count).Error
	return count, err
}

// Update updates an existing event
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	result := r.db.WithContext(ctx).Save(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event by its ID
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
