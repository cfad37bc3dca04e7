package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
)

// EventRepository appends analytics and audit events. Events are
// write-once: there are no update or delete operations.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) CountByLead(ctx context.Context, leadID uuid.UUID, types ...string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{}).Where("lead_id = ?", leadID)
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
