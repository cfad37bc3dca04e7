package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
)

// InteractionRepository appends communication records for leads.
// Write-once, like events.
type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Create(ctx context.Context, i *domain.Interaction) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InteractionRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Interaction, error) {
	var out []domain.Interaction
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
