package dealership

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
	"carencia/internal/repository"
)

type Service struct {
	dealerships *repository.DealershipRepository
}

func NewService(dealerships *repository.DealershipRepository) *Service {
	return &Service{dealerships: dealerships}
}

func (s *Service) Create(ctx context.Context, req *CreateDealershipRequest) (*domain.Dealership, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	if _, err := s.dealerships.GetBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	d := &domain.Dealership{
		Name:         req.Name,
		Slug:         slug,
		Phone:        optional(req.Phone),
		Email:        optional(req.Email),
		WebhookURL:   optional(req.WebhookURL),
		City:         optional(req.City),
		State:        optional(req.State),
		AcceptsLeads: true,
		Active:       true,
	}
	if err := s.dealerships.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealership, error) {
	d, err := s.dealerships.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealershipNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, onlyActive bool) ([]domain.Dealership, error) {
	return s.dealerships.List(ctx, onlyActive)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateDealershipRequest) (*domain.Dealership, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Phone != nil {
		d.Phone = optional(*req.Phone)
	}
	if req.Email != nil {
		d.Email = optional(*req.Email)
	}
	if req.WebhookURL != nil {
		d.WebhookURL = optional(*req.WebhookURL)
	}
	if req.AcceptsLeads != nil {
		d.AcceptsLeads = *req.AcceptsLeads
	}
	if req.Active != nil {
		d.Active = *req.Active
	}

	if err := s.dealerships.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
