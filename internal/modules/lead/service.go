package lead

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
	"carencia/internal/modules/distribution"
	"carencia/internal/modules/tracking"
	"carencia/internal/repository"
)

// Publisher receives realtime lead events for the admin feed. Optional.
type Publisher interface {
	Publish(eventType string, payload any)
}

// Service handles lead intake and admin lead management.
type Service struct {
	leads        *repository.LeadRepository
	vehicles     *repository.VehicleRepository
	events       *repository.EventRepository
	interactions *repository.InteractionRepository
	calculator   *tracking.Calculator
	distributor  *distribution.Service
	feed         Publisher
	log          *log.Logger
}

func NewService(
	leads *repository.LeadRepository,
	vehicles *repository.VehicleRepository,
	events *repository.EventRepository,
	interactions *repository.InteractionRepository,
	calculator *tracking.Calculator,
	distributor *distribution.Service,
	feed Publisher,
) *Service {
	return &Service{
		leads:        leads,
		vehicles:     vehicles,
		events:       events,
		interactions: interactions,
		calculator:   calculator,
		distributor:  distributor,
		feed:         feed,
		log:          log.Default(),
	}
}

// Submit creates a lead from the public form, estimates its acquisition
// cost from the tracking bundle and synchronously runs the distribution
// pipeline. Distribution failure is logged and surfaced to operators via
// the unassigned lead; the visitor-facing submission still succeeds.
func (s *Service) Submit(ctx context.Context, req *SubmitLeadRequest) (*domain.Lead, error) {
	l := &domain.Lead{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Origin:      originOrDefault(req.Origin),
		Status:      domain.LeadStatusNew,
		Temperature: domain.TemperatureCold,
		UTMSource:   optional(req.UTMSource),
		UTMMedium:   optional(req.UTMMedium),
		UTMCampaign: optional(req.UTMCampaign),
		UTMContent:  optional(req.UTMContent),
		UTMTerm:     optional(req.UTMTerm),
		ReferrerURL: optional(req.ReferrerURL),
		LandingPage: optional(req.LandingPage),
	}

	if req.VehicleID != "" {
		vehicleID, err := uuid.Parse(req.VehicleID)
		if err != nil {
			return nil, ErrVehicleNotFound
		}
		if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVehicleNotFound
			}
			return nil, err
		}
		l.VehicleInterestID = &vehicleID
	}

	params := tracking.Params{
		Source:      req.UTMSource,
		Medium:      req.UTMMedium,
		Campaign:    req.UTMCampaign,
		Content:     req.UTMContent,
		Term:        req.UTMTerm,
		Referrer:    req.ReferrerURL,
		LandingPage: req.LandingPage,
	}
	l.AcquisitionCost = s.calculator.EstimateLeadCost(params)

	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, &domain.Event{
		Type:      domain.EventLeadCreated,
		LeadID:    &l.ID,
		VehicleID: l.VehicleInterestID,
		Params: map[string]any{
			"origin":  l.Origin,
			"source":  s.calculator.DescribeSource(params),
			"message": req.Message,
		},
	}); err != nil {
		s.log.Printf("failed to record lead_created event lead=%s err=%v", l.ID, err)
	}

	if s.feed != nil {
		s.feed.Publish(domain.EventLeadCreated, map[string]any{
			"lead_id": l.ID.String(),
			"name":    l.Name,
			"origin":  l.Origin,
		})
	}

	if _, err := s.distributor.ProcessLead(ctx, l.ID); err != nil {
		s.log.Printf("lead distribution failed lead=%s err=%v", l.ID, err)
	}

	return s.leads.GetWithVehicleAndDealership(ctx, l.ID)
}

// GetByID returns one lead with its vehicle and dealership loaded.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	l, err := s.leads.GetWithVehicleAndDealership(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, f repository.LeadFilter) ([]domain.Lead, int64, error) {
	return s.leads.List(ctx, f)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.leads.UpdateStatus(ctx, id, status)
}

// Timeline returns a lead's events and interactions in one shot.
func (s *Service) Timeline(ctx context.Context, id uuid.UUID) (*TimelineResponse, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.events.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}
	interactions, err := s.interactions.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TimelineResponse{Events: events, Interactions: interactions}, nil
}

func (s *Service) Stats(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	return s.leads.CountByStatus(ctx)
}

func originOrDefault(origin string) string {
	if origin == "" {
		return "site"
	}
	return origin
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
