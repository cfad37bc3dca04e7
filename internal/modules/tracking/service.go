package tracking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"carencia/internal/domain"
	"carencia/internal/repository"
)

var ErrUnknownEventType = errors.New("unknown event type")

var allowedEventTypes = map[string]bool{
	domain.EventPageView:      true,
	domain.EventVehicleView:   true,
	domain.EventFormSubmit:    true,
	domain.EventWhatsAppClick: true,
	domain.EventCTAClick:      true,
}

// Service records browsing/tracking events from the public site.
type Service struct {
	events *repository.EventRepository
}

func NewService(events *repository.EventRepository) *Service {
	return &Service{events: events}
}

// Track appends one event. Vehicle/lead references are optional.
func (s *Service) Track(ctx context.Context, req *TrackEventRequest) (*domain.Event, error) {
	if !allowedEventTypes[req.Type] {
		return nil, ErrUnknownEventType
	}

	e := &domain.Event{
		Type:   req.Type,
		Params: req.Params,
	}
	if req.VehicleID != "" {
		id, err := uuid.Parse(req.VehicleID)
		if err == nil {
			e.VehicleID = &id
		}
	}
	if req.LeadID != "" {
		id, err := uuid.Parse(req.LeadID)
		if err == nil {
			e.LeadID = &id
		}
	}

	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
