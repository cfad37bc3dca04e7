package distribution

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
)

// Resolution is the outcome of deciding which dealership owns a lead.
type Resolution struct {
	Dealership *domain.Dealership
	// Method that fired: vehicle, source or default. Empty when the lead
	// was already assigned before this call.
	Method string
	// AlreadyAssigned is true when the idempotency guard short-circuited
	// the strategy chain; no new event is emitted in that case.
	AlreadyAssigned bool
}

// Resolve decides the responsible dealership for a lead and persists the
// assignment. Strategies run in strict precedence order, first match
// wins:
//
//  1. idempotency guard: an already-assigned lead is returned unchanged
//  2. direct ownership: the interest vehicle's owning dealership
//  3. source mapping: the vehicle's scraping-source tag routed by slug
//  4. default: the oldest active, lead-accepting dealership
func (s *Service) Resolve(ctx context.Context, leadID uuid.UUID) (*Resolution, error) {
	lead, err := s.leads.GetWithVehicleAndDealership(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	if lead.IsDistributed() {
		dealership := lead.Dealership
		if dealership == nil {
			dealership, err = s.dealerships.GetByID(ctx, *lead.DealershipID)
			if err != nil {
				return nil, err
			}
		}
		return &Resolution{Dealership: dealership, AlreadyAssigned: true}, nil
	}

	selected, method, err := s.selectDealership(ctx, lead)
	if err != nil {
		return nil, err
	}

	assigned, err := s.leads.AssignDealership(ctx, leadID, selected.ID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		// Lost the race: another call assigned the lead first. Return the
		// winner's dealership and emit nothing.
		current, err := s.leads.GetWithVehicleAndDealership(ctx, leadID)
		if err != nil {
			return nil, err
		}
		if current.Dealership == nil {
			// The conditional update found a non-null dealership_id, so the
			// reload must show one. Anything else is a broken store.
			return nil, fmt.Errorf("lead %s lost the assignment race but has no dealership", leadID)
		}
		return &Resolution{Dealership: current.Dealership, AlreadyAssigned: true}, nil
	}

	if err := s.events.Create(ctx, &domain.Event{
		Type:   domain.EventLeadDistributed,
		LeadID: &leadID,
		Params: map[string]any{
			"dealership_id":   selected.ID.String(),
			"dealership_name": selected.Name,
			"method":          method,
		},
	}); err != nil {
		s.log.Printf("failed to record lead_distributed event lead=%s err=%v", leadID, err)
	}

	return &Resolution{Dealership: selected, Method: method}, nil
}

func (s *Service) selectDealership(ctx context.Context, lead *domain.Lead) (*domain.Dealership, string, error) {
	vehicle := lead.VehicleInterest

	if vehicle != nil && vehicle.Dealership != nil {
		return vehicle.Dealership, MethodVehicle, nil
	}

	if vehicle != nil && vehicle.ScrapingSource != nil {
		if slug, ok := s.sourceRouting[*vehicle.ScrapingSource]; ok {
			d, err := s.dealerships.GetBySlug(ctx, slug)
			if err == nil {
				return d, MethodSource, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", err
			}
			// Mapped slug missing from the database: fall through to the
			// default dealership, same as an unmapped tag.
		}
	}

	d, err := s.dealerships.OldestActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNoDealershipAvailable
		}
		return nil, "", err
	}
	return d, MethodDefault, nil
}
