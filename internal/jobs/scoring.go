package jobs

import (
	"context"
	"log"

	"carencia/internal/domain"
	"carencia/internal/repository"
)

// Score weights and temperature thresholds.
const (
	scorePhone           = 20
	scoreEmail           = 15
	scoreVehicleInterest = 25
	scoreAttributed      = 10
	scorePerEvent        = 5
	scoreEventCap        = 30

	tempHotThreshold  = 70
	tempWarmThreshold = 40
)

// Scorer recomputes lead scores and temperatures from profile
// completeness and tracked engagement. Runs outside the request-scoped
// distribution pipeline.
type Scorer struct {
	leads  *repository.LeadRepository
	events *repository.EventRepository
	log    *log.Logger
}

func NewScorer(leads *repository.LeadRepository, events *repository.EventRepository) *Scorer {
	return &Scorer{leads: leads, events: events, log: log.Default()}
}

// RefreshScores rescans every open lead. Per-lead failures are logged
// and skipped so one bad row never aborts the sweep.
func (s *Scorer) RefreshScores(ctx context.Context) error {
	leads, err := s.leads.ListOpen(ctx)
	if err != nil {
		return err
	}

	updated := 0
	for i := range leads {
		l := &leads[i]

		score, temp, err := s.scoreLead(ctx, l)
		if err != nil {
			s.log.Printf("scoring failed lead=%s err=%v", l.ID, err)
			continue
		}
		if score == l.Score && temp == l.Temperature {
			continue
		}
		if err := s.leads.UpdateScore(ctx, l.ID, score, temp); err != nil {
			s.log.Printf("score update failed lead=%s err=%v", l.ID, err)
			continue
		}
		updated++
	}

	s.log.Printf("lead scoring refresh done leads=%d updated=%d", len(leads), updated)
	return nil
}

func (s *Scorer) scoreLead(ctx context.Context, l *domain.Lead) (int, domain.Temperature, error) {
	score := 0
	if l.Phone != "" {
		score += scorePhone
	}
	if l.Email != "" {
		score += scoreEmail
	}
	if l.VehicleInterestID != nil {
		score += scoreVehicleInterest
	}
	if l.AcquisitionCost != nil {
		score += scoreAttributed
	}

	engagement, err := s.events.CountByLead(ctx, l.ID,
		domain.EventPageView, domain.EventVehicleView, domain.EventWhatsAppClick, domain.EventCTAClick)
	if err != nil {
		return 0, "", err
	}
	bonus := int(engagement) * scorePerEvent
	if bonus > scoreEventCap {
		bonus = scoreEventCap
	}
	score += bonus

	temp := domain.TemperatureCold
	switch {
	case score >= tempHotThreshold:
		temp = domain.TemperatureHot
	case score >= tempWarmThreshold:
		temp = domain.TemperatureWarm
	}

	return score, temp, nil
}
