package distribution

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
)

// Notification methods, in channel priority order.
const (
	NotifyMethodWebhook = "webhook"
	NotifyMethodEmail   = "email"
	NotifyMethodNone    = "none"
)

const fallbackSubject = "Lead distribuído"

// NotifyResult reports which channel delivered the lead notification.
// Method "none" means the fallback interaction record was written; that
// is a successful terminal state, not an error.
type NotifyResult struct {
	Method  string `json:"method"`
	Message string `json:"message"`
}

// Notify pushes the lead to the dealership through the first working
// channel: webhook, then email, then an internal interaction record.
// Channel failures are swallowed and downgraded; the only error returned
// is the lead not loading at all.
func (s *Service) Notify(ctx context.Context, leadID uuid.UUID, dealership *domain.Dealership) (*NotifyResult, error) {
	lead, err := s.leads.GetWithVehicleAndDealership(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	if dealership.HasWebhook() {
		if err := s.webhooks.Send(ctx, *dealership.WebhookURL, lead); err == nil {
			s.recordNotified(ctx, leadID, dealership, NotifyMethodWebhook)
			return &NotifyResult{
				Method:  NotifyMethodWebhook,
				Message: fmt.Sprintf("Lead enviado via webhook para %s", dealership.Name),
			}, nil
		} else {
			s.log.Printf("webhook delivery failed lead=%s dealership=%s err=%v", leadID, dealership.Slug, err)
		}
	}

	if s.emails != nil && dealership.HasEmail() {
		subject := fmt.Sprintf("Novo lead: %s", lead.Name)
		body := emailBody(lead, dealership)
		if err := s.emails.Send(ctx, *dealership.Email, subject, body); err == nil {
			s.recordNotified(ctx, leadID, dealership, NotifyMethodEmail)
			return &NotifyResult{
				Method:  NotifyMethodEmail,
				Message: fmt.Sprintf("Lead enviado por e-mail para %s", dealership.Name),
			}, nil
		} else {
			s.log.Printf("email delivery failed lead=%s dealership=%s err=%v", leadID, dealership.Slug, err)
		}
	}

	// No active channel: leave an internal record so an operator follows up.
	interaction := &domain.Interaction{
		LeadID:  leadID,
		Type:    domain.InteractionTypeSystem,
		Channel: domain.InteractionChannelAutomatic,
		Subject: fallbackSubject,
		Message: fmt.Sprintf("Lead atribuído à concessionária %s. Nenhum canal de notificação ativo.", dealership.Name),
		Sender:  domain.InteractionSenderSystem,
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		s.log.Printf("failed to record fallback interaction lead=%s err=%v", leadID, err)
	}

	return &NotifyResult{
		Method:  NotifyMethodNone,
		Message: fmt.Sprintf("Nenhum canal ativo para %s; registro interno criado", dealership.Name),
	}, nil
}

func (s *Service) recordNotified(ctx context.Context, leadID uuid.UUID, dealership *domain.Dealership, method string) {
	err := s.events.Create(ctx, &domain.Event{
		Type:   domain.EventLeadNotified,
		LeadID: &leadID,
		Params: map[string]any{
			"dealership_id": dealership.ID.String(),
			"method":        method,
		},
	})
	if err != nil {
		s.log.Printf("failed to record lead_notified event lead=%s err=%v", leadID, err)
	}
}

func emailBody(lead *domain.Lead, dealership *domain.Dealership) string {
	body := fmt.Sprintf(
		"Olá %s,\n\nUm novo lead foi atribuído à sua concessionária.\n\nNome: %s\nTelefone: %s\nE-mail: %s\n",
		dealership.Name, lead.Name, lead.Phone, lead.Email,
	)
	if v := lead.VehicleInterest; v != nil {
		body += fmt.Sprintf("Veículo de interesse: %s %s %d (R$ %.2f)\n", v.Make, v.Model, v.Year, v.Price)
	}
	return body
}
