package distribution

import (
	"context"
	"log"

	"github.com/google/uuid"

	"carencia/internal/domain"
)

// Service composes the distribution resolver and the notification
// dispatcher. Every invocation is request-scoped: no background queue,
// no retries.
type Service struct {
	leads         LeadStore
	dealerships   DealershipStore
	events        EventStore
	interactions  InteractionStore
	webhooks      *WebhookClient
	emails        EmailSender
	feed          Publisher
	sourceRouting map[string]string
	log           *log.Logger
}

// Option tweaks optional collaborators.
type Option func(*Service)

// WithEmailSender plugs an email channel into the dispatcher.
func WithEmailSender(sender EmailSender) Option {
	return func(s *Service) { s.emails = sender }
}

// WithPublisher wires the realtime feed.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.feed = p }
}

// WithSourceRouting overrides the scraping-source routing table.
func WithSourceRouting(routing map[string]string) Option {
	return func(s *Service) {
		own := make(map[string]string, len(routing))
		for k, v := range routing {
			own[k] = v
		}
		s.sourceRouting = own
	}
}

func NewService(
	leads LeadStore,
	dealerships DealershipStore,
	events EventStore,
	interactions InteractionStore,
	webhooks *WebhookClient,
	opts ...Option,
) *Service {
	s := &Service{
		leads:         leads,
		dealerships:   dealerships,
		events:        events,
		interactions:  interactions,
		webhooks:      webhooks,
		sourceRouting: DefaultSourceRouting(),
		log:           log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessResult is the orchestrator outcome for one lead.
type ProcessResult struct {
	Dealership   *domain.Dealership `json:"dealership"`
	Method       string             `json:"method,omitempty"`
	Notification string             `json:"notification,omitempty"`
	Message      string             `json:"message"`
}

// ProcessLead resolves the responsible dealership and then notifies it.
// Resolution failure is the only failure mode; notification is best
// effort and a failed delivery never fails the operation.
func (s *Service) ProcessLead(ctx context.Context, leadID uuid.UUID) (*ProcessResult, error) {
	resolution, err := s.Resolve(ctx, leadID)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{
		Dealership: resolution.Dealership,
		Method:     resolution.Method,
		Message:    "Lead distribuído para " + resolution.Dealership.Name,
	}

	notify, err := s.Notify(ctx, leadID, resolution.Dealership)
	if err != nil {
		s.log.Printf("notification failed lead=%s dealership=%s err=%v", leadID, resolution.Dealership.Slug, err)
	} else {
		result.Notification = notify.Method
	}

	if s.feed != nil && !resolution.AlreadyAssigned {
		s.feed.Publish(domain.EventLeadDistributed, map[string]any{
			"lead_id":         leadID.String(),
			"dealership_id":   resolution.Dealership.ID.String(),
			"dealership_name": resolution.Dealership.Name,
			"method":          resolution.Method,
		})
	}

	return result, nil
}
