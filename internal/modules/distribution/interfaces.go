package distribution

import (
	"context"

	"github.com/google/uuid"

	"carencia/internal/domain"
)

// LeadStore is the slice of the persistence gateway the distribution
// pipeline needs for leads.
type LeadStore interface {
	GetWithVehicleAndDealership(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	AssignDealership(ctx context.Context, leadID, dealershipID uuid.UUID) (bool, error)
}

// DealershipStore resolves dealerships by id, slug, or the default rule.
type DealershipStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealership, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Dealership, error)
	OldestActive(ctx context.Context) (*domain.Dealership, error)
}

// EventStore appends distribution audit events.
type EventStore interface {
	Create(ctx context.Context, e *domain.Event) error
}

// InteractionStore appends the fallback communication record.
type InteractionStore interface {
	Create(ctx context.Context, i *domain.Interaction) error
}

// EmailSender delivers the lead notification by email. Implementations
// may be nil-configured, in which case the email channel is unavailable
// and the dispatcher falls through.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Publisher receives pipeline events for realtime fan-out (the admin
// dashboard feed). Optional.
type Publisher interface {
	Publish(eventType string, payload any)
}
