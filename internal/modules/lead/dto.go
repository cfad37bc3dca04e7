package lead

import "carencia/internal/domain"

// SubmitLeadRequest is the public intake form payload. UTM fields come
// from the client-side tracking bundle.
type SubmitLeadRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"required"`

	// Vehicle the visitor asked about, optional.
	VehicleID string `json:"vehicle_id" validate:"omitempty,uuid"`

	Origin string `json:"origin"`

	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
	UTMTerm     string `json:"utm_term"`
	ReferrerURL string `json:"referrer_url"`
	LandingPage string `json:"landing_page"`

	Message string `json:"message"`
}

// UpdateLeadStatusRequest moves a lead through its lifecycle.
type UpdateLeadStatusRequest struct {
	Status domain.LeadStatus `json:"status" validate:"required,oneof=new contacted qualified negotiating won lost"`
}

// LeadListResponse is the paginated admin listing.
type LeadListResponse struct {
	Leads []domain.Lead `json:"leads"`
	Total int64         `json:"total"`
}

// TimelineResponse aggregates a lead's events and interactions.
type TimelineResponse struct {
	Events       []domain.Event       `json:"events"`
	Interactions []domain.Interaction `json:"interactions"`
}
