package dealership

// CreateDealershipRequest registers a new dealership.
type CreateDealershipRequest struct {
	Name       string `json:"name" validate:"required"`
	Slug       string `json:"slug" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	WebhookURL string `json:"webhook_url" validate:"omitempty,url"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// UpdateDealershipRequest patches contact channels and routing flags.
// Pointer fields distinguish "not sent" from "clear this value".
type UpdateDealershipRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	WebhookURL   *string `json:"webhook_url,omitempty" validate:"omitempty,url"`
	AcceptsLeads *bool   `json:"accepts_leads,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}
