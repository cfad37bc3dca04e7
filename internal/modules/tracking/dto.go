package tracking

// TrackEventRequest is the public tracking beacon payload.
type TrackEventRequest struct {
	Type      string         `json:"type" validate:"required"`
	VehicleID string         `json:"vehicle_id,omitempty"`
	LeadID    string         `json:"lead_id,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
}
