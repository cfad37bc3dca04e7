package tracking

import "strings"

// Params is the tracking-parameter bundle captured with a lead or event.
type Params struct {
	Source      string `json:"utm_source"`
	Medium      string `json:"utm_medium"`
	Campaign    string `json:"utm_campaign"`
	Content     string `json:"utm_content"`
	Term        string `json:"utm_term"`
	Referrer    string `json:"referrer_url"`
	LandingPage string `json:"landing_page"`
}

// UnattributedSource is returned by DescribeSource when no tracking
// fields are present.
const UnattributedSource = "Origem não identificada"

// DefaultCostTable returns the per-source acquisition cost estimates in
// BRL. Returned as a fresh map so callers cannot mutate shared state.
func DefaultCostTable() map[string]float64 {
	return map[string]float64{
		"google":    5.50,
		"facebook":  3.20,
		"instagram": 2.80,
		"site":      0.00,
		"whatsapp":  1.50,
		"email":     0.50,
	}
}

// Calculator maps tracking bundles to cost estimates and human-readable
// source descriptions. Pure and deterministic.
type Calculator struct {
	costs map[string]float64
}

func NewCalculator(costs map[string]float64) *Calculator {
	// Copy so the table stays immutable after construction.
	own := make(map[string]float64, len(costs))
	for k, v := range costs {
		own[k] = v
	}
	return &Calculator{costs: own}
}

// EstimateLeadCost returns the estimated acquisition cost for the
// bundle's source, or nil when the source is absent or unknown. An
// unknown source is "unattributed", not a failure.
func (c *Calculator) EstimateLeadCost(p Params) *float64 {
	source := strings.ToLower(strings.TrimSpace(p.Source))
	if source == "" {
		return nil
	}
	cost, ok := c.costs[source]
	if !ok {
		return nil
	}
	return &cost
}

// DescribeSource joins the present tracking fields into one readable
// line for operators, e.g. "google | cpc | black-friday".
func (c *Calculator) DescribeSource(p Params) string {
	parts := make([]string, 0, 5)
	for _, v := range []string{p.Source, p.Medium, p.Campaign, p.Referrer, p.LandingPage} {
		if s := strings.TrimSpace(v); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return UnattributedSource
	}
	return strings.Join(parts, " | ")
}
