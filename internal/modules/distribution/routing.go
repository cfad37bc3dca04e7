package distribution

// Distribution method labels recorded in lead_distributed events.
const (
	MethodVehicle = "vehicle"
	MethodSource  = "source"
	MethodDefault = "default"
)

// DefaultSourceRouting maps scraping-source tags to dealership slugs.
// Unknown tags fall through to the default dealership on purpose; a miss
// here is not an error. Returned as a fresh map so the routing table
// stays immutable after injection.
func DefaultSourceRouting() map[string]string {
	return map[string]string{
		"robust_car": "robust_car_concessionaria",
	}
}
