package lead

import "errors"

var (
	ErrLeadNotFound    = errors.New("lead not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
)
