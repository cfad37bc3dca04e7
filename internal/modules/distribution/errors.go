package distribution

import "errors"

var (
	ErrLeadNotFound          = errors.New("lead not found")
	ErrNoDealershipAvailable = errors.New("no dealership available to receive the lead")
)
