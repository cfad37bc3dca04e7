package dealership

import "errors"

var (
	ErrDealershipNotFound = errors.New("dealership not found")
	ErrSlugTaken          = errors.New("slug already in use")
)
