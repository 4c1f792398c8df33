package fare

import "errors"

var (
	ErrInvalidCatalog = errors.New("invalid pricing catalog")
	ErrUnknownVehicle = errors.New("unknown vehicle class")
)
