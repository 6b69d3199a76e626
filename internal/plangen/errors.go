// Package plangen builds training weeks from an athlete profile.
package plangen

import "errors"

var (
	// ErrUnsupportedConfiguration is returned when no day layout exists for the requested training days.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
	// ErrInvalidPlanFormat is returned when drafted workouts do not match the segment schema.
	ErrInvalidPlanFormat = errors.New("invalid plan format")
)
