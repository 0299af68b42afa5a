package service

import (
	"errors"

	"github.com/sportplus/backend/internal/model"
)

// ErrInvalidActivityData is returned when a submitted activity carries
// values the aggregator must never see, such as a negative duration or
// distance. Bad input is rejected here, at the boundary, instead of
// being absorbed downstream.
var ErrInvalidActivityData = errors.New("invalid activity data")

// ValidateActivity checks the raw numbers on a submitted activity.
// Zero pace or speed is accepted; the aggregator treats those as "not
// measured" and filters them out of the averages.
func ValidateActivity(a model.Activity) error {
	if a.Duration < 0 || a.Distance < 0 {
		return ErrInvalidActivityData
	}
	if a.Pace != nil && *a.Pace < 0 {
		return ErrInvalidActivityData
	}
	if a.AverageSpeed != nil && *a.AverageSpeed < 0 {
		return ErrInvalidActivityData
	}
	return nil
}
