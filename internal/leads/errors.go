package leads

import "errors"

var (
	// ErrMissingID is returned when a lead has no identifier
	ErrMissingID = errors.New("lead id is required")

	// ErrMissingStage is returned when a lead has no funnel stage
	ErrMissingStage = errors.New("lead stage is required")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)
