// Package tripplan generates trip itineraries. The OpenAI planner wraps a
// chat-completions call and falls back to a static plan whenever the call
// or its JSON payload cannot be used, so planning requests never fail on
// provider trouble.
package tripplan

import (
	"context"

	"travelmate/internal/domain"
)

// Request carries the traveler's planning input.
type Request struct {
	Destination           string
	Duration              string
	Budget                string
	Travelers             string
	Interests             string
	AdditionalPreferences string
	OptimizationLevel     string
	BlockchainIntegration bool
}

// Planner produces a trip plan for a request.
type Planner interface {
	Plan(ctx context.Context, req Request) (*domain.TripPlan, error)
}
