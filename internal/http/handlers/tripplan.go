package handlers

import (
	"encoding/json"
	"net/http"

	"travelmate/internal/providers/tripplan"
)

type planTripRequest struct {
	Destination           string `json:"destination"`
	Duration              string `json:"duration"`
	Budget                string `json:"budget"`
	Travelers             string `json:"travelers"`
	Interests             string `json:"interests"`
	AdditionalPreferences string `json:"additional_preferences"`
	AIOptimizationLevel   string `json:"ai_optimization_level"`
	BlockchainIntegration bool   `json:"blockchain_integration"`
}

// PlanTrip generates a trip plan. Provider trouble never fails the request;
// the planner falls back to a static plan internally.
func (a *App) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req planTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	plan, err := a.Planner.Plan(r.Context(), tripplan.Request{
		Destination:           req.Destination,
		Duration:              req.Duration,
		Budget:                req.Budget,
		Travelers:             req.Travelers,
		Interests:             req.Interests,
		AdditionalPreferences: req.AdditionalPreferences,
		OptimizationLevel:     req.AIOptimizationLevel,
		BlockchainIntegration: req.BlockchainIntegration,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("trip planning failed")
		a.fail(w, http.StatusInternalServerError, "Failed to generate AI-optimized trip plan")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":               true,
		"tripPlan":              plan,
		"ai_optimization_level": req.AIOptimizationLevel,
		"blockchain_enabled":    req.BlockchainIntegration,
	})
}
