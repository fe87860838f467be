package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"travelmate/internal/ledger"
)

type communityCreateRequest struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Type        string `json:"type"`
	MaxMembers  any    `json:"maxMembers"`
	Description string `json:"description"`
}

// CommunityCreate registers a community with a synthetic funding contract.
func (a *App) CommunityCreate(w http.ResponseWriter, r *http.Request) {
	var req communityCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	community, err := a.Ledger.CreateCommunity(r.Context(), ledger.CreateCommunityRequest{
		Name:        req.Name,
		Destination: req.Destination,
		Type:        req.Type,
		MaxMembers:  parseMaxMembers(req.MaxMembers),
		Description: req.Description,
	})
	if err != nil {
		a.failFor(w, err, "Failed to create community")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":         true,
		"community":       community,
		"contractAddress": community.ContractAddress,
		"message":         "Community created successfully with smart contract deployment",
	})
}

// CommunityFunds reports a community and its pooled fund total derived from
// confirmed ledger entries.
func (a *App) CommunityFunds(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "community id must be an integer")
		return
	}
	community, pooled, err := a.Ledger.CommunityFunds(r.Context(), id)
	if err != nil {
		a.failFor(w, err, "Failed to load community funds")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":     true,
		"community":   community,
		"pooledFunds": formatFunds(pooled),
		"pooledValue": pooled,
	})
}

// formatFunds renders a pooled total as a display string. FormatFloat with
// 'f' keeps large pools in plain decimal notation.
func formatFunds(pooled float64) string {
	return strconv.FormatFloat(pooled, 'f', -1, 64) + " ETH"
}

// parseMaxMembers tolerates the member cap arriving as a number or string.
func parseMaxMembers(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return 0
}
