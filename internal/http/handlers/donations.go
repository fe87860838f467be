package handlers

import (
	"encoding/json"
	"net/http"

	"travelmate/internal/ledger"
	"travelmate/internal/middleware"
)

type donationRequest struct {
	CampaignID    string `json:"campaignId"`
	Amount        any    `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	Anonymous     bool   `json:"anonymous"`
}

// DonateTrip records a completed campaign donation. All three of
// campaignId, amount and paymentMethod are required.
func (a *App) DonateTrip(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CampaignID == "" || req.Amount == nil || req.PaymentMethod == "" {
		a.fail(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	donation, err := a.Ledger.Donate(r.Context(), ledger.DonateRequest{
		CampaignID:    req.CampaignID,
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		Anonymous:     req.Anonymous,
		Country:       middleware.CountryFromContext(r.Context()),
	})
	if err != nil {
		a.failFor(w, err, "Donation failed.")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":  true,
		"donation": donation,
	})
}
