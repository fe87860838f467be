package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"travelmate/internal/domain"
	"travelmate/internal/ledger"
)

type depositRequest struct {
	Amount any    `json:"amount"`
	Method string `json:"method"`
}

type depositResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// WalletDeposit records an immediately completed top-up.
func (a *App) WalletDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}
	tx, err := a.Ledger.Deposit(r.Context(), amount, req.Method)
	if err != nil {
		a.failFor(w, err, "Deposit failed")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"transaction": depositResponse{
			ID:        tx.ID,
			Type:      string(tx.Kind),
			Amount:    tx.Amount,
			Method:    tx.Method,
			Status:    string(tx.Status),
			CreatedAt: tx.CreatedAt,
		},
	})
}

type payRequest struct {
	Amount      any    `json:"amount"`
	Recipient   string `json:"recipient"`
	CommunityID *int64 `json:"communityId"`
	PaymentType string `json:"paymentType"`
}

type payResponse struct {
	ID          int64     `json:"id"`
	Hash        string    `json:"hash"`
	Amount      float64   `json:"amount"`
	Recipient   string    `json:"recipient"`
	CommunityID *int64    `json:"communityId"`
	PaymentType string    `json:"paymentType"`
	Status      string    `json:"status"`
	GasUsed     string    `json:"gasUsed"`
	GasFee      string    `json:"gasFee"`
	BlockNumber int64     `json:"blockNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WalletPay submits a pending payment. The response carries the block the
// transaction will land in; the stored record stays pending with no block
// number until the confirmation delay elapses.
func (a *App) WalletPay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}
	receipt, err := a.Ledger.Submit(r.Context(), ledger.SubmitRequest{
		Kind:        domain.TxKindPayment,
		Amount:      amount,
		Recipient:   req.Recipient,
		CommunityID: req.CommunityID,
		PaymentType: req.PaymentType,
	})
	if err != nil {
		a.failFor(w, err, "Payment processing failed")
		return
	}
	tx := receipt.Transaction
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"transaction": payResponse{
			ID:          tx.ID,
			Hash:        tx.Hash,
			Amount:      tx.Amount,
			Recipient:   tx.Recipient,
			CommunityID: tx.CommunityID,
			PaymentType: tx.PaymentType,
			Status:      string(tx.Status),
			GasUsed:     tx.GasUsed,
			GasFee:      tx.GasFee,
			BlockNumber: receipt.BlockNumber,
			CreatedAt:   tx.CreatedAt,
		},
		"message": "Blockchain transaction initiated successfully",
	})
}

// WalletTransactions lists transactions with derived totals. Query params
// `address` and `communityId` restrict the set.
func (a *App) WalletTransactions(w http.ResponseWriter, r *http.Request) {
	filter := domain.TxFilter{
		WalletAddress: r.URL.Query().Get("address"),
	}
	if raw := r.URL.Query().Get("communityId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			a.fail(w, http.StatusBadRequest, "communityId must be an integer")
			return
		}
		filter.CommunityID = &id
	}
	txs, totals, err := a.Ledger.List(r.Context(), filter)
	if err != nil {
		a.failFor(w, err, "Failed to fetch transactions")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success":      true,
		"transactions": txs,
		"totalValue":   totals.Value,
		"totalGasFees": totals.GasFees,
	})
}

// parseAmount coerces an amount that may arrive as a JSON number or a
// numeric string. Missing, non-numeric, and non-positive values are
// rejected here so no record is created for them.
func parseAmount(v any) (float64, error) {
	switch amount := v.(type) {
	case float64:
		if amount <= 0 {
			return 0, fmt.Errorf("amount must be positive")
		}
		return amount, nil
	case string:
		parsed, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return 0, fmt.Errorf("amount is not numeric")
		}
		if parsed <= 0 {
			return 0, fmt.Errorf("amount must be positive")
		}
		return parsed, nil
	case nil:
		return 0, fmt.Errorf("amount is required")
	default:
		return 0, fmt.Errorf("amount is not numeric")
	}
}
