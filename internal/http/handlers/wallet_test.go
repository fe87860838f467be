package handlers_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func TestWalletDeposit(t *testing.T) {
	env := newTestEnv(t)

	rr := env.post(t, "/api/wallet/deposit", map[string]any{
		"amount": 2.5,
		"method": "card",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t, true, body["success"])

	tx := body["transaction"].(map[string]any)
	require.Equal(t, "deposit", tx["type"])
	require.Equal(t, 2.5, tx["amount"])
	require.Equal(t, "card", tx["method"])
	require.Equal(t, "completed", tx["status"])
}

func TestWalletDepositStringAmount(t *testing.T) {
	env := newTestEnv(t)

	rr := env.post(t, "/api/wallet/deposit", map[string]any{
		"amount": "1.75",
		"method": "crypto",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	tx := decodeBody(t, rr)["transaction"].(map[string]any)
	require.Equal(t, 1.75, tx["amount"])
}

func TestWalletDepositRejectsBadAmount(t *testing.T) {
	env := newTestEnv(t)

	for name, payload := range map[string]map[string]any{
		"zero":     {"amount": 0, "method": "card"},
		"negative": {"amount": -3, "method": "card"},
		"garbage":  {"amount": "lots", "method": "card"},
		"missing":  {"method": "card"},
	} {
		t.Run(name, func(t *testing.T) {
			rr := env.post(t, "/api/wallet/deposit", payload)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			body := decodeBody(t, rr)
			require.Equal(t, false, body["success"])
			require.NotEmpty(t, body["error"])
		})
	}

	rr := env.get(t, "/api/wallet/transactions")
	body := decodeBody(t, rr)
	require.Empty(t, body["transactions"])
}

func TestWalletPay(t *testing.T) {
	env := newTestEnv(t)

	rr := env.post(t, "/api/wallet/pay", map[string]any{
		"amount":      0.8,
		"recipient":   "0x2f4a90cc1b3de56a7780f91e3c5b2a86d4e01937",
		"communityId": 1,
		"paymentType": "hotel",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Blockchain transaction initiated successfully", body["message"])

	tx := body["transaction"].(map[string]any)
	require.Equal(t, "pending", tx["status"])
	require.Equal(t, "hotel", tx["paymentType"])
	require.Equal(t, "21000", tx["gasUsed"])
	require.Equal(t, "0.002 ETH", tx["gasFee"])
	require.Regexp(t, txHashPattern, tx["hash"])
	require.Equal(t, float64(15_234_567), tx["blockNumber"])
}

func TestWalletPayRequiresRecipient(t *testing.T) {
	env := newTestEnv(t)

	rr := env.post(t, "/api/wallet/pay", map[string]any{
		"amount":      1.0,
		"paymentType": "hotel",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, false, decodeBody(t, rr)["success"])
}

func TestWalletTransactionsTotals(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/api/wallet/pay", map[string]any{
		"amount":    0.5,
		"recipient": "0xaaa",
	})
	env.post(t, "/api/wallet/pay", map[string]any{
		"amount":    0.3,
		"recipient": "0xbbb",
	})

	rr := env.get(t, "/api/wallet/transactions")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	require.Equal(t, true, body["success"])
	require.Len(t, body["transactions"], 2)
	require.InDelta(t, 0.8, body["totalValue"], 1e-9)
	require.InDelta(t, 0.004, body["totalGasFees"], 1e-9)
}

func TestWalletTransactionsFilterByAddress(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/api/wallet/pay", map[string]any{"amount": 1.0, "recipient": "0xaaa"})
	env.post(t, "/api/wallet/pay", map[string]any{"amount": 2.0, "recipient": "0xbbb"})

	rr := env.get(t, "/api/wallet/transactions?address=0xbbb")
	body := decodeBody(t, rr)
	txs := body["transactions"].([]any)
	require.Len(t, txs, 1)
	require.Equal(t, "0xbbb", txs[0].(map[string]any)["recipient"])
	require.InDelta(t, 2.0, body["totalValue"], 1e-9)
}

func TestWalletTransactionsBadCommunityID(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get(t, "/api/wallet/transactions?communityId=abc")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWalletPayConfirmationVisibleInListing(t *testing.T) {
	env := newTestEnv(t)

	env.post(t, "/api/wallet/pay", map[string]any{"amount": 0.5, "recipient": "0xccc"})
	env.scheduler.Fire()

	rr := env.get(t, "/api/wallet/transactions")
	txs := decodeBody(t, rr)["transactions"].([]any)
	require.Len(t, txs, 1)
	tx := txs[0].(map[string]any)
	require.Equal(t, "confirmed", tx["status"])
	require.Equal(t, float64(15_234_567), tx["blockNumber"])
}
