package domain

import "time"

// TxKind enumerates the kinds of simulated monetary movement.
type TxKind string

const (
	TxKindDeposit TxKind = "deposit"
	TxKindPayment TxKind = "payment"
	TxKindRefund  TxKind = "refund"
)

// TxStatus enumerates transaction lifecycle states.
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusCompleted TxStatus = "completed"
	TxStatusFailed    TxStatus = "failed"
)

// Terminal reports whether the status admits no further transition.
func (s TxStatus) Terminal() bool {
	return s == TxStatusConfirmed || s == TxStatusCompleted || s == TxStatusFailed
}

// Transaction is one simulated monetary movement. The hash is a synthetic
// hex identifier with no cryptographic meaning, and the gas fields are
// nominal simulated costs. BlockNumber stays nil until the transaction is
// confirmed.
type Transaction struct {
	ID          int64     `json:"id"`
	Hash        string    `json:"hash,omitempty"`
	Kind        TxKind    `json:"type"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency,omitempty"`
	Method      string    `json:"method,omitempty"`
	Recipient   string    `json:"recipient,omitempty"`
	CommunityID *int64    `json:"communityId,omitempty"`
	PaymentType string    `json:"paymentType,omitempty"`
	Status      TxStatus  `json:"status"`
	GasUsed     string    `json:"gasUsed,omitempty"`
	GasFee      string    `json:"gasFee,omitempty"`
	BlockNumber *int64    `json:"blockNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TxFilter restricts a transaction listing. Zero-value fields do not filter.
type TxFilter struct {
	CommunityID   *int64
	WalletAddress string
}

// Matches reports whether the transaction satisfies the filter.
func (f TxFilter) Matches(tx *Transaction) bool {
	if f.CommunityID != nil {
		if tx.CommunityID == nil || *tx.CommunityID != *f.CommunityID {
			return false
		}
	}
	if f.WalletAddress != "" && tx.Recipient != f.WalletAddress {
		return false
	}
	return true
}
