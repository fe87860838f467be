package domain

import "time"

// Donation is a campaign contribution. Donations settle immediately: they
// are recorded as completed with no pending phase, unlike wallet payments.
type Donation struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaignId"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	Anonymous     bool      `json:"anonymous"`
	Country       string    `json:"country,omitempty"`
	Status        TxStatus  `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
