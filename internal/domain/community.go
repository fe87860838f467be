package domain

import "time"

// Community is a named travel group with a pooled fund. ContractAddress is
// a synthetic 40-hex address standing in for a deployed funding contract.
// Pooled funds are not stored here; they are derived from confirmed ledger
// entries carrying the community id.
type Community struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Destination     string    `json:"destination"`
	Type            string    `json:"type"`
	MaxMembers      int       `json:"maxMembers"`
	Description     string    `json:"description"`
	Members         int       `json:"members"`
	Admin           string    `json:"admin"`
	ContractAddress string    `json:"contractAddress"`
	Verified        bool      `json:"verified"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"createdAt"`
}
