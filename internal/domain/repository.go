package domain

import "context"

// TransactionStore persists simulated transactions. List returns records in
// insertion order; Confirm flips a pending record to confirmed exactly once
// and sets its block number, returning ErrAlreadySettled when the record has
// already reached a terminal status.
type TransactionStore interface {
	Insert(ctx context.Context, tx *Transaction) error
	Confirm(ctx context.Context, id int64, blockNumber int64) error
	Get(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, filter TxFilter) ([]Transaction, error)
}

// DonationStore persists campaign donations.
type DonationStore interface {
	CreateDonation(ctx context.Context, donation *Donation) error
	ListDonations(ctx context.Context, campaignID string) ([]Donation, error)
}

// CommunityStore persists travel communities.
type CommunityStore interface {
	CreateCommunity(ctx context.Context, community *Community) error
	GetCommunity(ctx context.Context, id int64) (*Community, error)
}
