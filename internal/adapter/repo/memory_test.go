package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmate/internal/domain"
)

func sampleTx(id int64, communityID *int64) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		Hash:        "0xdeadbeef",
		Kind:        domain.TxKindPayment,
		Amount:      1.5,
		Currency:    "ETH",
		Recipient:   "0xabc",
		CommunityID: communityID,
		Status:      domain.TxStatusPending,
		GasUsed:     "21000",
		GasFee:      "0.002 ETH",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMemoryStoreInsertAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := sampleTx(1, nil)
	require.NoError(t, store.Insert(ctx, tx))
	assert.Error(t, store.Insert(ctx, tx), "duplicate id must be rejected")

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash, got.Hash)

	_, err = store.Get(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStoreConfirmOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleTx(1, nil)))
	require.NoError(t, store.Confirm(ctx, 1, 15_234_567))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusConfirmed, got.Status)
	require.NotNil(t, got.BlockNumber)
	assert.EqualValues(t, 15_234_567, *got.BlockNumber)

	assert.ErrorIs(t, store.Confirm(ctx, 1, 1), domain.ErrAlreadySettled)
	assert.ErrorIs(t, store.Confirm(ctx, 2, 1), domain.ErrNotFound)
}

func TestMemoryStoreListFilterAndOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	one := int64(1)

	require.NoError(t, store.Insert(ctx, sampleTx(10, &one)))
	require.NoError(t, store.Insert(ctx, sampleTx(11, nil)))
	require.NoError(t, store.Insert(ctx, sampleTx(12, &one)))

	all, err := store.List(ctx, domain.TxFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.EqualValues(t, 10, all[0].ID)
	assert.EqualValues(t, 11, all[1].ID)
	assert.EqualValues(t, 12, all[2].ID)

	filtered, err := store.List(ctx, domain.TxFilter{CommunityID: &one})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.EqualValues(t, 10, filtered[0].ID)
	assert.EqualValues(t, 12, filtered[1].ID)

	// Mutating a returned copy never leaks into the store.
	filtered[0].Status = domain.TxStatusFailed
	got, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusPending, got.Status)
}

func TestMemoryStoreDonations(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateDonation(ctx, &domain.Donation{ID: "d1", CampaignID: "c1", Amount: 50, Status: domain.TxStatusCompleted}))
	require.NoError(t, store.CreateDonation(ctx, &domain.Donation{ID: "d2", CampaignID: "c2", Amount: 25, Status: domain.TxStatusCompleted}))

	all, err := store.ListDonations(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	c1, err := store.ListDonations(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, c1, 1)
	assert.Equal(t, "d1", c1[0].ID)
}

func TestMemoryStoreCommunities(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	community := &domain.Community{ID: 1, Name: "Nomads", Destination: "Bali", ContractAddress: "0xfeed"}
	require.NoError(t, store.CreateCommunity(ctx, community))
	assert.Error(t, store.CreateCommunity(ctx, community))

	got, err := store.GetCommunity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Nomads", got.Name)

	_, err = store.GetCommunity(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
