package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmate/internal/domain"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	tx := sampleTx(1, nil)
	require.NoError(t, store.Insert(ctx, tx))
	assert.Error(t, store.Insert(ctx, tx), "duplicate id must be rejected")

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash, got.Hash)
	assert.Equal(t, domain.TxStatusPending, got.Status)

	_, err = store.Get(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBadgerStoreConfirmOnce(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleTx(7, nil)))
	require.NoError(t, store.Confirm(ctx, 7, 15_600_000))

	got, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusConfirmed, got.Status)
	require.NotNil(t, got.BlockNumber)
	assert.EqualValues(t, 15_600_000, *got.BlockNumber)

	assert.ErrorIs(t, store.Confirm(ctx, 7, 1), domain.ErrAlreadySettled)
	assert.ErrorIs(t, store.Confirm(ctx, 99, 1), domain.ErrNotFound)
}

func TestBadgerStoreListInsertionOrder(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()
	two := int64(2)

	// Ids are monotonic, so key order equals insertion order.
	require.NoError(t, store.Insert(ctx, sampleTx(100, nil)))
	require.NoError(t, store.Insert(ctx, sampleTx(101, &two)))
	require.NoError(t, store.Insert(ctx, sampleTx(102, &two)))

	all, err := store.List(ctx, domain.TxFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.EqualValues(t, 100, all[0].ID)
	assert.EqualValues(t, 102, all[2].ID)

	filtered, err := store.List(ctx, domain.TxFilter{CommunityID: &two})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestBadgerStoreDonationsAndCommunities(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.CreateDonation(ctx, &domain.Donation{ID: "d1", CampaignID: "c1", Amount: 50, Status: domain.TxStatusCompleted, CreatedAt: now}))
	require.NoError(t, store.CreateDonation(ctx, &domain.Donation{ID: "d2", CampaignID: "c2", Amount: 20, Status: domain.TxStatusCompleted, CreatedAt: now.Add(time.Millisecond)}))

	donations, err := store.ListDonations(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "d1", donations[0].ID)

	community := &domain.Community{ID: 5, Name: "Nomads", Destination: "Bali", ContractAddress: "0xfeed", CreatedAt: now}
	require.NoError(t, store.CreateCommunity(ctx, community))
	assert.Error(t, store.CreateCommunity(ctx, community))

	got, err := store.GetCommunity(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Nomads", got.Name)

	_, err = store.GetCommunity(ctx, 6)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
