package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"

	"travelmate/internal/domain"
)

// Key layout. Transaction ids are monotonic, so zero-padded decimal keys
// iterate in insertion order; donations are ordered by creation nanos.
const (
	txKeyPrefix        = "tx:"
	donationKeyPrefix  = "donation:"
	communityKeyPrefix = "community:"
)

// BadgerStore persists the ledger in an embedded Badger database. It is
// the default durable backend when no Postgres URL is configured.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (creating if needed) a Badger database rooted at dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	options := badger.DefaultOptions(dir)
	options.Logger = nil
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func txKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", txKeyPrefix, id))
}

func donationKey(d *domain.Donation) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", donationKeyPrefix, d.CreatedAt.UnixNano(), d.ID))
}

func communityKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", communityKeyPrefix, id))
}

func (s *BadgerStore) Insert(_ context.Context, tx *domain.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	key := txKey(tx.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("transaction %d already exists", tx.ID)
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, data)
	})
}

func (s *BadgerStore) Confirm(_ context.Context, id int64, blockNumber int64) error {
	key := txKey(id)
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		var tx domain.Transaction
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		}); err != nil {
			return fmt.Errorf("decode transaction: %w", err)
		}
		if tx.Status != domain.TxStatusPending {
			return domain.ErrAlreadySettled
		}
		tx.Status = domain.TxStatusConfirmed
		tx.BlockNumber = &blockNumber
		data, err := json.Marshal(&tx)
		if err != nil {
			return fmt.Errorf("encode transaction: %w", err)
		}
		return txn.Set(key, data)
	})
}

func (s *BadgerStore) Get(_ context.Context, id int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(id))
		if err == badger.ErrKeyNotFound {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		})
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *BadgerStore) List(_ context.Context, filter domain.TxFilter) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	prefix := []byte(txKeyPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.Valid(); it.Next() {
			var tx domain.Transaction
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			}); err != nil {
				return err
			}
			if filter.Matches(&tx) {
				out = append(out, tx)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) CreateDonation(_ context.Context, donation *domain.Donation) error {
	data, err := json.Marshal(donation)
	if err != nil {
		return fmt.Errorf("encode donation: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(donationKey(donation), data)
	})
}

func (s *BadgerStore) ListDonations(_ context.Context, campaignID string) ([]domain.Donation, error) {
	out := []domain.Donation{}
	prefix := []byte(donationKeyPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.Valid(); it.Next() {
			var donation domain.Donation
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &donation)
			}); err != nil {
				return err
			}
			if campaignID != "" && donation.CampaignID != campaignID {
				continue
			}
			out = append(out, donation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) CreateCommunity(_ context.Context, community *domain.Community) error {
	data, err := json.Marshal(community)
	if err != nil {
		return fmt.Errorf("encode community: %w", err)
	}
	key := communityKey(community.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("community %d already exists", community.ID)
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, data)
	})
}

func (s *BadgerStore) GetCommunity(_ context.Context, id int64) (*domain.Community, error) {
	var community domain.Community
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(communityKey(id))
		if err == badger.ErrKeyNotFound {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &community)
		})
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}
