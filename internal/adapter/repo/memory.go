package repo

import (
	"context"
	"fmt"
	"sync"

	"travelmate/internal/domain"
)

// MemoryStore keeps the ledger in process memory. It is the default
// backend for tests and for running the service without any external
// dependency. Reads return copies in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	txs         []domain.Transaction
	txIndex     map[int64]int
	donations   []domain.Donation
	communities map[int64]domain.Community
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		txIndex:     make(map[int64]int),
		communities: make(map[int64]domain.Community),
	}
}

func (s *MemoryStore) Insert(_ context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.txIndex[tx.ID]; exists {
		return fmt.Errorf("transaction %d already exists", tx.ID)
	}
	s.txIndex[tx.ID] = len(s.txs)
	s.txs = append(s.txs, *tx)
	return nil
}

func (s *MemoryStore) Confirm(_ context.Context, id int64, blockNumber int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.txIndex[id]
	if !ok {
		return domain.ErrNotFound
	}
	tx := &s.txs[idx]
	if tx.Status != domain.TxStatusPending {
		return domain.ErrAlreadySettled
	}
	tx.Status = domain.TxStatusConfirmed
	tx.BlockNumber = &blockNumber
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.txIndex[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	tx := s.txs[idx]
	return &tx, nil
}

func (s *MemoryStore) List(_ context.Context, filter domain.TxFilter) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(s.txs))
	for i := range s.txs {
		if filter.Matches(&s.txs[i]) {
			out = append(out, s.txs[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateDonation(_ context.Context, donation *domain.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donations = append(s.donations, *donation)
	return nil
}

func (s *MemoryStore) ListDonations(_ context.Context, campaignID string) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Donation, 0, len(s.donations))
	for i := range s.donations {
		if campaignID != "" && s.donations[i].CampaignID != campaignID {
			continue
		}
		out = append(out, s.donations[i])
	}
	return out, nil
}

func (s *MemoryStore) CreateCommunity(_ context.Context, community *domain.Community) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.communities[community.ID]; exists {
		return fmt.Errorf("community %d already exists", community.ID)
	}
	s.communities[community.ID] = *community
	return nil
}

func (s *MemoryStore) GetCommunity(_ context.Context, id int64) (*domain.Community, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	community, ok := s.communities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &community, nil
}
