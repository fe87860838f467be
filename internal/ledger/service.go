// Package ledger implements the simulated payment lifecycle behind the
// TravelMate wallet: it synthesizes pseudo-transactions, flips pending
// records to confirmed after a fixed delay, and derives community fund
// totals from the confirmed entries. No real settlement happens anywhere.
package ledger

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"travelmate/internal/domain"
)

const (
	defaultConfirmDelay = 3 * time.Second
	defaultCurrency     = "ETH"
	defaultGasUsed      = "21000"
	defaultGasFee       = "0.002 ETH"

	blockNumberFloor = 15_000_000
	blockNumberSpan  = 1_000_000

	confirmTimeout = 5 * time.Second
)

// Publisher receives confirmation events. Implementations must be safe for
// concurrent use; failures are logged, never propagated to the caller.
type Publisher interface {
	TransactionConfirmed(ctx context.Context, tx domain.Transaction) error
}

// Config tunes a Service. Zero-value fields fall back to production
// defaults: real timers, crypto/rand identifiers and a 3 second
// confirmation delay.
type Config struct {
	ConfirmDelay time.Duration
	Currency     string
	GasUsed      string
	GasFee       string
	Scheduler    Scheduler
	Sequence     *Sequence
	Hex          *HexGenerator
	BlockNumbers func() int64
	Publisher    Publisher
	Logger       *zerolog.Logger
}

// Service is the payment ledger simulator.
type Service struct {
	txs         domain.TransactionStore
	donations   domain.DonationStore
	communities domain.CommunityStore

	confirmDelay time.Duration
	currency     string
	gasUsed      string
	gasFee       string
	scheduler    Scheduler
	seq          *Sequence
	hex          *HexGenerator
	blockNumbers func() int64
	publisher    Publisher
	logger       zerolog.Logger

	mu      sync.Mutex
	pending map[int64]func() bool
	closed  bool
}

// NewService wires a Service over the given stores.
func NewService(txs domain.TransactionStore, donations domain.DonationStore, communities domain.CommunityStore, cfg Config) *Service {
	if cfg.ConfirmDelay <= 0 {
		cfg.ConfirmDelay = defaultConfirmDelay
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.GasUsed == "" {
		cfg.GasUsed = defaultGasUsed
	}
	if cfg.GasFee == "" {
		cfg.GasFee = defaultGasFee
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = TimerScheduler{}
	}
	if cfg.Sequence == nil {
		cfg.Sequence = &Sequence{}
	}
	if cfg.Hex == nil {
		cfg.Hex = &HexGenerator{}
	}
	if cfg.BlockNumbers == nil {
		cfg.BlockNumbers = func() int64 {
			return blockNumberFloor + rand.Int63n(blockNumberSpan)
		}
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Service{
		txs:          txs,
		donations:    donations,
		communities:  communities,
		confirmDelay: cfg.ConfirmDelay,
		currency:     cfg.Currency,
		gasUsed:      cfg.GasUsed,
		gasFee:       cfg.GasFee,
		scheduler:    cfg.Scheduler,
		seq:          cfg.Sequence,
		hex:          cfg.Hex,
		blockNumbers: cfg.BlockNumbers,
		publisher:    cfg.Publisher,
		logger:       logger,
	}
}

// SubmitRequest describes a payment-style submission.
type SubmitRequest struct {
	Kind        domain.TxKind
	Amount      float64
	Recipient   string
	CommunityID *int64
	PaymentType string
}

// Receipt is what the caller gets back from Submit: the pending record as
// stored plus the block number the transaction will land in once the
// confirmation delay elapses. The stored record keeps a nil block number
// until then.
type Receipt struct {
	Transaction domain.Transaction
	BlockNumber int64
}

// Submit records a pending transaction and schedules its confirmation. The
// caller never observes the confirmed state synchronously; the returned
// receipt always carries status pending.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Receipt, error) {
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	switch req.Kind {
	case domain.TxKindDeposit, domain.TxKindPayment, domain.TxKindRefund:
	default:
		return nil, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrValidation, req.Kind)
	}
	if req.Kind == domain.TxKindPayment && strings.TrimSpace(req.Recipient) == "" {
		return nil, fmt.Errorf("%w: recipient is required", domain.ErrValidation)
	}

	hash, err := s.hex.TxHash()
	if err != nil {
		return nil, fmt.Errorf("generate transaction hash: %w", err)
	}
	tx := &domain.Transaction{
		ID:          s.seq.Next(),
		Hash:        hash,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Currency:    s.currency,
		Recipient:   req.Recipient,
		CommunityID: req.CommunityID,
		PaymentType: req.PaymentType,
		Status:      domain.TxStatusPending,
		GasUsed:     s.gasUsed,
		GasFee:      s.gasFee,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.txs.Insert(ctx, tx); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	block := s.blockNumbers()
	s.schedule(tx.ID, block)
	return &Receipt{Transaction: *tx, BlockNumber: block}, nil
}

// Deposit records an immediately completed wallet top-up. Deposits skip the
// pending phase: the upstream payment rail settles synchronously, so no
// confirmation is simulated.
func (s *Service) Deposit(ctx context.Context, amount float64, method string) (*domain.Transaction, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	tx := &domain.Transaction{
		ID:        s.seq.Next(),
		Kind:      domain.TxKindDeposit,
		Amount:    amount,
		Currency:  s.currency,
		Method:    method,
		Status:    domain.TxStatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.txs.Insert(ctx, tx); err != nil {
		return nil, fmt.Errorf("insert deposit: %w", err)
	}
	return tx, nil
}

// DonateRequest describes a campaign donation.
type DonateRequest struct {
	CampaignID    string
	Amount        float64
	PaymentMethod string
	Anonymous     bool
	Country       string
}

// Donate records a completed donation. Donations settle on a different rail
// than wallet payments and never pass through the pending state.
func (s *Service) Donate(ctx context.Context, req DonateRequest) (*domain.Donation, error) {
	if strings.TrimSpace(req.CampaignID) == "" {
		return nil, fmt.Errorf("%w: campaignId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: paymentMethod is required", domain.ErrValidation)
	}
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	donation := &domain.Donation{
		ID:            uuid.NewString(),
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Anonymous:     req.Anonymous,
		Country:       req.Country,
		Status:        domain.TxStatusCompleted,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.donations.CreateDonation(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}
	return donation, nil
}

// Totals are derived aggregates over a listed transaction set.
type Totals struct {
	Value   float64
	GasFees float64
}

// List returns transactions matching the filter in insertion order, along
// with totals computed over exactly the returned set.
func (s *Service) List(ctx context.Context, filter domain.TxFilter) ([]domain.Transaction, Totals, error) {
	txs, err := s.txs.List(ctx, filter)
	if err != nil {
		return nil, Totals{}, fmt.Errorf("list transactions: %w", err)
	}
	var totals Totals
	for i := range txs {
		totals.Value += txs[i].Amount
		totals.GasFees += parseGasFee(txs[i].GasFee)
	}
	return txs, totals, nil
}

// CreateCommunityRequest describes a new travel community.
type CreateCommunityRequest struct {
	Name        string
	Destination string
	Type        string
	MaxMembers  int
	Description string
	Admin       string
}

// CreateCommunity registers a community with a synthetic funding contract
// address. The pooled fund starts empty and is never stored; it is derived
// from the ledger on read.
func (s *Service) CreateCommunity(ctx context.Context, req CreateCommunityRequest) (*domain.Community, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Destination) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	address, err := s.hex.Address()
	if err != nil {
		return nil, fmt.Errorf("generate contract address: %w", err)
	}
	admin := req.Admin
	if admin == "" {
		admin = "Current User"
	}
	community := &domain.Community{
		ID:              s.seq.Next(),
		Name:            req.Name,
		Destination:     req.Destination,
		Type:            req.Type,
		MaxMembers:      req.MaxMembers,
		Description:     req.Description,
		Members:         1,
		Admin:           admin,
		ContractAddress: address,
		Tags:            communityTags(req.Type),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.communities.CreateCommunity(ctx, community); err != nil {
		return nil, fmt.Errorf("create community: %w", err)
	}
	return community, nil
}

// CommunityFunds reports the community together with its pooled fund total:
// the sum of confirmed deposit and payment amounts carrying its id.
func (s *Service) CommunityFunds(ctx context.Context, id int64) (*domain.Community, float64, error) {
	community, err := s.communities.GetCommunity(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	txs, err := s.txs.List(ctx, domain.TxFilter{CommunityID: &id})
	if err != nil {
		return nil, 0, fmt.Errorf("list community transactions: %w", err)
	}
	var pooled float64
	for i := range txs {
		if txs[i].Status != domain.TxStatusConfirmed {
			continue
		}
		if txs[i].Kind != domain.TxKindDeposit && txs[i].Kind != domain.TxKindPayment {
			continue
		}
		pooled += txs[i].Amount
	}
	return community, pooled, nil
}

// Close cancels every outstanding confirmation timer. Records already
// pending stay pending; no caller depends on the transition completing.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	cancels := make([]func() bool, 0, len(s.pending))
	for _, cancel := range s.pending {
		cancels = append(cancels, cancel)
	}
	s.pending = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func (s *Service) schedule(id int64, block int64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.pending == nil {
		s.pending = make(map[int64]func() bool)
	}
	cancel := s.scheduler.AfterFunc(s.confirmDelay, func() {
		s.confirm(id, block)
	})
	s.pending[id] = cancel
	s.mu.Unlock()
}

func (s *Service) confirm(id int64, block int64) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
	defer cancel()

	if err := s.txs.Confirm(ctx, id, block); err != nil {
		s.logger.Error().Err(err).Int64("tx_id", id).Msg("confirm transaction")
		return
	}
	s.logger.Info().Int64("tx_id", id).Int64("block", block).Msg("transaction confirmed")

	if s.publisher == nil {
		return
	}
	tx, err := s.txs.Get(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("tx_id", id).Msg("load confirmed transaction")
		return
	}
	if err := s.publisher.TransactionConfirmed(ctx, *tx); err != nil {
		s.logger.Error().Err(err).Int64("tx_id", id).Msg("publish confirmation event")
	}
}

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", domain.ErrValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	return nil
}

// parseGasFee extracts the numeric part of a fee like "0.002 ETH".
func parseGasFee(fee string) float64 {
	fields := strings.Fields(fee)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}

func communityTags(communityType string) []string {
	switch communityType {
	case "blockchain":
		return []string{"Crypto", "Smart Contracts"}
	case "special":
		return []string{"Verified", "Safe"}
	default:
		return []string{"AI-Optimized", "Tech-Enabled"}
	}
}
