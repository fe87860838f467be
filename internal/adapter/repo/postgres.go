package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travelmate/internal/domain"
)

// PostgresStore persists the ledger in PostgreSQL via a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the ledger tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS wallet_transactions (
	id           BIGINT PRIMARY KEY,
	hash         TEXT NOT NULL DEFAULT '',
	kind         TEXT NOT NULL,
	amount       DOUBLE PRECISION NOT NULL,
	currency     TEXT NOT NULL DEFAULT '',
	method       TEXT NOT NULL DEFAULT '',
	recipient    TEXT NOT NULL DEFAULT '',
	community_id BIGINT,
	payment_type TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	gas_used     TEXT NOT NULL DEFAULT '',
	gas_fee      TEXT NOT NULL DEFAULT '',
	block_number BIGINT,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS donations (
	id             TEXT PRIMARY KEY,
	campaign_id    TEXT NOT NULL,
	amount         DOUBLE PRECISION NOT NULL,
	payment_method TEXT NOT NULL,
	anonymous      BOOLEAN NOT NULL DEFAULT FALSE,
	country        TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS communities (
	id               BIGINT PRIMARY KEY,
	name             TEXT NOT NULL,
	destination      TEXT NOT NULL,
	type             TEXT NOT NULL DEFAULT '',
	max_members      INT NOT NULL DEFAULT 0,
	description      TEXT NOT NULL DEFAULT '',
	members          INT NOT NULL DEFAULT 1,
	admin            TEXT NOT NULL DEFAULT '',
	contract_address TEXT NOT NULL,
	verified         BOOLEAN NOT NULL DEFAULT FALSE,
	tags             TEXT[] NOT NULL DEFAULT '{}',
	created_at       TIMESTAMPTZ NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("ensure ledger schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, tx *domain.Transaction) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO wallet_transactions
	(id, hash, kind, amount, currency, method, recipient, community_id, payment_type, status, gas_used, gas_fee, block_number, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`, tx.ID, tx.Hash, string(tx.Kind), tx.Amount, tx.Currency, tx.Method, tx.Recipient,
		tx.CommunityID, tx.PaymentType, string(tx.Status), tx.GasUsed, tx.GasFee, tx.BlockNumber, tx.CreatedAt)
	return err
}

func (s *PostgresStore) Confirm(ctx context.Context, id int64, blockNumber int64) error {
	tag, err := s.pool.Exec(ctx, `
UPDATE wallet_transactions
SET status = $2, block_number = $3
WHERE id = $1 AND status = $4;
`, id, string(domain.TxStatusConfirmed), blockNumber, string(domain.TxStatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	// Either the record is missing or it already settled.
	var status string
	err = s.pool.QueryRow(ctx, `SELECT status FROM wallet_transactions WHERE id = $1;`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrAlreadySettled
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, hash, kind, amount, currency, method, recipient, community_id, payment_type, status, gas_used, gas_fee, block_number, created_at
FROM wallet_transactions
WHERE id = $1;
`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *PostgresStore) List(ctx context.Context, filter domain.TxFilter) ([]domain.Transaction, error) {
	query := `
SELECT id, hash, kind, amount, currency, method, recipient, community_id, payment_type, status, gas_used, gas_fee, block_number, created_at
FROM wallet_transactions
WHERE ($1::BIGINT IS NULL OR community_id = $1)
  AND ($2 = '' OR recipient = $2)
ORDER BY id;
`
	rows, err := s.pool.Query(ctx, query, filter.CommunityID, filter.WalletAddress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	var kind, status string
	if err := row.Scan(&tx.ID, &tx.Hash, &kind, &tx.Amount, &tx.Currency, &tx.Method, &tx.Recipient,
		&tx.CommunityID, &tx.PaymentType, &status, &tx.GasUsed, &tx.GasFee, &tx.BlockNumber, &tx.CreatedAt); err != nil {
		return nil, err
	}
	tx.Kind = domain.TxKind(kind)
	tx.Status = domain.TxStatus(status)
	return &tx, nil
}

func (s *PostgresStore) CreateDonation(ctx context.Context, donation *domain.Donation) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO donations (id, campaign_id, amount, payment_method, anonymous, country, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`, donation.ID, donation.CampaignID, donation.Amount, donation.PaymentMethod,
		donation.Anonymous, donation.Country, string(donation.Status), donation.CreatedAt)
	return err
}

func (s *PostgresStore) ListDonations(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, campaign_id, amount, payment_method, anonymous, country, status, created_at
FROM donations
WHERE ($1 = '' OR campaign_id = $1)
ORDER BY created_at;
`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Donation{}
	for rows.Next() {
		var donation domain.Donation
		var status string
		if err := rows.Scan(&donation.ID, &donation.CampaignID, &donation.Amount, &donation.PaymentMethod,
			&donation.Anonymous, &donation.Country, &status, &donation.CreatedAt); err != nil {
			return nil, err
		}
		donation.Status = domain.TxStatus(status)
		items = append(items, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *PostgresStore) CreateCommunity(ctx context.Context, community *domain.Community) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO communities (id, name, destination, type, max_members, description, members, admin, contract_address, verified, tags, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`, community.ID, community.Name, community.Destination, community.Type, community.MaxMembers,
		community.Description, community.Members, community.Admin, community.ContractAddress,
		community.Verified, community.Tags, community.CreatedAt)
	return err
}

func (s *PostgresStore) GetCommunity(ctx context.Context, id int64) (*domain.Community, error) {
	var community domain.Community
	err := s.pool.QueryRow(ctx, `
SELECT id, name, destination, type, max_members, description, members, admin, contract_address, verified, tags, created_at
FROM communities
WHERE id = $1;
`, id).Scan(&community.ID, &community.Name, &community.Destination, &community.Type, &community.MaxMembers,
		&community.Description, &community.Members, &community.Admin, &community.ContractAddress,
		&community.Verified, &community.Tags, &community.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &community, nil
}
