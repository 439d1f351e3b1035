package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"custos/internal/registry/models"
	id "custos/pkg/domain"
)

// PostgresStore persists member state in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed member store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the member tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS members (
	id                    BYTEA PRIMARY KEY,
	rating                SMALLINT NOT NULL,
	verifier_affinity     INTEGER NOT NULL,
	nonzero_balance_count BIGINT NOT NULL,
	restricted            BOOLEAN NOT NULL,
	custodian_link        TEXT NOT NULL DEFAULT '',
	custodian             BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS member_addresses (
	address   TEXT PRIMARY KEY,
	member_id BYTEA NOT NULL
);
CREATE TABLE IF NOT EXISTS member_documents (
	member_id BYTEA PRIMARY KEY,
	hash      BYTEA NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure member schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, memberID id.MemberID) (*models.MemberAccount, error) {
	const q = `SELECT rating, verifier_affinity, nonzero_balance_count, restricted, custodian_link, custodian
FROM members WHERE id = $1`

	var (
		rating    int16
		affinity  int
		count     int64
		restr     bool
		custLink  string
		custodian bool
	)
	err := s.db.QueryRowContext(ctx, q, memberID[:]).
		Scan(&rating, &affinity, &count, &restr, &custLink, &custodian)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &models.MemberAccount{
		ID:                  memberID,
		Rating:              id.Rating(rating),
		VerifierAffinity:    affinity,
		NonzeroBalanceCount: uint64(count),
		Restricted:          restr,
		CustodianLink:       id.Address(custLink),
		Custodian:           custodian,
		Exists:              true,
	}, nil
}

func (s *PostgresStore) Put(ctx context.Context, account *models.MemberAccount) error {
	const q = `INSERT INTO members (id, rating, verifier_affinity, nonzero_balance_count, restricted, custodian_link, custodian)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	rating = EXCLUDED.rating,
	verifier_affinity = EXCLUDED.verifier_affinity,
	nonzero_balance_count = EXCLUDED.nonzero_balance_count,
	restricted = EXCLUDED.restricted,
	custodian_link = EXCLUDED.custodian_link,
	custodian = EXCLUDED.custodian`

	_, err := s.db.ExecContext(ctx, q,
		account.ID[:],
		int16(account.Rating),
		account.VerifierAffinity,
		int64(account.NonzeroBalanceCount),
		account.Restricted,
		account.CustodianLink.String(),
		account.Custodian,
	)
	if err != nil {
		return fmt.Errorf("put member: %w", err)
	}
	return nil
}

func (s *PostgresStore) IDForAddress(ctx context.Context, addr id.Address) (id.MemberID, error) {
	const q = `SELECT member_id FROM member_addresses WHERE address = $1`

	var raw []byte
	err := s.db.QueryRowContext(ctx, q, addr.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return id.NilMemberID, nil
	}
	if err != nil {
		return id.NilMemberID, fmt.Errorf("get id for address: %w", err)
	}
	var memberID id.MemberID
	copy(memberID[:], raw)
	return memberID, nil
}

func (s *PostgresStore) MapAddress(ctx context.Context, addr id.Address, memberID id.MemberID) error {
	const q = `INSERT INTO member_addresses (address, member_id) VALUES ($1, $2)
ON CONFLICT (address) DO UPDATE SET member_id = EXCLUDED.member_id`

	if _, err := s.db.ExecContext(ctx, q, addr.String(), memberID[:]); err != nil {
		return fmt.Errorf("map address: %w", err)
	}
	return nil
}

func (s *PostgresStore) DocumentHash(ctx context.Context, memberID id.MemberID) ([32]byte, error) {
	const q = `SELECT hash FROM member_documents WHERE member_id = $1`

	var hash [32]byte
	var raw []byte
	err := s.db.QueryRowContext(ctx, q, memberID[:]).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return hash, nil
	}
	if err != nil {
		return hash, fmt.Errorf("get document hash: %w", err)
	}
	copy(hash[:], raw)
	return hash, nil
}

func (s *PostgresStore) SetDocumentHash(ctx context.Context, memberID id.MemberID, hash [32]byte) error {
	const q = `INSERT INTO member_documents (member_id, hash) VALUES ($1, $2)
ON CONFLICT (member_id) DO UPDATE SET hash = EXCLUDED.hash`

	if _, err := s.db.ExecContext(ctx, q, memberID[:], hash[:]); err != nil {
		return fmt.Errorf("set document hash: %w", err)
	}
	return nil
}
