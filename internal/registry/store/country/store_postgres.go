package country

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"custos/internal/registry/models"
	id "custos/pkg/domain"
)

// PostgresStore persists country records and the global limit table in
// PostgreSQL. Counts and limits ride as bigint arrays to keep the fixed
// 8-bucket shape intact.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed country store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the country tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS countries (
	code       TEXT PRIMARY KEY,
	permitted  BOOLEAN NOT NULL,
	min_rating SMALLINT NOT NULL,
	counts     BIGINT[] NOT NULL,
	limits     BIGINT[] NOT NULL
);
CREATE TABLE IF NOT EXISTS global_limits (
	singleton BOOLEAN PRIMARY KEY DEFAULT TRUE,
	counts    BIGINT[] NOT NULL,
	limits    BIGINT[] NOT NULL,
	CONSTRAINT global_limits_singleton CHECK (singleton)
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure country schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, code id.CountryCode) (*models.CountryRecord, error) {
	const q = `SELECT permitted, min_rating, counts, limits FROM countries WHERE code = $1`

	var (
		permitted bool
		minRating int16
		counts    []int64
		limits    []int64
	)
	err := s.db.QueryRowContext(ctx, q, code.String()).
		Scan(&permitted, &minRating, pq.Array(&counts), pq.Array(&limits))
	if errors.Is(err, sql.ErrNoRows) {
		return &models.CountryRecord{Code: code}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get country: %w", err)
	}
	record := &models.CountryRecord{
		Code:      code,
		Permitted: permitted,
		MinRating: id.Rating(minRating),
	}
	fromArray(&record.Table.Counts, counts)
	fromArray(&record.Table.Limits, limits)
	return record, nil
}

func (s *PostgresStore) Put(ctx context.Context, record *models.CountryRecord) error {
	const q = `INSERT INTO countries (code, permitted, min_rating, counts, limits)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (code) DO UPDATE SET
	permitted = EXCLUDED.permitted,
	min_rating = EXCLUDED.min_rating,
	counts = EXCLUDED.counts,
	limits = EXCLUDED.limits`

	_, err := s.db.ExecContext(ctx, q,
		record.Code.String(),
		record.Permitted,
		int16(record.MinRating),
		pq.Array(toArray(record.Table.Counts)),
		pq.Array(toArray(record.Table.Limits)),
	)
	if err != nil {
		return fmt.Errorf("put country: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.CountryRecord, error) {
	const q = `SELECT code, permitted, min_rating, counts, limits FROM countries`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var records []*models.CountryRecord
	for rows.Next() {
		var (
			code      string
			permitted bool
			minRating int16
			counts    []int64
			limits    []int64
		)
		if err := rows.Scan(&code, &permitted, &minRating, pq.Array(&counts), pq.Array(&limits)); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		record := &models.CountryRecord{
			Code:      id.CountryCode(code),
			Permitted: permitted,
			MinRating: id.Rating(minRating),
		}
		fromArray(&record.Table.Counts, counts)
		fromArray(&record.Table.Limits, limits)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Global(ctx context.Context) (*models.LimitTable, error) {
	const q = `SELECT counts, limits FROM global_limits WHERE singleton`

	var counts, limits []int64
	err := s.db.QueryRowContext(ctx, q).Scan(pq.Array(&counts), pq.Array(&limits))
	if errors.Is(err, sql.ErrNoRows) {
		return &models.LimitTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get global limits: %w", err)
	}
	table := &models.LimitTable{}
	fromArray(&table.Counts, counts)
	fromArray(&table.Limits, limits)
	return table, nil
}

func (s *PostgresStore) PutGlobal(ctx context.Context, table *models.LimitTable) error {
	const q = `INSERT INTO global_limits (singleton, counts, limits) VALUES (TRUE, $1, $2)
ON CONFLICT (singleton) DO UPDATE SET counts = EXCLUDED.counts, limits = EXCLUDED.limits`

	_, err := s.db.ExecContext(ctx, q,
		pq.Array(toArray(table.Counts)),
		pq.Array(toArray(table.Limits)),
	)
	if err != nil {
		return fmt.Errorf("put global limits: %w", err)
	}
	return nil
}

func toArray(buckets [id.RatingBuckets]uint64) []int64 {
	out := make([]int64, id.RatingBuckets)
	for i, v := range buckets {
		out[i] = int64(v)
	}
	return out
}

func fromArray(buckets *[id.RatingBuckets]uint64, values []int64) {
	for i := 0; i < len(values) && i < id.RatingBuckets; i++ {
		buckets[i] = uint64(values[i])
	}
}
