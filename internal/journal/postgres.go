package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const createAssessmentsSQL = `
	CREATE TABLE IF NOT EXISTS growth_assessments (
		id TEXT PRIMARY KEY,
		child_id TEXT NOT NULL,
		measurement_type TEXT NOT NULL,
		inputs JSONB NOT NULL,
		z_score DOUBLE PRECISION NOT NULL,
		classification JSONB NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		decided_at TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_growth_assessments_child ON growth_assessments(child_id, created_at DESC);
`

// PostgresRepository is the Repository backed by PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open handle and makes sure the schema exists.
func NewPostgresRepository(ctx context.Context, db *sql.DB) (*PostgresRepository, error) {
	if _, err := db.ExecContext(ctx, createAssessmentsSQL); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDSN opens a pooled connection to dsn.
func NewPostgresRepositoryFromDSN(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	repo, err := NewPostgresRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresRepository) Save(ctx context.Context, a *Assessment) error {
	inputsJSON, err := json.Marshal(a.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	classJSON, err := json.Marshal(a.Classification)
	if err != nil {
		return fmt.Errorf("failed to marshal classification: %w", err)
	}

	query := `
		INSERT INTO growth_assessments (id, child_id, measurement_type, inputs, z_score, classification, status, notes, created_at, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET status = $7, notes = $8, decided_at = $10
	`

	_, err = r.db.ExecContext(ctx, query,
		a.ID,
		a.ChildID,
		a.Kind,
		inputsJSON,
		a.ZScore,
		classJSON,
		a.Status,
		a.Notes,
		a.CreatedAt,
		a.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

const selectAssessment = `
	SELECT id, child_id, measurement_type, inputs, z_score, classification, status, notes, created_at, decided_at
	FROM growth_assessments
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*Assessment, error) {
	var a Assessment
	var inputsJSON, classJSON []byte
	var decidedAt sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.ChildID,
		&a.Kind,
		&inputsJSON,
		&a.ZScore,
		&classJSON,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&decidedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(inputsJSON, &a.Inputs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inputs: %w", err)
	}
	if err := json.Unmarshal(classJSON, &a.Classification); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification: %w", err)
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		a.DecidedAt = &t
	}
	return &a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Assessment, error) {
	a, err := scanAssessment(r.db.QueryRowContext(ctx, selectAssessment+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrAssessmentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByChild(ctx context.Context, childID string, limit, offset int) ([]*Assessment, error) {
	query := selectAssessment + `
		WHERE child_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, childID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	out := []*Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}
	return out, nil
}
