package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const assessmentColumns = `assessment_id, kind, mode, age, gender,
	raw_dose_msv, adjusted_dose_msv, tier_index, effect, asset,
	flux, flux_live, result, created_at`

func (s *PostgresStore) CreateAssessment(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO dosewatch_assessments (assessment_id, kind, mode, age, gender,
			raw_dose_msv, adjusted_dose_msv, tier_index, effect, asset,
			flux, flux_live, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`,
		a.ID, a.Kind, a.Mode, a.Age, a.Gender,
		a.RawDose, a.AdjustedDose, a.TierIndex, a.Effect, a.Asset,
		a.Flux, a.FluxLive, []byte(a.Result),
	).Scan(&a.CreatedAt)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+assessmentColumns+`
		FROM dosewatch_assessments WHERE assessment_id = $1`, id)
	a, err := scanAssessment(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]*Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM dosewatch_assessments WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Kind != "" {
		n++
		query += fmt.Sprintf(" AND kind = $%d", n)
		args = append(args, string(filter.Kind))
	}
	if filter.Mode != "" {
		n++
		query += fmt.Sprintf(" AND mode = $%d", n)
		args = append(args, filter.Mode)
	}

	query += " ORDER BY created_at DESC, seq DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*AssessmentStats, error) {
	stats := &AssessmentStats{ByEffect: make(map[string]int)}
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN kind = 'mission' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN flux_live = false THEN 1 ELSE 0 END), 0)
		FROM dosewatch_assessments`,
	).Scan(&stats.Total, &stats.Missions, &stats.FluxFallbacks)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT effect, COUNT(*) FROM dosewatch_assessments GROUP BY effect`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var effect string
		var count int
		if err := rows.Scan(&effect, &count); err != nil {
			return nil, err
		}
		stats.ByEffect[effect] = count
	}
	return stats, rows.Err()
}

func scanAssessment(row pgx.Row) (*Assessment, error) {
	a := &Assessment{}
	var result []byte
	if err := row.Scan(
		&a.ID, &a.Kind, &a.Mode, &a.Age, &a.Gender,
		&a.RawDose, &a.AdjustedDose, &a.TierIndex, &a.Effect, &a.Asset,
		&a.Flux, &a.FluxLive, &result, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if result != nil {
		a.Result = result
	}
	return a, nil
}
