package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// ProfileRepo implements ports.ProfileRepository. Configuration and style are
// stored as JSONB in their canonical form.
type ProfileRepo struct {
	db *DB
}

func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const insertProfile = `
	INSERT INTO profiles (id, name, runway_direction, point_count, config, style, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func profileArgs(p *domain.Profile) ([]any, error) {
	cfg, err := json.Marshal(p.Config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	style, err := json.Marshal(p.Style)
	if err != nil {
		return nil, fmt.Errorf("marshal style: %w", err)
	}
	return []any{p.ID, p.Name, p.Config.Runway.Direction, len(p.Config.Points), cfg, style, p.CreatedAt, p.UpdatedAt}, nil
}

func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	args, err := profileArgs(p)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx, insertProfile, args...)
	return err
}

// CreateBatch inserts many profiles in one transaction using pgx.Batch.
func (r *ProfileRepo) CreateBatch(ctx context.Context, ps []domain.Profile) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for i := range ps {
		args, err := profileArgs(&ps[i])
		if err != nil {
			return err
		}
		batch.Queue(insertProfile, args...)
	}
	br := tx.SendBatch(ctx, batch)
	for range ps {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("batch close: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var (
		p          domain.Profile
		cfg, style []byte
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, config, style, created_at, updated_at
		FROM profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &cfg, &style, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "profile", id)
	}
	if err := json.Unmarshal(cfg, &p.Config); err != nil {
		return nil, fmt.Errorf("profile %s config: %w", id, err)
	}
	if err := json.Unmarshal(style, &p.Style); err != nil {
		return nil, fmt.Errorf("profile %s style: %w", id, err)
	}
	return &p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	args, err := profileArgs(p)
	if err != nil {
		return err
	}
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE profiles
		SET name = $2, runway_direction = $3, point_count = $4, config = $5, style = $6, updated_at = $7
		WHERE id = $1
	`, args[0], args[1], args[2], args[3], args[4], args[5], p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns summaries newest first.
func (r *ProfileRepo) List(ctx context.Context, limit, offset int) ([]domain.ProfileSummary, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, runway_direction, point_count, created_at
		FROM profiles
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProfileSummary
	for rows.Next() {
		var s domain.ProfileSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.RunwayDirection, &s.PointCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM profiles`).Scan(&n)
	return n, err
}
