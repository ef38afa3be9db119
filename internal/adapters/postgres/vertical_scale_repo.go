package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// VerticalScaleRepo implements ports.VerticalScaleRepository.
type VerticalScaleRepo struct {
	db *DB
}

func NewVerticalScaleRepo(db *DB) *VerticalScaleRepo {
	return &VerticalScaleRepo{db: db}
}

func (r *VerticalScaleRepo) Create(ctx context.Context, vs *domain.VerticalScale) error {
	spec, err := json.Marshal(vs.Spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO vertical_scales (id, name, spec, created_at)
		VALUES ($1, $2, $3, $4)
	`, vs.ID, vs.Name, spec, vs.CreatedAt)
	return err
}

func (r *VerticalScaleRepo) GetByID(ctx context.Context, id string) (*domain.VerticalScale, error) {
	var (
		vs   domain.VerticalScale
		spec []byte
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, spec, created_at FROM vertical_scales WHERE id = $1
	`, id).Scan(&vs.ID, &vs.Name, &spec, &vs.CreatedAt)
	if err != nil {
		return nil, notFound(err, "vertical scale", id)
	}
	if err := json.Unmarshal(spec, &vs.Spec); err != nil {
		return nil, fmt.Errorf("vertical scale %s spec: %w", id, err)
	}
	return &vs, nil
}

func (r *VerticalScaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vertical_scales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vertical scale %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *VerticalScaleRepo) List(ctx context.Context) ([]domain.VerticalScale, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, spec, created_at FROM vertical_scales ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.VerticalScale
	for rows.Next() {
		var (
			vs   domain.VerticalScale
			spec []byte
		)
		if err := rows.Scan(&vs.ID, &vs.Name, &spec, &vs.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(spec, &vs.Spec); err != nil {
			return nil, fmt.Errorf("vertical scale %s spec: %w", vs.ID, err)
		}
		out = append(out, vs)
	}
	return out, rows.Err()
}
