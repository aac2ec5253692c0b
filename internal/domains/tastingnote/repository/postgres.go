package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"matcha-journal-backend/internal/domains/tastingnote/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// detailColumns is the select list shared by every joined read. The
// aliases are tasting_notes tn, blends bl, brands b, regions rg.
var detailColumns = []string{
	"tn.id", "tn.user_id", "tn.blend_id",
	"tn.overall_rating", "tn.umami_rating", "tn.bitterness_rating", "tn.sweetness_rating", "tn.foam_rating",
	"tn.notes_koicha", "tn.notes_milk", "tn.price_pln", "tn.purchase_source",
	"tn.created_at", "tn.updated_at",
	"bl.name AS blend_name",
	"bl.brand_id", "b.name AS brand_name",
	"bl.region_id", "rg.name AS region_name",
}

type postgresNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresNoteRepository(pool *pgxpool.Pool) Repository {
	return &postgresNoteRepository{pool: pool}
}

func (r *postgresNoteRepository) detailQuery() sq.SelectBuilder {
	return psql.Select(detailColumns...).
		From("tasting_notes tn").
		Join("blends bl ON bl.id = tn.blend_id").
		Join("brands b ON b.id = bl.brand_id").
		Join("regions rg ON rg.id = bl.region_id")
}

func scanDetail(row pgx.Row) (*model.TastingNoteDetail, error) {
	d := &model.TastingNoteDetail{}
	err := row.Scan(
		&d.ID, &d.UserID, &d.BlendID,
		&d.OverallRating, &d.UmamiRating, &d.BitternessRating, &d.SweetnessRating, &d.FoamRating,
		&d.NotesKoicha, &d.NotesMilk, &d.PricePLN, &d.PurchaseSource,
		&d.CreatedAt, &d.UpdatedAt,
		&d.BlendName,
		&d.BrandID, &d.BrandName,
		&d.RegionID, &d.RegionName,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postgresNoteRepository) Create(ctx context.Context, note *model.TastingNote) error {
	query := `
		INSERT INTO tasting_notes (
			id, user_id, blend_id,
			overall_rating, umami_rating, bitterness_rating, sweetness_rating, foam_rating,
			notes_koicha, notes_milk, price_pln, purchase_source,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		note.ID, note.UserID, note.BlendID,
		note.OverallRating, note.UmamiRating, note.BitternessRating, note.SweetnessRating, note.FoamRating,
		note.NotesKoicha, note.NotesMilk, note.PricePLN, note.PurchaseSource,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tasting note: %w", err)
	}

	return nil
}

func (r *postgresNoteRepository) GetDetail(ctx context.Context, id, userID uuid.UUID) (*model.TastingNoteDetail, error) {
	query, args, err := r.detailQuery().
		Where(sq.Eq{"tn.id": id, "tn.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build tasting note query: %w", err)
	}

	detail, err := scanDetail(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get tasting note: %w", err)
	}

	return detail, nil
}

func (r *postgresNoteRepository) List(ctx context.Context, filter model.NoteFilter) ([]*model.TastingNoteDetail, int, error) {
	qb := applyNoteFilter(r.detailQuery(), filter).
		OrderBy(orderClause(filter)).
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build tasting note list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasting notes: %w", err)
	}
	defer rows.Close()

	var notes []*model.TastingNoteDetail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tasting note: %w", err)
		}
		notes = append(notes, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tasting notes: %w", err)
	}

	countQB := applyNoteFilter(
		psql.Select("COUNT(*)").
			From("tasting_notes tn").
			Join("blends bl ON bl.id = tn.blend_id"),
		filter,
	)
	countQuery, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build tasting note count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasting notes: %w", err)
	}

	return notes, total, nil
}

func (r *postgresNoteRepository) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*model.TastingNoteDetail, error) {
	query, args, err := r.detailQuery().
		Where(sq.Eq{"tn.user_id": userID, "tn.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build tasting note selection query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasting notes: %w", err)
	}
	defer rows.Close()

	var notes []*model.TastingNoteDetail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tasting note: %w", err)
		}
		notes = append(notes, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasting notes: %w", err)
	}

	return notes, nil
}

func (r *postgresNoteRepository) Update(ctx context.Context, id, userID uuid.UUID, updates map[string]interface{}) error {
	qb := psql.Update("tasting_notes").
		SetMap(updates).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "user_id": userID})

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build tasting note update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tasting note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoteNotFound
	}

	return nil
}

func (r *postgresNoteRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM tasting_notes WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tasting note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoteNotFound
	}

	return nil
}
