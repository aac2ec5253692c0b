package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"matcha-journal-backend/internal/domains/catalog/model"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
// The create-blend flow has no transaction around its probe-then-insert
// sequence; the constraint is what settles concurrent duplicates.
const pgUniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// =====================================================
// BRAND REPOSITORY
// =====================================================

type postgresBrandRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBrandRepository(pool *pgxpool.Pool) BrandRepository {
	return &postgresBrandRepository{pool: pool}
}

func (r *postgresBrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	query := `SELECT id, name, created_at FROM brands WHERE id = $1`

	brand := &model.Brand{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&brand.ID, &brand.Name, &brand.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return brand, nil
}

func (r *postgresBrandRepository) GetByName(ctx context.Context, name string) (*model.Brand, error) {
	query := `SELECT id, name, created_at FROM brands WHERE lower(name) = lower($1)`

	brand := &model.Brand{}
	err := r.pool.QueryRow(ctx, query, name).Scan(&brand.ID, &brand.Name, &brand.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand by name: %w", err)
	}

	return brand, nil
}

func (r *postgresBrandRepository) Create(ctx context.Context, brand *model.Brand) error {
	query := `INSERT INTO brands (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, brand.ID, brand.Name, brand.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

func (r *postgresBrandRepository) List(ctx context.Context, search *string, page, limit int) ([]*model.Brand, int, error) {
	qb := psql.Select("id", "name", "created_at").
		From("brands").
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))
	countQB := psql.Select("COUNT(*)").From("brands")

	if search != nil && *search != "" {
		cond := sq.ILike{"name": "%" + *search + "%"}
		qb = qb.Where(cond)
		countQB = countQB.Where(cond)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build brand list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []*model.Brand
	for rows.Next() {
		brand := &model.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	countQuery, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build brand count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	return brands, total, nil
}

// =====================================================
// REGION REPOSITORY
// =====================================================

type postgresRegionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRegionRepository(pool *pgxpool.Pool) RegionRepository {
	return &postgresRegionRepository{pool: pool}
}

func (r *postgresRegionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Region, error) {
	query := `SELECT id, name, created_at FROM regions WHERE id = $1`

	region := &model.Region{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&region.ID, &region.Name, &region.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRegionNotFound
		}
		return nil, fmt.Errorf("failed to get region: %w", err)
	}

	return region, nil
}

func (r *postgresRegionRepository) GetByName(ctx context.Context, name string) (*model.Region, error) {
	query := `SELECT id, name, created_at FROM regions WHERE lower(name) = lower($1)`

	region := &model.Region{}
	err := r.pool.QueryRow(ctx, query, name).Scan(&region.ID, &region.Name, &region.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRegionNotFound
		}
		return nil, fmt.Errorf("failed to get region by name: %w", err)
	}

	return region, nil
}

func (r *postgresRegionRepository) Create(ctx context.Context, region *model.Region) error {
	query := `INSERT INTO regions (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, region.ID, region.Name, region.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}

	return nil
}

func (r *postgresRegionRepository) List(ctx context.Context, search *string, page, limit int) ([]*model.Region, int, error) {
	qb := psql.Select("id", "name", "created_at").
		From("regions").
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))
	countQB := psql.Select("COUNT(*)").From("regions")

	if search != nil && *search != "" {
		cond := sq.ILike{"name": "%" + *search + "%"}
		qb = qb.Where(cond)
		countQB = countQB.Where(cond)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build region list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	var regions []*model.Region
	for rows.Next() {
		region := &model.Region{}
		if err := rows.Scan(&region.ID, &region.Name, &region.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}

	countQuery, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build region count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count regions: %w", err)
	}

	return regions, total, nil
}

// =====================================================
// BLEND REPOSITORY
// =====================================================

type postgresBlendRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBlendRepository(pool *pgxpool.Pool) BlendRepository {
	return &postgresBlendRepository{pool: pool}
}

func (r *postgresBlendRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Blend, error) {
	query := `SELECT id, name, brand_id, region_id, created_at FROM blends WHERE id = $1`

	blend := &model.Blend{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&blend.ID,
		&blend.Name,
		&blend.BrandID,
		&blend.RegionID,
		&blend.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlendNotFound
		}
		return nil, fmt.Errorf("failed to get blend: %w", err)
	}

	return blend, nil
}

func (r *postgresBlendRepository) GetByTriple(ctx context.Context, name string, brandID, regionID uuid.UUID) (*model.Blend, error) {
	query := `
		SELECT id, name, brand_id, region_id, created_at
		FROM blends
		WHERE lower(name) = lower($1) AND brand_id = $2 AND region_id = $3
	`

	blend := &model.Blend{}
	err := r.pool.QueryRow(ctx, query, name, brandID, regionID).Scan(
		&blend.ID,
		&blend.Name,
		&blend.BrandID,
		&blend.RegionID,
		&blend.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlendNotFound
		}
		return nil, fmt.Errorf("failed to get blend by triple: %w", err)
	}

	return blend, nil
}

func (r *postgresBlendRepository) Create(ctx context.Context, blend *model.Blend) error {
	query := `
		INSERT INTO blends (id, name, brand_id, region_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		blend.ID,
		blend.Name,
		blend.BrandID,
		blend.RegionID,
		blend.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.ErrDuplicateBlend
		}
		return fmt.Errorf("failed to create blend: %w", err)
	}

	return nil
}

func (r *postgresBlendRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.BlendDetail, error) {
	query := `
		SELECT bl.id, bl.name, bl.brand_id, b.name, bl.region_id, rg.name, bl.created_at
		FROM blends bl
		INNER JOIN brands b ON b.id = bl.brand_id
		INNER JOIN regions rg ON rg.id = bl.region_id
		WHERE bl.id = $1
	`

	detail := &model.BlendDetail{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.BrandID,
		&detail.BrandName,
		&detail.RegionID,
		&detail.RegionName,
		&detail.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlendNotFound
		}
		return nil, fmt.Errorf("failed to get blend detail: %w", err)
	}

	return detail, nil
}

func (r *postgresBlendRepository) List(ctx context.Context, filter model.BlendFilter) ([]*model.BlendDetail, int, error) {
	qb := psql.Select(
		"bl.id", "bl.name", "bl.brand_id", "b.name", "bl.region_id", "rg.name", "bl.created_at",
	).
		From("blends bl").
		InnerJoin("brands b ON b.id = bl.brand_id").
		InnerJoin("regions rg ON rg.id = bl.region_id")
	countQB := psql.Select("COUNT(*)").From("blends bl")

	if filter.BrandID != nil {
		qb = qb.Where(sq.Eq{"bl.brand_id": *filter.BrandID})
		countQB = countQB.Where(sq.Eq{"bl.brand_id": *filter.BrandID})
	}
	if filter.RegionID != nil {
		qb = qb.Where(sq.Eq{"bl.region_id": *filter.RegionID})
		countQB = countQB.Where(sq.Eq{"bl.region_id": *filter.RegionID})
	}
	if filter.Search != nil && *filter.Search != "" {
		cond := sq.ILike{"bl.name": "%" + *filter.Search + "%"}
		qb = qb.Where(cond)
		countQB = countQB.Where(cond)
	}

	qb = qb.OrderBy("bl.name ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build blend list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blends: %w", err)
	}
	defer rows.Close()

	var blends []*model.BlendDetail
	for rows.Next() {
		detail := &model.BlendDetail{}
		err := rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.BrandID,
			&detail.BrandName,
			&detail.RegionID,
			&detail.RegionName,
			&detail.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blend: %w", err)
		}
		blends = append(blends, detail)
	}

	countQuery, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build blend count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blends: %w", err)
	}

	return blends, total, nil
}
