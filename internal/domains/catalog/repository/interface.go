package repository

import (
	"context"

	"github.com/google/uuid"

	"matcha-journal-backend/internal/domains/catalog/model"
)

// BrandRepository is the brand data access contract. GetByName compares
// case-insensitively; both lookups return model.ErrBrandNotFound on a miss.
type BrandRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	GetByName(ctx context.Context, name string) (*model.Brand, error)
	Create(ctx context.Context, brand *model.Brand) error
	List(ctx context.Context, search *string, page, limit int) ([]*model.Brand, int, error)
}

// RegionRepository mirrors BrandRepository for regions.
type RegionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Region, error)
	GetByName(ctx context.Context, name string) (*model.Region, error)
	Create(ctx context.Context, region *model.Region) error
	List(ctx context.Context, search *string, page, limit int) ([]*model.Region, int, error)
}

// BlendRepository is the blend data access contract.
type BlendRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blend, error)

	// GetByTriple finds a blend by case-insensitive name under the given
	// brand and region, the duplicate probe of the create flow.
	GetByTriple(ctx context.Context, name string, brandID, regionID uuid.UUID) (*model.Blend, error)

	// Create returns model.ErrDuplicateBlend when the unique constraint on
	// (lower(name), brand_id, region_id) rejects a concurrent duplicate.
	Create(ctx context.Context, blend *model.Blend) error

	// GetDetail fetches a blend joined with brand and region names.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.BlendDetail, error)

	List(ctx context.Context, filter model.BlendFilter) ([]*model.BlendDetail, int, error)
}
