package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"matcha-journal-backend/internal/domains/catalog/model"
	"matcha-journal-backend/internal/domains/catalog/repository"
)

type catalogService struct {
	brandRepo  repository.BrandRepository
	regionRepo repository.RegionRepository
	blendRepo  repository.BlendRepository
}

func NewCatalogService(
	brandRepo repository.BrandRepository,
	regionRepo repository.RegionRepository,
	blendRepo repository.BlendRepository,
) ServiceInterface {
	return &catalogService{
		brandRepo:  brandRepo,
		regionRepo: regionRepo,
		blendRepo:  blendRepo,
	}
}

// =====================================================
// CREATE BLEND (ENTITY RESOLUTION)
// =====================================================

// CreateBlend resolves or creates the referenced brand and region, then
// creates the blend. The steps run sequentially with no transaction: a
// brand or region created in steps 1-2 stays valid even when the blend
// insert later fails or is rejected as a duplicate, so nothing is rolled
// back. Concurrent creates of the same triple are settled by the unique
// constraint, not by app-level coordination.
func (s *catalogService) CreateBlend(ctx context.Context, req model.CreateBlendRequest) (*model.BlendResponse, error) {
	// Step 1: Validate request (XOR refs included)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Resolve brand
	brandID, err := s.resolveBrand(ctx, req.Brand)
	if err != nil {
		return nil, err
	}

	// Step 3: Resolve region, independent of brand resolution
	regionID, err := s.resolveRegion(ctx, req.Region)
	if err != nil {
		return nil, err
	}

	// Step 4: Duplicate probe. The existing blend is never silently
	// returned; an exact triple match is a conflict.
	_, err = s.blendRepo.GetByTriple(ctx, req.Name, brandID, regionID)
	if err == nil {
		return nil, model.NewDuplicateBlendError()
	}
	if !errors.Is(err, model.ErrBlendNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate blend: %w", err)
	}

	// Step 5: Insert
	blend := &model.Blend{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		BrandID:   brandID,
		RegionID:  regionID,
		CreatedAt: time.Now(),
	}
	if err := s.blendRepo.Create(ctx, blend); err != nil {
		if errors.Is(err, model.ErrDuplicateBlend) {
			// A concurrent request won the insert race.
			return nil, model.NewDuplicateBlendError()
		}
		return nil, fmt.Errorf("failed to create blend: %w", err)
	}

	// Step 6: Re-fetch joined so the response carries names, not just ids
	detail, err := s.blendRepo.GetDetail(ctx, blend.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created blend: %w", err)
	}

	resp := model.BlendResponseFromDetail(detail)
	return &resp, nil
}

// resolveBrand turns an id-or-name ref into a brand id, creating the
// brand when a name has no case-insensitive match.
func (s *catalogService) resolveBrand(ctx context.Context, ref model.EntityRef) (uuid.UUID, error) {
	if ref.ID != nil {
		brand, err := s.brandRepo.GetByID(ctx, *ref.ID)
		if err != nil {
			if errors.Is(err, model.ErrBrandNotFound) {
				return uuid.Nil, model.NewBrandNotFoundError()
			}
			return uuid.Nil, fmt.Errorf("failed to resolve brand: %w", err)
		}
		return brand.ID, nil
	}

	name := strings.TrimSpace(*ref.Name)

	brand, err := s.brandRepo.GetByName(ctx, name)
	if err == nil {
		return brand.ID, nil
	}
	if !errors.Is(err, model.ErrBrandNotFound) {
		return uuid.Nil, fmt.Errorf("failed to look up brand by name: %w", err)
	}

	newBrand := &model.Brand{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.brandRepo.Create(ctx, newBrand); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create brand: %w", err)
	}

	return newBrand.ID, nil
}

// resolveRegion mirrors resolveBrand for regions.
func (s *catalogService) resolveRegion(ctx context.Context, ref model.EntityRef) (uuid.UUID, error) {
	if ref.ID != nil {
		region, err := s.regionRepo.GetByID(ctx, *ref.ID)
		if err != nil {
			if errors.Is(err, model.ErrRegionNotFound) {
				return uuid.Nil, model.NewRegionNotFoundError()
			}
			return uuid.Nil, fmt.Errorf("failed to resolve region: %w", err)
		}
		return region.ID, nil
	}

	name := strings.TrimSpace(*ref.Name)

	region, err := s.regionRepo.GetByName(ctx, name)
	if err == nil {
		return region.ID, nil
	}
	if !errors.Is(err, model.ErrRegionNotFound) {
		return uuid.Nil, fmt.Errorf("failed to look up region by name: %w", err)
	}

	newRegion := &model.Region{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.regionRepo.Create(ctx, newRegion); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create region: %w", err)
	}

	return newRegion.ID, nil
}

// =====================================================
// CATALOG LISTINGS
// =====================================================

func (s *catalogService) ListBrands(ctx context.Context, req model.ListCatalogRequest) (*model.ListBrandsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	brands, total, err := s.brandRepo.List(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	items := make([]model.RefEntityResponse, 0, len(brands))
	for _, b := range brands {
		items = append(items, model.RefEntityResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt})
	}

	return &model.ListBrandsResponse{
		Brands:     items,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

func (s *catalogService) ListRegions(ctx context.Context, req model.ListCatalogRequest) (*model.ListRegionsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	regions, total, err := s.regionRepo.List(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	items := make([]model.RefEntityResponse, 0, len(regions))
	for _, rg := range regions {
		items = append(items, model.RefEntityResponse{ID: rg.ID, Name: rg.Name, CreatedAt: rg.CreatedAt})
	}

	return &model.ListRegionsResponse{
		Regions:    items,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

func (s *catalogService) ListBlends(ctx context.Context, req model.ListBlendsRequest) (*model.ListBlendsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := model.BlendFilter{
		BrandID:  req.BrandID,
		RegionID: req.RegionID,
		Search:   req.Search,
		Page:     req.Page,
		Limit:    req.Limit,
	}

	details, total, err := s.blendRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list blends: %w", err)
	}

	items := make([]model.BlendResponse, 0, len(details))
	for _, d := range details {
		items = append(items, model.BlendResponseFromDetail(d))
	}

	return &model.ListBlendsResponse{
		Blends:     items,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}
