package service

import (
	"context"

	"matcha-journal-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	// CreateBlend runs the look-up-or-create resolution flow: resolve the
	// brand ref, resolve the region ref, reject duplicates, insert, and
	// return the blend joined with its brand and region names.
	CreateBlend(ctx context.Context, req model.CreateBlendRequest) (*model.BlendResponse, error)

	ListBrands(ctx context.Context, req model.ListCatalogRequest) (*model.ListBrandsResponse, error)
	ListRegions(ctx context.Context, req model.ListCatalogRequest) (*model.ListRegionsResponse, error)
	ListBlends(ctx context.Context, req model.ListBlendsRequest) (*model.ListBlendsResponse, error)
}
