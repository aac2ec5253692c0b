package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// EntityRef points at a brand or region either by id (must exist) or by
// name (looked up case-insensitively, created when absent). Exactly one of
// the two must be set; Go has no sum types, so the exclusivity is enforced
// here at validation time.
type EntityRef struct {
	ID   *uuid.UUID `json:"id"`
	Name *string    `json:"name"`
}

func (r EntityRef) Validate() error {
	if (r.ID == nil) == (r.Name == nil) {
		return errors.New("exactly one of id or name must be provided")
	}
	if r.Name != nil {
		return validation.Validate(*r.Name,
			validation.Required.Error("name cannot be blank"),
			validation.Length(1, 255).Error("name must be 1-255 characters"),
		)
	}
	return nil
}

// ByID builds an id reference. Test and client convenience.
func ByID(id uuid.UUID) EntityRef {
	return EntityRef{ID: &id}
}

// ByName builds a name reference.
func ByName(name string) EntityRef {
	return EntityRef{Name: &name}
}

// CreateBlendRequest is the entity-resolution create payload.
type CreateBlendRequest struct {
	Name   string    `json:"name"`
	Brand  EntityRef `json:"brand"`
	Region EntityRef `json:"region"`
}

func (r CreateBlendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("blend name is required"),
			validation.Length(1, 200).Error("blend name must be 1-200 characters"),
		),
		validation.Field(&r.Brand),
		validation.Field(&r.Region),
	)
}

// ListCatalogRequest covers the brand and region listings.
type ListCatalogRequest struct {
	Search *string `form:"search"`
	Page   int     `form:"page"`
	Limit  int     `form:"limit"`
}

func (r *ListCatalogRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	if r.Search != nil {
		return validation.Validate(*r.Search,
			validation.Length(0, 255).Error("search must not exceed 255 characters"),
		)
	}
	return nil
}

// ListBlendsRequest adds brand/region filters to the blend listing.
type ListBlendsRequest struct {
	BrandID  *uuid.UUID `form:"brand_id"`
	RegionID *uuid.UUID `form:"region_id"`
	Search   *string    `form:"search"`
	Page     int        `form:"page"`
	Limit    int        `form:"limit"`
}

func (r *ListBlendsRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	if r.Search != nil {
		return validation.Validate(*r.Search,
			validation.Length(0, 255).Error("search must not exceed 255 characters"),
		)
	}
	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// BrandResponse is the external brand representation. Regions share it.
type RefEntityResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BlendResponse carries brand and region names, not just ids.
type BlendResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Brand     RefEntitySummary `json:"brand"`
	Region    RefEntitySummary `json:"region"`
	CreatedAt time.Time        `json:"created_at"`
}

type RefEntitySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PaginationMeta pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPaginationMeta derives page counts from a filtered total.
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPages := (total + limit - 1) / limit
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type ListBrandsResponse struct {
	Brands     []RefEntityResponse `json:"brands"`
	Pagination PaginationMeta      `json:"pagination"`
}

type ListRegionsResponse struct {
	Regions    []RefEntityResponse `json:"regions"`
	Pagination PaginationMeta      `json:"pagination"`
}

type ListBlendsResponse struct {
	Blends     []BlendResponse `json:"blends"`
	Pagination PaginationMeta  `json:"pagination"`
}

// BlendResponseFromDetail reshapes a joined row into the external form.
func BlendResponseFromDetail(d *BlendDetail) BlendResponse {
	return BlendResponse{
		ID:   d.ID,
		Name: d.Name,
		Brand: RefEntitySummary{
			ID:   d.BrandID,
			Name: d.BrandName,
		},
		Region: RefEntitySummary{
			ID:   d.RegionID,
			Name: d.RegionName,
		},
		CreatedAt: d.CreatedAt,
	}
}
