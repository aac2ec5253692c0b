package model

import (
	"time"

	"github.com/google/uuid"
)

// Brand is shared reference data naming who produces a blend.
// Created implicitly the first time a blend references an unknown brand
// name; never updated or deleted by this service.
type Brand struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Region is shared reference data naming where a blend originates.
// Same lifecycle as Brand, independent of it.
type Region struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Blend ties one brand to one region under a product name.
// The (name, brand_id, region_id) triple is unique, name compared
// case-insensitively. Immutable after creation.
type Blend struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BrandID   uuid.UUID `json:"brand_id"`
	RegionID  uuid.UUID `json:"region_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BlendDetail is a blend joined with its brand and region names,
// the shape every external response carries.
type BlendDetail struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	BrandID    uuid.UUID `json:"brand_id"`
	BrandName  string    `json:"brand_name"`
	RegionID   uuid.UUID `json:"region_id"`
	RegionName string    `json:"region_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// BlendFilter narrows the public blend listing.
type BlendFilter struct {
	BrandID  *uuid.UUID
	RegionID *uuid.UUID
	Search   *string
	Page     int
	Limit    int
}
