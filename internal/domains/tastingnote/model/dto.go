package model

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// requiredUUID rejects the zero uuid. validation.Required cannot: the
// zero uuid stringifies through driver.Valuer to a non-empty value, so
// Required considers it present.
func requiredUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("is required")
	}
	return nil
}

// intBetween range-checks an int or *int. Threshold rules (Min/Max)
// skip zero values entirely, which would let a rating of 0 through to
// the database, so the bounds are checked by hand.
func intBetween(min, max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}
		n, ok := v.(int)
		if !ok {
			return errors.New("must be an integer")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	})
}

// CreateTastingNoteRequest records a note against an existing blend.
// The blend must already be on file; note creation never resolves or
// creates catalog entities.
type CreateTastingNoteRequest struct {
	BlendID          uuid.UUID `json:"blend_id"`
	OverallRating    int       `json:"overall_rating"`
	UmamiRating      *int      `json:"umami_rating"`
	BitternessRating *int      `json:"bitterness_rating"`
	SweetnessRating  *int      `json:"sweetness_rating"`
	FoamRating       *int      `json:"foam_rating"`
	NotesKoicha      *string   `json:"notes_koicha"`
	NotesMilk        *string   `json:"notes_milk"`
	PricePLN         *int      `json:"price_pln"`
	PurchaseSource   *string   `json:"purchase_source"`
}

func (r CreateTastingNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BlendID, validation.By(requiredUUID)),
		validation.Field(&r.OverallRating,
			validation.Required.Error("overall_rating is required"),
			intBetween(1, 5)),
		validation.Field(&r.UmamiRating, intBetween(1, 5)),
		validation.Field(&r.BitternessRating, intBetween(1, 5)),
		validation.Field(&r.SweetnessRating, intBetween(1, 5)),
		validation.Field(&r.FoamRating, intBetween(1, 5)),
		validation.Field(&r.NotesKoicha, validation.RuneLength(0, 5000)),
		validation.Field(&r.NotesMilk, validation.RuneLength(0, 5000)),
		validation.Field(&r.PricePLN, validation.Min(0)),
		validation.Field(&r.PurchaseSource, validation.RuneLength(0, 500)),
	)
}

// UpdateTastingNoteRequest is a partial patch. Every field is optional;
// omitted fields keep their stored value. The blend reference is not
// updatable, so it has no field here.
type UpdateTastingNoteRequest struct {
	OverallRating    *int    `json:"overall_rating"`
	UmamiRating      *int    `json:"umami_rating"`
	BitternessRating *int    `json:"bitterness_rating"`
	SweetnessRating  *int    `json:"sweetness_rating"`
	FoamRating       *int    `json:"foam_rating"`
	NotesKoicha      *string `json:"notes_koicha"`
	NotesMilk        *string `json:"notes_milk"`
	PricePLN         *int    `json:"price_pln"`
	PurchaseSource   *string `json:"purchase_source"`
}

func (r UpdateTastingNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OverallRating, intBetween(1, 5)),
		validation.Field(&r.UmamiRating, intBetween(1, 5)),
		validation.Field(&r.BitternessRating, intBetween(1, 5)),
		validation.Field(&r.SweetnessRating, intBetween(1, 5)),
		validation.Field(&r.FoamRating, intBetween(1, 5)),
		validation.Field(&r.NotesKoicha, validation.RuneLength(0, 5000)),
		validation.Field(&r.NotesMilk, validation.RuneLength(0, 5000)),
		validation.Field(&r.PricePLN, validation.Min(0)),
		validation.Field(&r.PurchaseSource, validation.RuneLength(0, 500)),
	)
}

// HasUpdates reports whether at least one field is present.
func (r UpdateTastingNoteRequest) HasUpdates() bool {
	return r.OverallRating != nil ||
		r.UmamiRating != nil ||
		r.BitternessRating != nil ||
		r.SweetnessRating != nil ||
		r.FoamRating != nil ||
		r.NotesKoicha != nil ||
		r.NotesMilk != nil ||
		r.PricePLN != nil ||
		r.PurchaseSource != nil
}

// Sort keys accepted by the list endpoint.
const (
	SortByCreatedAt     = "created_at"
	SortByUpdatedAt     = "updated_at"
	SortByOverallRating = "overall_rating"
)

// ListTastingNotesRequest carries list filters. The brand and region id
// lists are OR within each list and AND across the two.
type ListTastingNotesRequest struct {
	BrandIDs  []uuid.UUID
	RegionIDs []uuid.UUID
	MinRating *int
	SortBy    string
	Order     string
	Page      int
	Limit     int
}

func (r *ListTastingNotesRequest) Validate() error {
	if r.SortBy == "" {
		r.SortBy = SortByCreatedAt
	}
	if r.Order == "" {
		r.Order = "desc"
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.MinRating, intBetween(1, 5)),
		validation.Field(&r.SortBy, validation.In(SortByCreatedAt, SortByUpdatedAt, SortByOverallRating).
			Error("sort must be one of created_at, updated_at, overall_rating")),
		validation.Field(&r.Order, validation.In("asc", "desc").Error("order must be asc or desc")),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type RefSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BlendSummary struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Brand  RefSummary `json:"brand"`
	Region RefSummary `json:"region"`
}

type TastingNoteResponse struct {
	ID               uuid.UUID    `json:"id"`
	Blend            BlendSummary `json:"blend"`
	OverallRating    int          `json:"overall_rating"`
	UmamiRating      *int         `json:"umami_rating"`
	BitternessRating *int         `json:"bitterness_rating"`
	SweetnessRating  *int         `json:"sweetness_rating"`
	FoamRating       *int         `json:"foam_rating"`
	NotesKoicha      *string      `json:"notes_koicha"`
	NotesMilk        *string      `json:"notes_milk"`
	PricePLN         *int         `json:"price_pln"`
	PurchaseSource   *string      `json:"purchase_source"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
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

type ListTastingNotesResponse struct {
	Notes      []TastingNoteResponse `json:"notes"`
	Pagination PaginationMeta        `json:"pagination"`
}

// SelectTastingNotesResponse always holds exactly two notes, in the
// order the ids were requested.
type SelectTastingNotesResponse struct {
	Notes []TastingNoteResponse `json:"notes"`
}

func TastingNoteResponseFromDetail(d *TastingNoteDetail) TastingNoteResponse {
	return TastingNoteResponse{
		ID: d.ID,
		Blend: BlendSummary{
			ID:     d.BlendID,
			Name:   d.BlendName,
			Brand:  RefSummary{ID: d.BrandID, Name: d.BrandName},
			Region: RefSummary{ID: d.RegionID, Name: d.RegionName},
		},
		OverallRating:    d.OverallRating,
		UmamiRating:      d.UmamiRating,
		BitternessRating: d.BitternessRating,
		SweetnessRating:  d.SweetnessRating,
		FoamRating:       d.FoamRating,
		NotesKoicha:      d.NotesKoicha,
		NotesMilk:        d.NotesMilk,
		PricePLN:         d.PricePLN,
		PurchaseSource:   d.PurchaseSource,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
