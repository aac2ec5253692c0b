package model

import (
	"time"

	"github.com/google/uuid"
)

// TastingNote is a user's personal record of trying a blend. Ratings
// other than the overall one are optional, as are the free-text and
// purchase fields.
type TastingNote struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	BlendID          uuid.UUID  `json:"blend_id" db:"blend_id"`
	OverallRating    int        `json:"overall_rating" db:"overall_rating"`
	UmamiRating      *int       `json:"umami_rating" db:"umami_rating"`
	BitternessRating *int       `json:"bitterness_rating" db:"bitterness_rating"`
	SweetnessRating  *int       `json:"sweetness_rating" db:"sweetness_rating"`
	FoamRating       *int       `json:"foam_rating" db:"foam_rating"`
	NotesKoicha      *string    `json:"notes_koicha" db:"notes_koicha"`
	NotesMilk        *string    `json:"notes_milk" db:"notes_milk"`
	PricePLN         *int       `json:"price_pln" db:"price_pln"`
	PurchaseSource   *string    `json:"purchase_source" db:"purchase_source"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// TastingNoteDetail is a note joined with its blend, brand and region
// names for list and detail responses.
type TastingNoteDetail struct {
	TastingNote
	BlendName  string    `db:"blend_name"`
	BrandID    uuid.UUID `db:"brand_id"`
	BrandName  string    `db:"brand_name"`
	RegionID   uuid.UUID `db:"region_id"`
	RegionName string    `db:"region_name"`
}

// NoteFilter is the repository-level filter for the owner-scoped list
// query. All fields except the requester id are optional.
type NoteFilter struct {
	UserID    uuid.UUID
	BrandIDs  []uuid.UUID
	RegionIDs []uuid.UUID
	MinRating *int
	SortBy    string
	Order     string
	Page      int
	Limit     int
}
