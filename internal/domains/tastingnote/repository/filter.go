package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"matcha-journal-backend/internal/domains/tastingnote/model"
)

// sortColumns whitelists the sortable columns; anything else falls back
// to creation time.
var sortColumns = map[string]string{
	model.SortByCreatedAt:     "tn.created_at",
	model.SortByUpdatedAt:     "tn.updated_at",
	model.SortByOverallRating: "tn.overall_rating",
}

// applyNoteFilter adds the owner scope and the optional filters to a
// builder over tasting_notes tn joined with blends bl.
func applyNoteFilter(b sq.SelectBuilder, f model.NoteFilter) sq.SelectBuilder {
	b = b.Where(sq.Eq{"tn.user_id": f.UserID})
	if len(f.BrandIDs) > 0 {
		b = b.Where(sq.Eq{"bl.brand_id": f.BrandIDs})
	}
	if len(f.RegionIDs) > 0 {
		b = b.Where(sq.Eq{"bl.region_id": f.RegionIDs})
	}
	if f.MinRating != nil {
		b = b.Where(sq.GtOrEq{"tn.overall_rating": *f.MinRating})
	}
	return b
}

func orderClause(f model.NoteFilter) string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "tn.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}
