package repository

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matcha-journal-backend/internal/domains/tastingnote/model"
)

func baseBuilder() sq.SelectBuilder {
	return psql.Select("tn.id").
		From("tasting_notes tn").
		Join("blends bl ON bl.id = tn.blend_id")
}

func TestApplyNoteFilterOwnerScopeAlwaysPresent(t *testing.T) {
	userID := uuid.New()
	query, args, err := applyNoteFilter(baseBuilder(), model.NoteFilter{UserID: userID}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "tn.user_id = $1")
	// squirrel resolves driver.Valuer args, so the uuid binds as its
	// string form.
	assert.Equal(t, []interface{}{userID.String()}, args)
}

func TestApplyNoteFilterAllDimensions(t *testing.T) {
	minRating := 4
	f := model.NoteFilter{
		UserID:    uuid.New(),
		BrandIDs:  []uuid.UUID{uuid.New(), uuid.New()},
		RegionIDs: []uuid.UUID{uuid.New()},
		MinRating: &minRating,
	}

	query, args, err := applyNoteFilter(baseBuilder(), f).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "tn.user_id = $1")
	assert.Contains(t, query, "bl.brand_id IN ($2,$3)")
	assert.Contains(t, query, "bl.region_id IN ($4)")
	assert.Contains(t, query, "tn.overall_rating >= $5")
	assert.Len(t, args, 5)
}

func TestApplyNoteFilterAbsentFiltersAddNothing(t *testing.T) {
	query, _, err := applyNoteFilter(baseBuilder(), model.NoteFilter{UserID: uuid.New()}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "brand_id")
	assert.NotContains(t, query, "region_id")
	assert.NotContains(t, query, "overall_rating")
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sortBy string
		order  string
		want   string
	}{
		{model.SortByCreatedAt, "desc", "tn.created_at DESC"},
		{model.SortByUpdatedAt, "asc", "tn.updated_at ASC"},
		{model.SortByOverallRating, "desc", "tn.overall_rating DESC"},
		{"", "", "tn.created_at DESC"},
		{"unknown_column", "asc", "tn.created_at ASC"},
	}

	for _, tc := range cases {
		got := orderClause(model.NoteFilter{SortBy: tc.sortBy, Order: tc.order})
		assert.Equal(t, tc.want, got)
	}
}
