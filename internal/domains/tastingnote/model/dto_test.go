package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateTastingNoteRequestValidate(t *testing.T) {
	valid := CreateTastingNoteRequest{
		BlendID:       uuid.New(),
		OverallRating: 4,
	}
	require.NoError(t, valid.Validate())

	t.Run("missing blend id", func(t *testing.T) {
		req := valid
		req.BlendID = uuid.Nil
		assert.Error(t, req.Validate())
	})

	t.Run("overall rating out of range", func(t *testing.T) {
		req := valid
		req.OverallRating = 6
		assert.Error(t, req.Validate())

		req.OverallRating = 0
		assert.Error(t, req.Validate())
	})

	t.Run("optional rating out of range", func(t *testing.T) {
		req := valid
		req.UmamiRating = intPtr(0)
		assert.Error(t, req.Validate())
	})

	t.Run("negative price", func(t *testing.T) {
		req := valid
		req.PricePLN = intPtr(-1)
		assert.Error(t, req.Validate())
	})

	t.Run("oversized notes", func(t *testing.T) {
		req := valid
		req.NotesKoicha = strPtr(strings.Repeat("a", 5001))
		assert.Error(t, req.Validate())
	})

	t.Run("oversized purchase source", func(t *testing.T) {
		req := valid
		req.PurchaseSource = strPtr(strings.Repeat("a", 501))
		assert.Error(t, req.Validate())
	})

	t.Run("all fields set", func(t *testing.T) {
		req := valid
		req.UmamiRating = intPtr(3)
		req.BitternessRating = intPtr(2)
		req.SweetnessRating = intPtr(4)
		req.FoamRating = intPtr(5)
		req.NotesKoicha = strPtr("thick and smooth")
		req.NotesMilk = strPtr("holds up well in a latte")
		req.PricePLN = intPtr(99)
		req.PurchaseSource = strPtr("local tea shop")
		assert.NoError(t, req.Validate())
	})
}

func TestUpdateTastingNoteRequestHasUpdates(t *testing.T) {
	assert.False(t, UpdateTastingNoteRequest{}.HasUpdates())
	assert.True(t, UpdateTastingNoteRequest{PricePLN: intPtr(99)}.HasUpdates())
	assert.True(t, UpdateTastingNoteRequest{NotesMilk: strPtr("")}.HasUpdates())
}

func TestUpdateTastingNoteRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateTastingNoteRequest{OverallRating: intPtr(5)}.Validate())
	assert.Error(t, UpdateTastingNoteRequest{OverallRating: intPtr(6)}.Validate())
	assert.Error(t, UpdateTastingNoteRequest{OverallRating: intPtr(0)}.Validate())
	assert.Error(t, UpdateTastingNoteRequest{FoamRating: intPtr(0)}.Validate())
	assert.Error(t, UpdateTastingNoteRequest{PricePLN: intPtr(-5)}.Validate())
}

func TestListTastingNotesRequestNormalization(t *testing.T) {
	req := ListTastingNotesRequest{}
	require.NoError(t, req.Validate())
	assert.Equal(t, SortByCreatedAt, req.SortBy)
	assert.Equal(t, "desc", req.Order)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = ListTastingNotesRequest{Limit: 1000}
	require.NoError(t, req.Validate())
	assert.Equal(t, 100, req.Limit)
}

func TestListTastingNotesRequestRejectsBadInput(t *testing.T) {
	assert.Error(t, (&ListTastingNotesRequest{SortBy: "price_pln"}).Validate())
	assert.Error(t, (&ListTastingNotesRequest{Order: "sideways"}).Validate())
	assert.Error(t, (&ListTastingNotesRequest{MinRating: intPtr(9)}).Validate())
	assert.Error(t, (&ListTastingNotesRequest{MinRating: intPtr(0)}).Validate())
}
