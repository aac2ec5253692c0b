package service

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodel "matcha-journal-backend/internal/domains/catalog/model"
	"matcha-journal-backend/internal/domains/tastingnote/model"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// =====================================================
// FAKE REPOSITORIES
// =====================================================

type fakeNoteRepo struct {
	notes map[uuid.UUID]*model.TastingNote
	blend *catalogmodel.BlendDetail
}

func newFakeNoteRepo(blend *catalogmodel.BlendDetail) *fakeNoteRepo {
	return &fakeNoteRepo{
		notes: make(map[uuid.UUID]*model.TastingNote),
		blend: blend,
	}
}

func (r *fakeNoteRepo) detail(n *model.TastingNote) *model.TastingNoteDetail {
	return &model.TastingNoteDetail{
		TastingNote: *n,
		BlendName:   r.blend.Name,
		BrandID:     r.blend.BrandID,
		BrandName:   r.blend.BrandName,
		RegionID:    r.blend.RegionID,
		RegionName:  r.blend.RegionName,
	}
}

func (r *fakeNoteRepo) Create(_ context.Context, note *model.TastingNote) error {
	copied := *note
	r.notes[note.ID] = &copied
	return nil
}

func (r *fakeNoteRepo) GetDetail(_ context.Context, id, userID uuid.UUID) (*model.TastingNoteDetail, error) {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, model.ErrNoteNotFound
	}
	return r.detail(n), nil
}

func (r *fakeNoteRepo) List(_ context.Context, filter model.NoteFilter) ([]*model.TastingNoteDetail, int, error) {
	var out []*model.TastingNoteDetail
	for _, n := range r.notes {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.MinRating != nil && n.OverallRating < *filter.MinRating {
			continue
		}
		out = append(out, r.detail(n))
	}
	return out, len(out), nil
}

func (r *fakeNoteRepo) GetByIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*model.TastingNoteDetail, error) {
	var out []*model.TastingNoteDetail
	for _, id := range ids {
		if n, ok := r.notes[id]; ok && n.UserID == userID {
			out = append(out, r.detail(n))
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Update(_ context.Context, id, userID uuid.UUID, updates map[string]interface{}) error {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return model.ErrNoteNotFound
	}
	for col, val := range updates {
		switch col {
		case "overall_rating":
			n.OverallRating = val.(int)
		case "umami_rating":
			n.UmamiRating = intPtr(val.(int))
		case "bitterness_rating":
			n.BitternessRating = intPtr(val.(int))
		case "sweetness_rating":
			n.SweetnessRating = intPtr(val.(int))
		case "foam_rating":
			n.FoamRating = intPtr(val.(int))
		case "notes_koicha":
			n.NotesKoicha = strPtr(val.(string))
		case "notes_milk":
			n.NotesMilk = strPtr(val.(string))
		case "price_pln":
			n.PricePLN = intPtr(val.(int))
		case "purchase_source":
			n.PurchaseSource = strPtr(val.(string))
		}
	}
	n.UpdatedAt = time.Now()
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return model.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

// fakeBlendRepo implements only the lookup the note service uses.
type fakeBlendRepo struct {
	blend *catalogmodel.Blend
}

func (r *fakeBlendRepo) GetByID(_ context.Context, id uuid.UUID) (*catalogmodel.Blend, error) {
	if r.blend != nil && r.blend.ID == id {
		return r.blend, nil
	}
	return nil, catalogmodel.ErrBlendNotFound
}

func (r *fakeBlendRepo) GetByTriple(context.Context, string, uuid.UUID, uuid.UUID) (*catalogmodel.Blend, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeBlendRepo) Create(context.Context, *catalogmodel.Blend) error {
	return errors.New("not implemented")
}

func (r *fakeBlendRepo) GetDetail(context.Context, uuid.UUID) (*catalogmodel.BlendDetail, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeBlendRepo) List(context.Context, catalogmodel.BlendFilter) ([]*catalogmodel.BlendDetail, int, error) {
	return nil, 0, errors.New("not implemented")
}

func newTestService() (ServiceInterface, *fakeNoteRepo, *catalogmodel.BlendDetail) {
	blendDetail := &catalogmodel.BlendDetail{
		ID:         uuid.New(),
		Name:       "Ummon",
		BrandID:    uuid.New(),
		BrandName:  "Ippodo",
		RegionID:   uuid.New(),
		RegionName: "Uji",
		CreatedAt:  time.Now(),
	}
	noteRepo := newFakeNoteRepo(blendDetail)
	blendRepo := &fakeBlendRepo{blend: &catalogmodel.Blend{
		ID:       blendDetail.ID,
		Name:     blendDetail.Name,
		BrandID:  blendDetail.BrandID,
		RegionID: blendDetail.RegionID,
	}}
	return NewNoteService(noteRepo, blendRepo), noteRepo, blendDetail
}

func requireNoteErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var noteErr *model.NoteError
	require.ErrorAs(t, err, &noteErr)
	assert.Equal(t, code, noteErr.Code)
}

// =====================================================
// CREATE / GET
// =====================================================

func TestCreateNoteMirrorsInput(t *testing.T) {
	svc, _, blend := newTestService()
	userID := uuid.New()

	req := model.CreateTastingNoteRequest{
		BlendID:        blend.ID,
		OverallRating:  4,
		UmamiRating:    intPtr(5),
		NotesKoicha:    strPtr("thick, sweet finish"),
		PricePLN:       intPtr(120),
		PurchaseSource: strPtr("local tea shop"),
	}

	resp, err := svc.CreateNote(context.Background(), userID, req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, blend.ID, resp.Blend.ID)
	assert.Equal(t, "Ummon", resp.Blend.Name)
	assert.Equal(t, "Ippodo", resp.Blend.Brand.Name)
	assert.Equal(t, "Uji", resp.Blend.Region.Name)
	assert.Equal(t, 4, resp.OverallRating)
	assert.Equal(t, 5, *resp.UmamiRating)
	assert.Nil(t, resp.BitternessRating)
	assert.Equal(t, "thick, sweet finish", *resp.NotesKoicha)
	assert.Equal(t, 120, *resp.PricePLN)
	assert.False(t, resp.CreatedAt.IsZero())
	assert.Equal(t, resp.CreatedAt, resp.UpdatedAt)
}

func TestCreateNoteUnknownBlend(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateNote(context.Background(), uuid.New(), model.CreateTastingNoteRequest{
		BlendID:       uuid.New(),
		OverallRating: 3,
	})
	requireNoteErrorCode(t, err, model.ErrCodeBlendNotFound)
}

func TestCreateNoteMissingBlendIDFailsValidation(t *testing.T) {
	svc, _, _ := newTestService()

	// A zero blend id must be caught by validation, not fall through
	// to the blend lookup and report not-found.
	_, err := svc.CreateNote(context.Background(), uuid.New(), model.CreateTastingNoteRequest{
		OverallRating: 4,
	})
	require.Error(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "blend_id")
}

func TestGetNoteRoundTrip(t *testing.T) {
	svc, _, blend := newTestService()
	userID := uuid.New()

	created, err := svc.CreateNote(context.Background(), userID, model.CreateTastingNoteRequest{
		BlendID:       blend.ID,
		OverallRating: 5,
		NotesMilk:     strPtr("survives oat milk"),
	})
	require.NoError(t, err)

	fetched, err := svc.GetNote(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestGetNoteOwnershipIndistinguishableFromAbsence(t *testing.T) {
	svc, _, blend := newTestService()
	owner := uuid.New()
	intruder := uuid.New()

	created, err := svc.CreateNote(context.Background(), owner, model.CreateTastingNoteRequest{
		BlendID:       blend.ID,
		OverallRating: 3,
	})
	require.NoError(t, err)

	_, errOther := svc.GetNote(context.Background(), intruder, created.ID)
	_, errMissing := svc.GetNote(context.Background(), owner, uuid.New())

	requireNoteErrorCode(t, errOther, model.ErrCodeNoteNotFound)
	requireNoteErrorCode(t, errMissing, model.ErrCodeNoteNotFound)
	assert.Equal(t, errOther.Error(), errMissing.Error())
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func TestUpdateNotePartialPatch(t *testing.T) {
	svc, _, blend := newTestService()
	userID := uuid.New()

	created, err := svc.CreateNote(context.Background(), userID, model.CreateTastingNoteRequest{
		BlendID:       blend.ID,
		OverallRating: 4,
		UmamiRating:   intPtr(3),
		NotesKoicha:   strPtr("grassy"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateNote(context.Background(), userID, created.ID, model.UpdateTastingNoteRequest{
		PricePLN: intPtr(99),
	})
	require.NoError(t, err)

	assert.Equal(t, 99, *updated.PricePLN)
	assert.Equal(t, 4, updated.OverallRating, "untouched fields keep their values")
	assert.Equal(t, 3, *updated.UmamiRating)
	assert.Equal(t, "grassy", *updated.NotesKoicha)
	assert.Equal(t, blend.ID, updated.Blend.ID)
}

func TestUpdateNoteEmptyPatchRejected(t *testing.T) {
	svc, _, blend := newTestService()
	userID := uuid.New()

	created, err := svc.CreateNote(context.Background(), userID, model.CreateTastingNoteRequest{
		BlendID:       blend.ID,
		OverallRating: 4,
	})
	require.NoError(t, err)

	_, err = svc.UpdateNote(context.Background(), userID, created.ID, model.UpdateTastingNoteRequest{})
	requireNoteErrorCode(t, err, model.ErrCodeEmptyUpdate)
}

func TestUpdateNoteOtherUsersNote(t *testing.T) {
	svc, _, blend := newTestService()
	owner := uuid.New()

	created, err := svc.CreateNote(context.Background(), owner, model.CreateTastingNoteRequest{
		BlendID:       blend.ID,
		OverallRating: 4,
	})
	require.NoError(t, err)

	_, err = svc.UpdateNote(context.Background(), uuid.New(), created.ID, model.UpdateTastingNoteRequest{
		OverallRating: intPtr(1),
	})
	requireNoteErrorCode(t, err, model.ErrCodeNoteNotFound)

	unchanged, err := svc.GetNote(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, unchanged.OverallRating)
}

func TestDeleteNote(t *testing.T) {
	svc, repo, blend := newTestService()
	userID := uuid.New()

	created, err := svc.CreateNote(context.Background(), userID, model.CreateTastingNoteRequest{
		BlendID:       blend.ID,
		OverallRating: 4,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNote(context.Background(), userID, created.ID))
	assert.Empty(t, repo.notes)

	err = svc.DeleteNote(context.Background(), userID, created.ID)
	requireNoteErrorCode(t, err, model.ErrCodeNoteNotFound)
}

func TestDeleteNoteOtherUsersNote(t *testing.T) {
	svc, repo, blend := newTestService()
	owner := uuid.New()

	created, err := svc.CreateNote(context.Background(), owner, model.CreateTastingNoteRequest{
		BlendID:       blend.ID,
		OverallRating: 4,
	})
	require.NoError(t, err)

	err = svc.DeleteNote(context.Background(), uuid.New(), created.ID)
	requireNoteErrorCode(t, err, model.ErrCodeNoteNotFound)
	assert.Len(t, repo.notes, 1, "the note must survive a non-owner delete")
}

// =====================================================
// LIST / SELECT
// =====================================================

func TestListNotesMinRatingFilter(t *testing.T) {
	svc, _, blend := newTestService()
	userID := uuid.New()

	for _, rating := range []int{1, 3, 5} {
		_, err := svc.CreateNote(context.Background(), userID, model.CreateTastingNoteRequest{
			BlendID:       blend.ID,
			OverallRating: rating,
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListNotes(context.Background(), userID, model.ListTastingNotesRequest{
		MinRating: intPtr(3),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Notes, 2)
	assert.Equal(t, 2, resp.Pagination.Total, "total reflects the filtered set")
	for _, n := range resp.Notes {
		assert.GreaterOrEqual(t, n.OverallRating, 3)
	}
}

func TestListNotesEmptyPageIsNotAnError(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.ListNotes(context.Background(), uuid.New(), model.ListTastingNotesRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Notes)
	assert.Equal(t, 0, resp.Pagination.Total)
}

func TestSelectNotesPair(t *testing.T) {
	svc, _, blend := newTestService()
	userID := uuid.New()

	first, err := svc.CreateNote(context.Background(), userID, model.CreateTastingNoteRequest{
		BlendID: blend.ID, OverallRating: 2,
	})
	require.NoError(t, err)
	second, err := svc.CreateNote(context.Background(), userID, model.CreateTastingNoteRequest{
		BlendID: blend.ID, OverallRating: 5,
	})
	require.NoError(t, err)

	resp, err := svc.SelectNotes(context.Background(), userID, []uuid.UUID{second.ID, first.ID})
	require.NoError(t, err)

	require.Len(t, resp.Notes, 2)
	assert.Equal(t, second.ID, resp.Notes[0].ID, "notes come back in request order")
	assert.Equal(t, first.ID, resp.Notes[1].ID)
}

func TestSelectNotesWrongCount(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()

	_, err := svc.SelectNotes(context.Background(), userID, []uuid.UUID{uuid.New()})
	requireNoteErrorCode(t, err, model.ErrCodeBadSelection)

	_, err = svc.SelectNotes(context.Background(), userID, []uuid.UUID{uuid.New(), uuid.New(), uuid.New()})
	requireNoteErrorCode(t, err, model.ErrCodeBadSelection)

	duplicate := uuid.New()
	_, err = svc.SelectNotes(context.Background(), userID, []uuid.UUID{duplicate, duplicate})
	requireNoteErrorCode(t, err, model.ErrCodeBadSelection)
}

func TestSelectNotesForeignNoteReportedAsMissing(t *testing.T) {
	svc, _, blend := newTestService()
	owner := uuid.New()
	intruder := uuid.New()

	mine, err := svc.CreateNote(context.Background(), intruder, model.CreateTastingNoteRequest{
		BlendID: blend.ID, OverallRating: 3,
	})
	require.NoError(t, err)
	theirs, err := svc.CreateNote(context.Background(), owner, model.CreateTastingNoteRequest{
		BlendID: blend.ID, OverallRating: 4,
	})
	require.NoError(t, err)

	_, err = svc.SelectNotes(context.Background(), intruder, []uuid.UUID{mine.ID, theirs.ID})
	requireNoteErrorCode(t, err, model.ErrCodeNoteNotFound)
}
