package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	catalogmodel "matcha-journal-backend/internal/domains/catalog/model"
	catalogrepo "matcha-journal-backend/internal/domains/catalog/repository"
	"matcha-journal-backend/internal/domains/tastingnote/model"
	"matcha-journal-backend/internal/domains/tastingnote/repository"
)

type noteService struct {
	noteRepo  repository.Repository
	blendRepo catalogrepo.BlendRepository
}

func NewNoteService(noteRepo repository.Repository, blendRepo catalogrepo.BlendRepository) ServiceInterface {
	return &noteService{
		noteRepo:  noteRepo,
		blendRepo: blendRepo,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *noteService) CreateNote(ctx context.Context, userID uuid.UUID, req model.CreateTastingNoteRequest) (*model.TastingNoteResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: The referenced blend must already exist; note creation
	// never resolves or creates catalog rows.
	if _, err := s.blendRepo.GetByID(ctx, req.BlendID); err != nil {
		if errors.Is(err, catalogmodel.ErrBlendNotFound) {
			return nil, model.NewBlendNotFoundError()
		}
		return nil, fmt.Errorf("failed to check blend: %w", err)
	}

	// Step 3: Insert
	now := time.Now()
	note := &model.TastingNote{
		ID:               uuid.New(),
		UserID:           userID,
		BlendID:          req.BlendID,
		OverallRating:    req.OverallRating,
		UmamiRating:      req.UmamiRating,
		BitternessRating: req.BitternessRating,
		SweetnessRating:  req.SweetnessRating,
		FoamRating:       req.FoamRating,
		NotesKoicha:      req.NotesKoicha,
		NotesMilk:        req.NotesMilk,
		PricePLN:         req.PricePLN,
		PurchaseSource:   req.PurchaseSource,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create tasting note: %w", err)
	}

	// Step 4: Re-fetch joined so the response carries catalog names
	return s.fetchResponse(ctx, userID, note.ID)
}

// =====================================================
// READ
// =====================================================

func (s *noteService) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*model.TastingNoteResponse, error) {
	return s.fetchResponse(ctx, userID, noteID)
}

func (s *noteService) ListNotes(ctx context.Context, userID uuid.UUID, req model.ListTastingNotesRequest) (*model.ListTastingNotesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := model.NoteFilter{
		UserID:    userID,
		BrandIDs:  req.BrandIDs,
		RegionIDs: req.RegionIDs,
		MinRating: req.MinRating,
		SortBy:    req.SortBy,
		Order:     req.Order,
		Page:      req.Page,
		Limit:     req.Limit,
	}

	details, total, err := s.noteRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasting notes: %w", err)
	}

	notes := make([]model.TastingNoteResponse, 0, len(details))
	for _, d := range details {
		notes = append(notes, model.TastingNoteResponseFromDetail(d))
	}

	return &model.ListTastingNotesResponse{
		Notes:      notes,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// SelectNotes fetches exactly two owned notes for side-by-side
// comparison, returned in the order the ids were given.
func (s *noteService) SelectNotes(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (*model.SelectTastingNotesResponse, error) {
	if len(ids) != 2 {
		return nil, model.NewBadSelectionError("exactly two ids must be provided")
	}
	if ids[0] == ids[1] {
		return nil, model.NewBadSelectionError("the two ids must be distinct")
	}

	details, err := s.noteRepo.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasting notes: %w", err)
	}
	if len(details) != 2 {
		// At least one id is missing or owned by someone else; the two
		// cases are reported identically.
		return nil, model.NewNoteNotFoundError()
	}

	byID := make(map[uuid.UUID]*model.TastingNoteDetail, 2)
	for _, d := range details {
		byID[d.ID] = d
	}

	notes := make([]model.TastingNoteResponse, 0, 2)
	for _, id := range ids {
		d, ok := byID[id]
		if !ok {
			return nil, model.NewNoteNotFoundError()
		}
		notes = append(notes, model.TastingNoteResponseFromDetail(d))
	}

	return &model.SelectTastingNotesResponse{Notes: notes}, nil
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (s *noteService) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, req model.UpdateTastingNoteRequest) (*model.TastingNoteResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: An empty patch is rejected before touching the database
	if !req.HasUpdates() {
		return nil, model.NewEmptyUpdateError()
	}

	// Step 3: Apply only the fields present in the request
	updates := buildUpdates(req)
	if err := s.noteRepo.Update(ctx, noteID, userID, updates); err != nil {
		if errors.Is(err, model.ErrNoteNotFound) {
			return nil, model.NewNoteNotFoundError()
		}
		return nil, fmt.Errorf("failed to update tasting note: %w", err)
	}

	// Step 4: Return the updated note joined with catalog names
	return s.fetchResponse(ctx, userID, noteID)
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	if err := s.noteRepo.Delete(ctx, noteID, userID); err != nil {
		if errors.Is(err, model.ErrNoteNotFound) {
			return model.NewNoteNotFoundError()
		}
		return fmt.Errorf("failed to delete tasting note: %w", err)
	}

	return nil
}

func (s *noteService) fetchResponse(ctx context.Context, userID, noteID uuid.UUID) (*model.TastingNoteResponse, error) {
	detail, err := s.noteRepo.GetDetail(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, model.ErrNoteNotFound) {
			return nil, model.NewNoteNotFoundError()
		}
		return nil, fmt.Errorf("failed to get tasting note: %w", err)
	}

	resp := model.TastingNoteResponseFromDetail(detail)
	return &resp, nil
}

// buildUpdates maps the present patch fields to their columns. The
// blend reference is immutable, so it never appears here.
func buildUpdates(req model.UpdateTastingNoteRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.OverallRating != nil {
		updates["overall_rating"] = *req.OverallRating
	}
	if req.UmamiRating != nil {
		updates["umami_rating"] = *req.UmamiRating
	}
	if req.BitternessRating != nil {
		updates["bitterness_rating"] = *req.BitternessRating
	}
	if req.SweetnessRating != nil {
		updates["sweetness_rating"] = *req.SweetnessRating
	}
	if req.FoamRating != nil {
		updates["foam_rating"] = *req.FoamRating
	}
	if req.NotesKoicha != nil {
		updates["notes_koicha"] = *req.NotesKoicha
	}
	if req.NotesMilk != nil {
		updates["notes_milk"] = *req.NotesMilk
	}
	if req.PricePLN != nil {
		updates["price_pln"] = *req.PricePLN
	}
	if req.PurchaseSource != nil {
		updates["purchase_source"] = *req.PurchaseSource
	}
	return updates
}
