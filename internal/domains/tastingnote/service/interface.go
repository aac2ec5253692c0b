package service

import (
	"context"

	"github.com/google/uuid"

	"matcha-journal-backend/internal/domains/tastingnote/model"
)

// ServiceInterface is the tasting-note business logic. The userID on
// every method is the authenticated requester; notes belonging to other
// users are invisible through this interface.
type ServiceInterface interface {
	CreateNote(ctx context.Context, userID uuid.UUID, req model.CreateTastingNoteRequest) (*model.TastingNoteResponse, error)
	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*model.TastingNoteResponse, error)
	ListNotes(ctx context.Context, userID uuid.UUID, req model.ListTastingNotesRequest) (*model.ListTastingNotesResponse, error)
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, req model.UpdateTastingNoteRequest) (*model.TastingNoteResponse, error)
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
	SelectNotes(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (*model.SelectTastingNotesResponse, error)
}
