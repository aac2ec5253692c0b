package repository

import (
	"context"

	"github.com/google/uuid"

	"matcha-journal-backend/internal/domains/tastingnote/model"
)

// Repository is the owner-scoped store for tasting notes. Every read,
// update and delete takes the requester's user id; a row owned by
// someone else behaves exactly like a missing row.
type Repository interface {
	Create(ctx context.Context, note *model.TastingNote) error
	GetDetail(ctx context.Context, id, userID uuid.UUID) (*model.TastingNoteDetail, error)
	List(ctx context.Context, filter model.NoteFilter) ([]*model.TastingNoteDetail, int, error)
	GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*model.TastingNoteDetail, error)
	Update(ctx context.Context, id, userID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
