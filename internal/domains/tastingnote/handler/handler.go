package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"matcha-journal-backend/internal/domains/tastingnote/model"
	"matcha-journal-backend/internal/domains/tastingnote/service"
	"matcha-journal-backend/internal/shared/response"
	"matcha-journal-backend/pkg/logger"
)

type NoteHandler struct {
	noteService service.ServiceInterface
}

func NewNoteHandler(noteService service.ServiceInterface) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNote records a tasting note for the authenticated user
// POST /api/v1/tasting-notes
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateTastingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.noteService.CreateNote(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListNotes lists the authenticated user's notes with filters
// GET /api/v1/tasting-notes
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.ListTastingNotesRequest

	brandIDs, err := parseIDList(c.Query("brand_ids"))
	if err != nil {
		response.BadRequest(c, "invalid brand_ids")
		return
	}
	req.BrandIDs = brandIDs

	regionIDs, err := parseIDList(c.Query("region_ids"))
	if err != nil {
		response.BadRequest(c, "invalid region_ids")
		return
	}
	req.RegionIDs = regionIDs

	if v := c.Query("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "invalid min_rating")
			return
		}
		req.MinRating = &n
	}

	req.SortBy = c.Query("sort")
	req.Order = c.Query("order")
	req.Page = queryInt(c, "page", 1)
	req.Limit = queryInt(c, "limit", 20)

	resp, err := h.noteService.ListNotes(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// SelectNotes fetches exactly two notes for comparison
// GET /api/v1/tasting-notes/select?ids=a,b
func (h *NoteHandler) SelectNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		response.BadRequest(c, "ids must be a comma-separated list of valid uuids")
		return
	}

	resp, err := h.noteService.SelectNotes(c.Request.Context(), userID, ids)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetNote fetches one owned note
// GET /api/v1/tasting-notes/:id
func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tasting note id")
		return
	}

	resp, err := h.noteService.GetNote(c.Request.Context(), userID, noteID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateNote partially updates one owned note
// PATCH /api/v1/tasting-notes/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tasting note id")
		return
	}

	var req model.UpdateTastingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.noteService.UpdateNote(c.Request.Context(), userID, noteID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteNote deletes one owned note
// DELETE /api/v1/tasting-notes/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tasting note id")
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NoteHandler) respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	var noteErr *model.NoteError
	if errors.As(err, &noteErr) {
		switch noteErr.Code {
		case model.ErrCodeNoteNotFound, model.ErrCodeBlendNotFound:
			response.ErrorResponse(c, http.StatusNotFound, noteErr.Code, noteErr.Message)
		case model.ErrCodeEmptyUpdate, model.ErrCodeBadSelection:
			response.ErrorResponse(c, http.StatusBadRequest, noteErr.Code, noteErr.Message)
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, noteErr.Code, noteErr.Message)
		}
		return
	}

	logger.Error("tasting note operation failed", err)
	response.InternalServerError(c, "something went wrong")
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// parseIDList splits a comma-separated uuid list; an empty input is an
// empty list, a malformed element is an error.
func parseIDList(raw string) ([]uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
