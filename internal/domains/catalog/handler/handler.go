package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"matcha-journal-backend/internal/domains/catalog/model"
	"matcha-journal-backend/internal/domains/catalog/service"
	"matcha-journal-backend/internal/shared/response"
	"matcha-journal-backend/pkg/logger"
)

type CatalogHandler struct {
	catalogService service.ServiceInterface
}

func NewCatalogHandler(catalogService service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateBlend creates a blend via the entity-resolution flow
// POST /api/v1/blends
func (h *CatalogHandler) CreateBlend(c *gin.Context) {
	var req model.CreateBlendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.catalogService.CreateBlend(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListBrands lists brands with optional search
// GET /api/v1/brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	var req model.ListCatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.catalogService.ListBrands(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListRegions lists regions with optional search
// GET /api/v1/regions
func (h *CatalogHandler) ListRegions(c *gin.Context) {
	var req model.ListCatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.catalogService.ListRegions(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListBlends lists blends with brand/region filters and search
// GET /api/v1/blends
func (h *CatalogHandler) ListBlends(c *gin.Context) {
	var req model.ListBlendsRequest

	// Bind the uuid filters by hand so a malformed id is a clean 400
	// instead of gin's binding error text.
	if v := c.Query("brand_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid brand_id")
			return
		}
		req.BrandID = &id
	}
	if v := c.Query("region_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid region_id")
			return
		}
		req.RegionID = &id
	}
	if v := c.Query("search"); v != "" {
		req.Search = &v
	}
	req.Page = queryInt(c, "page", 1)
	req.Limit = queryInt(c, "limit", 20)

	resp, err := h.catalogService.ListBlends(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// respondError maps catalog errors to HTTP status codes. Unexpected
// errors are logged with their real cause and surfaced as a generic 500.
func (h *CatalogHandler) respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationError(c, verrs)
		return
	}

	var catErr *model.CatalogError
	if errors.As(err, &catErr) {
		switch catErr.Code {
		case model.ErrCodeBrandNotFound, model.ErrCodeRegionNotFound, model.ErrCodeBlendNotFound:
			response.ErrorResponse(c, http.StatusNotFound, catErr.Code, catErr.Message)
		case model.ErrCodeDuplicateBlend:
			response.ErrorResponse(c, http.StatusConflict, catErr.Code, catErr.Message)
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, catErr.Code, catErr.Message)
		}
		return
	}

	logger.Error("catalog operation failed", err)
	response.InternalServerError(c, "something went wrong")
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
