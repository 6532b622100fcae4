package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/service"
	"catalog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service   service.ServiceInterface
	formatter model.DateFormatter
}

// NewAuthorHandler wires the service; a nil formatter means model.DefaultDateFormatter
func NewAuthorHandler(svc service.ServiceInterface, formatter model.DateFormatter) *AuthorHandler {
	if formatter == nil {
		formatter = model.DefaultDateFormatter
	}
	return &AuthorHandler{
		service:   svc,
		formatter: formatter,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/catalog/author/create
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", "/api/v1"+a.URL())
	response.Success(c, http.StatusCreated, a.ToResponse(h.formatter))
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/catalog/author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse(h.formatter))
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/catalog/authors?limit=20&offset=0&sort_by=family_name&order=asc&search=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	filter := model.AuthorFilter{
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sort_by", "family_name"),
		Order:  c.DefaultQuery("order", "asc"),
		Limit:  queryInt(c, "limit", model.DefaultLimit),
		Offset: queryInt(c, "offset", 0),
	}

	authors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Page numbers must describe the page the service actually served
	filter = filter.ClampPage()

	data := make([]model.AuthorResponse, len(authors))
	for i, a := range authors {
		data[i] = *a.ToResponse(h.formatter)
	}

	response.Success(c, http.StatusOK, model.AuthorListResponse{
		Data:       data,
		Pagination: model.NewPaginationMeta(filter.Limit, filter.Offset, total),
	})
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/catalog/author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse(h.formatter))
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/catalog/author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fail maps domain errors onto the response envelope
func (h *AuthorHandler) fail(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)

	var details interface{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details = fieldErrs
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("author request failed")
		message = "Internal server error"
	}

	response.Fail(c, status, model.ToErrorCode(err), message, details)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
