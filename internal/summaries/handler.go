package summaries

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartdoc-backend/internal/extract"
	"smartdoc-backend/internal/shared/server/middleware"
	"smartdoc-backend/internal/shared/server/respond"
	"smartdoc-backend/internal/shared/util"
	"smartdoc-backend/internal/summarize"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summaries", h.upload)
	rg.GET("/summaries", h.list)
	rg.GET("/summaries/:id/download", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()

	res, err := h.Svc.SummarizeUpload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		var modelErr *summarize.ModelError
		switch {
		case errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, extract.ErrUnsupportedFormat):
			respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupported, "only pdf, docx and txt files are supported", nil)
		case errors.Is(err, extract.ErrDecode):
			respond.Error(c, http.StatusBadRequest, ErrorCodeDecode, "file could not be decoded as text", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		case errors.As(err, &modelErr):
			respond.Error(c, http.StatusBadGateway, ErrorCodeModel, "summarization model failed", map[string]any{
				"provider": modelErr.Provider,
			})
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to summarize document", nil)
		}
		return
	}

	status := http.StatusCreated
	if !res.Saved {
		status = http.StatusOK
	}
	respond.JSON(c, status, toUploadResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	sums, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list summaries", nil)
		}
		return
	}

	resp := make([]SummaryResponse, 0, len(sums))
	for _, s := range sums {
		resp = append(resp, toResponse(s))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	summaryID := c.Param("id")

	sum, err := h.Svc.Get(c.Request.Context(), userID, summaryID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "summary not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch summary", nil)
		}
		return
	}

	name, err := util.SanitizeFileName(sum.FileName)
	if err != nil {
		name = sum.ID
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "summary_"+name+".txt"))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sum.Summary))
}
