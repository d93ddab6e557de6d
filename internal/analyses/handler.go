package analyses

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-ats/internal/shared/metrics"
	"smart-ats/internal/shared/server/middleware"
	"smart-ats/internal/shared/server/respond"
	"smart-ats/internal/shared/util"
)

const defaultMaxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc   *Service
	Guard *Guard
	// MaxUploadBytes caps the multipart body. Zero means 10MB.
	MaxUploadBytes int64
}

// NewHandler constructs a Handler with its own busy flag.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, Guard: &Guard{}, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

type analyzeResponse struct {
	Result  json.RawMessage `json:"result"`
	Display Display         `json:"display"`
}

func (h *Handler) analyze(c *gin.Context) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadSize
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		c.Set("analysisOutcome", "invalid")
		respond.FromError(c, err)
		return
	}

	release, err := h.Guard.Acquire()
	if err != nil {
		metrics.IncAnalysisRejected()
		c.Set("analysisOutcome", "busy")
		respond.Error(c, http.StatusConflict, "analysis_in_progress", err.Error(), nil)
		return
	}
	defer release()

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Svc.Analyze(ctx, req)
	if err != nil {
		c.Set("analysisOutcome", "failed")
		respond.FromError(c, err)
		return
	}

	c.Set("analysisOutcome", "completed")
	respond.JSON(c, http.StatusOK, analyzeResponse{
		Result:  analysis.Raw,
		Display: analysis.Result.Display(),
	})
}

// bindRequest reads the multipart form. A missing resume leaves Resume nil so
// Validate reports it after the job description check.
func (h *Handler) bindRequest(c *gin.Context) (Request, bool) {
	fileHeader, err := c.FormFile("resume")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "upload exceeds size limit", nil)
		return Request{}, false
	}

	req := Request{JobDescription: c.PostForm("jobDescription")}
	if err != nil {
		return req, true
	}
	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil || !util.IsPDFName(name) {
		if req.JobDescription == "" {
			return req, true
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", msgMissingResume, nil)
		return Request{}, false
	}
	req.FileName = name

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return Request{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return Request{}, false
	}
	req.Resume = data
	return req, true
}
