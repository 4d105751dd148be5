package listings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"listing-backend/internal/shared/server/middleware"
	"listing-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the listings service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches listing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings/generate", h.generate)
	rg.GET("/listings", h.listRuns)
	rg.GET("/listings/:id", h.getRun)
}

type generateOptions struct {
	PersonaLevel   int    `json:"personaLevel"`
	GiftMode       *bool  `json:"giftMode"`
	AllowHandmade  *bool  `json:"allowHandmade"`
	RunID          string `json:"runId"`
	BypassHardFail bool   `json:"bypassHardFail"`
}

type generateRequest struct {
	RawText string          `json:"rawText"`
	Options generateOptions `json:"options"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.RawText == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "rawText is required", nil)
		return
	}
	if req.Options.PersonaLevel == 0 {
		req.Options.PersonaLevel = 3
	}

	run, err := h.Svc.Generate(c.Request.Context(), userID, req.RawText, Options{
		PersonaLevel:   req.Options.PersonaLevel,
		GiftMode:       req.Options.GiftMode,
		AllowHandmade:  req.Options.AllowHandmade,
		RunID:          req.Options.RunID,
		BypassHardFail: req.Options.BypassHardFail,
	})
	if run.ID != "" {
		c.Set("runId", run.ID)
	}
	if err != nil {
		var perr *PipelineError
		if errors.As(err, &perr) {
			var details any
			if run.Validation != nil {
				details = gin.H{"validation": run.Validation}
			}
			respond.Error(c, statusForCode(perr.Code), perr.Code, perr.Message, details)
			return
		}
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "generation failed", nil)
		return
	}

	respond.OK(c, gin.H{
		"runId":        run.ID,
		"status":       run.Status,
		"fields":       run.Fields,
		"classifier":   run.Classifier,
		"validation":   run.Validation,
		"qualityScore": run.QualityScore,
		"summary":      run.Summary,
	})
}

func (h *Handler) getRun(c *gin.Context) {
	runID := c.Param("id")
	if runID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "run id is required", nil)
		return
	}

	run, err := h.Svc.Get(c.Request.Context(), runID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "run not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch run", nil)
		}
		return
	}

	resp := gin.H{
		"runId":  run.ID,
		"status": run.Status,
	}
	if run.Status == StatusCompleted {
		resp["fields"] = run.Fields
		resp["classifier"] = run.Classifier
		resp["validation"] = run.Validation
		resp["qualityScore"] = run.QualityScore
		resp["summary"] = run.Summary
	}
	if run.Status == StatusFailed {
		resp["errorCode"] = run.ErrorCode
		resp["errorMessage"] = run.ErrorMessage
		if run.Validation != nil {
			resp["validation"] = run.Validation
		}
	}
	respond.OK(c, resp)
}

func (h *Handler) listRuns(c *gin.Context) {
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
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	runs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list runs", nil)
		return
	}

	resp := make([]gin.H, 0, len(runs))
	for _, run := range runs {
		item := gin.H{
			"runId":     run.ID,
			"status":    run.Status,
			"createdAt": run.CreatedAt,
		}
		if run.Status == StatusCompleted && run.Fields != nil {
			item["title"] = run.Fields.Title
			item["qualityScore"] = run.QualityScore
		}
		resp = append(resp, item)
	}
	respond.OK(c, resp)
}

func statusForCode(code string) int {
	switch code {
	case ErrorCodeBudgetExhausted:
		return http.StatusTooManyRequests
	case ErrorCodeConfig, ErrorCodeGenerationFailed, ErrorCodeValidationHard:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
