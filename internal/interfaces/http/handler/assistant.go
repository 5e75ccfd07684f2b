package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/assistant"
)

// AssistantHandler handles generative marketing requests
type AssistantHandler struct {
	BaseHandler
	assistantService *assistant.Service
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *assistant.Service) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// RegisterRoutes registers assistant routes
func (h *AssistantHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	protected.POST("/businesses/:id/captions", h.CaptionTemplates)
	protected.POST("/assistant/analysis", h.AnalyzePerformance)
}

// CaptionTemplates generates social media post templates for a business
func (h *AssistantHandler) CaptionTemplates(c *gin.Context) {
	businessID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	templates, err := h.assistantService.CaptionTemplates(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, templates)
}

type analyzeRequest struct {
	Reports []assistant.MonthlyReport `json:"reports" binding:"required,min=1"`
}

// AnalyzePerformance summarizes monthly report trends
func (h *AssistantHandler) AnalyzePerformance(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.assistantService.AnalyzePerformance(c.Request.Context(), req.Reports)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
