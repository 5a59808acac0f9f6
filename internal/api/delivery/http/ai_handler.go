package http

import (
	"net/http"

	"market-lens/internal/api/dto"
	"market-lens/internal/api/service"
	"market-lens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AIHandler handles HTTP requests for AI-powered analysis.
type AIHandler struct {
	aiService service.AIAnalysisService
	logger    *logger.Logger
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(aiService service.AIAnalysisService, log *logger.Logger) *AIHandler {
	return &AIHandler{aiService: aiService, logger: log}
}

// RegisterRoutes registers the AI routes to the Echo group.
func (h *AIHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.Analyze)
}

// Analyze godoc
// @Summary AI analysis of a stock
// @Description Generate a model-written analysis of a symbol, with extracted buy/sell/hold recommendations
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AIAnalysisRequest   true    "Symbol and optional question"
// @Success 200 {object} dto.AIAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /ai/analyze [post]
func (h *AIHandler) Analyze(c echo.Context) error {
	var req dto.AIAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	response, err := h.aiService.Analyze(c.Request().Context(), req.Symbol, req.Question)
	if err != nil {
		h.logger.Error("Failed AI analysis", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}
