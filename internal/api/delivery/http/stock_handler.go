package http

import (
	"net/http"

	"market-lens/internal/api/dto"
	"market-lens/internal/api/repository"
	"market-lens/internal/api/service"
	"market-lens/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultNewsLimit = 10

// StockHandler handles HTTP requests for stock data and evaluation.
type StockHandler struct {
	stockService service.StockAnalysisService
	newsRepo     repository.NewsRepository
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockAnalysisService, newsRepo repository.NewsRepository, log *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, newsRepo: newsRepo, logger: log}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.Analyze)
	g.POST("/evaluate", h.Evaluate)
	g.GET("/:symbol/quote", h.GetQuote)
	g.GET("/:symbol/news", h.GetNews)
	g.GET("/search", h.Search)
}

// Analyze godoc
// @Summary Analyze a stock
// @Description Fetch quote, metrics, technicals, price history, and the rendered AI prompt for a symbol
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   request  body    dto.StockAnalysisRequest   true    "Symbol to analyze"
// @Success 200 {object} dto.StockAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/analyze [post]
func (h *StockHandler) Analyze(c echo.Context) error {
	var req dto.StockAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	response, err := h.stockService.Analyze(c.Request().Context(), req.Symbol, req.Question)
	if err != nil {
		h.logger.Error("Failed to analyze stock", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Evaluate godoc
// @Summary Evaluate a stock
// @Description Score a symbol's fundamentals and technicals against a fixed rule table
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   request  body    dto.StockEvaluationRequest   true    "Symbol to evaluate"
// @Success 200 {object} dto.EvaluationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/evaluate [post]
func (h *StockHandler) Evaluate(c echo.Context) error {
	var req dto.StockEvaluationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.stockService.Evaluate(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("Failed to evaluate stock", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetQuote godoc
// @Summary Get a stock quote
// @Description Get the quote block only for a symbol
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Success 200 {object} dto.StockQuote
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/quote [get]
func (h *StockHandler) GetQuote(c echo.Context) error {
	symbol := c.Param("symbol")

	quote, err := h.stockService.GetQuote(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Error("Failed to get quote", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, quote)
}

// GetNews godoc
// @Summary Get recent news for a stock
// @Description Get recent headlines for a symbol, newest first
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Success 200 {object} dto.NewsResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/news [get]
func (h *StockHandler) GetNews(c echo.Context) error {
	symbol := c.Param("symbol")

	items, err := h.newsRepo.GetHeadlines(c.Request().Context(), symbol, defaultNewsLimit)
	if err != nil {
		h.logger.Error("Failed to get news", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewsResponse{Symbol: symbol, Items: items})
}

// Search godoc
// @Summary Search symbols
// @Description Search for ticker symbols by name or code
// @Tags stocks
// @Produce  json
// @Param   query  query    string true    "Search query"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/search [get]
func (h *StockHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing query parameter"})
	}

	response, err := h.stockService.Search(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("Failed to search symbols", logger.ErrorField(err), logger.StringField("query", query))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}
