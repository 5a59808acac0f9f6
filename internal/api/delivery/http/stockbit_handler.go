package http

import (
	"errors"
	"net/http"
	"strings"

	"market-lens/internal/api/config"
	"market-lens/internal/api/dto"
	"market-lens/internal/api/repository"
	"market-lens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockbitHandler proxies Stockbit auth and screener requests so the
// browser front end is not blocked by CORS.
type StockbitHandler struct {
	cfg          *config.Config
	stockbitRepo repository.StockbitRepository
	logger       *logger.Logger
}

// NewStockbitHandler creates a new StockbitHandler.
func NewStockbitHandler(cfg *config.Config, stockbitRepo repository.StockbitRepository, log *logger.Logger) *StockbitHandler {
	return &StockbitHandler{cfg: cfg, stockbitRepo: stockbitRepo, logger: log}
}

// RegisterRoutes registers the Stockbit routes to the Echo group.
func (h *StockbitHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
	g.POST("/screener", h.Screener)
}

// Login godoc
// @Summary Stockbit login proxy
// @Description Forward credentials to the Stockbit email login endpoint
// @Tags stockbit
// @Accept  json
// @Produce  json
// @Param   request  body    dto.StockbitLoginRequest   true    "Stockbit credentials"
// @Success 200 {object} dto.StockbitProxyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stockbit/login [post]
func (h *StockbitHandler) Login(c echo.Context) error {
	var req dto.StockbitLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	response, err := h.stockbitRepo.Login(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Stockbit login failed", logger.ErrorField(err))
		return h.writeProxyError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Screener godoc
// @Summary Stockbit screener proxy
// @Description Fetch a Stockbit screener template using the caller's bearer token
// @Tags stockbit
// @Accept  json
// @Produce  json
// @Param   Authorization  header  string  true   "Bearer token"
// @Param   request  body    dto.StockbitScreenerRequest   false    "Screener template selection"
// @Success 200 {object} dto.StockbitProxyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /stockbit/screener [post]
func (h *StockbitHandler) Screener(c echo.Context) error {
	token := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing bearer token"})
	}

	var req dto.StockbitScreenerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.TemplateID == "" {
		req.TemplateID = h.cfg.Stockbit.DefaultScreenerTemplateID
	}

	response, err := h.stockbitRepo.GetScreenerResults(c.Request().Context(), req.TemplateID, token)
	if err != nil {
		h.logger.Error("Stockbit screener failed", logger.ErrorField(err))
		return h.writeProxyError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// writeProxyError forwards the upstream status for proxied endpoints, so
// the front end sees Stockbit's own auth failures.
func (h *StockbitHandler) writeProxyError(c echo.Context, err error) error {
	var upstream *repository.UpstreamError
	if errors.As(err, &upstream) {
		return c.JSON(upstream.StatusCode, echo.Map{"error": upstream.Message})
	}
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
}
