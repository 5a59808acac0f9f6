package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"market-lens/internal/api/dto"
	"market-lens/internal/api/repository"
	"market-lens/internal/api/service"
	"market-lens/pkg/logger"
	"market-lens/pkg/utils"
	"market-lens/pkg/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockService struct {
	analysis   *dto.StockAnalysisResponse
	evaluation *dto.EvaluationResult
	quote      *dto.StockQuote
	search     *dto.SearchResponse
	err        error
}

func (f *fakeStockService) Analyze(ctx context.Context, symbol, question string) (*dto.StockAnalysisResponse, error) {
	return f.analysis, f.err
}

func (f *fakeStockService) Evaluate(ctx context.Context, symbol string) (*dto.EvaluationResult, error) {
	return f.evaluation, f.err
}

func (f *fakeStockService) GetQuote(ctx context.Context, symbol string) (*dto.StockQuote, error) {
	return f.quote, f.err
}

func (f *fakeStockService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	return f.search, f.err
}

func (f *fakeStockService) ExtractMetrics(ctx context.Context, symbol string) (*dto.MetricSet, *dto.YahooQuote, error) {
	return nil, nil, f.err
}

type fakeNewsRepo struct {
	items []dto.NewsItem
	err   error
}

func (f *fakeNewsRepo) GetHeadlines(ctx context.Context, symbol string, limit int) ([]dto.NewsItem, error) {
	return f.items, f.err
}

func (f *fakeNewsRepo) GetArticleContent(ctx context.Context, url string) (string, error) {
	return "", nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestStockHandler(svc service.StockAnalysisService, newsRepo repository.NewsRepository) *StockHandler {
	log, _ := logger.New("error", "console")
	return NewStockHandler(svc, newsRepo, log)
}

func TestAnalyze_ReturnsAnalysis(t *testing.T) {
	svc := &fakeStockService{
		analysis: &dto.StockAnalysisResponse{
			Quote: dto.StockQuote{Symbol: "AAPL", Name: "Apple Inc.", Price: utils.ToPointer(185.0)},
		},
	}
	h := newTestStockHandler(svc, &fakeNewsRepo{})

	c, rec := newTestContext(t, http.MethodPost, "/api/stocks/analyze", `{"symbol":"AAPL"}`)
	require.NoError(t, h.Analyze(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.StockAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Quote.Symbol)
}

func TestAnalyze_RejectsMissingSymbol(t *testing.T) {
	h := newTestStockHandler(&fakeStockService{}, &fakeNewsRepo{})

	c, rec := newTestContext(t, http.MethodPost, "/api/stocks/analyze", `{"question":"anything"}`)
	require.NoError(t, h.Analyze(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluate_UnknownSymbolIs404(t *testing.T) {
	svc := &fakeStockService{err: repository.ErrNoData}
	h := newTestStockHandler(svc, &fakeNewsRepo{})

	c, rec := newTestContext(t, http.MethodPost, "/api/stocks/evaluate", `{"symbol":"NOPE"}`)
	require.NoError(t, h.Evaluate(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvaluate_UpstreamFailureIs502(t *testing.T) {
	svc := &fakeStockService{err: &repository.UpstreamError{StatusCode: 429, Message: "rate limited"}}
	h := newTestStockHandler(svc, &fakeNewsRepo{})

	c, rec := newTestContext(t, http.MethodPost, "/api/stocks/evaluate", `{"symbol":"AAPL"}`)
	require.NoError(t, h.Evaluate(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetQuote_ReturnsQuote(t *testing.T) {
	svc := &fakeStockService{
		quote: &dto.StockQuote{Symbol: "BBCA.JK", Name: "Bank Central Asia", Currency: "IDR"},
	}
	h := newTestStockHandler(svc, &fakeNewsRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/stocks/BBCA.JK/quote", "")
	c.SetParamNames("symbol")
	c.SetParamValues("BBCA.JK")
	require.NoError(t, h.GetQuote(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var quote dto.StockQuote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, "IDR", quote.Currency)
}

func TestGetNews_WrapsItems(t *testing.T) {
	newsRepo := &fakeNewsRepo{
		items: []dto.NewsItem{{Title: "Apple announces results", Source: "finance.yahoo.com"}},
	}
	h := newTestStockHandler(&fakeStockService{}, newsRepo)

	c, rec := newTestContext(t, http.MethodGet, "/api/stocks/AAPL/news", "")
	c.SetParamNames("symbol")
	c.SetParamValues("AAPL")
	require.NoError(t, h.GetNews(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.NewsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Symbol)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Apple announces results", resp.Items[0].Title)
}

func TestSearch_RequiresQuery(t *testing.T) {
	h := newTestStockHandler(&fakeStockService{}, &fakeNewsRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/stocks/search", "")
	require.NoError(t, h.Search(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_ReturnsResults(t *testing.T) {
	svc := &fakeStockService{
		search: &dto.SearchResponse{Results: []dto.SearchResult{{Symbol: "AAPL", Name: "Apple Inc."}}},
	}
	h := newTestStockHandler(svc, &fakeNewsRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/stocks/search?query=apple", "")
	require.NoError(t, h.Search(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "AAPL", resp.Results[0].Symbol)
}
