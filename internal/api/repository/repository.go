package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"market-lens/internal/api/dto"
	"market-lens/internal/entity"
)

// StockDataRepository provides market data for one symbol.
type StockDataRepository interface {
	GetQuote(ctx context.Context, symbol string) (*dto.YahooQuote, error)
	GetDailyHistory(ctx context.Context, symbol string, dataRange string) ([]dto.Candle, error)
	Search(ctx context.Context, query string) ([]dto.SearchResult, error)
}

// AIRepository generates a free-text analysis from a prompt.
type AIRepository interface {
	GenerateAnalysis(ctx context.Context, prompt string) (string, error)
}

// NewsRepository provides recent headlines and article text for a symbol.
type NewsRepository interface {
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]dto.NewsItem, error)
	GetArticleContent(ctx context.Context, articleURL string) (string, error)
}

// StockbitRepository proxies the Stockbit login and screener endpoints.
type StockbitRepository interface {
	Login(ctx context.Context, req *dto.StockbitLoginRequest) (*dto.StockbitProxyResponse, error)
	GetScreenerResults(ctx context.Context, templateID, accessToken string) (*dto.StockbitProxyResponse, error)
}

// AISignalRepository persists generated AI analyses for audit.
type AISignalRepository interface {
	Create(ctx context.Context, signal *entity.AISignal) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ErrNoData marks an empty vendor payload for a symbol, typically an
// unknown ticker.
var ErrNoData = errors.New("no data returned for symbol")

// UpstreamError carries a non-2xx status from a proxied vendor API so
// handlers can forward it instead of collapsing everything into 500.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}
