package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"market-lens/internal/api/config"
	"market-lens/internal/api/dto"
	"market-lens/pkg/logger"

	"go.uber.org/zap"
)

type stockbitRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

// NewStockbitRepository creates the Stockbit proxy client. It exists to
// bypass CORS for the front end; responses pass through unmodified.
func NewStockbitRepository(cfg *config.Config, log *logger.Logger) StockbitRepository {
	return &stockbitRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (r *stockbitRepository) Login(ctx context.Context, loginReq *dto.StockbitLoginRequest) (*dto.StockbitProxyResponse, error) {
	reqURL := r.cfg.Stockbit.BaseURL + "/api/login/email"

	jsonPayload, err := json.Marshal(loginReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	r.setBrowserHeaders(req)
	req.Header.Set("Referer", r.cfg.Stockbit.BaseURL+"/login")

	return r.send(ctx, req)
}

func (r *stockbitRepository) GetScreenerResults(ctx context.Context, templateID, accessToken string) (*dto.StockbitProxyResponse, error) {
	reqURL := fmt.Sprintf("%s/screener/templates/%s?type=TEMPLATE_TYPE_CUSTOM",
		r.cfg.Stockbit.ExodusBaseURL, templateID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create screener request: %w", err)
	}
	r.setBrowserHeaders(req)
	req.Header.Set("Referer", r.cfg.Stockbit.BaseURL+"/")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return r.send(ctx, req)
}

// Stockbit rejects requests that do not look like its own web client.
func (r *stockbitRepository) setBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", r.cfg.Stockbit.BaseURL)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36")
}

func (r *stockbitRepository) send(ctx context.Context, req *http.Request) (*dto.StockbitProxyResponse, error) {
	fields := []zap.Field{
		zap.String("url", req.URL.String()),
		zap.String("method", req.Method),
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Stockbit API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Stockbit API", fields...)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Stockbit API", fields...)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var proxyResp dto.StockbitProxyResponse
	if err := json.Unmarshal(body, &proxyResp); err != nil {
		// Not every Stockbit endpoint wraps its payload; pass it through raw.
		proxyResp = dto.StockbitProxyResponse{Data: json.RawMessage(body)}
	}

	return &proxyResp, nil
}
