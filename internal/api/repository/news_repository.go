package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"market-lens/internal/api/config"
	"market-lens/internal/api/dto"
	"market-lens/pkg/logger"
	"market-lens/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

type newsRepository struct {
	cfg    *config.Config
	logger *logger.Logger
	client *http.Client
}

// NewNewsRepository creates a repository over the Yahoo Finance
// per-symbol RSS feed.
func NewNewsRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &newsRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetHeadlines fetches the symbol's RSS feed, newest first, capped at limit.
func (r *newsRepository) GetHeadlines(ctx context.Context, symbol string, limit int) ([]dto.NewsItem, error) {
	feedURL := fmt.Sprintf("%s/rss/2.0/headline?s=%s&region=US&lang=en-US",
		r.cfg.YahooFinance.RSSBaseURL, url.QueryEscape(symbol))

	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse RSS feed",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	sort.Slice(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return false
		}
		return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
	})

	items := make([]dto.NewsItem, 0, limit)
	for _, item := range feed.Items {
		if len(items) >= limit {
			break
		}
		publishedAt := ""
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.Format(time.RFC3339)
		}
		source := ""
		if parsed, err := url.Parse(item.Link); err == nil {
			source = parsed.Hostname()
		}
		items = append(items, dto.NewsItem{
			Title:       utils.SafeText(item.Title),
			Link:        item.Link,
			Source:      source,
			PublishedAt: publishedAt,
		})
	}

	return items, nil
}

// GetArticleContent fetches an article and reduces it to plain text.
func (r *newsRepository) GetArticleContent(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for news item: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to fetch news content", logger.ErrorField(err), logger.StringField("url", articleURL))
		return "", fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch news content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}
	content := doc.Content()
	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}

	content = strings.TrimSpace(docHTML.Text())
	return utils.SafeText(content), nil
}
