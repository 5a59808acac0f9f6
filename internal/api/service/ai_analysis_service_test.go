package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"market-lens/internal/api/config"
	"market-lens/internal/api/dto"
	"market-lens/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRecommendations(t *testing.T) {
	tests := []struct {
		name   string
		aiText string
		want   []string
	}{
		{
			name:   "no keywords",
			aiText: "The company reported quarterly results in line with expectations.",
			want:   []string{},
		},
		{
			name:   "english buy",
			aiText: "Fundamentals look strong, this could be a good time to BUY.",
			want:   []string{"Consider buying based on AI analysis"},
		},
		{
			name:   "indonesian buy",
			aiText: "Saham ini layak dibeli untuk jangka panjang.",
			want:   []string{"Consider buying based on AI analysis"},
		},
		{
			name:   "indonesian sell",
			aiText: "Rekomendasi: jual sebagian posisi Anda.",
			want:   []string{"Consider selling based on AI analysis"},
		},
		{
			name:   "hold only",
			aiText: "Best to hold until the next earnings release.",
			want:   []string{"Consider holding based on AI analysis"},
		},
		{
			name:   "mixed keywords keep fixed order",
			aiText: "Hold for now, but sell into strength; do not buy more.",
			want: []string{
				"Consider buying based on AI analysis",
				"Consider selling based on AI analysis",
				"Consider holding based on AI analysis",
			},
		},
		{
			name:   "repeated keywords appear once",
			aiText: "Buy, buy, and buy again. Beli sekarang!",
			want:   []string{"Consider buying based on AI analysis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRecommendations(tt.aiText))
		})
	}
}

type fakeNewsRepository struct {
	headlines []dto.NewsItem
	content   string
}

func (f *fakeNewsRepository) GetHeadlines(ctx context.Context, symbol string, limit int) ([]dto.NewsItem, error) {
	return f.headlines, nil
}

func (f *fakeNewsRepository) GetArticleContent(ctx context.Context, url string) (string, error) {
	return f.content, nil
}

func TestBuildNewsContext_TruncatesOnRuneBoundary(t *testing.T) {
	log, _ := logger.New("error", "console")

	// The leading single-byte rune puts every following two-byte rune on
	// an odd offset, so a naive cut at the byte limit splits a rune.
	longArticle := "a" + strings.Repeat("é", maxNewsContextChars)

	svc := &aiAnalysisService{
		cfg: &config.Config{
			AI: config.AI{NewsContextItems: 3},
		},
		newsRepo: &fakeNewsRepository{
			headlines: []dto.NewsItem{{Title: "Hasil kuartalan dirilis", Link: "https://example.com/a", Source: "example.com", PublishedAt: "2026-08-30"}},
			content:   longArticle,
		},
		logger: log,
	}

	got := svc.buildNewsContext(context.Background(), "BBCA.JK")

	require.NotEmpty(t, got)
	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "Hasil kuartalan dirilis")
}
