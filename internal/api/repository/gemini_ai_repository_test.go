package repository

import (
	"strings"
	"testing"

	"market-lens/internal/api/config"
	"market-lens/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestNewGeminiAIRepository_RejectsUnsetRateLimit(t *testing.T) {
	log, _ := logger.New("error", "console")

	_, err := NewGeminiAIRepository(&config.Config{}, log, nil)
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Valuasi saham ini tergolong murah.",
			want: "Valuasi saham ini tergolong murah.",
		},
		{
			name: "trailing keyword letters survive",
			in:   "Rekomendasi akhir: tahan",
			want: "Rekomendasi akhir: tahan",
		},
		{
			name: "leading and trailing cutset letters survive",
			in:   "jual sebagian posisi",
			want: "jual sebagian posisi",
		},
		{
			name: "json fence removed",
			in:   "```json\n{\"score\": 75}\n```",
			want: "{\"score\": 75}",
		},
		{
			name: "bare fence removed",
			in:   "```\nanalisis singkat\n```",
			want: "analisis singkat",
		},
		{
			name: "outer whitespace trimmed",
			in:   "\n  analisis singkat  \n",
			want: "analisis singkat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestStripCodeFence_KeepsKeywordScannable(t *testing.T) {
	analysis := stripCodeFence("Kesimpulan: sebaiknya tahan")
	assert.True(t, strings.Contains(strings.ToLower(analysis), "tahan"))
}
