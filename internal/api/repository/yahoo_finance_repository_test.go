package repository

import (
	"testing"

	"market-lens/internal/api/config"
	"market-lens/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestNewYahooFinanceRepository_UnsetRateLimit(t *testing.T) {
	log, _ := logger.New("error", "console")

	// A config with no yahoo_finance section must not blow up at startup.
	assert.NotPanics(t, func() {
		repo := NewYahooFinanceRepository(&config.Config{}, log)
		assert.NotNil(t, repo)
	})
}
