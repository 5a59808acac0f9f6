package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"market-lens/internal/api/config"
	"market-lens/internal/api/dto"
	"market-lens/internal/api/repository"
	"market-lens/internal/entity"
	"market-lens/pkg/common"
	"market-lens/pkg/logger"
	"market-lens/pkg/telegram"
	"market-lens/pkg/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

const maxNewsContextChars = 2000

// AIAnalysisService produces a generative-model analysis of one symbol
// and records each exchange as an audit signal.
type AIAnalysisService interface {
	Analyze(ctx context.Context, symbol, question string) (*dto.AIAnalysisResponse, error)
	PruneOldSignals(ctx context.Context) error
}

type aiAnalysisService struct {
	cfg          *config.Config
	stockService StockAnalysisService
	aiRepo       repository.AIRepository
	newsRepo     repository.NewsRepository
	signalRepo   repository.AISignalRepository
	redisClient  *redis.Client
	notifier     telegram.Notifier
	logger       *logger.Logger
}

// NewAIAnalysisService creates a new AIAnalysisService.
func NewAIAnalysisService(
	cfg *config.Config,
	stockService StockAnalysisService,
	aiRepo repository.AIRepository,
	newsRepo repository.NewsRepository,
	signalRepo repository.AISignalRepository,
	redisClient *redis.Client,
	notifier telegram.Notifier,
	log *logger.Logger,
) AIAnalysisService {
	return &aiAnalysisService{
		cfg:          cfg,
		stockService: stockService,
		aiRepo:       aiRepo,
		newsRepo:     newsRepo,
		signalRepo:   signalRepo,
		redisClient:  redisClient,
		notifier:     notifier,
		logger:       log,
	}
}

func (s *aiAnalysisService) Analyze(ctx context.Context, symbol, question string) (*dto.AIAnalysisResponse, error) {
	symbol = normalizeSymbol(symbol)
	cacheKey := s.cacheKey(symbol, question)

	if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var response dto.AIAnalysisResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			s.logger.DebugContext(ctx, "AI analysis cache hit", logger.StringField("symbol", symbol))
			return &response, nil
		}
	} else if err != redis.Nil {
		s.logger.WarnContext(ctx, "Failed to read AI analysis cache", logger.ErrorField(err))
	}

	metrics, quote, err := s.stockService.ExtractMetrics(ctx, symbol)
	if err != nil {
		return nil, err
	}

	newsContext := s.buildNewsContext(ctx, symbol)
	prompt := repository.BuildStockAnalysisPrompt(symbol, companyName(symbol, quote), metrics, question, newsContext)

	analysis, err := s.aiRepo.GenerateAnalysis(ctx, prompt)
	if err != nil {
		s.alert(ctx, "AI analysis failed", err, symbol)
		return nil, err
	}

	response := &dto.AIAnalysisResponse{
		Analysis:        analysis,
		Recommendations: ExtractRecommendations(analysis),
	}

	s.recordSignal(ctx, symbol, response)

	if payload, err := json.Marshal(response); err == nil {
		ttl := time.Duration(s.cfg.AI.CacheTTLMinutes) * time.Minute
		if err := s.redisClient.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "Failed to cache AI analysis", logger.ErrorField(err))
		}
	}

	return response, nil
}

// ExtractRecommendations scans AI output for bilingual action keywords
// (English and Indonesian). Checks run in fixed order buy, sell, hold;
// each appends at most one fixed string, so the output is duplicate-free.
func ExtractRecommendations(aiText string) []string {
	recommendations := []string{}
	textLower := strings.ToLower(aiText)

	if strings.Contains(textLower, "buy") || strings.Contains(textLower, "beli") {
		recommendations = append(recommendations, "Consider buying based on AI analysis")
	}
	if strings.Contains(textLower, "sell") || strings.Contains(textLower, "jual") {
		recommendations = append(recommendations, "Consider selling based on AI analysis")
	}
	if strings.Contains(textLower, "hold") || strings.Contains(textLower, "tahan") {
		recommendations = append(recommendations, "Consider holding based on AI analysis")
	}

	return recommendations
}

// PruneOldSignals removes signal rows older than the configured retention.
func (s *aiAnalysisService) PruneOldSignals(ctx context.Context) error {
	cutoff := utils.TimeNowWIB().AddDate(0, 0, -s.cfg.Signals.RetentionDays)
	removed, err := s.signalRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to prune AI signals", logger.ErrorField(err))
		return err
	}
	s.logger.Info("Pruned AI signals",
		logger.Field("removed", removed),
		logger.StringField("cutoff", cutoff.Format(time.RFC3339)),
	)
	return nil
}

func (s *aiAnalysisService) cacheKey(symbol, question string) string {
	key := fmt.Sprintf(common.RedisKeyAIAnalysis, symbol)
	if question != "" {
		sum := md5.Sum([]byte(question))
		key = key + ":" + hex.EncodeToString(sum[:])
	}
	return key
}

// buildNewsContext assembles recent headlines, plus the text of the most
// recent article when it can be fetched. Best effort; an empty string
// just means the prompt carries no news section.
func (s *aiAnalysisService) buildNewsContext(ctx context.Context, symbol string) string {
	if s.cfg.AI.NewsContextItems <= 0 {
		return ""
	}

	headlines, err := s.newsRepo.GetHeadlines(ctx, symbol, s.cfg.AI.NewsContextItems)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch news context", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return ""
	}
	if len(headlines) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, item := range headlines {
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)\n", item.Title, item.Source, item.PublishedAt))
	}

	if content, err := s.newsRepo.GetArticleContent(ctx, headlines[0].Link); err == nil && content != "" {
		if len(content) > maxNewsContextChars {
			// Cut on a rune boundary so the prompt never carries a
			// split multi-byte character.
			cut := maxNewsContextChars
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
		}
		sb.WriteString("\nIsi berita terbaru:\n")
		sb.WriteString(content)
	}

	return sb.String()
}

// recordSignal persists the exchange for audit. Failures are logged and
// alerted, never surfaced to the caller.
func (s *aiAnalysisService) recordSignal(ctx context.Context, symbol string, response *dto.AIAnalysisResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("Failed to marshal AI signal payload", logger.ErrorField(err))
		return
	}

	signal := &entity.AISignal{
		Symbol:         symbol,
		Provider:       s.cfg.AI.Provider,
		Model:          s.cfg.Gemini.Model,
		Recommendation: strings.Join(response.Recommendations, "; "),
		Data:           datatypes.JSON(payload),
	}

	if err := s.signalRepo.Create(ctx, signal); err != nil {
		s.alert(ctx, "Failed to persist AI signal", err, symbol)
		return
	}

	utils.GoSafe(func() {
		msg := telegram.FormatAISignalMessage(utils.TimeNowWIB(), symbol, response.Recommendations)
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Warn("Failed to send AI signal notification", logger.ErrorField(err))
		}
	})
}

func (s *aiAnalysisService) alert(ctx context.Context, errType string, err error, symbol string) {
	s.logger.ErrorContext(ctx, errType, logger.ErrorField(err), logger.StringField("symbol", symbol))
	utils.GoSafe(func() {
		msg := telegram.FormatErrorAlertMessage(utils.TimeNowWIB(), errType, err.Error(), symbol)
		if sendErr := s.notifier.SendMessage(msg); sendErr != nil {
			s.logger.Warn("Failed to send error alert", logger.ErrorField(sendErr))
		}
	})
}
