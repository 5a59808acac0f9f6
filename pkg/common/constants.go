package common

const (
	RedisKeyAIAnalysis = "market-lens:ai-analysis:%s"

	AIProviderGemini = "gemini"
)
