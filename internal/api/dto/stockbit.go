package dto

import "encoding/json"

// StockbitLoginRequest carries the credentials forwarded to the Stockbit
// email login endpoint.
type StockbitLoginRequest struct {
	Username          string `json:"username" validate:"required"`
	Password          string `json:"password" validate:"required"`
	VerificationToken string `json:"verificationToken"`
	RecaptchaVersion  string `json:"recaptchaVersion"`
}

// StockbitScreenerRequest selects the screener template to fetch. An
// empty TemplateID falls back to the configured default.
type StockbitScreenerRequest struct {
	TemplateID string `json:"templateId"`
}

// StockbitProxyResponse is an upstream Stockbit payload passed through
// unmodified. The front end owns its interpretation.
type StockbitProxyResponse struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}
