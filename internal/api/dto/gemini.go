package dto

// GeminiAPIRequest is the request payload for the Gemini API.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// Content represents the content of a request or response.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a part of the content.
type Part struct {
	Text string `json:"text"`
}

// GeminiAPIResponse is the response from the Gemini API.
type GeminiAPIResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a candidate response from the Gemini API.
type Candidate struct {
	Content Content `json:"content"`
}

// AIAnalysisRequest is the request body for the AI analysis endpoint.
type AIAnalysisRequest struct {
	Symbol   string `json:"symbol" validate:"required"`
	Question string `json:"question"`
}

// AIAnalysisResponse is the AI analysis result served to the front end.
type AIAnalysisResponse struct {
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}
