package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Generator produces an analysis narrative from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Google Generative Language REST API. The API key
// stays server-side, it is sent as a header and never appears in responses.
type GeminiClient struct {
	client *resty.Client
	apiKey string
	model  string
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient builds a Gemini generator. baseURL covers the host part,
// e.g. https://generativelanguage.googleapis.com.
func NewGeminiClient(baseURL, apiKey, model string) *GeminiClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second)
	return &GeminiClient{client: client, apiKey: apiKey, model: model}
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}

	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini request: status %d", resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini request: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
