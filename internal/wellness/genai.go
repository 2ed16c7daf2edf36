package wellness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

const (
	assessmentMaxTokens = 2500
	insightsMaxTokens   = 500
	motivationMaxTokens = 400
)

// generator produces text for a prompt. asJSON requests a JSON response body.
type generator interface {
	generate(ctx context.Context, prompt string, asJSON bool, maxTokens int32) (string, error)
}

// GenAIAssessor implements Assessor on the Gemini API.
type GenAIAssessor struct {
	gen generator
}

// NewGenAIAssessor returns an assessor that connects lazily on first use.
func NewGenAIAssessor(apiKey, model string) *GenAIAssessor {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &GenAIAssessor{gen: &genaiGenerator{apiKey: strings.TrimSpace(apiKey), model: model}}
}

func (a *GenAIAssessor) Assess(ctx context.Context, responses Responses) (Report, error) {
	if len(responses) == 0 {
		return Report{}, ErrEmptyResponses
	}
	raw, err := a.gen.generate(ctx, BuildAssessmentPrompt(responses), true, assessmentMaxTokens)
	if err != nil {
		return Report{}, fmt.Errorf("Assess: %w", err)
	}
	return decodeReport(raw)
}

func (a *GenAIAssessor) Insights(ctx context.Context, report Report) (string, error) {
	prompt, err := BuildInsightsPrompt(report)
	if err != nil {
		return "", err
	}
	text, err := a.gen.generate(ctx, prompt, false, insightsMaxTokens)
	if err != nil {
		return "", fmt.Errorf("Insights: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (a *GenAIAssessor) Motivation(ctx context.Context, area string) (string, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return "", errors.New("Motivation: empty area")
	}
	text, err := a.gen.generate(ctx, BuildMotivationPrompt(area), false, motivationMaxTokens)
	if err != nil {
		return "", fmt.Errorf("Motivation: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func decodeReport(raw string) (Report, error) {
	var r Report
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &r); err != nil {
		return Report{}, fmt.Errorf("%w: decode: %v", ErrInvalidReport, err)
	}
	if err := r.Validate(); err != nil {
		return Report{}, err
	}
	return r, nil
}

type genaiGenerator struct {
	apiKey string
	model  string

	once   sync.Once
	client *genai.Client
	err    error
}

func (g *genaiGenerator) generate(ctx context.Context, prompt string, asJSON bool, maxTokens int32) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}
	g.once.Do(func() {
		g.client, g.err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if g.err != nil {
		return "", fmt.Errorf("create genai client: %w", g.err)
	}

	cfg := &genai.GenerateContentConfig{MaxOutputTokens: maxTokens}
	if asJSON {
		cfg.ResponseMIMEType = "application/json"
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
