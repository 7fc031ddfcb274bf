package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/llm"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// Prompt is one request to a model
type Prompt struct {
	Model       string
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	JSON        bool
	Image       []byte
	ImageMIME   string
}

// Generator sends a prompt to one provider and returns the raw text
type Generator interface {
	Name() string
	Generate(ctx context.Context, p Prompt) (string, error)
}

// GeminiGenerator talks to Google Gemini
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Name() string { return config.ProviderGemini }

func (g *GeminiGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	model := g.client.GenerativeModel(p.Model)
	if p.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	}
	if p.Temperature > 0 {
		model.SetTemperature(p.Temperature)
	}
	if p.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(p.MaxTokens))
	}
	if p.JSON {
		model.ResponseMIMEType = "application/json"
	}

	parts := []genai.Part{genai.Text(p.User)}
	if len(p.Image) > 0 {
		parts = append([]genai.Part{genai.Blob{MIMEType: p.ImageMIME, Data: p.Image}}, parts...)
	}
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", llm.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// KimiGenerator talks to Moonshot's OpenAI-compatible endpoint
type KimiGenerator struct {
	client *openai.Client
}

func NewKimiGenerator(apiKey, baseURL string) *KimiGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &KimiGenerator{client: openai.NewClientWithConfig(cfg)}
}

func (k *KimiGenerator) Name() string { return config.ProviderKimi }

func (k *KimiGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	if len(p.Image) > 0 {
		return "", errors.New("kimi: image input is not supported")
	}
	req := openai.ChatCompletionRequest{
		Model:       p.Model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
	}
	if p.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := k.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Models names the model each task uses per provider
type Models struct {
	Gemini       string
	GeminiRecipe string
	Kimi         string
}

// AIService implements macro extraction with provider fallback, plus the
// Gemini-only insights
type AIService struct {
	extractors []Generator
	insights   Generator
	models     Models
	timeout    time.Duration
	closers    []func() error
}

// NewAIService builds providers for every configured key
func NewAIService(ctx context.Context, cfg config.AIConfig) (*AIService, error) {
	var gemini *GeminiGenerator
	var kimi *KimiGenerator
	if cfg.GeminiAPIKey != "" {
		g, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		gemini = g
	}
	if cfg.KimiAPIKey != "" {
		kimi = NewKimiGenerator(cfg.KimiAPIKey, cfg.KimiBaseURL)
	}

	var extractors []Generator
	for _, name := range cfg.ExtractProviders {
		switch {
		case name == config.ProviderKimi && kimi != nil:
			extractors = append(extractors, kimi)
		case name == config.ProviderGemini && gemini != nil:
			extractors = append(extractors, gemini)
		default:
			logger.Warn("Extraction provider has no API key, skipping", "provider", name)
		}
	}
	if len(extractors) == 0 {
		return nil, errors.New("no macro extraction provider configured")
	}

	var insights Generator
	var closers []func() error
	if gemini != nil {
		insights = gemini
		closers = append(closers, gemini.Close)
	} else {
		logger.Warn("GEMINI_API_KEY not set, analysis and recipes are disabled")
	}

	s := NewAIServiceWith(extractors, insights, Models{
		Gemini:       cfg.GeminiModel,
		GeminiRecipe: cfg.GeminiRecipeModel,
		Kimi:         cfg.KimiModel,
	})
	s.closers = closers
	s.timeout = cfg.Timeout
	return s, nil
}

// NewAIServiceWith wires explicit generators
func NewAIServiceWith(extractors []Generator, insights Generator, models Models) *AIService {
	return &AIService{extractors: extractors, insights: insights, models: models}
}

// WithTimeout bounds every AI operation, fallbacks included
func (s *AIService) WithTimeout(d time.Duration) *AIService {
	s.timeout = d
	return s
}

func (s *AIService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *AIService) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// ExtractMacros tries each provider in order and returns the first response
// that parses
func (s *AIService) ExtractMacros(ctx context.Context, text string) ([]domain.MacroResult, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var lastErr error
	for _, g := range s.extractors {
		raw, err := g.Generate(ctx, s.extractPrompt(g.Name(), text))
		if err == nil {
			var rows []domain.MacroResult
			rows, err = llm.ParseMacroResults(raw)
			if err == nil {
				return rows, nil
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.NewTimeoutError(ctxErr, "macro extraction")
		}
		logger.WithContext(ctx).Warn("Macro extraction failed, trying next provider", "provider", g.Name(), "error", err)
		lastErr = apperrors.NewExternalAPIError(err, g.Name())
	}
	if lastErr == nil {
		lastErr = apperrors.NewExternalAPIError(errors.New("no provider"), "extraction")
	}
	return nil, lastErr
}

func (s *AIService) extractPrompt(provider, text string) Prompt {
	if provider == config.ProviderKimi {
		return Prompt{
			Model:       s.models.Kimi,
			System:      kimiExtractPrompt,
			User:        text,
			Temperature: 0.3,
			MaxTokens:   500,
			JSON:        true,
		}
	}
	return Prompt{
		Model:  s.models.Gemini,
		System: geminiExtractPrompt,
		User:   text,
		JSON:   true,
	}
}

// VisionEnabled reports whether photo extraction has a provider
func (s *AIService) VisionEnabled() bool {
	return s.insights != nil
}

// ExtractMacrosFromImage reads food rows off a meal photo. Only Gemini takes
// images; the caption, when given, is passed along as a hint.
func (s *AIService) ExtractMacrosFromImage(ctx context.Context, image []byte, mime, caption string) ([]domain.MacroResult, error) {
	if s.insights == nil {
		return nil, apperrors.NewExternalAPIError(errors.New("gemini not configured"), config.ProviderGemini)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	user := photoDefaultHint
	if strings.TrimSpace(caption) != "" {
		user = "The user describes the photo as: " + strings.TrimSpace(caption)
	}
	raw, err := s.insights.Generate(ctx, Prompt{
		Model:     s.models.Gemini,
		System:    geminiPhotoPrompt,
		User:      user,
		JSON:      true,
		Image:     image,
		ImageMIME: mime,
	})
	if err == nil {
		var rows []domain.MacroResult
		if rows, err = llm.ParseMacroResults(raw); err == nil {
			return rows, nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, apperrors.NewTimeoutError(ctxErr, "photo extraction")
	}
	return nil, apperrors.NewExternalAPIError(err, config.ProviderGemini)
}

// AnalyzeDays writes the coaching analysis for the given days
func (s *AIService) AnalyzeDays(ctx context.Context, days []domain.DayData, goals domain.MacroGoals) (string, error) {
	if s.insights == nil {
		return "", apperrors.NewExternalAPIError(errors.New("gemini not configured"), config.ProviderGemini)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	raw, err := s.insights.Generate(ctx, Prompt{
		Model:       s.models.Gemini,
		System:      analysisPrompt,
		User:        buildAnalysisInput(days, goals),
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err == nil {
		var text string
		if text, err = llm.ParseAnalysis(raw); err == nil {
			return text, nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", apperrors.NewTimeoutError(ctxErr, "analysis")
	}
	return "", apperrors.NewExternalAPIError(err, config.ProviderGemini)
}

// SuggestRecipes asks for meals that close the macro gaps of the given days
func (s *AIService) SuggestRecipes(ctx context.Context, days []domain.DayData, goals domain.MacroGoals) ([]domain.RecipeSuggestion, error) {
	if s.insights == nil {
		return nil, apperrors.NewExternalAPIError(errors.New("gemini not configured"), config.ProviderGemini)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	raw, err := s.insights.Generate(ctx, Prompt{
		Model:  s.models.GeminiRecipe,
		System: recipesPrompt,
		User:   buildRecipesInput(days, goals),
		JSON:   true,
	})
	if err == nil {
		var suggestions []domain.RecipeSuggestion
		if suggestions, err = llm.ParseRecipes(raw); err == nil {
			return suggestions, nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, apperrors.NewTimeoutError(ctxErr, "recipes")
	}
	return nil, apperrors.NewExternalAPIError(err, config.ProviderGemini)
}
