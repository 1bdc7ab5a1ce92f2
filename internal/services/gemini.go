package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/essay-grader/internal/config"
)

var ErrEmptyResponse = errors.New("no text content in response")

// roughly 10000 tokens, the embedding input limit
const maxEmbeddingBytes = 40000

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GradeEssay(ctx context.Context, prompt string, essay *EssayDocument) (string, error)
	GradeEssayWithRetry(ctx context.Context, prompt string, essay *EssayDocument, maxRetries int) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	embedModel  string
	temperature float32
	limiter     *rate.Limiter
	retryDelay  time.Duration
}

func NewGeminiService(cfg config.GeminiConfig, retryDelay time.Duration) (GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   cfg.Model,
		embedModel:  cfg.EmbedModel,
		temperature: cfg.Temperature,
		limiter:     newLimiter(cfg.RequestsPerMinute),
		retryDelay:  retryDelay,
	}, nil
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbeddingBytes)

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// GradeEssay sends the grading prompt together with the essay and returns the
// model's raw reply.
func (g *geminiService) GradeEssay(ctx context.Context, prompt string, essay *EssayDocument) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if essay.Inline() {
		parts = append(parts, genai.NewPartFromBytes(essay.Data, essay.MIMEType))
	} else {
		parts = append(parts, genai.NewPartFromText("**Redação:**\n"+essay.Text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if len(resp.Candidates) > 0 {
			log.Warnf("⚠️  Gemini finished without text, reason: %s", resp.Candidates[0].FinishReason)
		}
		return "", ErrEmptyResponse
	}

	log.Debugf("📊 Gemini response received: %d characters", len(text))
	return text, nil
}

// GradeEssayWithRetry retries GradeEssay with exponential backoff.
func (g *geminiService) GradeEssayWithRetry(ctx context.Context, prompt string, essay *EssayDocument, maxRetries int) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	delay := g.retryDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GradeEssay(ctx, prompt, essay)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if attempt == maxRetries {
			break
		}

		log.Warnf("⚠️ Attempt %d failed: %v. Retrying in %s...", attempt, err, delay)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// truncateUTF8 cuts text to at most max bytes without splitting a rune.
func truncateUTF8(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
