package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/logger"
)

// How many of the submitted transactions make it into the prompt. The
// caller sends them newest first, so this keeps the most recent activity.
const maxPromptTransactions = 10

const insightPersona = "You are a knowledgeable Kenyan financial advisor specializing in local " +
	"investment opportunities including NSE stocks, REITs, Treasury Bills, MMFs, Chamas, and SACCOs."

// insightService produces investment commentary through the Gemini API.
type insightService struct {
	client *genai.Client
	model  string
}

// NewInsightService creates a new InsightServicer backed by Gemini. When
// no API key is configured the service is constructed anyway and every
// call fails with a generic upstream error.
func NewInsightService(ctx context.Context, apiKey, model string) InsightServicer {
	svc := &insightService{model: model}

	if apiKey == "" {
		logger.Get().Warn("GEMINI_API_KEY not set; insight generation disabled")
		return svc
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Get().Errorw("failed to create Gemini client", "error", err)
		return svc
	}
	svc.client = client
	return svc
}

// GenerateInsights serializes the snapshot into a prompt and returns the
// model's free-text response verbatim. Upstream detail is logged, never
// returned to the caller.
func (s *insightService) GenerateInsights(ctx context.Context, holdings, transactions []map[string]any) (string, error) {
	if s.client == nil {
		return "", apperrors.ErrInsightUpstreamError
	}

	prompt, err := buildInsightPrompt(holdings, transactions)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInsightUpstreamError, err)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(insightPersona, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   1000,
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInsightUpstreamError, err)
	}

	text := resp.Text()
	if text == "" {
		return "", apperrors.Wrap(apperrors.ErrInsightUpstreamError, fmt.Errorf("empty model response"))
	}
	return text, nil
}

func buildInsightPrompt(holdings, transactions []map[string]any) (string, error) {
	if len(transactions) > maxPromptTransactions {
		transactions = transactions[:maxPromptTransactions]
	}

	holdingsJSON, err := json.MarshalIndent(holdings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing holdings: %w", err)
	}
	transactionsJSON, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing transactions: %w", err)
	}

	var b strings.Builder
	b.WriteString("As a Kenyan financial advisor, analyze this investment portfolio and provide insights:\n\n")
	b.WriteString("Portfolio Holdings:\n")
	b.Write(holdingsJSON)
	b.WriteString("\n\nRecent Transactions:\n")
	b.Write(transactionsJSON)
	b.WriteString("\n\nPlease provide:\n")
	b.WriteString("1. Portfolio performance summary\n")
	b.WriteString("2. Asset allocation recommendations for the Kenyan market\n")
	b.WriteString("3. Risk assessment\n")
	b.WriteString("4. Specific recommendations for NSE stocks, REITs, Treasury Bills, MMFs\n")
	b.WriteString("5. Chama and SACCO investment suggestions\n\n")
	b.WriteString("Keep it concise, practical, and relevant to Kenyan investors.")
	return b.String(), nil
}
