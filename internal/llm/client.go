package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/lang"
	"github.com/baraka-desk/backend/pkg/circuitbreaker"
	"github.com/baraka-desk/backend/pkg/logger"
	"github.com/baraka-desk/backend/pkg/retry"
)

// Client wraps the OpenAI API for the three jobs the assistant needs:
// language detection, translation, and context-constrained fallback
// answering. A nil *Client is valid and makes every call degrade the
// way a missing API key does.
type Client struct {
	client           *openai.Client
	model            string
	translationModel string
	temperature      float32
	maxTokens        int
	timeout          time.Duration
	cb               *circuitbreaker.CircuitBreaker
	retryConfig      retry.Config
}

type Config struct {
	APIKey           string
	Model            string
	TranslationModel string
	Temperature      float32
	MaxTokens        int
	TimeoutSec       int
}

// NewClient returns nil when no API key is configured; callers treat a
// nil client as "remote assistance unavailable".
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		logger.Warn("No LLM API key configured; translation and AI fallback are disabled")
		return nil
	}

	cb := circuitbreaker.New("llm", circuitbreaker.Config{
		MaxRequests:      5,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger.Info("LLM client initialized",
		zap.String("model", cfg.Model),
		zap.String("translation_model", cfg.TranslationModel),
	)

	return &Client{
		client:           openai.NewClient(cfg.APIKey),
		model:            cfg.Model,
		translationModel: cfg.TranslationModel,
		temperature:      cfg.Temperature,
		maxTokens:        cfg.MaxTokens,
		timeout:          timeout,
		cb:               cb,
		retryConfig:      retryConfig,
	}
}

// Available reports whether remote calls can be attempted.
func (c *Client) Available() bool {
	return c != nil
}

func (c *Client) complete(ctx context.Context, model, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}

	var content string

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			resp, err := c.client.CreateChatCompletion(
				ctx,
				openai.ChatCompletionRequest{
					Model:       model,
					Messages:    messages,
					Temperature: temperature,
					MaxTokens:   maxTokens,
				},
			)

			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("completion returned no choices")
			}

			logger.Debug("LLM completion generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			)

			content = strings.TrimSpace(resp.Choices[0].Message.Content)
			return nil
		})
	})

	if err != nil {
		return "", err
	}

	return content, nil
}

// DetectAndTranslate detects the language of userText and translates it
// to English in a single call. Any failure degrades to ("en", userText).
func (c *Client) DetectAndTranslate(ctx context.Context, userText string) (string, string) {
	if c == nil {
		return lang.English, userText
	}

	protected, mapping := lang.Protect(userText)

	systemPrompt := `You are a language detector and translator.
Task:
1) Detect the language of the INPUT.
2) Translate the INPUT to English.

Return ONLY valid JSON with keys: lang, english.
lang must be one of: en, sw, am, so, ar.
Preserve any placeholders exactly (tokens like @@PH0@@). Do NOT change them.`

	raw, err := c.complete(ctx, c.translationModel, systemPrompt, "INPUT:\n"+protected, 0, c.maxTokens)
	if err != nil {
		logger.Warn("Language detection failed", zap.Error(err))
		return lang.English, userText
	}

	var out struct {
		Lang    string `json:"lang"`
		English string `json:"english"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("Language detection returned invalid JSON", zap.Error(err))
		return lang.English, userText
	}

	detected := lang.Sanitize(strings.ToLower(strings.TrimSpace(out.Lang)))
	english := out.English
	if english == "" {
		english = protected
	}

	return detected, lang.Restore(english, mapping)
}

// Translate renders English text in the target language. en is a no-op
// and failures degrade to the English text.
func (c *Client) Translate(ctx context.Context, textEN, target string) string {
	if target == lang.English || c == nil {
		return textEN
	}

	protected, mapping := lang.Protect(textEN)

	systemPrompt := fmt.Sprintf(`You are a professional translator.
Translate from English to %s.
Rules:
- Output ONLY the translation, no explanations.
- Preserve placeholders exactly (tokens like @@PH0@@). Do NOT change them.
- Keep numbers, currency, and product names unchanged unless the target language normally uses a different script.`,
		lang.Name(target))

	out, err := c.complete(ctx, c.translationModel, systemPrompt, protected, 0, c.maxTokens)
	if err != nil {
		logger.Warn("Translation failed", zap.Error(err), zap.String("target", target))
		return textEN
	}

	return lang.Restore(out, mapping)
}

// FallbackAnswer answers a customer question using ONLY the supplied
// FAQ snippets as context. The model is told to ask a follow-up when
// the context is insufficient, never to invent facts.
func (c *Client) FallbackAnswer(ctx context.Context, queryEN string, snippets []string, outLang string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("llm client not configured")
	}

	systemPrompt := fmt.Sprintf(`Your name is Baraka. `+
		`You are a helpful Kenyan retail-banking & SACCO support assistant. `+
		`Answer ONLY using the provided context. `+
		`If context is insufficient, ask a short follow-up question. `+
		`Never request PINs or passwords. `+
		`Reply in %s.`, lang.Name(outLang))

	userPrompt := fmt.Sprintf("Customer question (English): %s\n\nContext (FAQ snippets, English):\n%s",
		queryEN, strings.Join(snippets, "\n---\n"))

	answer, err := c.complete(ctx, c.model, systemPrompt, userPrompt, c.temperature, c.maxTokens)
	if err != nil {
		return "", fmt.Errorf("failed to generate fallback answer: %w", err)
	}

	logger.Info("AI fallback answer generated",
		zap.Int("context_snippets", len(snippets)),
		zap.Int("answer_length", len(answer)),
	)

	return answer, nil
}
