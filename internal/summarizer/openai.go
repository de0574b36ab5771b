package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// go-openai drops a zero temperature via omitempty, which servers read as their default.
const greedyTemperature = 1e-6

const systemPrompt = `You write titles for paragraphs. Reply with the title only: no quotes, no prefix, no explanation.`

// Config selects an OpenAI-compatible chat completion endpoint.
type Config struct {
	Provider string // openai, ollama, deepseek, or any OpenAI-compatible endpoint
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	Logger   *logrus.Logger
}

// OpenAISummarizer asks a chat completion model for a title with sampling disabled.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

var defaultBaseURLs = map[string]string{
	"ollama":     "http://localhost:11434/v1",
	"deepseek":   "https://api.deepseek.com",
	"openrouter": "https://openrouter.ai/api/v1",
}

func NewOpenAI(cfg Config) (*OpenAISummarizer, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("model name is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURLs[strings.ToLower(cfg.Provider)]
	}
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

func (s *OpenAISummarizer) Name() string {
	return s.model
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string, minLength, maxLength int) (string, error) {
	seed := 0
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   maxLength,
		Temperature: greedyTemperature,
		Seed:        &seed,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text, minLength, maxLength)},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}

	title := strings.TrimSpace(resp.Choices[0].Message.Content)
	if title == "" {
		return "", errors.New("model returned an empty title")
	}

	s.logger.WithFields(logrus.Fields{
		"model":             s.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("summarize completed")

	return title, nil
}

func buildPrompt(text string, minLength, maxLength int) string {
	return fmt.Sprintf("Write a title between %d and %d tokens long for the following paragraph.\n\n%s", minLength, maxLength, text)
}
