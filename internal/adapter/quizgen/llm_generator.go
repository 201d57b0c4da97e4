package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"codezetta/internal/config"
	"codezetta/internal/domain"
	"codezetta/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const generationTimeout = 60 * time.Second

const promptTemplate = `You are a quiz author for a programming learning platform. Write %d multiple-choice questions about %s for the %s level.
Respond with ONLY a JSON array in the following format:
[
  {
    "text": "question text",
    "options": ["first option", "second option", "third option", "fourth option"],
    "correctIndex": 0,
    "explanation": "one or two sentences on why the answer is correct"
  }
]

Rules:
1. Every question has exactly 4 options and exactly one correct answer
2. correctIndex is the zero-based index of the correct option
3. Questions must not repeat`

type llmQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// LLMQuizGenerator asks a language model for questions and falls back to
// another generator when the model fails or answers with unusable output.
type LLMQuizGenerator struct {
	model    llms.Model
	fallback domain.QuizGenerator
}

func NewLLMQuizGenerator(model llms.Model, fallback domain.QuizGenerator) *LLMQuizGenerator {
	return &LLMQuizGenerator{model: model, fallback: fallback}
}

// NewFromConfig picks the generator for cfg.Provider: "ollama" or "openai"
// wrap the template generator, anything else returns it directly.
func NewFromConfig(cfg config.LLMConfig) (domain.QuizGenerator, error) {
	tmpl := NewTemplateQuizGenerator()
	switch cfg.Provider {
	case "ollama":
		model, err := ollama.New(ollama.WithServerURL(cfg.ServerURL), ollama.WithModel(cfg.Model))
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewLLMQuizGenerator(model, tmpl), nil
	case "openai":
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewLLMQuizGenerator(model, tmpl), nil
	default:
		return tmpl, nil
	}
}

func (g *LLMQuizGenerator) GenerateQuestions(ctx context.Context, subject string, level domain.QuizLevel, count int) ([]domain.Question, error) {
	l := logger.Get()

	questions, err := g.generate(ctx, subject, level, count)
	if err == nil {
		l.Info("Generated quiz questions with LLM", zap.String("subject", subject), zap.Int("count", len(questions)))
		return questions, nil
	}

	l.Warn("LLM quiz generation failed, using template questions", zap.String("subject", subject), zap.Error(err))
	return g.fallback.GenerateQuestions(ctx, subject, level, count)
}

func (g *LLMQuizGenerator) generate(ctx context.Context, subject string, level domain.QuizLevel, count int) ([]domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	prompt := fmt.Sprintf(promptTemplate, count, subject, level)
	raw, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	logger.Get().Debug("Raw LLM response received", zap.String("raw_response", raw))

	return parseQuestions(raw, count)
}

// parseQuestions extracts the JSON array from a model response, dropping any
// <think> block, and keeps at most limit well-formed questions.
func parseQuestions(raw string, limit int) ([]domain.Question, error) {
	cleaned := strings.TrimSpace(raw)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array found in LLM response")
	}

	var items []llmQuestion
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from LLM: %w", err)
	}

	questions := make([]domain.Question, 0, len(items))
	for _, item := range items {
		if len(questions) == limit {
			break
		}
		text := strings.TrimSpace(item.Text)
		if text == "" || len(item.Options) < 2 || item.CorrectIndex < 0 || item.CorrectIndex >= len(item.Options) {
			continue
		}
		options := make([]domain.AnswerOption, 0, len(item.Options))
		for i, opt := range item.Options {
			options = append(options, domain.AnswerOption{Text: strings.TrimSpace(opt), IsCorrect: i == item.CorrectIndex})
		}
		questions = append(questions, domain.Question{
			Text:        text,
			Type:        domain.QuestionTypeMCQ,
			Explanation: strings.TrimSpace(item.Explanation),
			Options:     options,
		})
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("LLM response contained no usable questions")
	}
	return questions, nil
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
