package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"slidecraft/internal/outline"
	"slidecraft/pkg/prompts"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MinSlides   int
	MaxSlides   int
	MaxBullets  int
}

// OpenAIClient plans slides through an OpenAI-compatible chat completion
// endpoint. When the first response fails validation, one repair round-trip
// asks the model to fix its own output before giving up.
type OpenAIClient struct {
	client  openai.Client
	cfg     Config
	prompts *prompts.Prompts
}

func NewOpenAIClient(cfg Config, p *prompts.Prompts) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		cfg:     cfg,
		prompts: p,
	}, nil
}

func (c *OpenAIClient) GeneratePlan(ctx context.Context, topic string) (*outline.Plan, error) {
	prompt, err := c.prompts.RenderPlan(prompts.PlanParams{
		Topic:      topic,
		MinSlides:  c.cfg.MinSlides,
		MaxSlides:  c.cfg.MaxSlides,
		MaxBullets: c.cfg.MaxBullets,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generateJSONContent(ctx, c.prompts.System.Planner, prompt)
	if err != nil {
		return nil, err
	}

	plan, err := outline.Parse(content)
	if err == nil {
		return plan, nil
	}

	slog.Warn("Plan failed validation, attempting repair", "error", err)
	return c.repairPlan(ctx, topic, content)
}

func (c *OpenAIClient) repairPlan(ctx context.Context, topic, badOutput string) (*outline.Plan, error) {
	prompt, err := c.prompts.RenderRepair(prompts.RepairParams{
		Topic:     topic,
		Schema:    outline.Schema,
		BadOutput: badOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("render repair prompt: %w", err)
	}

	content, err := c.generateJSONContent(ctx, c.prompts.System.Planner, prompt)
	if err != nil {
		return nil, err
	}

	plan, err := outline.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("plan invalid after repair: %w", err)
	}

	return plan, nil
}

func (c *OpenAIClient) generateJSONContent(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.cfg.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response")
	}

	return content, nil
}
