package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const downloadTimeout = 120 * time.Second

// OpenAIProvider generates imagery through an OpenAI-compatible images
// endpoint. Models that return a URL instead of inline payload get the image
// downloaded on the spot.
type OpenAIProvider struct {
	client     openai.Client
	model      string
	size       string
	httpClient *http.Client
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Size    string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		size:   cfg.Size,
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(p.model),
		Size:   openai.ImageGenerateParamsSize(p.size),
		N:      openai.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no image in response")
	}

	if b64 := resp.Data[0].B64JSON; b64 != "" {
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		return data, nil
	}

	if url := resp.Data[0].URL; url != "" {
		return p.download(ctx, url)
	}

	return nil, fmt.Errorf("image response has neither payload nor url")
}

func (p *OpenAIProvider) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return data, nil
}
