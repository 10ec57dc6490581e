package app

import (
	"context"
	"fmt"

	"slidecraft/internal/deck"
	"slidecraft/internal/images"
	"slidecraft/internal/llm"
	"slidecraft/internal/storage"
	"slidecraft/pkg/config"
	"slidecraft/pkg/prompts"
)

// BuildService wires concrete clients from configuration. The image service
// is nil when image generation is disabled, which skips the stage entirely.
func BuildService(ctx context.Context, cfg *config.Config, imageDir string) (*Service, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	llmClient, err := llm.NewOpenAIClient(llm.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.Planner.Model,
		Temperature: cfg.Planner.Temperature,
		MinSlides:   cfg.Planner.MinSlides,
		MaxSlides:   cfg.Planner.MaxSlides,
		MaxBullets:  cfg.Planner.MaxBullets,
	}, p)
	if err != nil {
		return nil, err
	}

	var imageSvc ImageGenerator
	if cfg.Images.Enabled {
		svc, err := buildImageService(cfg, imageDir)
		if err != nil {
			return nil, err
		}
		imageSvc = svc
	}

	localStorage := storage.NewLocalStorage(cfg.Output.Dir, imageDir)
	if err := localStorage.EnsureDirectories(); err != nil {
		return nil, err
	}

	var uploader Uploader
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSStorage(ctx, cfg.GCSBucket, cfg.GCS.Prefix)
		if err != nil {
			return nil, err
		}
		uploader = gcs
	}

	return NewService(ServiceOptions{
		Config:   cfg,
		LLM:      llmClient,
		Images:   imageSvc,
		Storage:  localStorage,
		Uploader: uploader,
		NewDeck:  func() DeckBuilder { return deck.NewBuilder() },
	}), nil
}

func buildImageService(cfg *config.Config, imageDir string) (*images.Service, error) {
	var primary, fallback images.Provider

	switch cfg.Images.Provider {
	case "stock":
		primary = images.NewStockProvider()
	case "openai":
		p, err := images.NewOpenAIProvider(images.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Images.Model,
			Size:    cfg.Images.Size,
		})
		if err != nil {
			return nil, err
		}
		primary = p
		fallback = images.NewStockProvider()
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.Images.Provider)
	}

	return images.NewService(images.ServiceOptions{
		OutputDir: imageDir,
		Primary:   primary,
		Fallback:  fallback,
		OnFailure: cfg.Images.OnFailure,
	}), nil
}
