// Package images produces the per-slide imagery for a deck. Providers return
// raw image bytes; the Service owns persistence and the failure policy.
package images

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type Provider interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Failure policies for a single slide image. Placeholder matches the original
// behavior of never failing a run over imagery.
const (
	PolicyPlaceholder = "placeholder"
	PolicySkip        = "skip"
	PolicyFail        = "fail"
)

type Service struct {
	outputDir string
	primary   Provider
	fallback  Provider
	policy    string
}

type ServiceOptions struct {
	OutputDir string
	Primary   Provider
	Fallback  Provider
	OnFailure string
}

func NewService(opts ServiceOptions) *Service {
	policy := opts.OnFailure
	if policy == "" {
		policy = PolicyPlaceholder
	}

	return &Service{
		outputDir: opts.OutputDir,
		primary:   opts.Primary,
		fallback:  opts.Fallback,
		policy:    policy,
	}
}

// GenerateImage produces an image for the prompt and persists it under the
// output directory. It returns the written path, or "" when the image was
// skipped under the skip policy.
func (s *Service) GenerateImage(ctx context.Context, prompt, filename string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	data, err := s.generate(ctx, prompt)
	if err != nil {
		switch s.policy {
		case PolicySkip:
			slog.Warn("Image generation failed, skipping slide image", "error", err)
			return "", nil
		case PolicyFail:
			return "", fmt.Errorf("generate image: %w", err)
		default:
			slog.Warn("Image generation failed, using placeholder", "error", err)
			data, err = RenderPlaceholder(prompt)
			if err != nil {
				return "", fmt.Errorf("render placeholder: %w", err)
			}
		}
	}

	path := filepath.Join(s.outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return path, nil
}

func (s *Service) generate(ctx context.Context, prompt string) ([]byte, error) {
	data, err := s.primary.Generate(ctx, prompt)
	if err == nil {
		return data, nil
	}

	if s.fallback == nil {
		return nil, err
	}

	slog.Warn("Primary image provider failed, trying fallback", "error", err)
	data, fbErr := s.fallback.Generate(ctx, prompt)
	if fbErr != nil {
		return nil, fmt.Errorf("primary: %v, fallback: %w", err, fbErr)
	}

	return data, nil
}
