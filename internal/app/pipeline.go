package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"slidecraft/internal/outline"
)

// Pipeline runs the three stages in order: plan, generate images, assemble.
// One topic in, one deck file out.
type Pipeline struct {
	service *Service
}

type GenerateResult struct {
	Title      string
	DeckPath   string
	SlideCount int
	ImagePaths []string
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

func (p *Pipeline) Generate(ctx context.Context, topic, deckPath string) (*GenerateResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("topic is required")
	}

	slog.Info("Planning slides...", "topic", topic)
	plan, err := p.service.LLM().GeneratePlan(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("plan slides: %w", err)
	}
	slog.Info("Plan ready", "slides", len(plan.Slides))

	imagePaths, err := p.generateImages(ctx, plan)
	if err != nil {
		return nil, err
	}

	slog.Info("Assembling deck...", "path", deckPath)
	builder := p.service.NewDeck()
	defer builder.Close()

	for i, slide := range plan.Slides {
		if err := builder.AddSlide(slide, imagePaths[i]); err != nil {
			return nil, fmt.Errorf("add slide %d: %w", i+1, err)
		}
	}

	if err := p.service.Storage().EnsureDeckDir(deckPath); err != nil {
		return nil, err
	}
	if err := builder.Save(deckPath); err != nil {
		return nil, err
	}

	return &GenerateResult{
		Title:      plan.Title(topic),
		DeckPath:   deckPath,
		SlideCount: builder.SlideCount(),
		ImagePaths: writtenPaths(imagePaths),
	}, nil
}

// generateImages returns one path per slide, empty for slides that get no
// imagery. Only content slides with a prompt are illustrated; when image
// generation is disabled no provider is ever called.
func (p *Pipeline) generateImages(ctx context.Context, plan *outline.Plan) ([]string, error) {
	paths := make([]string, len(plan.Slides))

	imageSvc := p.service.Images()
	if imageSvc == nil {
		slog.Debug("Image generation disabled")
		return paths, nil
	}

	for i, slide := range plan.Slides {
		if slide.Type != outline.TypeContent || slide.ImagePrompt == "" {
			continue
		}

		filename := fmt.Sprintf("slide_%02d.png", i+1)
		slog.Info("Generating image...", "slide", i+1, "prompt", slide.ImagePrompt)
		path, err := imageSvc.GenerateImage(ctx, slide.ImagePrompt, filename)
		if err != nil {
			return nil, fmt.Errorf("image for slide %d: %w", i+1, err)
		}
		paths[i] = path
	}

	return paths, nil
}

// Upload pushes a generated deck to the configured bucket.
func (p *Pipeline) Upload(ctx context.Context, deckPath string) (string, error) {
	uploader := p.service.Uploader()
	if uploader == nil {
		return "", errors.New("no upload destination configured, set GCS_BUCKET")
	}
	return uploader.UploadDeck(ctx, deckPath)
}

func writtenPaths(paths []string) []string {
	var written []string
	for _, path := range paths {
		if path != "" {
			written = append(written, path)
		}
	}
	return written
}
