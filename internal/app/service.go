package app

import (
	"context"

	"slidecraft/internal/llm"
	"slidecraft/internal/outline"
	"slidecraft/pkg/config"
)

// ImageGenerator produces and persists one slide image; implemented by
// images.Service.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, filename string) (string, error)
}

// DeckBuilder assembles one presentation; implemented by deck.Builder.
type DeckBuilder interface {
	AddSlide(slide outline.Slide, imagePath string) error
	SlideCount() int
	Save(path string) error
	Close()
}

// Uploader pushes a finished deck to remote storage; implemented by
// storage.GCSStorage.
type Uploader interface {
	UploadDeck(ctx context.Context, deckPath string) (string, error)
}

// DeckDirEnsurer is the slice of storage.LocalStorage the pipeline needs.
type DeckDirEnsurer interface {
	EnsureDeckDir(deckPath string) error
}

type Service struct {
	cfg      *config.Config
	llm      llm.Client
	images   ImageGenerator
	storage  DeckDirEnsurer
	uploader Uploader
	newDeck  func() DeckBuilder
}

type ServiceOptions struct {
	Config   *config.Config
	LLM      llm.Client
	Images   ImageGenerator
	Storage  DeckDirEnsurer
	Uploader Uploader
	NewDeck  func() DeckBuilder
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:      opts.Config,
		llm:      opts.LLM,
		images:   opts.Images,
		storage:  opts.Storage,
		uploader: opts.Uploader,
		newDeck:  opts.NewDeck,
	}
}

func (s *Service) Config() *config.Config  { return s.cfg }
func (s *Service) LLM() llm.Client         { return s.llm }
func (s *Service) Images() ImageGenerator  { return s.images }
func (s *Service) Storage() DeckDirEnsurer { return s.storage }
func (s *Service) Uploader() Uploader      { return s.uploader }
func (s *Service) NewDeck() DeckBuilder    { return s.newDeck() }
