package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage manages the output tree: generated decks at the top level and
// images in their own directory.
type LocalStorage struct {
	outputDir string
	imageDir  string
}

func NewLocalStorage(outputDir, imageDir string) *LocalStorage {
	return &LocalStorage{
		outputDir: outputDir,
		imageDir:  imageDir,
	}
}

func (s *LocalStorage) EnsureDirectories() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.MkdirAll(s.imageDir, 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	return nil
}

// EnsureDeckDir creates the parent directory of a deck path so a save never
// fails on a missing directory.
func (s *LocalStorage) EnsureDeckDir(deckPath string) error {
	dir := filepath.Dir(deckPath)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create deck directory: %w", err)
	}
	return nil
}

func (s *LocalStorage) ListDecks() ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var decks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pptx") {
			decks = append(decks, filepath.Join(s.outputDir, entry.Name()))
		}
	}

	return decks, nil
}

// Clear removes generated decks and images, leaving the directories in place.
func (s *LocalStorage) Clear() (int, error) {
	decks, err := s.ListDecks()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, deck := range decks {
		if err := os.Remove(deck); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", deck, err)
		}
		removed++
	}

	entries, err := os.ReadDir(s.imageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return removed, nil
		}
		return removed, fmt.Errorf("failed to read image directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.imageDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove image %s: %w", entry.Name(), err)
		}
	}

	return removed, nil
}
