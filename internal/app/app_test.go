package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"slidecraft/internal/outline"
	"slidecraft/pkg/config"
)

type mockLLM struct {
	plan  *outline.Plan
	err   error
	calls int
}

func (m *mockLLM) GeneratePlan(_ context.Context, _ string) (*outline.Plan, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.plan, nil
}

type mockImages struct {
	dir     string
	err     error
	prompts []string
}

func (m *mockImages) GenerateImage(_ context.Context, prompt, filename string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	path := filepath.Join(m.dir, filename)
	if err := os.WriteFile(path, []byte("img"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// fakeDeck writes a marker file on Save without creating directories, so a
// test fails if the pipeline forgot to create them first.
type fakeDeck struct {
	slides  []outline.Slide
	images  []string
	content string
	saved   string
	closed  bool
}

func (f *fakeDeck) AddSlide(slide outline.Slide, imagePath string) error {
	f.slides = append(f.slides, slide)
	f.images = append(f.images, imagePath)
	return nil
}

func (f *fakeDeck) SlideCount() int { return len(f.slides) }

func (f *fakeDeck) Save(path string) error {
	f.saved = path
	return os.WriteFile(path, []byte(f.content), 0644)
}

func (f *fakeDeck) Close() { f.closed = true }

type mockUploader struct {
	url string
	err error
}

func (m *mockUploader) UploadDeck(_ context.Context, deckPath string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url + "/" + filepath.Base(deckPath), nil
}

type dirEnsurer struct{}

func (dirEnsurer) EnsureDeckDir(deckPath string) error {
	dir := filepath.Dir(deckPath)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func testPlan() *outline.Plan {
	return &outline.Plan{
		Topic: "Volcanoes",
		Slides: []outline.Slide{
			{Type: outline.TypeTitle, Heading: "Volcanoes", ImagePrompt: "a volcano at sunset"},
			{Type: outline.TypeContent, Heading: "Eruptions", BulletPoints: []string{"Magma", "Ash"}, ImagePrompt: "erupting volcano"},
			{Type: outline.TypeContent, Heading: "Types", BulletPoints: []string{"Shield"}},
		},
	}
}

func newTestService(t *testing.T, llmClient *mockLLM, imgs ImageGenerator, deck *fakeDeck) *Service {
	t.Helper()
	return NewService(ServiceOptions{
		Config:  &config.Config{},
		LLM:     llmClient,
		Images:  imgs,
		Storage: dirEnsurer{},
		NewDeck: func() DeckBuilder { return deck },
	})
}

func TestGenerateSlideCountMatchesPlan(t *testing.T) {
	plan := testPlan()
	deck := &fakeDeck{content: "deck"}
	svc := newTestService(t, &mockLLM{plan: plan}, nil, deck)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	result, err := NewPipeline(svc).Generate(context.Background(), "Volcanoes", out)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if result.SlideCount != len(plan.Slides) {
		t.Errorf("SlideCount = %d, want %d", result.SlideCount, len(plan.Slides))
	}
	if result.DeckPath != out {
		t.Errorf("DeckPath = %q, want %q", result.DeckPath, out)
	}
	if result.Title != "Volcanoes" {
		t.Errorf("Title = %q, want Volcanoes", result.Title)
	}
	if !deck.closed {
		t.Error("deck was not closed")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("deck file was not written: %v", err)
	}
}

func TestGenerateImagesDisabledMakesNoFetchCalls(t *testing.T) {
	deck := &fakeDeck{content: "deck"}
	svc := newTestService(t, &mockLLM{plan: testPlan()}, nil, deck)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	result, err := NewPipeline(svc).Generate(context.Background(), "Volcanoes", out)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(result.ImagePaths) != 0 {
		t.Errorf("ImagePaths = %v, want none", result.ImagePaths)
	}
	for i, img := range deck.images {
		if img != "" {
			t.Errorf("slide %d got image %q, want none", i+1, img)
		}
	}
}

func TestGenerateOnlyContentSlidesGetImages(t *testing.T) {
	imgs := &mockImages{dir: t.TempDir()}
	deck := &fakeDeck{content: "deck"}
	svc := newTestService(t, &mockLLM{plan: testPlan()}, imgs, deck)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	result, err := NewPipeline(svc).Generate(context.Background(), "Volcanoes", out)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// Title slide has a prompt but is never illustrated; the second content
	// slide has no prompt.
	if len(imgs.prompts) != 1 || imgs.prompts[0] != "erupting volcano" {
		t.Errorf("prompts = %v, want only the content slide prompt", imgs.prompts)
	}
	if len(result.ImagePaths) != 1 {
		t.Errorf("ImagePaths = %v, want one", result.ImagePaths)
	}
	if deck.images[1] == "" {
		t.Error("content slide did not receive its image path")
	}
	if deck.images[0] != "" || deck.images[2] != "" {
		t.Errorf("unexpected image paths: %v", deck.images)
	}
}

func TestGenerateCreatesMissingOutputDir(t *testing.T) {
	deck := &fakeDeck{content: "deck"}
	svc := newTestService(t, &mockLLM{plan: testPlan()}, nil, deck)

	out := filepath.Join(t.TempDir(), "not", "yet", "there", "deck.pptx")
	if _, err := NewPipeline(svc).Generate(context.Background(), "Volcanoes", out); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("deck file was not written in created directory: %v", err)
	}
}

func TestGenerateOverwritesExistingDeck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")

	for _, content := range []string{"first", "second"} {
		deck := &fakeDeck{content: content}
		svc := newTestService(t, &mockLLM{plan: testPlan()}, nil, deck)
		if _, err := NewPipeline(svc).Generate(context.Background(), "Volcanoes", out); err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("deck content = %q, want the re-run to overwrite", data)
	}
}

func TestGeneratePlannerFailureWritesNothing(t *testing.T) {
	deck := &fakeDeck{content: "deck"}
	svc := newTestService(t, &mockLLM{err: errors.New("unparseable output")}, nil, deck)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	_, err := NewPipeline(svc).Generate(context.Background(), "Volcanoes", out)
	if err == nil {
		t.Fatal("Generate() should fail when planning fails")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no deck file should exist after a planner failure")
	}
}

func TestGenerateImageFailureAborts(t *testing.T) {
	imgs := &mockImages{dir: t.TempDir(), err: errors.New("image api down")}
	deck := &fakeDeck{content: "deck"}
	svc := newTestService(t, &mockLLM{plan: testPlan()}, imgs, deck)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	if _, err := NewPipeline(svc).Generate(context.Background(), "Volcanoes", out); err == nil {
		t.Fatal("Generate() should surface image service errors")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no deck file should exist after an image failure")
	}
}

func TestGenerateEmptyTopic(t *testing.T) {
	svc := newTestService(t, &mockLLM{plan: testPlan()}, nil, &fakeDeck{})
	if _, err := NewPipeline(svc).Generate(context.Background(), "  ", "deck.pptx"); err == nil {
		t.Error("Generate() should reject an empty topic")
	}
}

func TestUpload(t *testing.T) {
	svc := NewService(ServiceOptions{
		Config:   &config.Config{},
		Uploader: &mockUploader{url: "gs://bucket/decks"},
	})

	url, err := NewPipeline(svc).Upload(context.Background(), "/tmp/deck.pptx")
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if url != "gs://bucket/decks/deck.pptx" {
		t.Errorf("Upload() = %q", url)
	}
}

func TestUploadWithoutUploader(t *testing.T) {
	svc := NewService(ServiceOptions{Config: &config.Config{}})
	if _, err := NewPipeline(svc).Upload(context.Background(), "x.pptx"); err == nil {
		t.Error("Upload() should fail when no bucket is configured")
	}
}

func TestServiceGetters(t *testing.T) {
	cfg := &config.Config{}
	svc := NewService(ServiceOptions{Config: cfg})

	if svc.Config() != cfg {
		t.Error("Config() returned wrong config")
	}
	if svc.LLM() != nil {
		t.Error("LLM() should return nil when set to nil")
	}
	if svc.Images() != nil {
		t.Error("Images() should return nil when set to nil")
	}
	if svc.Uploader() != nil {
		t.Error("Uploader() should return nil when set to nil")
	}
}

func TestWrittenPaths(t *testing.T) {
	got := writtenPaths([]string{"", "a.png", "", "b.png"})
	want := fmt.Sprintf("%v", []string{"a.png", "b.png"})
	if fmt.Sprintf("%v", got) != want {
		t.Errorf("writtenPaths() = %v, want %v", got, want)
	}
}
