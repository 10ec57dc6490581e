package deck

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"slidecraft/internal/outline"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(0, 0, color.RGBA{0, 128, 255, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func testPlan() *outline.Plan {
	return &outline.Plan{
		Topic: "Deep sea exploration",
		Slides: []outline.Slide{
			{Type: outline.TypeTitle, Heading: "Deep Sea Exploration", BulletPoints: []string{"A journey down"}},
			{Type: outline.TypeSection, Heading: "The Abyss", BulletPoints: []string{"Below 4000m"}},
			{Type: outline.TypeContent, Heading: "Life Down There", BulletPoints: []string{"Anglerfish", "Tube worms"}, ImagePrompt: "deep sea creatures"},
		},
	}
}

func TestBuilderSlideCountMatchesPlan(t *testing.T) {
	b := NewBuilder()
	defer b.Close()

	plan := testPlan()
	for _, slide := range plan.Slides {
		if err := b.AddSlide(slide, ""); err != nil {
			t.Fatalf("AddSlide(%q) error: %v", slide.Heading, err)
		}
	}

	if b.SlideCount() != len(plan.Slides) {
		t.Errorf("SlideCount() = %d, want %d", b.SlideCount(), len(plan.Slides))
	}
}

func TestAddContentSlideWithImage(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "slide_01.png")
	writeTestPNG(t, imgPath)

	b := NewBuilder()
	defer b.Close()

	slide := outline.Slide{
		Type:         outline.TypeContent,
		Heading:      "With Image",
		BulletPoints: []string{"point"},
	}
	if err := b.AddSlide(slide, imgPath); err != nil {
		t.Fatalf("AddSlide() error: %v", err)
	}
	if b.SlideCount() != 1 {
		t.Errorf("SlideCount() = %d, want 1", b.SlideCount())
	}
}

func TestAddContentSlideMissingImageIsTolerated(t *testing.T) {
	b := NewBuilder()
	defer b.Close()

	slide := outline.Slide{Type: outline.TypeContent, Heading: "X"}
	if err := b.AddSlide(slide, filepath.Join(t.TempDir(), "nope.png")); err != nil {
		t.Errorf("AddSlide() with missing image should degrade to text-only, got %v", err)
	}
	if b.SlideCount() != 1 {
		t.Errorf("SlideCount() = %d, want 1", b.SlideCount())
	}
}

func TestAddSlideTypes(t *testing.T) {
	tests := []struct {
		name  string
		slide outline.Slide
	}{
		{"title", outline.Slide{Type: outline.TypeTitle, Heading: "T"}},
		{"titleWithSubtitle", outline.Slide{Type: outline.TypeTitle, Heading: "T", BulletPoints: []string{"sub"}}},
		{"section", outline.Slide{Type: outline.TypeSection, Heading: "S", BulletPoints: []string{"a", "b"}}},
		{"contentNoBullets", outline.Slide{Type: outline.TypeContent, Heading: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			defer b.Close()

			if err := b.AddSlide(tt.slide, ""); err != nil {
				t.Fatalf("AddSlide() error: %v", err)
			}
			if b.SlideCount() != 1 {
				t.Errorf("SlideCount() = %d, want 1", b.SlideCount())
			}
		})
	}
}
