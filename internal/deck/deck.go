// Package deck assembles the final presentation file from a slide plan and
// any generated images.
package deck

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/dml"

	"slidecraft/internal/outline"
)

func init() {
	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			slog.Warn("Failed to set UniDoc license key", "error", err)
		}
	}
}

type Builder struct {
	ppt *presentation.Presentation
}

func NewBuilder() *Builder {
	return &Builder{ppt: presentation.New()}
}

func (b *Builder) Close() {
	b.ppt.Close()
}

func (b *Builder) SlideCount() int {
	return len(b.ppt.Slides())
}

// AddSlide appends one slide rendered according to its type. imagePath may be
// empty; it is only placed on content slides and must exist on disk.
func (b *Builder) AddSlide(slide outline.Slide, imagePath string) error {
	switch slide.Type {
	case outline.TypeTitle:
		b.addTitleSlide(slide)
	case outline.TypeSection:
		b.addSectionSlide(slide)
	default:
		return b.addContentSlide(slide, imagePath)
	}
	return nil
}

// Save writes the deck to path, creating parent directories and overwriting
// any existing file.
func (b *Builder) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := b.ppt.Validate(); err != nil {
		return fmt.Errorf("validate deck: %w", err)
	}

	if err := b.ppt.SaveToFile(path); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}

	return nil
}

func (b *Builder) addTitleSlide(slide outline.Slide) {
	s := b.ppt.AddSlide()

	tb := s.AddTextBox()
	tb.Properties().SetPosition(0.5*measurement.Inch, 2*measurement.Inch)
	tb.Properties().SetSize(9*measurement.Inch, 1.5*measurement.Inch)

	para := tb.AddParagraph()
	para.Properties().SetAlign(dml.ST_TextAlignTypeCtr)
	run := para.AddRun()
	run.SetText(slide.Heading)
	run.Properties().SetSize(40 * measurement.Point)
	run.Properties().SetBold(true)

	if len(slide.BulletPoints) == 0 {
		return
	}

	sub := s.AddTextBox()
	sub.Properties().SetPosition(0.5*measurement.Inch, 3.6*measurement.Inch)
	sub.Properties().SetSize(9*measurement.Inch, 1.5*measurement.Inch)
	for _, point := range slide.BulletPoints {
		p := sub.AddParagraph()
		p.Properties().SetAlign(dml.ST_TextAlignTypeCtr)
		r := p.AddRun()
		r.SetText(point)
		r.Properties().SetSize(20 * measurement.Point)
		r.Properties().SetSolidFill(color.Gray)
	}
}

func (b *Builder) addSectionSlide(slide outline.Slide) {
	s := b.ppt.AddSlide()

	b.addHeading(s, slide.Heading, 32)
	b.addBullets(s, slide.BulletPoints, 0.7, 1.6, 8.6)
}

func (b *Builder) addContentSlide(slide outline.Slide, imagePath string) error {
	s := b.ppt.AddSlide()

	b.addHeading(s, slide.Heading, 28)

	bulletWidth := 8.6
	if imagePath != "" {
		bulletWidth = 5.4
	}
	b.addBullets(s, slide.BulletPoints, 0.7, 1.6, bulletWidth)

	if imagePath == "" {
		return nil
	}
	if _, err := os.Stat(imagePath); err != nil {
		slog.Warn("Slide image missing, leaving slide text-only", "path", imagePath)
		return nil
	}

	return b.placeImage(s, imagePath)
}

func (b *Builder) addHeading(s presentation.Slide, heading string, sizePt float64) {
	tb := s.AddTextBox()
	tb.Properties().SetPosition(0.5*measurement.Inch, 0.4*measurement.Inch)
	tb.Properties().SetSize(9*measurement.Inch, 1*measurement.Inch)

	para := tb.AddParagraph()
	run := para.AddRun()
	run.SetText(heading)
	run.Properties().SetSize(measurement.Distance(sizePt) * measurement.Point)
	run.Properties().SetBold(true)
}

func (b *Builder) addBullets(s presentation.Slide, points []string, left, top, width float64) {
	if len(points) == 0 {
		return
	}

	tb := s.AddTextBox()
	tb.Properties().SetPosition(measurement.Distance(left)*measurement.Inch, measurement.Distance(top)*measurement.Inch)
	tb.Properties().SetSize(measurement.Distance(width)*measurement.Inch, 4.6*measurement.Inch)

	for _, point := range points {
		para := tb.AddParagraph()
		para.Properties().SetBulletChar("•")
		run := para.AddRun()
		run.SetText(point)
		run.Properties().SetSize(20 * measurement.Point)
	}
}

func (b *Builder) placeImage(s presentation.Slide, imagePath string) error {
	img, err := common.ImageFromFile(imagePath)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	iref, err := b.ppt.AddImage(img)
	if err != nil {
		return fmt.Errorf("add image: %w", err)
	}

	width := measurement.Distance(3.1 * measurement.Inch)
	height := width
	if img.Size.X > 0 {
		height = width * measurement.Distance(img.Size.Y) / measurement.Distance(img.Size.X)
	}

	ib := s.AddImage(iref)
	ib.Properties().SetPosition(6.4*measurement.Inch, 1.6*measurement.Inch)
	ib.Properties().SetWidth(width)
	ib.Properties().SetHeight(height)

	return nil
}
