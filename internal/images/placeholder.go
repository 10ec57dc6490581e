package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderSize      = 1024
	placeholderMaxPrompt = 60
)

// RenderPlaceholder draws a neutral panel with the truncated prompt on it,
// used when no provider can supply a real image.
func RenderPlaceholder(prompt string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{240, 240, 240, 255}), image.Point{}, draw.Src)

	text := prompt
	if len(text) > placeholderMaxPrompt {
		text = text[:placeholderMaxPrompt] + "..."
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{60, 60, 60, 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(40, 40),
	}
	drawer.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}

	return buf.Bytes(), nil
}
