// Package outline holds the slide plan produced by the planner. A plan is
// parsed once from model output, validated, and never mutated afterwards.
package outline

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	TypeTitle   = "title"
	TypeSection = "section"
	TypeContent = "content"
)

const MaxBulletPoints = 5

// Schema is sent back to the model on a repair round-trip so it can fix an
// invalid plan against the exact contract we parse.
const Schema = `{
  "type": "object",
  "required": ["topic", "slides"],
  "properties": {
    "topic": {"type": "string", "minLength": 1},
    "slides": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["slide_type", "heading", "bullet_points", "image_prompt"],
        "properties": {
          "slide_type": {"type": "string", "enum": ["title", "section", "content"]},
          "heading": {"type": "string", "minLength": 1},
          "bullet_points": {"type": "array", "maxItems": 5, "items": {"type": "string", "minLength": 1}},
          "image_prompt": {"type": "string"}
        }
      }
    }
  }
}`

type Plan struct {
	Topic  string  `json:"topic"`
	Slides []Slide `json:"slides"`
}

type Slide struct {
	Type         string   `json:"slide_type"`
	Heading      string   `json:"heading"`
	BulletPoints []string `json:"bullet_points"`
	ImagePrompt  string   `json:"image_prompt"`
}

// Parse decodes model output into a validated plan. Models occasionally wrap
// JSON in markdown fences despite instructions, so those are stripped first.
func Parse(content string) (*Plan, error) {
	content = stripFences(content)

	var plan Plan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Topic) == "" {
		return fmt.Errorf("plan topic is empty")
	}
	if len(p.Slides) == 0 {
		return fmt.Errorf("plan has no slides")
	}

	for i, slide := range p.Slides {
		if err := slide.validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Slide) validate() error {
	switch s.Type {
	case TypeTitle, TypeSection, TypeContent:
	default:
		return fmt.Errorf("unknown slide_type %q", s.Type)
	}

	if strings.TrimSpace(s.Heading) == "" {
		return fmt.Errorf("heading is empty")
	}
	if len(s.BulletPoints) > MaxBulletPoints {
		return fmt.Errorf("too many bullet_points: %d (max %d)", len(s.BulletPoints), MaxBulletPoints)
	}
	for i, point := range s.BulletPoints {
		if strings.TrimSpace(point) == "" {
			return fmt.Errorf("bullet_points[%d] is empty", i)
		}
	}

	return nil
}

// Title returns the heading of the first title slide, or fallback when the
// plan has none.
func (p *Plan) Title(fallback string) string {
	for _, slide := range p.Slides {
		if slide.Type == TypeTitle {
			return slide.Heading
		}
	}
	return fallback
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
