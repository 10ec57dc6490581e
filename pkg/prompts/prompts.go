package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const (
	defaultSystemPlanner = "You are a slide planning assistant. Return ONLY valid JSON. " +
		"No markdown, no commentary, no code fences. " +
		"The JSON must strictly follow the provided schema."

	defaultPlanTemplate = "Topic: {{.Topic}}\n" +
		"Create a slide plan JSON with {{.MinSlides}}-{{.MaxSlides}} slides. " +
		"Use slide_type in [title, section, content]. " +
		"Each slide must include: slide_type, heading, bullet_points (max {{.MaxBullets}}), image_prompt. " +
		"Ensure bullet_points is an array (may be empty for title)."

	defaultRepairTemplate = "The previous output was invalid. Fix it to be valid JSON ONLY. " +
		"Do not add markdown or code fences. " +
		"Schema reminder: {{.Schema}}\n" +
		"Invalid output: {{.BadOutput}}\n" +
		"Topic: {{.Topic}}"
)

type Prompts struct {
	System SystemPrompts `yaml:"system"`
	Plan   PlanPrompts   `yaml:"plan"`
}

type SystemPrompts struct {
	Planner string `yaml:"planner"`
}

type PlanPrompts struct {
	Generate string `yaml:"generate"`
	Repair   string `yaml:"repair"`
}

type PlanParams struct {
	Topic      string
	MinSlides  int
	MaxSlides  int
	MaxBullets int
}

type RepairParams struct {
	Topic     string
	Schema    string
	BadOutput string
}

func Defaults() *Prompts {
	return &Prompts{
		System: SystemPrompts{
			Planner: defaultSystemPlanner,
		},
		Plan: PlanPrompts{
			Generate: defaultPlanTemplate,
			Repair:   defaultRepairTemplate,
		},
	}
}

// Load returns the prompts from prompts.yaml when present, the compiled-in
// defaults otherwise.
func Load() (*Prompts, error) {
	if _, err := os.Stat(defaultPromptsPath); err != nil {
		return Defaults(), nil
	}
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	p := Defaults()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return p, nil
}

func (p *Prompts) RenderPlan(params PlanParams) (string, error) {
	return render(p.Plan.Generate, params)
}

func (p *Prompts) RenderRepair(params RepairParams) (string, error) {
	return render(p.Plan.Repair, params)
}

func render(text string, params any) (string, error) {
	tmpl, err := template.New("prompt").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
