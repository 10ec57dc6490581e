package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath    = "config.yaml"
	defaultOutputDir     = "./output"
	defaultDeckFilename  = "presentation.pptx"
	defaultImageDir      = "output/images"
	defaultBaseURL       = "https://api.openai.com/v1"
	defaultModel         = "gpt-4o-mini"
	defaultImageModel    = "gpt-image-1"
	defaultImageSize     = "1024x1024"
	defaultTemperature   = 0.4
	defaultMinSlides     = 6
	defaultMaxSlides     = 10
	defaultMaxBullets    = 5
	defaultImagePolicy   = "placeholder"
	defaultImageProvider = "openai"

	apiKeySecretName = "openai-api-key"
)

type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GCPProject    string
	GCSBucket     string

	Planner PlannerConfig `yaml:"planner"`
	Images  ImagesConfig  `yaml:"images"`
	Output  OutputConfig  `yaml:"output"`
	GCS     GCSConfig     `yaml:"gcs"`
}

type PlannerConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MinSlides   int     `yaml:"min_slides"`
	MaxSlides   int     `yaml:"max_slides"`
	MaxBullets  int     `yaml:"max_bullets"`
}

type ImagesConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Provider  string `yaml:"provider"`   // "openai" or "stock"
	OnFailure string `yaml:"on_failure"` // "placeholder", "skip" or "fail"
	Model     string `yaml:"model"`
	Size      string `yaml:"size"`
	Dir       string `yaml:"dir"`
}

type OutputConfig struct {
	Dir          string `yaml:"dir"`
	DeckFilename string `yaml:"deck_filename"`
}

type GCSConfig struct {
	Prefix string `yaml:"prefix"`
}

func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", defaultBaseURL),
		GCPProject:    os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GCSBucket:     os.Getenv("GCS_BUCKET"),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if cfg.OpenAIAPIKey == "" && cfg.GCPProject != "" {
		key, err := loadAPIKeyFromSecretManager(ctx, cfg.GCPProject)
		if err != nil {
			return nil, fmt.Errorf("resolve api key from secret manager: %w", err)
		}
		cfg.OpenAIAPIKey = key
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Debug("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyPlannerDefaults(cfg)
	applyImagesDefaults(cfg)
	applyOutputDefaults(cfg)
}

func applyPlannerDefaults(cfg *Config) {
	if cfg.Planner.Model == "" {
		cfg.Planner.Model = defaultModel
	}
	if cfg.Planner.Temperature == 0 {
		cfg.Planner.Temperature = defaultTemperature
	}
	if cfg.Planner.MinSlides == 0 {
		cfg.Planner.MinSlides = defaultMinSlides
	}
	if cfg.Planner.MaxSlides == 0 {
		cfg.Planner.MaxSlides = defaultMaxSlides
	}
	if cfg.Planner.MaxBullets == 0 {
		cfg.Planner.MaxBullets = defaultMaxBullets
	}
}

func applyImagesDefaults(cfg *Config) {
	if cfg.Images.Provider == "" {
		cfg.Images.Provider = defaultImageProvider
	}
	if cfg.Images.OnFailure == "" {
		cfg.Images.OnFailure = defaultImagePolicy
	}
	if cfg.Images.Model == "" {
		cfg.Images.Model = defaultImageModel
	}
	if cfg.Images.Size == "" {
		cfg.Images.Size = defaultImageSize
	}
	if cfg.Images.Dir == "" {
		cfg.Images.Dir = defaultImageDir
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
	if cfg.Output.DeckFilename == "" {
		cfg.Output.DeckFilename = defaultDeckFilename
	}
}

func applyEnvOverrides(cfg *Config) {
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.Planner.Model = model
	}
	if os.Getenv("USE_OPENAI_IMAGES") == "1" {
		cfg.Images.Enabled = true
		cfg.Images.Provider = defaultImageProvider
	}
	if model := os.Getenv("OPENAI_IMAGE_MODEL"); model != "" {
		cfg.Images.Model = model
	}
}

func loadAPIKeyFromSecretManager(ctx context.Context, project string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, apiKeySecretName)
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}

	return string(resp.Payload.Data), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
