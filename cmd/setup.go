package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Slidecraft",
	Long:  `Configure API keys, create directories, and set up the environment for Slidecraft.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("📊 Slidecraft Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func createDirectories() error {
	dirs := []string{"output", "output/images"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fmt.Println(successStyle.Render("✓ Created directories"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureRequiredKeys(env); err != nil {
		return err
	}

	if err := configureImages(env); err != nil {
		return err
	}

	if err := configureGCS(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureRequiredKeys(env map[string]string) error {
	var apiKey, baseURL, model string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API Key").
				Description("https://platform.openai.com/api-keys").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey).
				Validate(required("OpenAI API Key")),
			huh.NewInput().
				Title("API Base URL").
				Description("Leave empty for api.openai.com, or point at a compatible endpoint").
				Placeholder("https://api.openai.com/v1").
				Value(&baseURL),
			huh.NewInput().
				Title("Chat model").
				Placeholder("gpt-4o-mini").
				Value(&model),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	env["OPENAI_API_KEY"] = strings.TrimSpace(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		env["OPENAI_BASE_URL"] = baseURL
	}
	if model = strings.TrimSpace(model); model != "" {
		env["OPENAI_MODEL"] = model
	}
	return nil
}

func configureImages(env map[string]string) error {
	var useImages bool
	if err := huh.NewConfirm().
		Title("Generate slide images with the OpenAI images API?").
		Description("When disabled, decks are text-only").
		Value(&useImages).
		Run(); err != nil {
		return err
	}

	if !useImages {
		return nil
	}

	env["USE_OPENAI_IMAGES"] = "1"

	var model string
	if err := huh.NewInput().
		Title("Image model").
		Placeholder("gpt-image-1").
		Value(&model).
		Run(); err != nil {
		return err
	}
	if model = strings.TrimSpace(model); model != "" {
		env["OPENAI_IMAGE_MODEL"] = model
	}
	return nil
}

func configureGCS(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Google Cloud Storage uploads?").
		Description("Lets --upload push finished decks to a bucket").
		Value(&setup).
		Run(); err != nil || !setup {
		return err
	}

	var project, bucket string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Google Cloud Project").
				Value(&project),
			huh.NewInput().
				Title("GCS Bucket").
				Value(&bucket).
				Validate(required("GCS Bucket")),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if project = strings.TrimSpace(project); project != "" {
		env["GOOGLE_CLOUD_PROJECT"] = project
	}
	env["GCS_BUCKET"] = strings.TrimSpace(bucket)
	return nil
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"OPENAI_API_KEY",
		"OPENAI_BASE_URL",
		"OPENAI_MODEL",
		"USE_OPENAI_IMAGES",
		"OPENAI_IMAGE_MODEL",
		"GOOGLE_CLOUD_PROJECT",
		"GCS_BUCKET",
	}

	for _, key := range order {
		if value, ok := env[key]; ok && value != "" {
			if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
				return err
			}
		}
	}

	fmt.Println(successStyle.Render("✓ Wrote .env"))
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}
