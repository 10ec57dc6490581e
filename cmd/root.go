package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"slidecraft/internal/app"
	"slidecraft/pkg/config"
)

var (
	verbose   bool
	outPath   string
	imageDir  string
	uploadGCS bool
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var rootCmd = &cobra.Command{
	Use:   `slidecraft "<topic>"`,
	Short: "Generate a PowerPoint deck from a topic",
	Long: `Slidecraft asks a language model to plan slide content for a topic,
optionally generates per-slide imagery, and assembles a .pptx file.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&outPath, "out", "output/presentation.pptx", "Output path for the deck")
	rootCmd.Flags().StringVar(&imageDir, "images", "output/images", "Directory for generated images")
	rootCmd.Flags().BoolVarP(&uploadGCS, "upload", "u", false, "Upload the deck to the configured GCS bucket")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger()
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := args[0]
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg, imageDir)
	if err != nil {
		return err
	}

	pipeline := app.NewPipeline(service)

	var result *app.GenerateResult
	err = runWithSpinner(fmt.Sprintf("Generating deck for %q", topic), func() error {
		var genErr error
		result, genErr = pipeline.Generate(ctx, topic, outPath)
		return genErr
	})
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s (%d slides) → %s",
		result.Title, result.SlideCount, result.DeckPath)))
	if len(result.ImagePaths) > 0 {
		fmt.Println(infoStyle.Render(fmt.Sprintf("%d images in %s", len(result.ImagePaths), imageDir)))
	}

	if uploadGCS {
		var url string
		err = runWithSpinner("Uploading to GCS", func() error {
			var upErr error
			url, upErr = pipeline.Upload(ctx, result.DeckPath)
			return upErr
		})
		if err != nil {
			return err
		}
		fmt.Println(infoStyle.Render("uploaded to " + url))
	}

	return nil
}
