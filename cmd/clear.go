package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidecraft/internal/storage"
	"slidecraft/pkg/config"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove generated decks and images",
	Long:  `Delete previously generated decks and slide images from the output directory.`,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	local := storage.NewLocalStorage(cfg.Output.Dir, cfg.Images.Dir)
	removed, err := local.Clear()
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d deck(s) from %s\n", removed, cfg.Output.Dir)
	return nil
}
