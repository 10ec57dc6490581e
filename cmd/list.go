package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidecraft/internal/storage"
	"slidecraft/pkg/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated decks",
	Long:  `List decks in the output directory and, when a bucket is configured, in GCS.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	local := storage.NewLocalStorage(cfg.Output.Dir, cfg.Images.Dir)
	decks, err := local.ListDecks()
	if err != nil {
		return err
	}

	if len(decks) == 0 {
		fmt.Println(warnStyle.Render("No decks in " + cfg.Output.Dir))
	}
	for _, deck := range decks {
		fmt.Println(deck)
	}

	if cfg.GCSBucket == "" {
		return nil
	}

	gcs, err := storage.NewGCSStorage(ctx, cfg.GCSBucket, cfg.GCS.Prefix)
	if err != nil {
		return err
	}
	defer func() { _ = gcs.Close() }()

	remote, err := gcs.ListDecks(ctx)
	if err != nil {
		return err
	}
	for _, deck := range remote {
		fmt.Println(deck)
	}

	return nil
}
