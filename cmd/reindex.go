package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/pkg/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the asset manifest from the files on disk",
	Long: `Walk the assets directory and reconcile the manifest with it.

Entries whose files have vanished are dropped, and image dimensions are
refreshed for the files that remain. Run this after moving or deleting
asset files by hand.`,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	fmt.Println(ui.FormatRocket("Reindexing catalog..."))

	count, err := catalogService.Reindex(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Reindex failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Manifest rebuilt (%d assets)", count)))
	return nil
}
