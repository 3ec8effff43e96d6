package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/pkg/ui"
)

var watchQuiet bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the assets directory and reindex on changes",
	Long: `Run a foreground watcher that keeps the manifest in sync with the
assets directory.

It monitors for:
  - New image files dropped in
  - Existing files modified or replaced
  - Files deleted or renamed

When changes are detected, the catalog is reindexed after a short
debounce. Use --quiet to suppress reindex notifications.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress reindex notifications")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the assets directory
	if err := watcher.Add(appStudio.AssetsPath); err != nil {
		return fmt.Errorf("failed to watch assets directory: %w", err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Starting inkpose watcher..."))
		fmt.Println(ui.FormatMuted("Watching: " + appStudio.AssetsPath))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Debounce timer to avoid excessive reindexing
	var debounceTimer *time.Timer
	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	if debounceDuration <= 0 {
		debounceDuration = 500 * time.Millisecond
	}
	needsReindex := false

	// Function to perform reindex
	doReindex := func() {
		if !needsReindex {
			return
		}
		needsReindex = false

		if !watchQuiet {
			fmt.Println(ui.FormatInfo("File changes detected, reindexing..."))
		}

		count, err := catalogService.Reindex(ctx)
		if err != nil {
			if !watchQuiet {
				fmt.Println(ui.FormatError("Reindex failed: " + err.Error()))
			}
			log.Printf("Reindex error: %v", err)
			return
		}

		if !watchQuiet {
			fmt.Println(ui.FormatSuccess(fmt.Sprintf("Manifest updated (%d assets)", count)))
		}
	}

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only care about image files
			ext := strings.ToLower(filepath.Ext(event.Name))
			if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
				continue
			}

			// Filter out temporary/hidden files
			baseName := filepath.Base(event.Name)
			if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {

				needsReindex = true

				// Reset debounce timer
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, doReindex)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}
