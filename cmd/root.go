package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/internal/adapters/generator"
	"github.com/inkpose/inkpose/internal/adapters/raster"
	"github.com/inkpose/inkpose/internal/adapters/repository"
	"github.com/inkpose/inkpose/internal/core/services"
	"github.com/inkpose/inkpose/pkg/config"
	"github.com/inkpose/inkpose/pkg/studio"
	"github.com/inkpose/inkpose/pkg/ui"
)

var (
	// Global studio instance
	appStudio *studio.Studio

	// Global configuration
	appConfig *config.Config

	// Repositories
	assetRepo *repository.FileAssetRepository

	// Adapters
	imageSource *raster.FileImageSource

	// Services
	catalogService   *services.CatalogService
	placementService *services.PlacementService
	exportService    *services.ExportService
	generateService  *services.GenerateService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inkpose",
	Short: "Inkpose - tattoo placement studio for the terminal",
	Long: ui.StyleTitle.Render("Inkpose") + " - Tattoo Placement Studio\n\n" +
		"Place tattoo design cutouts on a photo, move, scale and rotate them\n" +
		"by direct manipulation, then flatten the fixed placements into a\n" +
		"single PNG.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(studioCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for init command
	if cmd.Name() == "init" {
		return nil
	}

	// Create studio instance
	st, err := studio.New()
	if err != nil {
		return fmt.Errorf("failed to initialize studio: %w", err)
	}
	appStudio = st

	// Check if studio exists
	if !appStudio.Exists() {
		fmt.Println(ui.FormatError("Studio not initialized"))
		fmt.Println(ui.FormatInfo("Run 'inkpose init' to initialize the studio"))
		os.Exit(1)
	}

	// Load configuration (missing file falls back to defaults)
	cfg, err := config.Load(appStudio.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	// Initialize repositories
	assetRepo = repository.NewFileAssetRepository(appStudio)
	if err := assetRepo.Load(); err != nil {
		return fmt.Errorf("failed to load asset manifest: %w", err)
	}

	// Initialize adapters
	imageSource = raster.NewFileImageSource()
	imageGenerator := generator.NewHTTPGenerator(appConfig.GenerateEndpoint)

	// Initialize services
	catalogService = services.NewCatalogService(appStudio, assetRepo, imageSource)
	placementService = services.NewPlacementService(assetRepo, imageSource, appStudio, appConfig.InitialWidth)
	exportService = services.NewExportService(imageSource, appConfig.MaxWorkers)
	generateService = services.NewGenerateService(imageGenerator, catalogService)

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
