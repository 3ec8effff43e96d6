package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/pkg/config"
	"github.com/inkpose/inkpose/pkg/studio"
	"github.com/inkpose/inkpose/pkg/ui"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the inkpose studio",
	Long: `Initialize the inkpose studio directory structure.

This creates the managed studio at ~/.local/share/inkpose/ with the
following structure:
  - assets/     : Tattoo design cutouts and base photos
  - exports/    : Flattened composition PNGs
  - cache/      : Temporary files (generation downloads, previews)
  - config.yaml : Global configuration`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Create studio instance
	st, err := studio.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine studio location"))
		return err
	}

	// Check if already initialized
	if st.Exists() {
		fmt.Println(ui.FormatWarning("Studio already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + st.RootPath))
		return nil
	}

	// Initialize the studio
	fmt.Println(ui.FormatRocket("Initializing inkpose studio..."))
	fmt.Println()

	if err := st.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize studio"))
		return err
	}

	// Create default config
	if err := config.DefaultConfig().Save(st.ConfigPath); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		// Don't fail - config is optional
	}

	// Success message
	fmt.Println(ui.FormatSuccess("Studio initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", st.RootPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Directory structure:"))
	fmt.Println(ui.FormatMuted("  assets/   - Tattoo design cutouts and base photos"))
	fmt.Println(ui.FormatMuted("  exports/  - Flattened composition PNGs"))
	fmt.Println(ui.FormatMuted("  cache/    - Temporary files"))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Add a design: inkpose assets add skull.png"))
	fmt.Println(ui.FormatMuted("  2. Open the editor: inkpose studio photo.jpg"))
	fmt.Println(ui.FormatMuted("  3. Or compose directly: inkpose compose --layer skull:120,80"))

	return nil
}
