package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/internal/core/services"
	"github.com/inkpose/inkpose/pkg/ui"
)

var generateStyle string

var generateCmd = &cobra.Command{
	Use:     "generate <prompt>...",
	Aliases: []string{"gen"},
	Short:   "Generate a tattoo design from a text prompt (alias: gen)",
	Long: `Generate a tattoo design through the configured generation endpoint
and file the result in the catalog.

The endpoint is set in config.yaml (generate_endpoint). The style preset
defaults to the configured generate_style.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateStyle, "style", "s", "", "Style preset (defaults to config generate_style)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	prompt := strings.Join(args, " ")
	style := generateStyle
	if style == "" {
		style = appConfig.GenerateStyle
	}

	fmt.Println(ui.FormatRocket("Generating design..."))
	fmt.Println(ui.RenderKeyValue("Prompt", prompt))
	fmt.Println(ui.RenderKeyValue("Style", style))
	fmt.Println()

	asset, err := generateService.Execute(ctx, services.GenerateRequest{
		Prompt: prompt,
		Style:  style,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Generation failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Generated %s (%dx%d)", asset.Filename, asset.Width, asset.Height)))
	fmt.Println(ui.FormatMuted("Stored at: " + appStudio.GetAssetPath(asset.Filename)))
	return nil
}
