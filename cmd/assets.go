package cmd

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/pkg/ui"
)

var (
	assetsCopy        bool
	assetsDescription string
	assetsRmForce     bool
)

var assetsCmd = &cobra.Command{
	Use:   "assets [query]",
	Short: "Browse and manage the design catalog",
	Long: `Browse the catalog of tattoo design cutouts.

With a query, matches filename, original name, or description.
Without a query, opens an interactive fuzzy finder.
Use --copy to put the selected asset's path on the clipboard.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssets,
}

var assetsAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Import image files into the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAssetsAdd,
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every asset in the catalog",
	RunE:  runAssetsList,
}

var assetsRmCmd = &cobra.Command{
	Use:   "rm [query]",
	Short: "Remove an asset from the catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAssetsRm,
}

func init() {
	assetsCmd.Flags().BoolVarP(&assetsCopy, "copy", "c", false, "Copy the selected asset path to the clipboard")
	assetsAddCmd.Flags().StringVarP(&assetsDescription, "description", "d", "", "Description stored in the manifest")
	assetsRmCmd.Flags().BoolVarP(&assetsRmForce, "force", "f", false, "Skip confirmation")

	assetsCmd.AddCommand(assetsAddCmd)
	assetsCmd.AddCommand(assetsListCmd)
	assetsCmd.AddCommand(assetsRmCmd)
}

func runAssets(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	matches, err := assetRepo.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		if query == "" {
			fmt.Println(ui.FormatWarning("Catalog is empty. Add designs with 'inkpose assets add'."))
		} else {
			fmt.Println(ui.FormatWarning("No assets found matching: " + query))
		}
		return nil
	}

	selected, err := pickAsset(matches)
	if err != nil {
		// User aborted the finder
		return nil
	}

	path := appStudio.GetAssetPath(selected.Filename)
	fmt.Println(ui.RenderKeyValue("Asset", selected.Filename))
	fmt.Println(ui.RenderKeyValue("Size", fmt.Sprintf("%dx%d", selected.Width, selected.Height)))
	if selected.Description != "" {
		fmt.Println(ui.RenderKeyValue("Description", selected.Description))
	}
	fmt.Println(ui.RenderKeyValue("Path", path))

	if assetsCopy {
		if err := clipboard.WriteAll(path); err != nil {
			fmt.Println(ui.FormatWarning("Failed to copy path: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Path copied to clipboard"))
		}
	}

	return nil
}

// pickAsset resolves a single asset from a result set, using the fuzzy
// finder when there is more than one candidate.
func pickAsset(assets []domain.Asset) (*domain.Asset, error) {
	if len(assets) == 1 {
		return &assets[0], nil
	}

	idx, err := fuzzyfinder.Find(
		assets,
		func(i int) string { return assets[i].Filename },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			a := assets[i]
			origin := "imported"
			if a.Generated {
				origin = "generated"
			}
			return fmt.Sprintf("File: %s\nOriginal: %s\nSize: %dx%d\nOrigin: %s\n\n%s",
				a.Filename, a.OriginalName, a.Width, a.Height, origin, a.Description)
		}),
	)
	if err != nil {
		return nil, err
	}
	return &assets[idx], nil
}

func runAssetsAdd(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	added := 0
	for _, path := range args {
		asset, reused, err := catalogService.Store(ctx, path, "", assetsDescription)
		if err != nil {
			fmt.Println(ui.FormatError(fmt.Sprintf("%s: %v", path, err)))
			continue
		}
		if reused {
			fmt.Println(ui.FormatInfo(fmt.Sprintf("Already in catalog as %s (identical content)", asset.Filename)))
			continue
		}
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("Added %s (%dx%d)", asset.Filename, asset.Width, asset.Height)))
		added++
	}

	if added > 0 {
		fmt.Println()
		fmt.Println(ui.FormatMuted(fmt.Sprintf("%d asset(s) imported", added)))
	}
	return nil
}

func runAssetsList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	assets, err := assetRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Println(ui.FormatWarning("Catalog is empty. Add designs with 'inkpose assets add'."))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: 28},
		{Header: "Size", Width: 11, Align: "right"},
		{Header: "Origin", Width: 10},
		{Header: "Added", Width: 12},
		{Header: "Description", Width: 32},
	})
	table.SetMaxWidth(appConfig.TableWidth)

	for _, a := range assets {
		origin := "imported"
		if a.Generated {
			origin = "generated"
		}
		table.AddRow([]string{
			a.Filename,
			fmt.Sprintf("%dx%d", a.Width, a.Height),
			origin,
			relativeAge(a.AddedAt),
			a.Description,
		})
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("%s Catalog (%d assets)", ui.IconLayer, len(assets))))
	fmt.Println()
	fmt.Println(table.Render())
	return nil
}

func runAssetsRm(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	matches, err := assetRepo.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println(ui.FormatWarning("No assets found"))
		return nil
	}

	selected, err := pickAsset(matches)
	if err != nil {
		return nil
	}

	if !assetsRmForce {
		fmt.Printf("Remove %s from the catalog? [y/N] ", ui.FormatBold(selected.Filename))
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println(ui.FormatMuted("Cancelled"))
			return nil
		}
	}

	if err := catalogService.Remove(ctx, selected.Filename); err != nil {
		return err
	}
	fmt.Println(ui.FormatSuccess("Removed " + selected.Filename))
	return nil
}

// relativeAge renders a time as a short "3d ago" style string for tables.
func relativeAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	days := int(time.Since(t).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "1d ago"
	case days < 30:
		return fmt.Sprintf("%dd ago", days)
	case days < 365:
		return fmt.Sprintf("%dmo ago", days/30)
	default:
		return fmt.Sprintf("%dy ago", days/365)
	}
}
