package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/internal/adapters/raster"
	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/services"
	"github.com/inkpose/inkpose/pkg/geometry"
	"github.com/inkpose/inkpose/pkg/ui"
)

var (
	composeLayers []string
	composeOutput string
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Flatten a scripted set of placements into a PNG",
	Long: `Place catalog assets at fixed positions and flatten them into a
single PNG, without opening the interactive editor.

Each --layer flag describes one placement:

  --layer "asset:x,y[:scale[:rotation[:brightness[:contrast]]]]"

where x,y is the drop point (the layer is centered on it), scale is a
multiplier (default 1.0), rotation is in degrees, and brightness and
contrast are percentages (default 100). Layers draw in flag order, so a
later --layer paints over an earlier one.

Examples:
  inkpose compose --layer "skull:200,150" -o shoulder.png
  inkpose compose --layer "skull:200,150:1.5:45" --layer "rose:320,180::120"`,
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().StringArrayVarP(&composeLayers, "layer", "l", nil, "Placement spec (repeatable)")
	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", "", "Output PNG path (defaults to the exports directory)")
}

// layerSpec is one parsed --layer flag. Optional fields stay nil when
// the flag omitted them, so placement defaults apply.
type layerSpec struct {
	ref        string
	x, y       float64
	scale      *float64
	rotation   *float64
	brightness *float64
	contrast   *float64
}

// parseLayerSpec parses "asset:x,y[:scale[:rotation[:brightness[:contrast]]]]".
// Empty optional segments keep their defaults, so "skull:10,20::90" sets
// rotation without touching scale.
func parseLayerSpec(spec string) (*layerSpec, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid layer spec %q: want asset:x,y[:scale[:rotation[:brightness[:contrast]]]]", spec)
	}
	if len(parts) > 6 {
		return nil, fmt.Errorf("invalid layer spec %q: too many segments", spec)
	}
	if parts[0] == "" {
		return nil, fmt.Errorf("invalid layer spec %q: empty asset reference", spec)
	}

	coords := strings.Split(parts[1], ",")
	if len(coords) != 2 {
		return nil, fmt.Errorf("invalid layer spec %q: drop point must be x,y", spec)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid layer spec %q: bad x coordinate", spec)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid layer spec %q: bad y coordinate", spec)
	}

	ls := &layerSpec{ref: parts[0], x: x, y: y}

	optional := []**float64{&ls.scale, &ls.rotation, &ls.brightness, &ls.contrast}
	names := []string{"scale", "rotation", "brightness", "contrast"}
	for i, part := range parts[2:] {
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid layer spec %q: bad %s value", spec, names[i])
		}
		*optional[i] = &v
	}

	return ls, nil
}

// patch converts the parsed optional fields into a layer patch.
func (ls *layerSpec) patch() domain.LayerPatch {
	return domain.LayerPatch{
		Scale:      ls.scale,
		Rotation:   ls.rotation,
		Brightness: ls.brightness,
		Contrast:   ls.contrast,
	}
}

func runCompose(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if len(composeLayers) == 0 {
		return fmt.Errorf("no layers given: pass at least one --layer flag")
	}

	board := services.NewBoard()

	for _, spec := range composeLayers {
		ls, err := parseLayerSpec(spec)
		if err != nil {
			return err
		}

		layer, err := placementService.Execute(ctx, board, services.PlaceRequest{
			AssetRef: ls.ref,
			Drop:     geometry.Point{X: ls.x, Y: ls.y},
		})
		if err != nil {
			return fmt.Errorf("failed to place %q: %w", ls.ref, err)
		}

		if patch := ls.patch(); !patch.IsZero() {
			board.UpdateLayer(layer.ID, patch)
		}
		board.SetFixed(layer.ID)
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Flattening %d placement(s)...", board.Len())))

	resp, err := exportService.Execute(ctx, services.ExportRequest{Layers: board.Layers()})
	if err != nil {
		fmt.Println(ui.FormatError("Export failed"))
		return err
	}

	outPath := composeOutput
	if outPath == "" {
		outPath = appStudio.GetExportPath(appConfig.ExportFileName)
	} else if !filepath.IsAbs(outPath) {
		if abs, err := filepath.Abs(outPath); err == nil {
			outPath = abs
		}
	}

	if err := raster.WritePNG(outPath, resp.Image); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	bounds := resp.Image.Bounds()
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s Exported %dx%d PNG", ui.IconExport, bounds.Dx(), bounds.Dy())))
	fmt.Println(ui.RenderKeyValue("Output", outPath))
	fmt.Println(ui.RenderKeyValue("Canvas origin", fmt.Sprintf("(%.1f, %.1f)", resp.OriginX, resp.OriginY)))

	if appConfig.CopyExportPath {
		if err := clipboard.WriteAll(outPath); err == nil {
			fmt.Println(ui.FormatMuted("Export path copied to clipboard"))
		}
	}

	return nil
}
