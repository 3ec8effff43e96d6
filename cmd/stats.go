package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/pkg/ui"
)

var statsHTML bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Analyze the design catalog and display useful statistics.

Includes:
  - Asset counts and megapixel totals
  - Imported vs generated split
  - File type distribution
  - Largest designs

Use --html to render an interactive chart to the cache directory and
open it in the browser.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsHTML, "html", false, "Render an interactive HTML chart")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	assets, err := assetRepo.List(ctx)
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatRocket("Analyzing catalog..."))

	// 1. Data Aggregation
	totalAssets := len(assets)
	totalPixels := int64(0)
	generated := 0
	extCounts := make(map[string]int)

	for _, a := range assets {
		totalPixels += int64(a.Width) * int64(a.Height)
		if a.Generated {
			generated++
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(a.Filename), "."))
		if ext == "" {
			ext = "unknown"
		}
		extCounts[ext]++
	}

	// Track newest asset for "Last added"
	lastIdx := -1
	for i, a := range assets {
		if lastIdx == -1 || a.AddedAt.After(assets[lastIdx].AddedAt) {
			lastIdx = i
		}
	}

	// 2. Render Output
	fmt.Println()
	fmt.Println(ui.FormatTitle("Catalog Analytics"))
	fmt.Println()

	// --- General Stats (Tabular) ---
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Assets:"), totalAssets)
	fmt.Fprintf(w, "%s\t%.1f MP\n", ui.StyleBold.Render("Total Pixels:"), float64(totalPixels)/1e6)
	fmt.Fprintf(w, "%s\t%d imported / %d generated\n", ui.StyleBold.Render("Origin:"), totalAssets-generated, generated)
	if lastIdx >= 0 {
		fmt.Fprintf(w, "%s\t%s (%s)\n", ui.StyleBold.Render("Last Added:"),
			assets[lastIdx].Filename, relativeAge(assets[lastIdx].AddedAt))
	}
	w.Flush()

	fmt.Println()

	// --- File Types (Bar Chart) ---
	renderExtChart(extCounts)

	// --- Largest Designs ---
	renderLargest(assets)

	if statsHTML {
		path := appStudio.GetCachePath("stats.html")
		if err := writeStatsHTML(path, assets); err != nil {
			return fmt.Errorf("failed to render HTML chart: %w", err)
		}
		fmt.Println(ui.FormatSuccess("Chart written to " + path))
		if err := OpenFile(path); err != nil {
			fmt.Println(ui.FormatWarning("Could not open browser: " + err.Error()))
		}
	}

	return nil
}

// renderExtChart displays a horizontal bar chart of file types
func renderExtChart(counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	fmt.Println(ui.StyleHeader.Render("File Types"))

	type extPair struct {
		Name  string
		Count int
	}
	var sorted []extPair
	for k, v := range counts {
		sorted = append(sorted, extPair{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	maxCount := sorted[0].Count
	barWidth := 20

	for _, e := range sorted {
		length := int(math.Ceil(float64(e.Count) / float64(maxCount) * float64(barWidth)))
		bar := strings.Repeat("█", length)

		fmt.Printf("%s %-10s %s\n",
			ui.StyleAccent.Render(bar),
			e.Name,
			ui.StyleMuted.Render(fmt.Sprintf("%d", e.Count)),
		)
	}
	fmt.Println()
}

// renderLargest lists the biggest designs by pixel count
func renderLargest(assets []domain.Asset) {
	if len(assets) == 0 {
		return
	}

	sorted := make([]domain.Asset, len(assets))
	copy(sorted, assets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Width*sorted[i].Height > sorted[j].Width*sorted[j].Height
	})

	limit := 5
	if len(sorted) < limit {
		limit = len(sorted)
	}

	fmt.Println(ui.StyleHeader.Render("Largest Designs"))
	for i := 0; i < limit; i++ {
		a := sorted[i]
		fmt.Printf("  %s %s\n",
			ui.StyleBold.Render(fmt.Sprintf("%dx%d", a.Width, a.Height)),
			a.Filename,
		)
	}
	fmt.Println()
}

// writeStatsHTML renders a bar chart of asset dimensions with go-echarts
func writeStatsHTML(path string, assets []domain.Asset) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Inkpose Catalog",
			Subtitle: "Asset dimensions (pixels)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	var names []string
	var widths, heights []opts.BarData
	for _, a := range assets {
		names = append(names, a.Filename)
		widths = append(widths, opts.BarData{Value: a.Width})
		heights = append(heights, opts.BarData{Value: a.Height})
	}

	bar.SetXAxis(names).
		AddSeries("width", widths).
		AddSeries("height", heights)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return bar.Render(f)
}
