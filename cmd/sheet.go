package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"github.com/inkpose/inkpose/pkg/ui"
)

var sheetOutput string

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Export a PDF contact sheet of the catalog",
	Long: `Render the whole design catalog as a printable A4 contact sheet.

Designs are laid out in a grid (columns come from sheet_columns in
config.yaml), each with its filename underneath. Useful for showing a
client the available flash without a screen.`,
	RunE: runSheet,
}

func init() {
	sheetCmd.Flags().StringVarP(&sheetOutput, "output", "o", "", "Output PDF path (defaults to the exports directory)")
}

func runSheet(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	assets, err := assetRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		fmt.Println(ui.FormatWarning("Catalog is empty, nothing to lay out"))
		return nil
	}

	cols := appConfig.SheetColumns
	if cols <= 0 {
		cols = 4
	}

	// A4 portrait in millimeters
	const (
		pageW   = 210.0
		pageH   = 297.0
		margin  = 15.0
		gutter  = 6.0
		labelH  = 6.0
		labelPt = 8.0
	)
	cellW := (pageW - 2*margin - float64(cols-1)*gutter) / float64(cols)
	cellH := cellW + labelH

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetFont("Helvetica", "", labelPt)
	p.SetDrawColor(180, 180, 180)
	p.SetLineWidth(0.2)
	p.AddPage()

	x, y := margin, margin
	col := 0

	for _, a := range assets {
		if y+cellH > pageH-margin {
			p.AddPage()
			x, y = margin, margin
			col = 0
		}

		path := appStudio.GetAssetPath(a.Filename)
		if !fileExists(path) {
			continue
		}

		// Fit the image inside the square cell, preserving aspect
		imgW, imgH := cellW, cellW
		if a.Width > 0 && a.Height > 0 {
			aspect := float64(a.Width) / float64(a.Height)
			if aspect > 1 {
				imgH = cellW / aspect
			} else {
				imgW = cellW * aspect
			}
		}
		offX := (cellW - imgW) / 2
		offY := (cellW - imgH) / 2

		imgType := strings.ToUpper(strings.TrimPrefix(filepath.Ext(a.Filename), "."))
		if imgType == "JPEG" {
			imgType = "JPG"
		}
		p.ImageOptions(path, x+offX, y+offY, imgW, imgH, false,
			gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}, 0, "")

		p.Rect(x, y, cellW, cellW, "D")

		p.SetXY(x, y+cellW)
		p.CellFormat(cellW, labelH, a.Filename, "", 0, "C", false, 0, "")

		col++
		if col == cols {
			col = 0
			x = margin
			y += cellH + gutter
		} else {
			x += cellW + gutter
		}
	}

	outPath := sheetOutput
	if outPath == "" {
		outPath = appStudio.GetExportPath("catalog-sheet.pdf")
	}

	if err := p.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write contact sheet: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Contact sheet written (%d assets)", len(assets))))
	fmt.Println(ui.RenderKeyValue("Output", outPath))
	return nil
}
