package services

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/inkpose/inkpose/internal/core/domain"
	"github.com/inkpose/inkpose/internal/core/ports"
	"github.com/inkpose/inkpose/pkg/geometry"
)

// ExportService flattens all fixed layers into a single raster. The
// output canvas is the union bounding box of the layers' unrotated
// effective footprints; rotated corners extending past it are clipped.
// That mirrors the live renderer and is a known limitation, not a bug to
// correct here.
type ExportService struct {
	images  ports.ImageSource
	workers int
}

// NewExportService creates an export service. workers caps the number of
// concurrent source-image decodes; values <= 0 fall back to 4.
func NewExportService(images ports.ImageSource, workers int) *ExportService {
	if workers <= 0 {
		workers = 4
	}
	return &ExportService{images: images, workers: workers}
}

// ExportRequest carries the layers to flatten; only fixed layers take part.
type ExportRequest struct {
	Layers []domain.Layer
}

// ExportResponse holds the flattened raster and the canvas origin it was
// cropped from, in canvas coordinates.
type ExportResponse struct {
	Image   *image.RGBA
	OriginX float64
	OriginY float64
}

// Execute produces the flattened composition.
//
// Source decoding fans out across workers because the images are
// independent; everything after the join is sequential so layers draw in
// store insertion order. If any decode fails the whole export fails and
// no raster is returned.
func (s *ExportService) Execute(ctx context.Context, req ExportRequest) (*ExportResponse, error) {
	var fixed []domain.Layer
	for _, l := range req.Layers {
		if l.Fixed {
			fixed = append(fixed, l)
		}
	}
	if len(fixed) == 0 {
		return nil, domain.ErrNoLayersToExport
	}

	bounds := fixed[0].Footprint()
	for _, l := range fixed[1:] {
		bounds = bounds.Union(l.Footprint())
	}

	width := int(math.Ceil(bounds.Size.W))
	height := int(math.Ceil(bounds.Size.H))
	if width <= 0 || height <= 0 {
		return nil, domain.ErrNoLayersToExport
	}

	// Fan out the decodes, then join before any drawing happens. A partial
	// set of decoded layers must never reach the canvas.
	sources := make([]image.Image, len(fixed))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, layer := range fixed {
		i, layer := i, layer
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := s.images.Decode(layer.SourceFile)
			if err != nil {
				return fmt.Errorf("%w: layer %s (%s): %v",
					domain.ErrExportDecode, layer.ID, layer.SourceFile, err)
			}
			sources[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, layer := range fixed {
		drawLayer(out, sources[i], layer, bounds.Pos)
	}

	return &ExportResponse{
		Image:   out,
		OriginX: bounds.Pos.X,
		OriginY: bounds.Pos.Y,
	}, nil
}

// drawLayer rasterizes one layer onto the canvas: color filter first,
// then the affine placement (center translation, rotation about the
// center, scale to effective size). The transform is rebuilt per layer;
// nothing accumulates across layers.
func drawLayer(dst *image.RGBA, src image.Image, layer domain.Layer, origin geometry.Point) {
	src = filterImage(src, layer.Filter())

	b := src.Bounds()
	natural := geometry.Size{W: float64(b.Dx()), H: float64(b.Dy())}
	if natural.W == 0 || natural.H == 0 {
		return
	}

	center := geometry.Point{
		X: layer.Center().X - origin.X,
		Y: layer.Center().Y - origin.Y,
	}
	m := geometry.LayerTransform(center, layer.EffectiveSize(), layer.Rotation, natural)

	draw.ApproxBiLinear.Transform(dst, m.Aff3(), src, b, draw.Over, nil)
}

// filterImage applies the brightness/contrast remap to the color
// channels, leaving alpha alone. The neutral filter returns the source
// untouched so the identity round trip is exact.
func filterImage(src image.Image, f geometry.Filter) image.Image {
	if f.IsNeutral() {
		return src
	}

	lut := f.LUT()
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{
				R: lut[c.R],
				G: lut[c.G],
				B: lut[c.B],
				A: c.A,
			})
		}
	}
	return out
}
