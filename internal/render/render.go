// Package render draws great-circle and rhumb-line tracks between two
// points onto an equirectangular world image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/woozymasta/latlon/internal/geo"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	"golang.org/x/image/vector"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultWidth is the output image width; height is always width/2.
	DefaultWidth = 1024
	// DefaultQuality is the webp encoding quality.
	DefaultQuality = 85

	// number of samples along each drawn path
	trackSamples = 256
	// supersampling factor, rendering happens at oversample× and is
	// downscaled with CatmullRom
	oversample = 2
)

var (
	seaColor       = color.NRGBA{R: 0x10, G: 0x1c, B: 0x2c, A: 0xff}
	graticuleColor = color.NRGBA{R: 0x2a, G: 0x3a, B: 0x50, A: 0xff}
	greatColor     = color.NRGBA{R: 0x4c, G: 0xc9, B: 0x6f, A: 0xff}
	rhumbColor     = color.NRGBA{R: 0xe8, G: 0x9b, B: 0x3c, A: 0xff}
	markerColor    = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
)

// Renderer draws tracks over an optional pre-decoded basemap.
type Renderer struct {
	basemap image.Image
	quality int
}

// New creates a Renderer. basemapPath may be empty; a non-empty path must
// point to a local equirectangular world image in any of the supported
// formats (png, jpeg, bmp, tiff, webp).
func New(basemapPath string, quality int) (*Renderer, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	r := &Renderer{quality: quality}

	if basemapPath == "" {
		return r, nil
	}

	f, err := os.Open(basemapPath)
	if err != nil {
		return nil, fmt.Errorf("open basemap: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode basemap: %w", err)
	}

	log.Debug().
		Str("path", basemapPath).
		Str("format", format).
		Int("width", img.Bounds().Dx()).
		Msg("Basemap decoded")

	r.basemap = img
	return r, nil
}

// Track renders the great-circle and rhumb-line paths between two points.
// The returned image is width × width/2 pixels.
func (r *Renderer) Track(from, to geo.Point, width int) *image.RGBA {
	if width <= 0 {
		width = DefaultWidth
	}
	w := width * oversample
	h := w / 2

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	r.background(canvas)

	stroke := float64(w) / 512
	drawTrack(canvas, GreatCirclePath(from, to, trackSamples), greatColor, stroke)
	drawTrack(canvas, RhumbPath(from, to, trackSamples), rhumbColor, stroke)

	drawMarker(canvas, from, stroke*2.5)
	drawMarker(canvas, to, stroke*2.5)

	// downscale for anti-aliasing
	out := image.NewRGBA(image.Rect(0, 0, width, width/2))
	xdraw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)

	return out
}

// background fills the canvas with the scaled basemap, or with a plain sea
// color and a 30° graticule when no basemap is configured.
func (r *Renderer) background(canvas *image.RGBA) {
	if r.basemap != nil {
		xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), r.basemap, r.basemap.Bounds(), draw.Src, nil)
		return
	}

	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(seaColor), image.Point{}, draw.Src)

	w := canvas.Bounds().Dx()
	h := canvas.Bounds().Dy()
	for lon := -180; lon <= 180; lon += 30 {
		x := int(float64(lon+180) / 360 * float64(w))
		if x >= w {
			x = w - 1
		}
		for y := 0; y < h; y++ {
			canvas.Set(x, y, graticuleColor)
		}
	}
	for lat := -90; lat <= 90; lat += 30 {
		y := int(float64(90-lat) / 180 * float64(h))
		if y >= h {
			y = h - 1
		}
		for x := 0; x < w; x++ {
			canvas.Set(x, y, graticuleColor)
		}
	}
}

// GreatCirclePath samples the great-circle arc between two points.
func GreatCirclePath(from, to geo.Point, samples int) []geo.Point {
	points := make([]geo.Point, 0, samples+1)
	for i := 0; i <= samples; i++ {
		points = append(points, from.IntermediatePointTo(to, float64(i)/float64(samples)))
	}

	return points
}

// RhumbPath samples the constant-bearing path between two points by
// stepping along the rhumb line.
func RhumbPath(from, to geo.Point, samples int) []geo.Point {
	bearing := from.RhumbBearingTo(to)
	total := from.RhumbDistanceTo(to)

	points := make([]geo.Point, 0, samples+1)
	points = append(points, from)
	for i := 1; i < samples; i++ {
		points = append(points, from.RhumbDestinationPoint(total*float64(i)/float64(samples), bearing))
	}
	points = append(points, to)

	return points
}

// project maps a point onto equirectangular pixel coordinates.
func project(p geo.Point, w, h int) (x, y float32) {
	x = float32((p.Lon + 180) / 360 * float64(w))
	y = float32((90 - p.Lat) / 180 * float64(h))

	return x, y
}

// drawTrack strokes a sampled path onto the canvas, splitting segments
// that jump across the anti-meridian.
func drawTrack(canvas *image.RGBA, points []geo.Point, c color.NRGBA, width float64) {
	w := canvas.Bounds().Dx()
	h := canvas.Bounds().Dy()

	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]

		if math.Abs(b.Lon-a.Lon) > 180 {
			// segment wraps, draw both exits
			shift := 360.0
			if b.Lon > a.Lon {
				shift = -360.0
			}
			drawSegment(canvas, a, geo.Point{Lat: b.Lat, Lon: b.Lon + shift}, c, width, w, h)
			drawSegment(canvas, geo.Point{Lat: a.Lat, Lon: a.Lon - shift}, b, c, width, w, h)
			continue
		}

		drawSegment(canvas, a, b, c, width, w, h)
	}
}

// drawSegment rasterizes one thick line segment as a quad.
func drawSegment(canvas *image.RGBA, a, b geo.Point, c color.NRGBA, width float64, w, h int) {
	x1, y1 := project(a, w, h)
	x2, y2 := project(b, w, h)

	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	// perpendicular half-width offset
	ox := float32(-dy / length * width / 2)
	oy := float32(dx / length * width / 2)

	ras := vector.NewRasterizer(w, h)
	ras.DrawOp = draw.Over
	ras.MoveTo(x1+ox, y1+oy)
	ras.LineTo(x2+ox, y2+oy)
	ras.LineTo(x2-ox, y2-oy)
	ras.LineTo(x1-ox, y1-oy)
	ras.ClosePath()
	ras.Draw(canvas, canvas.Bounds(), image.NewUniform(c), image.Point{})
}

// drawMarker rasterizes a filled endpoint circle.
func drawMarker(canvas *image.RGBA, p geo.Point, radius float64) {
	w := canvas.Bounds().Dx()
	h := canvas.Bounds().Dy()
	cx, cy := project(p, w, h)

	const steps = 24

	ras := vector.NewRasterizer(w, h)
	ras.DrawOp = draw.Over
	ras.MoveTo(cx+float32(radius), cy)
	for i := 1; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / steps
		ras.LineTo(cx+float32(radius*math.Cos(angle)), cy+float32(radius*math.Sin(angle)))
	}
	ras.ClosePath()
	ras.Draw(canvas, canvas.Bounds(), image.NewUniform(markerColor), image.Point{})
}

// EncodeWebP writes the image as lossy webp at the renderer quality.
func (r *Renderer) EncodeWebP(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: float32(r.quality)})
}
