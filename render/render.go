// Package render is a reference implementation of the out-of-scope
// image-representation wrapper boundary: a pure function from an
// observation to an image.Image. The drawing is built as SVG markup with
// github.com/ajstarks/svgo, but the returned image is a blank canvas of
// the requested size: the markup is not rasterized (see decodeSVGToPNG).
// It deliberately knows nothing about rng.Suite.ImageRep or any other
// engine-internal state; a stateful, randomized renderer (e.g. jittered
// cell colors) is expected to seed itself from that stream independently,
// the same way grid_world.ShowGrid took only the state slice it needed to
// draw and nothing else.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	svg "github.com/ajstarks/svgo"

	"mdpenv/mdperr"
	"mdpenv/spaces"
)

// Options controls the rendered image's pixel dimensions and the discrete
// case's grid layout.
type Options struct {
	Width, Height int
	// GridSize is the number of columns in the discrete case's grid of
	// cells; rows are added as needed to reach the drawn state. Zero or
	// less lays every cell up to the drawn state out in a single row.
	GridSize int
}

// DefaultOptions picks a reasonable default pixel canvas, the SVG analogue
// of grid_world.ShowGrid's fixed small console grid.
func DefaultOptions() Options {
	return Options{Width: 256, Height: 256}
}

// Render builds an SVG drawing of obs (a single highlighted grid cell for
// a discrete observation, or a point plotted within its bounding box for
// a continuous (Box) observation) and returns an image.Image of the
// requested size. The returned image is blank: the SVG drawing does not
// reach its pixels. It returns mdperr.InvalidArgument for value kinds it
// doesn't know how to draw.
func Render(obs spaces.Value, opts Options) (image.Image, error) {
	switch obs.Kind {
	case spaces.KindDiscrete:
		return renderDiscreteCell(obs.Int, opts)
	case spaces.KindMultiDiscrete:
		if len(obs.Ints) == 0 {
			return nil, mdperr.New(mdperr.InvalidArgument, "render: empty multi-discrete observation")
		}
		return renderDiscreteCell(obs.Ints[0], opts)
	case spaces.KindBox:
		return renderPoint(obs.Floats, opts)
	default:
		return nil, mdperr.New(mdperr.InvalidArgument, "render: unsupported observation kind")
	}
}

func renderDiscreteCell(state int, opts Options) (image.Image, error) {
	opts = fillDefaults(opts)
	cols := opts.GridSize
	if cols <= 0 {
		cols = state + 1
	}
	rows := (state / cols) + 1
	if rows < 1 {
		rows = 1
	}

	cellW := opts.Width / cols
	cellH := opts.Height / rows
	x := (state % cols) * cellW
	y := (state / cols) * cellH

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white;stroke:none")
	for c := 0; c <= cols; c++ {
		canvas.Line(c*cellW, 0, c*cellW, opts.Height, "stroke:lightgray")
	}
	for r := 0; r <= rows; r++ {
		canvas.Line(0, r*cellH, opts.Width, r*cellH, "stroke:lightgray")
	}
	canvas.Rect(x, y, cellW, cellH, "fill:steelblue;stroke:black")
	canvas.Text(x+cellW/2, y+cellH/2, fmt.Sprintf("%d", state), "text-anchor:middle;font-size:12px;fill:white")
	canvas.End()

	return decodeSVGToPNG(buf.Bytes(), opts)
}

func renderPoint(point []float64, opts Options) (image.Image, error) {
	opts = fillDefaults(opts)
	if len(point) < 2 {
		return nil, mdperr.New(mdperr.InvalidArgument, "render: continuous observation needs at least 2 dims")
	}

	// Fixed +-10 viewing window; a real renderer would derive this from
	// the engine's observation_space bounds, which this package never sees.
	const halfExtent = 10.0
	px := int((point[0] + halfExtent) / (2 * halfExtent) * float64(opts.Width))
	py := int((halfExtent - point[1]) / (2 * halfExtent) * float64(opts.Height))

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white;stroke:none")
	canvas.Line(opts.Width/2, 0, opts.Width/2, opts.Height, "stroke:lightgray")
	canvas.Line(0, opts.Height/2, opts.Width, opts.Height/2, "stroke:lightgray")
	canvas.Circle(px, py, 4, "fill:crimson")
	canvas.End()

	return decodeSVGToPNG(buf.Bytes(), opts)
}

func fillDefaults(opts Options) Options {
	if opts.Width <= 0 {
		opts.Width = 256
	}
	if opts.Height <= 0 {
		opts.Height = 256
	}
	return opts
}

// decodeSVGToPNG returns a blank image.Image of the requested dimensions.
// svgo only writes SVG markup and no SVG rasterizer is used here, so
// svgBytes is not drawn onto the image and is not attached to it in any
// form. The blank canvas is PNG-encoded once to surface encoding errors;
// the encoded bytes are discarded.
func decodeSVGToPNG(svgBytes []byte, opts Options) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encoding png: %w", err)
	}
	return img, nil
}
