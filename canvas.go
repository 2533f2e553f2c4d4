package pixfill

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/pixfill/imop"
	"golang.org/x/image/vector"
)

// ErrSizeMismatch is returned when a buffer is committed to a canvas of different size.
var ErrSizeMismatch = errors.New("buffer size does not match the canvas")

// circleK is the control point distance used to approximate a quarter circle with a cubic Bézier.
const circleK = 0.5522847498

// Canvas is the drawing surface the paint tools operate on.
// It is not safe for concurrent use.
type Canvas struct {
	img  *image.NRGBA
	comp *imop.Composite
}

// NewCanvas creates a transparent canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:  imaging.New(max(width, 0), max(height, 0), color.Transparent),
		comp: imop.InitOp(),
	}
}

// NewCanvasFromImage creates a canvas holding a copy of img.
func NewCanvasFromImage(img image.Image) *Canvas {
	return &Canvas{
		img:  imaging.Clone(img),
		comp: imop.InitOp(),
	}
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image returns the live raster of the canvas.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Snapshot returns a copy of the current raster.
func (c *Canvas) Snapshot() *Buffer {
	return BufferFromImage(c.img)
}

// Commit replaces the canvas raster with the content of b.
func (c *Canvas) Commit(b *Buffer) error {
	if b.Bounds() != c.img.Bounds() {
		return fmt.Errorf("%w: %v != %v", ErrSizeMismatch, b.Bounds(), c.img.Bounds())
	}
	rowSize := b.width * 4
	for y := 0; y < b.height; y++ {
		di := c.img.PixOffset(0, y)
		copy(c.img.Pix[di:di+rowSize], b.pix[y*rowSize:(y+1)*rowSize])
	}
	return nil
}

// Clear erases the pixels inside r to transparent black.
func (c *Canvas) Clear(r image.Rectangle) {
	r = r.Canon().Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	mask := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(mask, mask.Bounds(), image.Opaque, image.Point{}, draw.Src)
	c.composite(imop.DstOut, r, mask)
}

// StrokePath draws the outline of the polyline through pts with the given line width.
// Segment ends are squared off and interior vertices are joined with round joins.
// Coordinates address pixel centers, so a line of width 1 covers exactly one row or column.
func (c *Canvas) StrokePath(pts []image.Point, closed bool, width float32, col Color) {
	if len(pts) == 0 || width <= 0 || !col.Valid() {
		return
	}
	hw := width / 2
	r := pointsBounds(pts).Inset(-int(math.Ceil(float64(hw))) - 1)

	c.rasterize(r, col, func(z *vector.Rasterizer, org vec) {
		n := len(pts)
		segments := n - 1
		if closed && n > 2 {
			segments = n
		}
		if segments == 0 {
			addSquare(z, center(pts[0]).sub(org), hw)
			return
		}
		for i := 0; i < segments; i++ {
			a := center(pts[i]).sub(org)
			b := center(pts[(i+1)%n]).sub(org)
			addSegment(z, a, b, hw)
			if closed || i > 0 {
				addCircle(z, a, hw, true)
			}
		}
	})
}

// StrokeCircle draws a circle outline of the given radius around the center point.
func (c *Canvas) StrokeCircle(p image.Point, radius, width float32, col Color) {
	if width <= 0 || radius < 0 || !col.Valid() {
		return
	}
	hw := width / 2
	outer := radius + hw
	r := image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}.Inset(-int(math.Ceil(float64(outer))) - 1)

	c.rasterize(r, col, func(z *vector.Rasterizer, org vec) {
		o := center(p).sub(org)
		addCircle(z, o, outer, true)
		if inner := radius - hw; inner > 0 {
			addCircle(z, o, inner, false)
		}
	})
}

// rasterize renders the path produced by build into a layer covering r
// and composites the layer over the canvas.
func (c *Canvas) rasterize(r image.Rectangle, col Color, build func(z *vector.Rasterizer, org vec)) {
	clip := r.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}
	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	build(z, vec{float32(clip.Min.X), float32(clip.Min.Y)})

	layer := image.NewNRGBA(image.Rect(0, 0, clip.Dx(), clip.Dy()))
	z.Draw(layer, layer.Bounds(), image.NewUniform(col.NRGBA()), image.Point{})
	c.composite(imop.SrcOver, clip, layer)
}

func (c *Canvas) composite(op string, r image.Rectangle, layer *image.NRGBA) {
	if err := c.comp.Set(op); err != nil {
		panic(err)
	}
	c.comp.Draw(c.img, r, layer, image.Point{})
}

type vec struct{ x, y float32 }

func (v vec) add(u vec) vec       { return vec{v.x + u.x, v.y + u.y} }
func (v vec) sub(u vec) vec       { return vec{v.x - u.x, v.y - u.y} }
func (v vec) scale(s float32) vec { return vec{v.x * s, v.y * s} }
func (v vec) len() float32        { return float32(math.Hypot(float64(v.x), float64(v.y))) }

// center returns the center of the pixel at p.
func center(p image.Point) vec {
	return vec{float32(p.X) + 0.5, float32(p.Y) + 0.5}
}

func moveTo(z *vector.Rasterizer, v vec) {
	z.MoveTo(v.x, v.y)
}

func lineTo(z *vector.Rasterizer, v vec) {
	z.LineTo(v.x, v.y)
}

// addSegment adds the rectangle covering the segment a-b, extended by hw at both ends.
// All the outlines are emitted with the same winding so overlapping parts do not cancel out.
func addSegment(z *vector.Rasterizer, a, b vec, hw float32) {
	d := b.sub(a)
	l := d.len()
	if l == 0 {
		addSquare(z, a, hw)
		return
	}
	d = d.scale(hw / l)
	n := vec{-d.y, d.x}
	a, b = a.sub(d), b.add(d)

	moveTo(z, a.add(n))
	lineTo(z, b.add(n))
	lineTo(z, b.sub(n))
	lineTo(z, a.sub(n))
	z.ClosePath()
}

func addSquare(z *vector.Rasterizer, p vec, hw float32) {
	addSegment(z, p.sub(vec{1e-3, 0}), p, hw)
}

// addCircle adds a circle using four cubic Bézier curves.
func addCircle(z *vector.Rasterizer, o vec, radius float32, clockwise bool) {
	cx, cy := o.x, o.y
	kr := circleK * radius

	z.MoveTo(cx, cy-radius)
	if clockwise {
		z.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		z.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		z.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		z.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		z.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		z.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		z.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		z.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	z.ClosePath()
}

// pointsBounds returns the smallest rectangle containing the pixels at pts.
func pointsBounds(pts []image.Point) image.Rectangle {
	r := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Pt(1, 1))}
	for _, p := range pts[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}
