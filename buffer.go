package pixfill

import (
	"image"
)

// Buffer is a dense RGBA raster addressed by (x, y) with the origin at the top-left corner.
// The pixels are stored non-premultiplied, 4 bytes each, at the offset (y*width+x)*4.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// NewBuffer returns a fully transparent buffer. Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// BufferFromImage copies the image into a new buffer with the origin moved to (0, 0).
func BufferFromImage(img image.Image) *Buffer {
	src := imgToNRGBA(img)
	b := NewBuffer(src.Bounds().Dx(), src.Bounds().Dy())
	rowSize := b.width * 4
	for y := 0; y < b.height; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		copy(b.pix[y*rowSize:(y+1)*rowSize], src.Pix[si:si+rowSize])
	}
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the rectangle of the valid coordinates.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Get returns the color at p, or NoColor if p lies outside of the buffer.
func (b *Buffer) Get(p image.Point) Color {
	if p.X < 0 || p.Y < 0 || p.X >= b.width || p.Y >= b.height {
		return NoColor
	}
	i := (p.Y*b.width + p.X) * 4
	s := b.pix[i : i+4 : i+4]
	return Color{R: int16(s[0]), G: int16(s[1]), B: int16(s[2]), A: int16(s[3])}
}

// Set writes c at p. The point must be inside the buffer and c must be a valid color.
func (b *Buffer) Set(p image.Point, c Color) {
	i := (p.Y*b.width + p.X) * 4
	s := b.pix[i : i+4 : i+4]
	s[0] = uint8(c.R)
	s[1] = uint8(c.G)
	s[2] = uint8(c.B)
	s[3] = uint8(c.A)
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// Image returns an *image.NRGBA view of the buffer. The image shares the pixel memory.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.pix,
		Stride: b.width * 4,
		Rect:   b.Bounds(),
	}
}
