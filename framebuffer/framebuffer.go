package framebuffer

import (
	"errors"
	"image"
	"image/color"

	"github.com/achilleasa/go-raybench/types"
)

var (
	ErrInvalidDimensions = errors.New("framebuffer: width and height must be non-zero")
)

// Framebuffer stores packed RGBA pixels (see types.RGBAFromColor) in a
// row-major slice. Logical row 0 is the bottom of the image; it is stored in
// the last physical row so that physical row 0 is the top of the picture.
//
// Tracers write disjoint row ranges so the buffer needs no locking as long
// as blocks do not overlap.
type Framebuffer struct {
	width  uint32
	height uint32
	pixels []uint32
}

// Allocate a framebuffer and fill it with the given color.
func New(height, width uint32, fill types.Vec3) (*Framebuffer, error) {
	if width == 0 || height == 0 {
		return nil, ErrInvalidDimensions
	}

	fb := &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]uint32, int(width)*int(height)),
	}
	fb.Clear(fill)
	return fb, nil
}

// Set every pixel to the given color.
func (fb *Framebuffer) Clear(fill types.Vec3) {
	rgba := types.RGBAFromColor(fill)
	for i := range fb.pixels {
		fb.pixels[i] = rgba
	}
}

func (fb *Framebuffer) Width() uint32 {
	return fb.width
}

func (fb *Framebuffer) Height() uint32 {
	return fb.height
}

// Store color at a logical (row, col) position. Row 0 is the bottom row.
func (fb *Framebuffer) SetPixel(row, col uint32, c types.Vec3) {
	fb.pixels[fb.offset(row, col)] = types.RGBAFromColor(c)
}

// Get the packed RGBA value at a logical (row, col) position.
func (fb *Framebuffer) Pixel(row, col uint32) uint32 {
	return fb.pixels[fb.offset(row, col)]
}

// Get the raw pixel data in physical (top to bottom) order.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.pixels
}

func (fb *Framebuffer) offset(row, col uint32) int {
	return int(fb.height-1-row)*int(fb.width) + int(col)
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(fb.width), int(fb.height))
}

// At implements image.Image. y is a physical row so y = 0 is the top of the
// picture.
func (fb *Framebuffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= int(fb.width) || y >= int(fb.height) {
		return color.RGBA{}
	}
	r, g, b, a := types.Components(fb.pixels[y*int(fb.width)+x])
	return color.RGBA{R: r, G: g, B: b, A: a}
}
