package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/achilleasa/go-raybench/framebuffer"
	"github.com/achilleasa/go-raybench/types"
	"github.com/nfnt/resize"
)

type Format uint8

const (
	PNG Format = iota

	// A P6-style text header followed by one "!r!g!b" hex triplet per
	// pixel, top row first.
	PPMX
)

var (
	ErrUnknownFormat = errors.New("output: unknown image format")
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case PPMX:
		return "ppmx"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// Parse a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "ppmx":
		return PPMX, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode frame using the requested format.
func Write(w io.Writer, frame *framebuffer.Framebuffer, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, frame)
	case PPMX:
		return writePPMX(w, frame)
	}
	return ErrUnknownFormat
}

// Encode frame and write it to a file.
func WriteFile(path string, frame *framebuffer.Framebuffer, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = Write(f, frame, format)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Scale frame down so it fits into maxW x maxH, preserving its aspect ratio,
// and write it as a png file.
func WriteThumbnail(path string, frame *framebuffer.Framebuffer, maxW, maxH uint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = png.Encode(f, Thumbnail(frame, maxW, maxH))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Scale image down so it fits into maxW x maxH. Images that already fit are
// returned unchanged.
func Thumbnail(img image.Image, maxW, maxH uint) image.Image {
	return resize.Thumbnail(maxW, maxH, img, resize.Bilinear)
}

func writePPMX(w io.Writer, frame *framebuffer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6 %d %d 255\n", frame.Width(), frame.Height())
	for _, rgba := range frame.Pixels() {
		r, g, b, _ := types.Components(rgba)
		fmt.Fprintf(bw, "!%x!%x!%x", r, g, b)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}
