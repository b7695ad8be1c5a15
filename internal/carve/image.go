package carve

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Channels is the number of samples stored per pixel.
const Channels = 3

// Image is a dense row-major RGB buffer.
type Image struct {
	Pix    []uint8
	Width  int
	Height int
}

func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmpty, width, height)
	}
	return &Image{
		Pix:    make([]uint8, width*height*Channels),
		Width:  width,
		Height: height,
	}, nil
}

// NewImageFromPix takes ownership of pix.
func NewImageFromPix(pix []uint8, width, height int) (*Image, error) {
	img := &Image{Pix: pix, Width: width, Height: height}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// FromStdImage flattens any image.Image into RGB, dropping alpha.
func FromStdImage(src image.Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEmpty)
	}
	bounds := src.Bounds()
	img, err := NewImage(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)
		bounds = nrgba.Bounds()
	}

	i := 0
	for y := 0; y < img.Height; y++ {
		row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < img.Width; x++ {
			img.Pix[i] = row[x*4]
			img.Pix[i+1] = row[x*4+1]
			img.Pix[i+2] = row[x*4+2]
			i += Channels
		}
	}
	return img, nil
}

// Validate checks the buffer length invariant.
func (img *Image) Validate() error {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return ErrEmpty
	}
	if len(img.Pix) != img.Width*img.Height*Channels {
		return fmt.Errorf("%w: have %d bytes for %dx%d RGB", ErrBufferSize, len(img.Pix), img.Width, img.Height)
	}
	return nil
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At returns the RGB triple at (row, col).
func (img *Image) At(row, col int) (r, g, b uint8, err error) {
	if row < 0 || row >= img.Height || col < 0 || col >= img.Width {
		return 0, 0, 0, fmt.Errorf("%w: (row %d, col %d) for %dx%d",
			ErrOutOfBounds, row, col, img.Width, img.Height)
	}
	i := (row*img.Width + col) * Channels
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2], nil
}

func (img *Image) Set(row, col int, r, g, b uint8) error {
	if row < 0 || row >= img.Height || col < 0 || col >= img.Width {
		return fmt.Errorf("%w: (row %d, col %d) for %dx%d",
			ErrOutOfBounds, row, col, img.Width, img.Height)
	}
	i := (row*img.Width + col) * Channels
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
	return nil
}

func (img *Image) Clone() *Image {
	pix := make([]uint8, len(img.Pix))
	copy(pix, img.Pix)
	return &Image{Pix: pix, Width: img.Width, Height: img.Height}
}

// Equal reports whether both images hold the same pixels.
func (img *Image) Equal(other *Image) bool {
	if other == nil || img.Width != other.Width || img.Height != other.Height {
		return false
	}
	for i, v := range img.Pix {
		if other.Pix[i] != v {
			return false
		}
	}
	return true
}

// ToNRGBA converts to an opaque Go image.
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	for i, j := 0, 0; i < len(img.Pix); i, j = i+Channels, j+4 {
		out.Pix[j] = img.Pix[i]
		out.Pix[j+1] = img.Pix[i+1]
		out.Pix[j+2] = img.Pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}

// ColorAt is a convenience for callers working with image/color.
func (img *Image) ColorAt(row, col int) (color.NRGBA, error) {
	r, g, b, err := img.At(row, col)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
