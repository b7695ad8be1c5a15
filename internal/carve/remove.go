package carve

import "fmt"

// RemoveSeam returns a copy of img, one column narrower, with the pixel at
// seam[row] dropped from every row. img is left untouched.
func RemoveSeam(img *Image, seam Seam) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("remove seam: %w", err)
	}
	if img.Width < 2 {
		return nil, fmt.Errorf("remove seam: %w", ErrTooNarrow)
	}
	if err := seam.Validate(img.Width, img.Height); err != nil {
		return nil, fmt.Errorf("remove seam: %w", err)
	}

	stride := img.Width * Channels
	out := make([]uint8, 0, (img.Width-1)*img.Height*Channels)
	for y, x := range seam {
		row := img.Pix[y*stride : (y+1)*stride]
		cut := x * Channels
		out = append(out, row[:cut]...)
		out = append(out, row[cut+Channels:]...)
	}

	return &Image{Pix: out, Width: img.Width - 1, Height: img.Height}, nil
}
