package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"seam-carver/internal/carve"
	"seam-carver/internal/logger"
)

// fileSource decodes png, jpeg, gif, bmp, tiff and webp in pure Go.
type fileSource struct {
	logger logger.Logger
}

func NewFileSource(log logger.Logger) ImageSource {
	if log == nil {
		log = logger.Nop{}
	}
	return &fileSource{logger: log}
}

func (l *fileSource) Name() string { return "go" }

func (l *fileSource) Load(path string) (*carve.Image, error) {
	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path":      path,
		"extension": strings.ToLower(filepath.Ext(path)),
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	return l.LoadFromReader(f)
}

func (l *fileSource) LoadFromReader(reader io.Reader) (*carve.Image, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image data: %w", ErrDecode, err)
	}
	return l.LoadFromBytes(data)
}

func (l *fileSource) LoadFromBytes(data []byte) (*carve.Image, error) {
	decoded, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	img, err := carve.FromStdImage(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	l.logger.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
		"width":      img.Width,
		"height":     img.Height,
		"size_bytes": len(data),
	})
	return img, nil
}
