package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"seam-carver/internal/carve"
	"seam-carver/internal/logger"
)

const DefaultJPEGQuality = 95

type fileSink struct {
	logger      logger.Logger
	jpegQuality int
}

func NewFileSink(log logger.Logger, jpegQuality int) ImageSink {
	if log == nil {
		log = logger.Nop{}
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &fileSink{logger: log, jpegQuality: jpegQuality}
}

func (s *fileSink) Name() string { return "go" }

func (s *fileSink) Save(img *carve.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		s.logger.Warning("ImageSaver", "unknown extension, using PNG", map[string]interface{}{
			"path": path,
		})
		format = imaging.PNG
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := s.SaveToWriter(f, img, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": format.String(),
	})
	return nil
}

func (s *fileSink) SaveToWriter(writer io.Writer, img *carve.Image, format imaging.Format) error {
	if img == nil {
		return fmt.Errorf("%w: no image data to save", ErrEncode)
	}
	if err := img.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	s.logger.Debug("ImageSaver", "saving image", map[string]interface{}{
		"format": format.String(),
		"width":  img.Width,
		"height": img.Height,
	})

	if err := imaging.Encode(writer, img.ToNRGBA(), format, imaging.JPEGQuality(s.jpegQuality)); err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": format.String(),
		})
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}
