//go:build opencv

package opencv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seam-carver/internal/carve"
	"seam-carver/internal/logger"
	"seam-carver/internal/opencv/conversion"
	"seam-carver/internal/opencv/safe"
	"seam-carver/internal/pipeline"

	"gocv.io/x/gocv"
)

type source struct {
	logger logger.Logger
}

// NewSource decodes files with OpenCV's imgcodecs.
func NewSource(log logger.Logger) pipeline.ImageSource {
	if log == nil {
		log = logger.Nop{}
	}
	return &source{logger: log}
}

func (s *source) Name() string { return "opencv" }

func (s *source) Load(path string) (*carve.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrDecode, err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrDecode, err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: OpenCV could not decode %s", pipeline.ErrDecode, path)
	}

	sm, err := safe.NewMatFromMat(mat, "decoded")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrDecode, err)
	}
	defer sm.Close()

	img, err := conversion.MatToImage(sm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrDecode, err)
	}

	s.logger.Info("OpenCVLoader", "image loaded successfully", map[string]interface{}{
		"path":       path,
		"width":      img.Width,
		"height":     img.Height,
		"size_bytes": len(data),
	})
	return img, nil
}

type sink struct {
	logger      logger.Logger
	jpegQuality int
}

// NewSink encodes files with OpenCV's imgcodecs. Unknown extensions are
// written as PNG.
func NewSink(log logger.Logger, jpegQuality int) pipeline.ImageSink {
	if log == nil {
		log = logger.Nop{}
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = pipeline.DefaultJPEGQuality
	}
	return &sink{logger: log, jpegQuality: jpegQuality}
}

func (s *sink) Name() string { return "opencv" }

func fileExt(path string) gocv.FileExt {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return gocv.JPEGFileExt
	case ".png":
		return gocv.PNGFileExt
	default:
		return ""
	}
}

func (s *sink) Save(img *carve.Image, path string) error {
	if img == nil {
		return fmt.Errorf("%w: no image data to save", pipeline.ErrEncode)
	}

	ext := fileExt(path)
	if ext == "" {
		s.logger.Warning("OpenCVSaver", "unknown extension, using PNG", map[string]interface{}{
			"path": path,
		})
		ext = gocv.PNGFileExt
	}

	mat, err := conversion.ImageToMat(img)
	if err != nil {
		return fmt.Errorf("%w: %w", pipeline.ErrEncode, err)
	}
	defer mat.Close()

	var params []int
	if ext == gocv.JPEGFileExt {
		params = []int{gocv.IMWriteJpegQuality, s.jpegQuality}
	}

	buf, err := gocv.IMEncodeWithParams(ext, mat.GetMat(), params)
	if err != nil {
		return fmt.Errorf("%w: %w", pipeline.ErrEncode, err)
	}
	defer buf.Close()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", pipeline.ErrEncode, err)
		}
	}
	if err := os.WriteFile(path, buf.GetBytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", pipeline.ErrEncode, err)
	}

	s.logger.Info("OpenCVSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": string(ext),
	})
	return nil
}
