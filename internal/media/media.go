package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/codesmith/internal/db"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadSize 是单个上传文件允许的最大字节数。
	MaxUploadSize = 10 << 20
	jpegQuality   = 85
)

var (
	ErrInvalidImage = errors.New("file is not a supported image")
	ErrInvalidPath  = errors.New("media path escapes the media directory")
)

// Stored describes a processed image written under the media directory.
type Stored struct {
	Path   string
	Width  int
	Height int
}

// Store writes processed uploads below a root directory. Paths it returns
// are slash separated and relative to that root, ready for MEDIA_URL.
type Store struct {
	dir      string
	maxWidth int
}

// NewStore creates a Store rooted at dir. maxWidth <= 0 disables downscaling.
func NewStore(dir string, maxWidth int) *Store {
	return &Store{dir: dir, maxWidth: maxWidth}
}

// Dir returns the root directory served as static media.
func (s *Store) Dir() string {
	return s.dir
}

// SaveImage decodes src, downscales it and stores it as JPEG in subdir.
// The file name is the slug of name plus a random suffix.
func (s *Store) SaveImage(subdir, name string, src io.Reader) (*Stored, error) {
	data, width, height, err := Process(io.LimitReader(src, MaxUploadSize+1), s.maxWidth)
	if err != nil {
		return nil, err
	}

	base := db.Slugify(strings.TrimSuffix(name, filepath.Ext(name)))
	if base == "" {
		base = "image"
	}
	rel := path.Join(subdir, fmt.Sprintf("%s-%s.jpg", base, uuid.NewString()))

	full, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	return &Stored{Path: rel, Width: width, Height: height}, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(rel string) error {
	if strings.TrimSpace(rel) == "" {
		return nil
	}
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) resolve(rel string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(rel))
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// Process decodes an image (JPEG, PNG, GIF or WebP), scales it down to
// maxWidth keeping the aspect ratio and re-encodes it as JPEG.
func Process(src io.Reader, maxWidth int) ([]byte, int, int, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read image: %w", err)
	}
	if len(raw) > MaxUploadSize {
		return nil, 0, 0, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxUploadSize)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}
