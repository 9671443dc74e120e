package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/codesmith/internal/db"
	"github.com/codesmith/internal/media"
	"gorm.io/gorm"
)

var (
	ErrImageNotFound     = errors.New("Image not found")
	ErrImageAmbiguous    = errors.New("Problem with database")
	ErrImageNameRequired = errors.New("image name is required")
)

const imagesSubdir = "images"

// FileStore persists processed uploads.
type FileStore interface {
	SaveImage(subdir, name string, src io.Reader) (*media.Stored, error)
	Remove(rel string) error
}

// ImageService manages named site images.
type ImageService struct {
	db       *gorm.DB
	files    FileStore
	mediaURL string
}

// ImageView is the public representation of a named image.
type ImageView struct {
	ID     uint   `json:"id,omitempty"`
	Image  string `json:"image"`
	Name   string `json:"name"`
	Alt    string `json:"alt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// NewImageService creates an ImageService instance.
func NewImageService(gdb *gorm.DB, files FileStore, mediaURL string) *ImageService {
	return &ImageService{db: gdb, files: files, mediaURL: mediaURL}
}

// GetByName returns the single image with the given name. Names are not
// unique in storage, so more than one match is reported as ErrImageAmbiguous.
func (s *ImageService) GetByName(ctx context.Context, name string) (*ImageView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrImageNameRequired
	}

	var images []db.Image
	if err := s.db.WithContext(ctx).Where("name = ?", name).Limit(2).Find(&images).Error; err != nil {
		return nil, err
	}

	switch len(images) {
	case 0:
		return nil, ErrImageNotFound
	case 1:
		view := ImageView{
			Image: mediaURL(s.mediaURL, images[0].Path),
			Name:  images[0].Name,
			Alt:   images[0].Alt,
		}
		return &view, nil
	default:
		return nil, ErrImageAmbiguous
	}
}

// List returns all images ordered by alt text then name.
func (s *ImageService) List(ctx context.Context) ([]ImageView, error) {
	var images []db.Image
	if err := s.db.WithContext(ctx).Order("alt asc").Order("name asc").Order("id asc").Find(&images).Error; err != nil {
		return nil, err
	}

	views := make([]ImageView, 0, len(images))
	for _, image := range images {
		views = append(views, s.toView(image))
	}
	return views, nil
}

// Upload processes src and stores it under name.
func (s *ImageService) Upload(ctx context.Context, name, alt string, src io.Reader) (*ImageView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrImageNameRequired
	}

	stored, err := s.files.SaveImage(imagesSubdir, name, src)
	if err != nil {
		return nil, err
	}

	image := db.Image{
		Name:   name,
		Path:   stored.Path,
		Alt:    strings.TrimSpace(alt),
		Width:  stored.Width,
		Height: stored.Height,
	}
	if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
		if removeErr := s.files.Remove(stored.Path); removeErr != nil {
			return nil, fmt.Errorf("%w (cleanup failed: %v)", err, removeErr)
		}
		return nil, err
	}

	view := s.toView(image)
	return &view, nil
}

// UploadMedia stores a processed image for posts or authors and returns its
// relative media path.
func (s *ImageService) UploadMedia(subdir, name string, src io.Reader) (*media.Stored, error) {
	switch subdir {
	case "posts", "authors", "projects":
	default:
		return nil, fmt.Errorf("%w: unknown media folder %q", media.ErrInvalidPath, subdir)
	}
	return s.files.SaveImage(subdir, name, src)
}

// Delete removes an image row and its file.
func (s *ImageService) Delete(ctx context.Context, id uint) error {
	var image db.Image
	if err := s.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(&image).Error; err != nil {
		return err
	}
	return s.files.Remove(image.Path)
}

func (s *ImageService) toView(image db.Image) ImageView {
	return ImageView{
		ID:     image.ID,
		Image:  mediaURL(s.mediaURL, image.Path),
		Name:   image.Name,
		Alt:    image.Alt,
		Width:  image.Width,
		Height: image.Height,
	}
}
