package service

import (
	"context"
	"errors"
	"strings"

	"github.com/codesmith/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTagExists       = errors.New("tag already exists")
	ErrTagInUse        = errors.New("tag is associated with posts")
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameRequired = errors.New("tag name is required")
)

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// List returns every tag ordered by name.
func (s *TagService) List(ctx context.Context) ([]TagSummary, error) {
	var tags []db.Tag
	if err := s.db.WithContext(ctx).
		Order("tags.name asc").
		Order("tags.id asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}

	out := make([]TagSummary, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagSummary{Name: tag.Name, Slug: tag.Slug})
	}
	return out, nil
}

// Create inserts a new tag. The slug is normalized; an empty one is derived from the name.
func (s *TagService) Create(ctx context.Context, name, slug string) (*db.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagNameRequired
	}
	slug = db.Slugify(slug)
	if slug == "" {
		slug = db.Slugify(name)
	}
	if slug == "" {
		return nil, ErrTagNameRequired
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Tag{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTagExists
	}

	tag := db.Tag{Name: name, Slug: slug}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes a tag if it is not associated with posts.
func (s *TagService) Delete(ctx context.Context, id uint) error {
	var tag db.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	count, err := s.postUsageCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTagInUse
	}

	return s.db.WithContext(ctx).Unscoped().Delete(&tag).Error
}

func (s *TagService) postUsageCount(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Post{}).
		Joins("JOIN post_tags ON posts.id = post_tags.post_id").
		Where("post_tags.tag_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
