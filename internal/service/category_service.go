package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codesmith/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists        = errors.New("category already exists")
	ErrCategoryTitleRequired = errors.New("category title is required")
	ErrCategoryInUse         = errors.New("category still has posts")
)

// CategoryService wraps blog category operations.
type CategoryService struct {
	db  *gorm.DB
	now func() time.Time
}

// CategoryCount is a category together with its published post count.
type CategoryCount struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	BlogCount int64  `json:"blog_count"`
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb, now: time.Now}
}

// List returns every category ordered by title. BlogCount only counts posts
// whose publish date has passed.
func (s *CategoryService) List(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	if err := s.db.WithContext(ctx).Model(&db.Category{}).
		Select("categories.title, categories.slug, COUNT(posts.id) AS blog_count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id AND posts.deleted_at IS NULL AND posts.published_at IS NOT NULL AND posts.published_at <= ?", s.now().UTC()).
		Group("categories.id, categories.title, categories.slug").
		Order("categories.title asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CategoryCount{}
	}
	return rows, nil
}

// Create inserts a new category. The slug is normalized; an empty one is derived from the title.
func (s *CategoryService) Create(ctx context.Context, title, slug string) (*db.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrCategoryTitleRequired
	}
	slug = db.Slugify(slug)
	if slug == "" {
		slug = db.Slugify(title)
	}
	if slug == "" {
		return nil, ErrCategoryTitleRequired
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Category{}).
		Where("title = ? OR slug = ?", title, slug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryExists
	}

	category := db.Category{Title: title, Slug: slug}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category that no longer owns any post.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	var category db.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	var posts int64
	if err := s.db.WithContext(ctx).Model(&db.Post{}).Where("category_id = ?", id).Count(&posts).Error; err != nil {
		return err
	}
	if posts > 0 {
		return ErrCategoryInUse
	}

	return s.db.WithContext(ctx).Unscoped().Delete(&category).Error
}
