package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/codesmith/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrPostInvalid        = errors.New("post is missing required fields")
	ErrInvalidPagination  = errors.New("page number and page size must be positive")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrAuthorNotFound     = errors.New("author not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryRequired   = errors.New("category slug is required")
	ErrPostSlugIsRequired = errors.New("post slug is required")
)

const (
	// DefaultPerPage 是未指定 per_page 时的每页文章数。
	DefaultPerPage = 6
	// RelatedPostLimit 是相关文章的最大数量。
	RelatedPostLimit = 3
	// DateLayout 是对外输出发布日期的格式。
	DateLayout = "2006-01-02"
)

// PostService wraps post related database operations.
type PostService struct {
	db       *gorm.DB
	mediaURL string
	now      func() time.Time
}

// AuthorSummary is the author block embedded in post payloads.
type AuthorSummary struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// TagSummary is a tag name/slug pair.
type TagSummary struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategorySummary is a category title/slug pair.
type CategorySummary struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// PostSummary is one entry of the public post listing.
type PostSummary struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Excerpt      string          `json:"excerpt"`
	ReadTime     string          `json:"read_time"`
	Author       AuthorSummary   `json:"author"`
	Date         string          `json:"date"`
	CommentCount int64           `json:"comment_count"`
	Featured     bool            `json:"featured"`
	Image        string          `json:"image"`
	Tags         []TagSummary    `json:"tags"`
	Category     CategorySummary `json:"category"`
}

// PostPage is a single page of the public listing.
type PostPage struct {
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int64         `json:"total"`
	HasNext bool          `json:"has_next"`
	Posts   []PostSummary `json:"posts"`
}

// RelatedPost is the short form used for "more in this category".
type RelatedPost struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Image string `json:"image"`
}

// PostDetail is a single published post with its rendered body.
type PostDetail struct {
	PostSummary
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Image       string
	PublishedAt *time.Time
	Featured    bool
	ReadTime    string
	AuthorID    uint
	CategoryID  uint
	TagIDs      []uint
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB, mediaURL string) *PostService {
	return &PostService{db: gdb, mediaURL: mediaURL, now: time.Now}
}

// publishedBefore 限定为发布时间已设置且不晚于 now 的文章。
func publishedBefore(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.published_at IS NOT NULL AND posts.published_at <= ?", now.UTC())
	}
}

func newestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("posts.published_at desc").Order("posts.id desc")
}

// ListPage returns the requested page of published posts matching filter.
// A page past the end is empty rather than an error.
func (s *PostService) ListPage(ctx context.Context, pageNumber, pageSize int, filter PostFilter) (*PostPage, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, ErrInvalidPagination
	}

	now := s.now()
	result := &PostPage{Page: pageNumber, PerPage: pageSize, Posts: []PostSummary{}}

	countQuery := s.db.WithContext(ctx).Model(&db.Post{}).Scopes(publishedBefore(now))
	countQuery = s.applyFilter(countQuery, filter)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	// pageNumber*pageSize 溢出时必然越过末页。
	if int64(pageNumber) > math.MaxInt64/int64(pageSize) {
		return result, nil
	}
	offset := int64(pageSize) * int64(pageNumber-1)
	if offset >= result.Total {
		return result, nil
	}
	result.HasNext = offset+int64(pageSize) < result.Total

	var posts []db.Post
	dataQuery := s.db.WithContext(ctx).Model(&db.Post{}).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Scopes(publishedBefore(now), newestFirst)
	dataQuery = s.applyFilter(dataQuery, filter)

	if err := dataQuery.Limit(pageSize).Offset(int(offset)).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	counts, err := s.commentCounts(ctx, posts)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		result.Posts = append(result.Posts, s.summarize(&posts[i], counts[posts[i].ID], false))
	}
	return result, nil
}

// CountPages returns floor(published posts / pageSize). No filter applies.
func (s *PostService) CountPages(ctx context.Context, pageSize int) (int64, error) {
	if pageSize < 1 {
		return 0, ErrInvalidPagination
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&db.Post{}).
		Scopes(publishedBefore(s.now())).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total / int64(pageSize), nil
}

// Related returns up to RelatedPostLimit published posts in the category.
// excludeSlug, when set, removes the post currently being read.
func (s *PostService) Related(ctx context.Context, categorySlug, excludeSlug string) ([]RelatedPost, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return nil, ErrCategoryRequired
	}

	query := s.db.WithContext(ctx).Model(&db.Post{}).
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("categories.slug = ?", categorySlug).
		Scopes(publishedBefore(s.now()), newestFirst)
	if excluded := strings.TrimSpace(excludeSlug); excluded != "" {
		query = query.Where("posts.slug <> ?", excluded)
	}

	var posts []db.Post
	if err := query.Limit(RelatedPostLimit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list related posts: %w", err)
	}

	related := make([]RelatedPost, 0, len(posts))
	for _, post := range posts {
		related = append(related, RelatedPost{
			ID:    post.ID,
			Slug:  post.Slug,
			Title: post.Title,
			Date:  formatDate(post.PublishedAt),
			Image: mediaURL(s.mediaURL, post.Image),
		})
	}
	return related, nil
}

// GetBySlug returns a published post with its content rendered to HTML.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*PostDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPostSlugIsRequired
	}

	var post db.Post
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Scopes(publishedBefore(s.now())).
		Where("posts.slug = ?", slug).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	counts, err := s.commentCounts(ctx, []db.Post{post})
	if err != nil {
		return nil, err
	}

	html, err := renderMarkdown(post.Content)
	if err != nil {
		return nil, fmt.Errorf("render post %s: %w", post.Slug, err)
	}

	return &PostDetail{
		PostSummary: s.summarize(&post, counts[post.ID], true),
		Content:     post.Content,
		ContentHTML: html,
	}, nil
}

// Get fetches a post by id regardless of its publish date.
func (s *PostService) Get(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a post and associates tags in a transaction.
func (s *PostService) Create(ctx context.Context, input PostInput) (*db.Post, error) {
	post := db.Post{}
	if err := s.assign(&post, input); err != nil {
		return nil, err
	}
	return s.saveWithTags(ctx, &post, input.TagIDs)
}

// Update applies updates to an existing post. An empty slug keeps the
// current one.
func (s *PostService) Update(ctx context.Context, id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.assign(&existing, input); err != nil {
		return nil, err
	}
	return s.saveWithTags(ctx, &existing, input.TagIDs)
}

// Delete removes a post together with its comments and tag links.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post db.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		// 硬删除，避免软删除记录继续占用唯一 slug。
		return tx.Unscoped().Delete(&post).Error
	})
}

func (s *PostService) assign(post *db.Post, input PostInput) error {
	title := strings.TrimSpace(input.Title)
	excerpt := strings.TrimSpace(input.Excerpt)
	if title == "" || excerpt == "" || strings.TrimSpace(input.Content) == "" {
		return ErrPostInvalid
	}
	if input.AuthorID == 0 {
		return ErrAuthorNotFound
	}
	if input.CategoryID == 0 {
		return ErrCategoryNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	switch {
	case slug != "":
		slug = db.Slugify(slug)
	case post.Slug != "":
		slug = post.Slug
	default:
		slug = db.Slugify(title)
	}
	if slug == "" {
		return fmt.Errorf("%w: %v", ErrPostInvalid, db.ErrSlugRequired)
	}

	var publishedAt *time.Time
	if input.PublishedAt != nil && !input.PublishedAt.IsZero() {
		utc := input.PublishedAt.UTC()
		publishedAt = &utc
	}

	post.Title = title
	post.Slug = slug
	post.Excerpt = excerpt
	post.Content = input.Content
	post.Image = strings.TrimSpace(input.Image)
	post.PublishedAt = publishedAt
	post.Featured = input.Featured
	post.ReadTime = strings.TrimSpace(input.ReadTime)
	post.AuthorID = input.AuthorID
	post.CategoryID = input.CategoryID
	return nil
}

func (s *PostService) saveWithTags(ctx context.Context, post *db.Post, tagIDs []uint) (*db.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&db.Post{}).
			Where("slug = ? AND id <> ?", post.Slug, post.ID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrSlugTaken
		}

		if err := requireRow(tx, &db.Author{}, post.AuthorID, ErrAuthorNotFound); err != nil {
			return err
		}
		if err := requireRow(tx, &db.Category{}, post.CategoryID, ErrCategoryNotFound); err != nil {
			return err
		}

		tags, err := findTags(tx, tagIDs)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}

		tagsAssoc := tx.Model(post).Association("Tags")
		if len(tags) == 0 {
			if err := tagsAssoc.Clear(); err != nil {
				return err
			}
		} else if err := tagsAssoc.Replace(tags); err != nil {
			return err
		}

		return tx.Preload("Author").Preload("Category").Preload("Tags").First(post, post.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func requireRow(tx *gorm.DB, model interface{}, id uint, notFound error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}

func findTags(tx *gorm.DB, ids []uint) ([]db.Tag, error) {
	unique := uniqueIDs(ids)
	tags := make([]db.Tag, 0, len(unique))
	if len(unique) == 0 {
		return tags, nil
	}
	if err := tx.Where("id IN ?", unique).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// commentCounts 统计每篇文章的全部评论（包括隐藏评论）。
func (s *PostService) commentCounts(ctx context.Context, posts []db.Post) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(posts))
	if len(posts) == 0 {
		return counts, nil
	}

	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	var rows []struct {
		PostID uint
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&db.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (s *PostService) summarize(post *db.Post, comments int64, withEmail bool) PostSummary {
	summary := PostSummary{
		ID:       post.ID,
		Title:    post.Title,
		Slug:     post.Slug,
		Excerpt:  post.Excerpt,
		ReadTime: post.ReadTime,
		Author: AuthorSummary{
			Name:   post.Author.Name,
			Bio:    post.Author.Bio,
			Avatar: mediaURL(s.mediaURL, post.Author.Avatar),
		},
		Date:         formatDate(post.PublishedAt),
		CommentCount: comments,
		Featured:     post.Featured,
		Image:        mediaURL(s.mediaURL, post.Image),
		Tags:         make([]TagSummary, 0, len(post.Tags)),
		Category: CategorySummary{
			Title: post.Category.Title,
			Slug:  post.Category.Slug,
		},
	}
	if withEmail {
		summary.Author.Email = post.Author.Email
	}
	for _, tag := range post.Tags {
		summary.Tags = append(summary.Tags, TagSummary{Name: tag.Name, Slug: tag.Slug})
	}
	return summary
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
