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
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentInvalid  = errors.New("comment requires a name, a valid email and content")
)

const maxCommentLength = 5000

// CommentService handles reader comments on published posts.
type CommentService struct {
	db  *gorm.DB
	now func() time.Time
}

// CommentView is a public comment as returned to readers.
type CommentView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentInput represents fields accepted when a reader posts a comment.
type CommentInput struct {
	Name    string
	Email   string
	Content string
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb, now: time.Now}
}

// ListPublic returns the visible comments of a published post, oldest first.
func (s *CommentService) ListPublic(ctx context.Context, postSlug string) ([]CommentView, error) {
	post, err := s.publishedPost(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	var comments []db.Comment
	if err := s.db.WithContext(ctx).
		Where("post_id = ? AND is_public = ?", post.ID, true).
		Order("created_at asc").
		Order("id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, toCommentView(comment))
	}
	return views, nil
}

// Create adds a public comment to a published post.
func (s *CommentService) Create(ctx context.Context, postSlug string, input CommentInput) (*CommentView, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	content := strings.TrimSpace(input.Content)
	if name == "" || content == "" || len([]rune(content)) > maxCommentLength || !validEmail(email) {
		return nil, ErrCommentInvalid
	}

	post, err := s.publishedPost(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	comment := db.Comment{
		PostID:   post.ID,
		Name:     name,
		Email:    email,
		Content:  content,
		IsPublic: true,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	view := toCommentView(comment)
	return &view, nil
}

// SetVisibility hides or shows a comment. Hidden comments still count
// towards a post's comment total.
func (s *CommentService) SetVisibility(ctx context.Context, id uint, public bool) error {
	result := s.db.WithContext(ctx).Model(&db.Comment{}).Where("id = ?", id).Update("is_public", public)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (s *CommentService) publishedPost(ctx context.Context, slug string) (*db.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPostSlugIsRequired
	}

	var post db.Post
	if err := s.db.WithContext(ctx).
		Scopes(publishedBefore(s.now())).
		Where("posts.slug = ?", slug).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func toCommentView(comment db.Comment) CommentView {
	return CommentView{
		ID:        comment.ID,
		Name:      comment.Name,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.UTC(),
	}
}
