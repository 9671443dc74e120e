package service

import (
	"context"
	"errors"
	"strings"

	"github.com/codesmith/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAuthorInvalid = errors.New("author name and a valid email are required")
	ErrAuthorExists  = errors.New("author email already registered")
)

// AuthorService manages blog authors.
type AuthorService struct {
	db *gorm.DB
}

// AuthorInput represents fields accepted when creating an author.
type AuthorInput struct {
	Name   string
	Email  string
	Bio    string
	Avatar string
}

// NewAuthorService creates an AuthorService instance.
func NewAuthorService(gdb *gorm.DB) *AuthorService {
	return &AuthorService{db: gdb}
}

// Create registers a new author with a unique email.
func (s *AuthorService) Create(ctx context.Context, input AuthorInput) (*db.Author, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, ErrAuthorInvalid
	}
	if !validEmail(email) {
		return nil, ErrAuthorInvalid
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Author{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAuthorExists
	}

	author := db.Author{
		Name:   name,
		Email:  email,
		Bio:    strings.TrimSpace(input.Bio),
		Avatar: strings.TrimSpace(input.Avatar),
	}
	if err := s.db.WithContext(ctx).Create(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// List returns all authors ordered by name.
func (s *AuthorService) List(ctx context.Context) ([]db.Author, error) {
	var authors []db.Author
	if err := s.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}
