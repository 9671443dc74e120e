package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/codesmith/internal/db"
	"gorm.io/gorm"
)

// ErrInvalidFilter is returned when the filter payload is not the recognised
// {"title", "tags", "category"} object.
var ErrInvalidFilter = errors.New("invalid filter")

// PostFilter narrows the public post listing. Zero values mean "no
// constraint" for each field.
type PostFilter struct {
	// Title is matched as a case-insensitive substring.
	Title string `json:"title"`
	// Tags lists tag slugs; a post must carry all of them.
	Tags []string `json:"tags"`
	// Category is an exact category slug.
	Category string `json:"category"`
}

// ParsePostFilter decodes the JSON filter query parameter. Unknown keys,
// wrong value types and trailing data are rejected.
func ParsePostFilter(raw string) (PostFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PostFilter{}, nil
	}

	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.DisallowUnknownFields()

	var filter PostFilter
	if err := decoder.Decode(&filter); err != nil {
		return PostFilter{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return PostFilter{}, fmt.Errorf("%w: unexpected data after filter object", ErrInvalidFilter)
	}

	return filter.normalized(), nil
}

// IsEmpty reports whether the filter constrains nothing.
func (f PostFilter) IsEmpty() bool {
	return f.Title == "" && f.Category == "" && len(f.Tags) == 0
}

func (f PostFilter) normalized() PostFilter {
	out := PostFilter{
		Title:    strings.TrimSpace(f.Title),
		Category: strings.TrimSpace(f.Category),
	}

	seen := make(map[string]struct{}, len(f.Tags))
	for _, tag := range f.Tags {
		slug := strings.TrimSpace(tag)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		out.Tags = append(out.Tags, slug)
	}

	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *PostService) applyFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.IsEmpty() {
		return query
	}

	if filter.Title != "" {
		pattern := "%" + likeEscaper.Replace(db.FoldTitle(filter.Title)) + "%"
		query = query.Where(`posts.title_search LIKE ? ESCAPE '\'`, pattern)
	}

	if filter.Category != "" {
		categoryIDs := s.db.Table("categories").
			Select("categories.id").
			Where("categories.slug = ? AND categories.deleted_at IS NULL", filter.Category)
		query = query.Where("posts.category_id IN (?)", categoryIDs)
	}

	// One membership subquery per slug gives "has all tags" semantics.
	for _, slug := range filter.Tags {
		tagged := s.db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ? AND tags.deleted_at IS NULL", slug)
		query = query.Where("posts.id IN (?)", tagged)
	}

	return query
}
