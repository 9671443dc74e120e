package db

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Post 定义了博客文章模型。PublishedAt 为空或晚于当前时间的文章不会出现在前台。
type Post struct {
	gorm.Model
	Slug        string     `gorm:"size:150;uniqueIndex;not null"`
	Title       string     `gorm:"size:200;not null"`
	TitleSearch string     `gorm:"size:200;index"`
	Excerpt     string     `gorm:"type:text"`
	Content     string     `gorm:"type:text"`
	Image       string     `gorm:"size:255"`
	PublishedAt *time.Time `gorm:"index"`
	Featured    bool
	ReadTime    string    `gorm:"size:20"`
	AuthorID    uint      `gorm:"not null;index"`
	Author      Author    `gorm:"constraint:OnDelete:CASCADE;"`
	CategoryID  uint      `gorm:"not null;index"`
	Category    Category  `gorm:"constraint:OnDelete:RESTRICT;"`
	Tags        []Tag     `gorm:"many2many:post_tags;"`
	Comments    []Comment `gorm:"constraint:OnDelete:CASCADE;"`
}

// BeforeSave 在 slug 为空时根据标题生成，已有 slug 不会被改写。
// TitleSearch 保存按 Unicode 规则转小写的标题，供标题搜索使用。
func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.TitleSearch = FoldTitle(p.Title)
	return ensureSlug(&p.Slug, p.Title)
}

// FoldTitle lowercases with full Unicode rules; SQLite LOWER only folds ASCII.
func FoldTitle(title string) string {
	return strings.ToLower(norm.NFC.String(title))
}

// IsPublishedAt 判断文章在给定时间是否已对外可见。
func (p *Post) IsPublishedAt(now time.Time) bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(now)
}
