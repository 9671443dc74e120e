package db

import "gorm.io/gorm"

// Category 定义了文章分类模型
type Category struct {
	gorm.Model
	Title string `gorm:"size:50;uniqueIndex;not null"`
	Slug  string `gorm:"size:60;uniqueIndex;not null"`
	Posts []Post
}

// BeforeSave 在 slug 为空时根据标题生成。
func (c *Category) BeforeSave(tx *gorm.DB) error {
	return ensureSlug(&c.Slug, c.Title)
}
