package db

import "gorm.io/gorm"

// Tag 定义了标签模型
type Tag struct {
	gorm.Model
	Name  string `gorm:"size:30;uniqueIndex;not null"`
	Slug  string `gorm:"size:40;uniqueIndex;not null"`
	Posts []Post `gorm:"many2many:post_tags;"`
}

// BeforeSave 在 slug 为空时根据名称生成。
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	return ensureSlug(&t.Slug, t.Name)
}
