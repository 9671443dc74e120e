package db

import "gorm.io/gorm"

// Image 保存按名称引用的站点图片，名称不保证唯一。
type Image struct {
	gorm.Model
	Name   string `gorm:"size:50;index;not null"`
	Path   string `gorm:"size:255;not null"`
	Alt    string `gorm:"size:120"`
	Width  int
	Height int
}
