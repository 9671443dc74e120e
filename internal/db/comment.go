package db

import "gorm.io/gorm"

// Comment 定义了文章评论模型。IsPublic=false 的评论被隐藏但仍计入评论数。
type Comment struct {
	gorm.Model
	PostID   uint   `gorm:"not null;index"`
	Name     string `gorm:"size:80;not null"`
	Email    string `gorm:"size:254;not null"`
	Content  string `gorm:"type:text;not null"`
	IsPublic bool   `gorm:"not null"`
}
