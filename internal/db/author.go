package db

import "gorm.io/gorm"

// Author 定义了文章作者模型
type Author struct {
	gorm.Model
	Name   string `gorm:"size:100;not null"`
	Email  string `gorm:"size:254;uniqueIndex;not null"`
	Bio    string `gorm:"type:text"`
	Avatar string `gorm:"size:255"`
}
