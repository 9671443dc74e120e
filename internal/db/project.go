package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IconClass 保存前端图标的 CSS 类名，项目与作品集内容共用。
type IconClass struct {
	gorm.Model
	Name        string `gorm:"size:100;not null"`
	ClassName   string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
}

// ProjectCategory 定义项目分类，Short 为前端筛选使用的短码。
type ProjectCategory struct {
	gorm.Model
	Name  string `gorm:"size:200;not null"`
	Short string `gorm:"size:10;uniqueIndex;not null"`
}

// Project 定义作品集中的项目。
type Project struct {
	gorm.Model
	Title        string            `gorm:"size:100;not null"`
	Description  string            `gorm:"type:text"`
	Image        string            `gorm:"size:255"`
	Featured     bool              `gorm:"index"`
	Categories   []ProjectCategory `gorm:"many2many:project_category_links;"`
	Technologies []IconClass       `gorm:"many2many:project_technologies;"`
	GithubURL    string            `gorm:"size:200"`
	DemoURL      string            `gorm:"size:200"`
	DocumentsURL string            `gorm:"size:200"`
	Details      []ProjectDetail
	Gallery      []ProjectGalleryImage
	KeyFeatures  []KeyFeature
}

// ProjectDetail 保存项目的详细描述与时间线。
type ProjectDetail struct {
	gorm.Model
	ProjectID       uint   `gorm:"index"`
	FullDescription string `gorm:"type:text"`
	StartDate       datatypes.Date
	EndDate         *datatypes.Date
	Role            string      `gorm:"size:100"`
	Status          string      `gorm:"size:100"`
	Client          string      `gorm:"size:100"`
	Technologies    []IconClass `gorm:"many2many:project_detail_technologies;"`
}

// ProjectGalleryImage 是项目详情页的图集条目。
type ProjectGalleryImage struct {
	gorm.Model
	ProjectID       uint   `gorm:"index;not null"`
	AlternativeText string `gorm:"size:200"`
	Image           string `gorm:"size:255;not null"`
}

// KeyFeature 是项目的关键特性。
type KeyFeature struct {
	gorm.Model
	ProjectID uint   `gorm:"index;not null"`
	Name      string `gorm:"size:200;not null"`
}
