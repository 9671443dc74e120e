package db

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidLinkURL 在社交链接既不是 http(s) 地址也不是合法 mailto 时返回。
var ErrInvalidLinkURL = errors.New("link must be an http(s) url or a valid mailto: address")

const (
	DefaultAboutImageTitle          = "The Master Behind the Mask"
	DefaultTechnicalArsenalTitle    = "Arsenal of Expertise"
	DefaultCoreValueTitle           = "Forging Principles"
	DefaultProfessionalJourneyTitle = "The Smith's Journey"
	DefaultTestimonialsTitle        = "Testimonials"
)

var linkValidator = validator.New()

// Lang 定义内容语言。
type Lang struct {
	gorm.Model
	Name    string `gorm:"size:100;not null"`
	ISOCode string `gorm:"size:3;uniqueIndex;not null"`
}

// SocialLink 定义页脚、联系页、关于页展示的社交链接。
type SocialLink struct {
	gorm.Model
	Name         string `gorm:"size:100;not null"`
	URL          string `gorm:"size:200;not null"`
	IconClassID  *uint
	IconClass    *IconClass
	Footer       bool
	ContactPages bool
	AboutPages   bool
}

// BeforeSave 校验链接格式。
func (l *SocialLink) BeforeSave(tx *gorm.DB) error {
	return ValidateLinkURL(l.URL)
}

// ValidateLinkURL 接受 http(s) 地址或 mailto:邮箱。
func ValidateLinkURL(value string) error {
	value = strings.TrimSpace(value)
	if email, ok := strings.CutPrefix(value, "mailto:"); ok {
		if err := linkValidator.Var(email, "required,email"); err != nil {
			return ErrInvalidLinkURL
		}
		return nil
	}
	if err := linkValidator.Var(value, "required,http_url"); err != nil {
		return ErrInvalidLinkURL
	}
	return nil
}

// Contact 定义某种语言下的联系信息。
type Contact struct {
	gorm.Model
	Email         string `gorm:"size:254"`
	BusinessEmail string `gorm:"size:254"`
	Phone         string `gorm:"size:12"`
	MapIframe     string `gorm:"size:500"`
	LangID        uint   `gorm:"index;not null"`
	Lang          Lang
	FAQs          []FAQ
}

// FAQ 是联系页的常见问题。
type FAQ struct {
	gorm.Model
	ContactID uint   `gorm:"index;not null"`
	Question  string `gorm:"size:200;not null"`
	Answer    string `gorm:"type:text;not null"`
}

// Skill 是技能卡片中的单项技能。
type Skill struct {
	gorm.Model
	Name        string `gorm:"size:100;not null"`
	IconClassID *uint
	IconClass   *IconClass
}

// SkillsCard 将技能按类别分组。
type SkillsCard struct {
	gorm.Model
	CategoryTitle string `gorm:"size:100;not null"`
	IconClassID   *uint
	IconClass     *IconClass
	Skills        []Skill `gorm:"many2many:skills_card_skills;"`
}

// About 定义某种语言下的关于我页面，每种语言至多一条。
type About struct {
	gorm.Model
	Title                    string `gorm:"size:100;not null"`
	SubTitle                 string `gorm:"size:100"`
	Text                     string `gorm:"type:text"`
	ImageTitle               string `gorm:"size:100"`
	Image                    string `gorm:"size:255"`
	LangID                   uint   `gorm:"uniqueIndex;not null"`
	Lang                     Lang
	TechnicalArsenalTitle    string `gorm:"size:100"`
	CoreValueTitle           string `gorm:"size:100"`
	ProfessionalJourneyTitle string `gorm:"size:100"`
	TestimonialsTitle        string `gorm:"size:100"`
	Journeys                 []ProfessionalJourney
	Arsenals                 []TechnicalArsenal
	Testimonials             []Testimonial
	CoreValues               []CoreValue
}

// BeforeSave 为未填写的分区标题补上默认文案。
func (a *About) BeforeSave(tx *gorm.DB) error {
	defaults := []struct {
		field    *string
		fallback string
	}{
		{&a.ImageTitle, DefaultAboutImageTitle},
		{&a.TechnicalArsenalTitle, DefaultTechnicalArsenalTitle},
		{&a.CoreValueTitle, DefaultCoreValueTitle},
		{&a.ProfessionalJourneyTitle, DefaultProfessionalJourneyTitle},
		{&a.TestimonialsTitle, DefaultTestimonialsTitle},
	}
	for _, d := range defaults {
		if strings.TrimSpace(*d.field) == "" {
			*d.field = d.fallback
		}
	}
	return nil
}

// ProfessionalJourney 是职业经历条目。
type ProfessionalJourney struct {
	gorm.Model
	AboutID     uint   `gorm:"index"`
	Title       string `gorm:"size:100;not null"`
	Company     string `gorm:"size:100;not null"`
	StartDate   datatypes.Date
	EndDate     *datatypes.Date
	Description string `gorm:"type:text"`
}

// Duration 返回 "01.2020-06.2022" 形式的区间，未结束时以 Now 结尾。
func (j ProfessionalJourney) Duration() string {
	end := "Now"
	if j.EndDate != nil {
		end = time.Time(*j.EndDate).Format("01.2006")
	}
	return time.Time(j.StartDate).Format("01.2006") + "-" + end
}

// TechnicalArsenal 是关于页的技术栈分组。
type TechnicalArsenal struct {
	gorm.Model
	AboutID     uint `gorm:"index;not null"`
	IconClassID uint `gorm:"not null"`
	IconClass   IconClass
	Title       string `gorm:"size:100;not null"`
	Skills      []TechnicalArsenalSkill
}

// TechnicalArsenalSkill 是技术栈分组下的条目。
type TechnicalArsenalSkill struct {
	gorm.Model
	TechnicalArsenalID uint   `gorm:"index;not null"`
	Text               string `gorm:"size:100;not null"`
}

// Testimonial 是他人评价。
type Testimonial struct {
	gorm.Model
	AboutID  uint   `gorm:"index;not null"`
	Author   string `gorm:"size:100;not null"`
	Email    string `gorm:"size:100"`
	Position string `gorm:"size:100"`
	Text     string `gorm:"type:text;not null"`
}

// CoreValue 是关于页的核心价值观。
type CoreValue struct {
	gorm.Model
	AboutID     uint `gorm:"index;not null"`
	IconClassID uint `gorm:"not null"`
	IconClass   IconClass
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
}
