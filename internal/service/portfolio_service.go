package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codesmith/internal/db"
	"gorm.io/gorm"
)

var (
	ErrLanguageNotFound = errors.New("language not found")
	ErrAboutNotFound    = errors.New("about section not found")
	ErrContactNotFound  = errors.New("contact page not found")
)

// PortfolioService serves the "about me" pages: skills, about, contact and
// social links.
type PortfolioService struct {
	db       *gorm.DB
	mediaURL string
}

// SkillView is a single skill with its icon class.
type SkillView struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SkillsCardView groups skills under a category.
type SkillsCardView struct {
	CategoryTitle string      `json:"categoryTitle"`
	CategoryIcon  string      `json:"categoryIcon"`
	Skills        []SkillView `json:"skills"`
}

// SocialLinkView is a rendered social link.
type SocialLinkView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// JourneyView is one professional journey entry.
type JourneyView struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// ArsenalView is a technical arsenal group.
type ArsenalView struct {
	Icon   string   `json:"icon"`
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

// TestimonialView is a testimonial without the author's email.
type TestimonialView struct {
	Author   string `json:"author"`
	Position string `json:"position"`
	Text     string `json:"text"`
}

// CoreValueView is a core value card.
type CoreValueView struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// AboutView is the about page in one language.
type AboutView struct {
	Language                 string            `json:"language"`
	Title                    string            `json:"title"`
	SubTitle                 string            `json:"sub_title"`
	Text                     string            `json:"text"`
	TextHTML                 string            `json:"text_html"`
	ImageTitle               string            `json:"image_title"`
	Image                    string            `json:"image"`
	TechnicalArsenalTitle    string            `json:"technical_arsenal_title"`
	CoreValueTitle           string            `json:"core_value_title"`
	ProfessionalJourneyTitle string            `json:"professional_journey_title"`
	TestimonialsTitle        string            `json:"testimonials_title"`
	ProfessionalJourney      []JourneyView     `json:"professional_journey"`
	TechnicalArsenal         []ArsenalView     `json:"technical_arsenal"`
	Testimonials             []TestimonialView `json:"testimonials"`
	CoreValues               []CoreValueView   `json:"core_values"`
	SocialLinks              []SocialLinkView  `json:"social_links"`
}

// FAQView is a question/answer pair.
type FAQView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContactView is the contact page in one language.
type ContactView struct {
	Language      string           `json:"language"`
	Email         string           `json:"email"`
	BusinessEmail string           `json:"business_email"`
	Phone         string           `json:"phone"`
	MapIframe     string           `json:"map_iframe"`
	FAQs          []FAQView        `json:"faqs"`
	SocialLinks   []SocialLinkView `json:"social_links"`
}

// NewPortfolioService creates a PortfolioService instance.
func NewPortfolioService(gdb *gorm.DB, mediaURL string) *PortfolioService {
	return &PortfolioService{db: gdb, mediaURL: mediaURL}
}

// SkillsCards returns every skills card with its skills.
func (s *PortfolioService) SkillsCards(ctx context.Context) ([]SkillsCardView, error) {
	var cards []db.SkillsCard
	if err := s.db.WithContext(ctx).
		Preload("IconClass").
		Preload("Skills", func(tx *gorm.DB) *gorm.DB { return tx.Order("skills.id asc") }).
		Preload("Skills.IconClass").
		Order("id asc").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list skills cards: %w", err)
	}

	views := make([]SkillsCardView, 0, len(cards))
	for _, card := range cards {
		view := SkillsCardView{
			CategoryTitle: card.CategoryTitle,
			CategoryIcon:  iconClass(card.IconClass),
			Skills:        make([]SkillView, 0, len(card.Skills)),
		}
		for _, skill := range card.Skills {
			view.Skills = append(view.Skills, SkillView{Name: skill.Name, Icon: iconClass(skill.IconClass)})
		}
		views = append(views, view)
	}
	return views, nil
}

// About returns the about page for langCode. An empty code selects the
// first configured language.
func (s *PortfolioService) About(ctx context.Context, langCode string) (*AboutView, error) {
	lang, err := s.resolveLang(ctx, langCode)
	if err != nil {
		return nil, err
	}

	var about db.About
	if err := s.db.WithContext(ctx).
		Preload("Journeys", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date desc").Order("id desc") }).
		Preload("Arsenals", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Preload("Arsenals.IconClass").
		Preload("Arsenals.Skills", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Preload("Testimonials", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Preload("CoreValues", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Preload("CoreValues.IconClass").
		Where("lang_id = ?", lang.ID).
		First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAboutNotFound
		}
		return nil, fmt.Errorf("get about: %w", err)
	}

	html, err := renderMarkdown(about.Text)
	if err != nil {
		return nil, fmt.Errorf("render about text: %w", err)
	}

	links, err := s.socialLinks(ctx, "about_pages")
	if err != nil {
		return nil, err
	}

	view := &AboutView{
		Language:                 lang.Name,
		Title:                    about.Title,
		SubTitle:                 about.SubTitle,
		Text:                     about.Text,
		TextHTML:                 html,
		ImageTitle:               about.ImageTitle,
		Image:                    mediaURL(s.mediaURL, about.Image),
		TechnicalArsenalTitle:    about.TechnicalArsenalTitle,
		CoreValueTitle:           about.CoreValueTitle,
		ProfessionalJourneyTitle: about.ProfessionalJourneyTitle,
		TestimonialsTitle:        about.TestimonialsTitle,
		ProfessionalJourney:      make([]JourneyView, 0, len(about.Journeys)),
		TechnicalArsenal:         make([]ArsenalView, 0, len(about.Arsenals)),
		Testimonials:             make([]TestimonialView, 0, len(about.Testimonials)),
		CoreValues:               make([]CoreValueView, 0, len(about.CoreValues)),
		SocialLinks:              links,
	}

	for _, journey := range about.Journeys {
		view.ProfessionalJourney = append(view.ProfessionalJourney, JourneyView{
			Title:       journey.Title,
			Company:     journey.Company,
			Description: journey.Description,
			Duration:    journey.Duration(),
		})
	}
	for _, arsenal := range about.Arsenals {
		skills := make([]string, 0, len(arsenal.Skills))
		for _, skill := range arsenal.Skills {
			skills = append(skills, skill.Text)
		}
		view.TechnicalArsenal = append(view.TechnicalArsenal, ArsenalView{
			Icon:   arsenal.IconClass.ClassName,
			Title:  arsenal.Title,
			Skills: skills,
		})
	}
	for _, testimonial := range about.Testimonials {
		view.Testimonials = append(view.Testimonials, TestimonialView{
			Author:   testimonial.Author,
			Position: testimonial.Position,
			Text:     testimonial.Text,
		})
	}
	for _, value := range about.CoreValues {
		view.CoreValues = append(view.CoreValues, CoreValueView{
			Title:       value.Title,
			Icon:        value.IconClass.ClassName,
			Description: value.Description,
		})
	}

	return view, nil
}

// FooterLinks returns the social links shown in the site footer.
func (s *PortfolioService) FooterLinks(ctx context.Context) ([]SocialLinkView, error) {
	return s.socialLinks(ctx, "footer")
}

// Contact returns the contact page for langCode with its FAQs.
func (s *PortfolioService) Contact(ctx context.Context, langCode string) (*ContactView, error) {
	lang, err := s.resolveLang(ctx, langCode)
	if err != nil {
		return nil, err
	}

	var contact db.Contact
	if err := s.db.WithContext(ctx).
		Preload("FAQs", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Where("lang_id = ?", lang.ID).
		Order("id asc").
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}

	links, err := s.socialLinks(ctx, "contact_pages")
	if err != nil {
		return nil, err
	}

	view := &ContactView{
		Language:      lang.Name,
		Email:         contact.Email,
		BusinessEmail: contact.BusinessEmail,
		Phone:         contact.Phone,
		MapIframe:     contact.MapIframe,
		FAQs:          make([]FAQView, 0, len(contact.FAQs)),
		SocialLinks:   links,
	}
	for _, faq := range contact.FAQs {
		view.FAQs = append(view.FAQs, FAQView{Question: faq.Question, Answer: faq.Answer})
	}
	return view, nil
}

func (s *PortfolioService) resolveLang(ctx context.Context, code string) (*db.Lang, error) {
	query := s.db.WithContext(ctx).Model(&db.Lang{})
	if code = strings.TrimSpace(code); code != "" {
		query = query.Where("LOWER(iso_code) = ?", strings.ToLower(code))
	}

	var lang db.Lang
	if err := query.Order("id asc").First(&lang).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("resolve language: %w", err)
	}
	return &lang, nil
}

// socialLinks 按展示位置（footer / contact_pages / about_pages）筛选链接。
func (s *PortfolioService) socialLinks(ctx context.Context, placement string) ([]SocialLinkView, error) {
	var links []db.SocialLink
	if err := s.db.WithContext(ctx).
		Preload("IconClass").
		Where(placement+" = ?", true).
		Order("id asc").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}

	views := make([]SocialLinkView, 0, len(links))
	for _, link := range links {
		views = append(views, SocialLinkView{Name: link.Name, URL: link.URL, Icon: iconClass(link.IconClass)})
	}
	return views, nil
}

func iconClass(icon *db.IconClass) string {
	if icon == nil {
		return ""
	}
	return icon.ClassName
}
