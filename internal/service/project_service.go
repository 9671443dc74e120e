package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codesmith/internal/db"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService serves portfolio projects.
type ProjectService struct {
	db       *gorm.DB
	mediaURL string
}

// TechnologyView is an icon-backed technology label.
type TechnologyView struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ProjectView is a project card in the listing.
type ProjectView struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Description  []string         `json:"description"`
	Image        string           `json:"image"`
	Category     []string         `json:"category"`
	Featured     bool             `json:"featured"`
	Technologies []TechnologyView `json:"technologies"`
}

// ProjectDetailView is a single project with its details, gallery and features.
type ProjectDetailView struct {
	ProjectView
	GithubURL    string              `json:"github_url"`
	DemoURL      string              `json:"demo_url"`
	DocumentsURL string              `json:"documents_url"`
	Details      []ProjectDetailInfo `json:"details"`
	Gallery      []GalleryImageView  `json:"gallery"`
	KeyFeatures  []string            `json:"key_features"`
}

// ProjectDetailInfo is the timeline block of a project.
type ProjectDetailInfo struct {
	FullDescription string           `json:"full_description"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	Role            string           `json:"role"`
	Status          string           `json:"status"`
	Client          string           `json:"client"`
	Technologies    []TechnologyView `json:"technologies"`
}

// GalleryImageView is one project gallery image.
type GalleryImageView struct {
	Alt   string `json:"alt"`
	Image string `json:"image"`
}

// ProjectCategoryView is a project category name/short pair.
type ProjectCategoryView struct {
	Name  string `json:"name"`
	Short string `json:"short"`
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB, mediaURL string) *ProjectService {
	return &ProjectService{db: gdb, mediaURL: mediaURL}
}

// List returns projects with featured ones first. A non-empty categoryShort
// keeps only projects in that category.
func (s *ProjectService) List(ctx context.Context, categoryShort string) ([]ProjectView, error) {
	query := s.db.WithContext(ctx).Model(&db.Project{}).
		Preload("Categories").
		Preload("Technologies")

	if short := strings.TrimSpace(categoryShort); short != "" {
		inCategory := s.db.Table("project_category_links").
			Select("project_category_links.project_id").
			Joins("JOIN project_categories ON project_categories.id = project_category_links.project_category_id").
			Where("project_categories.short = ? AND project_categories.deleted_at IS NULL", short)
		query = query.Where("projects.id IN (?)", inCategory)
	}

	var projects []db.Project
	if err := query.Order("projects.featured desc").Order("projects.id asc").Find(&projects).Error; err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, s.toView(&projects[i]))
	}
	return views, nil
}

// Get returns a project with details, gallery and key features.
func (s *ProjectService) Get(ctx context.Context, id uint) (*ProjectDetailView, error) {
	var project db.Project
	if err := s.db.WithContext(ctx).
		Preload("Categories").
		Preload("Technologies").
		Preload("Details", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date asc") }).
		Preload("Details.Technologies").
		Preload("Gallery", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Preload("KeyFeatures", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	view := &ProjectDetailView{
		ProjectView:  s.toView(&project),
		GithubURL:    project.GithubURL,
		DemoURL:      project.DemoURL,
		DocumentsURL: project.DocumentsURL,
		Details:      make([]ProjectDetailInfo, 0, len(project.Details)),
		Gallery:      make([]GalleryImageView, 0, len(project.Gallery)),
		KeyFeatures:  make([]string, 0, len(project.KeyFeatures)),
	}

	for _, detail := range project.Details {
		info := ProjectDetailInfo{
			FullDescription: detail.FullDescription,
			StartDate:       time.Time(detail.StartDate).Format(DateLayout),
			Role:            detail.Role,
			Status:          detail.Status,
			Client:          detail.Client,
			Technologies:    technologies(detail.Technologies),
		}
		if detail.EndDate != nil {
			info.EndDate = time.Time(*detail.EndDate).Format(DateLayout)
		}
		view.Details = append(view.Details, info)
	}
	for _, image := range project.Gallery {
		view.Gallery = append(view.Gallery, GalleryImageView{
			Alt:   image.AlternativeText,
			Image: mediaURL(s.mediaURL, image.Image),
		})
	}
	for _, feature := range project.KeyFeatures {
		view.KeyFeatures = append(view.KeyFeatures, feature.Name)
	}

	return view, nil
}

// ListCategories returns all project categories ordered by name.
func (s *ProjectService) ListCategories(ctx context.Context) ([]ProjectCategoryView, error) {
	var categories []db.ProjectCategory
	if err := s.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}

	views := make([]ProjectCategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, ProjectCategoryView{Name: category.Name, Short: category.Short})
	}
	return views, nil
}

func (s *ProjectService) toView(project *db.Project) ProjectView {
	view := ProjectView{
		ID:           project.ID,
		Title:        project.Title,
		Description:  splitParagraphs(project.Description),
		Image:        mediaURL(s.mediaURL, project.Image),
		Category:     make([]string, 0, len(project.Categories)),
		Featured:     project.Featured,
		Technologies: technologies(project.Technologies),
	}
	for _, category := range project.Categories {
		view.Category = append(view.Category, category.Name)
	}
	return view
}

func technologies(icons []db.IconClass) []TechnologyView {
	out := make([]TechnologyView, 0, len(icons))
	for _, icon := range icons {
		out = append(out, TechnologyView{Name: icon.Name, Icon: icon.ClassName})
	}
	return out
}

// splitParagraphs 按换行拆分描述，忽略空行。
func splitParagraphs(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
