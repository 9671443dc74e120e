package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codesmith/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedProjects(t *testing.T, gdb *gorm.DB) (web, tool db.Project) {
	t.Helper()

	goIcon := db.IconClass{Name: "Go", ClassName: "devicon-go-plain"}
	vueIcon := db.IconClass{Name: "Vue", ClassName: "devicon-vuejs-plain"}
	for _, icon := range []*db.IconClass{&goIcon, &vueIcon} {
		if err := gdb.Create(icon).Error; err != nil {
			t.Fatalf("create icon: %v", err)
		}
	}

	webCat := db.ProjectCategory{Name: "Web", Short: "web"}
	cliCat := db.ProjectCategory{Name: "CLI", Short: "cli"}
	for _, category := range []*db.ProjectCategory{&webCat, &cliCat} {
		if err := gdb.Create(category).Error; err != nil {
			t.Fatalf("create project category: %v", err)
		}
	}

	tool = db.Project{
		Title:        "Toolbox",
		Description:  "A CLI.",
		Categories:   []db.ProjectCategory{cliCat},
		Technologies: []db.IconClass{goIcon},
	}
	if err := gdb.Create(&tool).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	end := datatypes.Date(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	web = db.Project{
		Title:        "Portfolio",
		Description:  "First paragraph.\r\n\r\nSecond paragraph.",
		Image:        "projects/portfolio.png",
		Featured:     true,
		Categories:   []db.ProjectCategory{webCat, cliCat},
		Technologies: []db.IconClass{goIcon, vueIcon},
		GithubURL:    "https://github.com/codesmith/portfolio",
		Details: []db.ProjectDetail{{
			FullDescription: "Everything",
			StartDate:       datatypes.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:         &end,
			Role:            "Lead",
			Status:          "Done",
			Technologies:    []db.IconClass{vueIcon},
		}},
		Gallery:     []db.ProjectGalleryImage{{AlternativeText: "Home page", Image: "projects/home.png"}},
		KeyFeatures: []db.KeyFeature{{Name: "Dark mode"}, {Name: "i18n"}},
	}
	if err := gdb.Create(&web).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return web, tool
}

func TestProjectService_ListFeaturedFirst(t *testing.T) {
	gdb := setupServiceTestDB(t, "project-list")
	web, tool := seedProjects(t, gdb)
	svc := NewProjectService(gdb, "/media/")

	projects, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != web.ID || projects[1].ID != tool.ID {
		t.Fatalf("expected featured project first, got %+v", projects)
	}

	first := projects[0]
	if len(first.Description) != 2 || first.Description[1] != "Second paragraph." {
		t.Fatalf("unexpected description %q", first.Description)
	}
	if first.Image != "/media/projects/portfolio.png" {
		t.Fatalf("unexpected image %q", first.Image)
	}
	if len(first.Category) != 2 || len(first.Technologies) != 2 {
		t.Fatalf("expected categories and technologies, got %+v", first)
	}
	if projects[1].Image != "" {
		t.Fatalf("expected empty image for project without one")
	}

	web2, err := svc.List(context.Background(), "web")
	if err != nil {
		t.Fatalf("list web projects: %v", err)
	}
	if len(web2) != 1 || web2[0].ID != web.ID {
		t.Fatalf("expected only the web project, got %+v", web2)
	}

	none, err := svc.List(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("list unknown category: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no projects, got %d", len(none))
	}
}

func TestProjectService_Get(t *testing.T) {
	gdb := setupServiceTestDB(t, "project-get")
	web, _ := seedProjects(t, gdb)
	svc := NewProjectService(gdb, "/media/")

	detail, err := svc.Get(context.Background(), web.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if detail.GithubURL != "https://github.com/codesmith/portfolio" {
		t.Fatalf("unexpected github url %q", detail.GithubURL)
	}
	if len(detail.Details) != 1 {
		t.Fatalf("expected 1 detail block, got %d", len(detail.Details))
	}
	info := detail.Details[0]
	if info.StartDate != "2024-01-01" || info.EndDate != "2024-06-30" {
		t.Fatalf("unexpected dates %q %q", info.StartDate, info.EndDate)
	}
	if len(info.Technologies) != 1 || info.Technologies[0].Icon != "devicon-vuejs-plain" {
		t.Fatalf("unexpected detail technologies %+v", info.Technologies)
	}
	if len(detail.Gallery) != 1 || detail.Gallery[0].Image != "/media/projects/home.png" {
		t.Fatalf("unexpected gallery %+v", detail.Gallery)
	}
	if len(detail.KeyFeatures) != 2 || detail.KeyFeatures[0] != "Dark mode" {
		t.Fatalf("unexpected key features %+v", detail.KeyFeatures)
	}

	if _, err := svc.Get(context.Background(), 9999); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_ListCategories(t *testing.T) {
	gdb := setupServiceTestDB(t, "project-cats")
	seedProjects(t, gdb)

	categories, err := NewProjectService(gdb, "/media/").ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 2 || categories[0].Short != "cli" || categories[1].Name != "Web" {
		t.Fatalf("unexpected categories %+v", categories)
	}
}
