package main

import (
	"fmt"
	"time"

	"github.com/codesmith/internal/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type seeder struct {
	db        *gorm.DB
	logger    *zap.Logger
	scheduled int
	now       func() time.Time
}

type samplePost struct {
	title    string
	excerpt  string
	content  string
	category string
	tags     []string
	featured bool
}

var samplePosts = []samplePost{
	{
		title:    "Building a JSON API with Gin",
		excerpt:  "Routing, binding and error bodies in a small Gin service.",
		content:  "## Routing\n\nGin groups keep the public and admin surfaces apart.\n\n## Errors\n\nEvery failure is answered with `{\"error\": ...}`.",
		category: "Backend",
		tags:     []string{"Go", "Gin"},
		featured: true,
	},
	{
		title:    "Paginating with GORM",
		excerpt:  "Offset pagination, stable ordering and counting pages.",
		content:  "Order by publish date, then by id, so equal timestamps never shuffle between pages.",
		category: "Backend",
		tags:     []string{"Go", "Databases"},
	},
	{
		title:    "SQLite in production",
		excerpt:  "When a single file database is enough.",
		content:  "SQLite handles far more traffic than most personal sites will ever see.",
		category: "Databases",
		tags:     []string{"Databases"},
	},
	{
		title:    "Sanitising user Markdown",
		excerpt:  "goldmark renders, bluemonday cleans.",
		content:  "Render first, then sanitise the HTML. Never the other way around.",
		category: "Security",
		tags:     []string{"Go", "Security"},
	},
	{
		title:    "Resizing uploads on the fly",
		excerpt:  "Decoding, scaling and re-encoding images with x/image.",
		content:  "CatmullRom gives good results when scaling photos down.",
		category: "Backend",
		tags:     []string{"Go", "Images"},
	},
	{
		title:    "Rate limiting comment forms",
		excerpt:  "A token bucket per client IP.",
		content:  "`golang.org/x/time/rate` does the arithmetic, a mutex guards the map.",
		category: "Security",
		tags:     []string{"Security"},
	},
	{
		title:    "Designing a portfolio backend",
		excerpt:  "Projects, skills and an about page behind one API.",
		content:  "Keep the read side boring: plain JSON views built from a handful of tables.",
		category: "Architecture",
		tags:     []string{"Go"},
		featured: true,
	},
}

func (s *seeder) run() error {
	if s.now == nil {
		s.now = time.Now
	}
	steps := []struct {
		name string
		fn   func() error
	}{
		{name: "blog", fn: s.seedBlog},
		{name: "projects", fn: s.seedProjects},
		{name: "portfolio", fn: s.seedPortfolio},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		s.logger.Info("seeded", zap.String("step", step.name))
	}
	return nil
}

func (s *seeder) seedBlog() error {
	var count int64
	if err := s.db.Model(&db.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("posts already present, skipping blog seed")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		author := db.Author{
			Name:  "Code Smith",
			Email: "smith@example.com",
			Bio:   "Forges backends in Go.",
		}
		if err := tx.Create(&author).Error; err != nil {
			return err
		}

		categories := map[string]*db.Category{}
		tags := map[string]*db.Tag{}
		for _, sample := range samplePosts {
			if _, ok := categories[sample.category]; !ok {
				category := &db.Category{Title: sample.category}
				if err := tx.Create(category).Error; err != nil {
					return err
				}
				categories[sample.category] = category
			}
			for _, name := range sample.tags {
				if _, ok := tags[name]; ok {
					continue
				}
				tag := &db.Tag{Name: name}
				if err := tx.Create(tag).Error; err != nil {
					return err
				}
				tags[name] = tag
			}
		}

		now := s.now().UTC()
		for idx, sample := range samplePosts {
			// 最后 scheduled 篇安排在未来发布
			publishedAt := now.Add(-time.Duration(len(samplePosts)-idx) * 24 * time.Hour)
			if idx >= len(samplePosts)-s.scheduled {
				publishedAt = now.Add(time.Duration(idx+1) * 24 * time.Hour)
			}

			post := db.Post{
				Title:       sample.title,
				Excerpt:     sample.excerpt,
				Content:     sample.content,
				Featured:    sample.featured,
				ReadTime:    fmt.Sprintf("%d min", len(sample.content)/200+1),
				PublishedAt: &publishedAt,
				AuthorID:    author.ID,
				CategoryID:  categories[sample.category].ID,
			}
			for _, name := range sample.tags {
				post.Tags = append(post.Tags, *tags[name])
			}
			if err := tx.Create(&post).Error; err != nil {
				return err
			}

			comment := db.Comment{
				PostID:   post.ID,
				Name:     "Reader",
				Email:    "reader@example.com",
				Content:  "Thanks for writing this up.",
				IsPublic: idx%2 == 0,
			}
			if err := tx.Create(&comment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *seeder) seedProjects() error {
	var count int64
	if err := s.db.Model(&db.Project{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		goIcon := db.IconClass{Name: "Go", ClassName: "devicon-go-original-wordmark"}
		vueIcon := db.IconClass{Name: "Vue", ClassName: "devicon-vuejs-plain"}
		pgIcon := db.IconClass{Name: "PostgreSQL", ClassName: "devicon-postgresql-plain"}
		for _, icon := range []*db.IconClass{&goIcon, &vueIcon, &pgIcon} {
			if err := tx.Create(icon).Error; err != nil {
				return err
			}
		}

		web := db.ProjectCategory{Name: "Web applications", Short: "web"}
		cli := db.ProjectCategory{Name: "Command line tools", Short: "cli"}
		for _, category := range []*db.ProjectCategory{&web, &cli} {
			if err := tx.Create(category).Error; err != nil {
				return err
			}
		}

		start := datatypes.Date(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		end := datatypes.Date(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC))
		projects := []db.Project{
			{
				Title:        "Codesmith portfolio",
				Description:  "A portfolio and blog backend.\r\n\r\nServes a Vue front end over JSON.",
				Featured:     true,
				Categories:   []db.ProjectCategory{web},
				Technologies: []db.IconClass{goIcon, vueIcon},
				GithubURL:    "https://github.com/codesmith/portfolio",
				Details: []db.ProjectDetail{{
					FullDescription: "Blog, projects and about pages behind one API.",
					StartDate:       start,
					EndDate:         &end,
					Role:            "Author",
					Status:          "Live",
					Technologies:    []db.IconClass{goIcon, pgIcon},
				}},
				KeyFeatures: []db.KeyFeature{{Name: "Scheduled publishing"}, {Name: "Image resizing"}},
			},
			{
				Title:        "Forge CLI",
				Description:  "Scaffolds Go services.",
				Categories:   []db.ProjectCategory{cli},
				Technologies: []db.IconClass{goIcon},
			},
		}
		for i := range projects {
			if err := tx.Create(&projects[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *seeder) seedPortfolio() error {
	var count int64
	if err := s.db.Model(&db.Lang{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		icon := db.IconClass{Name: "Hammer", ClassName: "fa-solid fa-hammer"}
		github := db.IconClass{Name: "GitHub", ClassName: "fa-brands fa-github"}
		for _, item := range []*db.IconClass{&icon, &github} {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}

		en := db.Lang{Name: "English", ISOCode: "en"}
		if err := tx.Create(&en).Error; err != nil {
			return err
		}

		links := []db.SocialLink{
			{Name: "GitHub", URL: "https://github.com/codesmith", IconClassID: &github.ID, Footer: true, AboutPages: true, ContactPages: true},
			{Name: "Email", URL: "mailto:smith@example.com", Footer: true, ContactPages: true},
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}

		card := db.SkillsCard{
			CategoryTitle: "Backend",
			IconClassID:   &icon.ID,
			Skills:        []db.Skill{{Name: "Go"}, {Name: "PostgreSQL"}, {Name: "SQLite"}},
		}
		if err := tx.Create(&card).Error; err != nil {
			return err
		}

		about := db.About{
			Title:    "The smith",
			SubTitle: "Backend engineer",
			Text:     "I build **small, sharp** services.",
			LangID:   en.ID,
			Journeys: []db.ProfessionalJourney{{
				Title:     "Backend engineer",
				Company:   "Forge Ltd",
				StartDate: datatypes.Date(time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
			}},
			Arsenals: []db.TechnicalArsenal{{
				IconClassID: icon.ID,
				Title:       "Languages",
				Skills:      []db.TechnicalArsenalSkill{{Text: "Go"}, {Text: "SQL"}},
			}},
			CoreValues: []db.CoreValue{{IconClassID: icon.ID, Title: "Simplicity", Description: "Fewer moving parts."}},
		}
		if err := tx.Create(&about).Error; err != nil {
			return err
		}

		contact := db.Contact{
			Email:  "smith@example.com",
			LangID: en.ID,
			FAQs:   []db.FAQ{{Question: "Do you freelance?", Answer: "Sometimes."}},
		}
		return tx.Create(&contact).Error
	})
}
