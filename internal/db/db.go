package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codesmith/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 返回需要自动迁移的全部模型，测试与 Open 共用同一份列表。
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Author{},
		&Category{},
		&Tag{},
		&Post{},
		&Comment{},
		&Image{},
		&IconClass{},
		&ProjectCategory{},
		&Project{},
		&ProjectDetail{},
		&ProjectGalleryImage{},
		&KeyFeature{},
		&Lang{},
		&SocialLink{},
		&Contact{},
		&FAQ{},
		&Skill{},
		&SkillsCard{},
		&About{},
		&ProfessionalJourney{},
		&TechnicalArsenal{},
		&TechnicalArsenalSkill{},
		&Testimonial{},
		&CoreValue{},
	}
}

// Open 根据配置打开数据库连接并执行自动迁移。
// 连接对象由调用方持有并显式注入各个 service。
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseType {
	case config.DatabaseTypePostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		path := strings.TrimSpace(cfg.DatabasePath)
		if path == "" {
			path = "data/codesmith.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(sqliteDSN(path))
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DatabaseType, err)
	}

	if err := AutoMigrate(gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// AutoMigrate 为所有模型建表。
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := backfillTitleSearch(gdb); err != nil {
		return fmt.Errorf("backfill title search: %w", err)
	}
	return nil
}

// backfillTitleSearch 为新增 title_search 列之前写入的文章补齐搜索标题。
func backfillTitleSearch(gdb *gorm.DB) error {
	var posts []Post
	return gdb.Select("id", "title").
		Where("title_search = '' OR title_search IS NULL").
		FindInBatches(&posts, 200, func(_ *gorm.DB, _ int) error {
			for _, post := range posts {
				if err := gdb.Model(&Post{}).Where("id = ?", post.ID).
					UpdateColumn("title_search", FoldTitle(post.Title)).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on"
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
