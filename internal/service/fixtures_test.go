package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/codesmith/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func newTestPostService(gdb *gorm.DB) *PostService {
	svc := NewPostService(gdb, "/media/")
	svc.now = func() time.Time { return fixedNow }
	return svc
}

type blogFixture struct {
	t      *testing.T
	gdb    *gorm.DB
	author db.Author
}

func newBlogFixture(t *testing.T, gdb *gorm.DB) *blogFixture {
	t.Helper()
	author := db.Author{
		Name:   "Alice",
		Email:  "alice@example.com",
		Bio:    "Writes about Go.",
		Avatar: "avatars/alice.jpg",
	}
	if err := gdb.Create(&author).Error; err != nil {
		t.Fatalf("create author: %v", err)
	}
	return &blogFixture{t: t, gdb: gdb, author: author}
}

func (f *blogFixture) category(title string) db.Category {
	f.t.Helper()
	category := db.Category{Title: title}
	if err := f.gdb.Create(&category).Error; err != nil {
		f.t.Fatalf("create category %q: %v", title, err)
	}
	return category
}

func (f *blogFixture) tag(name string) db.Tag {
	f.t.Helper()
	tag := db.Tag{Name: name}
	if err := f.gdb.Create(&tag).Error; err != nil {
		f.t.Fatalf("create tag %q: %v", name, err)
	}
	return tag
}

// post 创建一篇文章；offset 相对 fixedNow，nil 表示未发布。
func (f *blogFixture) post(title string, category db.Category, offset *time.Duration, tags ...db.Tag) db.Post {
	f.t.Helper()
	post := db.Post{
		Title:      title,
		Excerpt:    "Excerpt of " + title,
		Content:    "# " + title + "\n\nBody.",
		ReadTime:   "3 min",
		AuthorID:   f.author.ID,
		CategoryID: category.ID,
		Tags:       tags,
	}
	if offset != nil {
		publishedAt := fixedNow.Add(*offset)
		post.PublishedAt = &publishedAt
	}
	if err := f.gdb.Create(&post).Error; err != nil {
		f.t.Fatalf("create post %q: %v", title, err)
	}
	return post
}

func (f *blogFixture) comment(post db.Post, public bool) db.Comment {
	f.t.Helper()
	comment := db.Comment{
		PostID:   post.ID,
		Name:     "Bob",
		Email:    "bob@example.com",
		Content:  "Nice post",
		IsPublic: public,
	}
	if err := f.gdb.Create(&comment).Error; err != nil {
		f.t.Fatalf("create comment: %v", err)
	}
	return comment
}

func ago(d time.Duration) *time.Duration {
	neg := -d
	return &neg
}

func ahead(d time.Duration) *time.Duration {
	return &d
}
