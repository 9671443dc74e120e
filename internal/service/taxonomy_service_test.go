package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCategoryService_ListCountsOnlyPublishedPosts(t *testing.T) {
	gdb := setupServiceTestDB(t, "category-counts")
	fx := newBlogFixture(t, gdb)
	tech := fx.category("Tech")
	fx.category("Empty")
	life := fx.category("Life")

	for i := 1; i <= 6; i++ {
		fx.post(fmt.Sprintf("Past %d", i), tech, ago(time.Duration(i)*time.Hour))
	}
	for i := 1; i <= 4; i++ {
		fx.post(fmt.Sprintf("Future %d", i), tech, ahead(time.Duration(i)*time.Hour))
	}
	fx.post("Draft", tech, nil)
	fx.post("Life post", life, ago(time.Minute))

	svc := NewCategoryService(gdb)
	svc.now = func() time.Time { return fixedNow }

	categories, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}

	want := []CategoryCount{
		{Title: "Empty", Slug: "empty", BlogCount: 0},
		{Title: "Life", Slug: "life", BlogCount: 1},
		{Title: "Tech", Slug: "tech", BlogCount: 6},
	}
	if len(categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(categories))
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], categories[i])
		}
	}
}

func TestCategoryService_CreateAndDelete(t *testing.T) {
	gdb := setupServiceTestDB(t, "category-create")
	svc := NewCategoryService(gdb)
	ctx := context.Background()

	category, err := svc.Create(ctx, "Machine Learning", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "machine-learning" {
		t.Fatalf("unexpected slug %q", category.Slug)
	}

	if _, err := svc.Create(ctx, "Machine Learning", "ml"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.Create(ctx, "  ", ""); !errors.Is(err, ErrCategoryTitleRequired) {
		t.Fatalf("expected ErrCategoryTitleRequired, got %v", err)
	}

	fx := newBlogFixture(t, gdb)
	fx.post("Owned", *category, ago(time.Hour))
	if err := svc.Delete(ctx, category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	empty, err := svc.Create(ctx, "Empty", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := svc.Delete(ctx, empty.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if err := svc.Delete(ctx, empty.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestTagService_ListOrderedByName(t *testing.T) {
	gdb := setupServiceTestDB(t, "tag-list")
	fx := newBlogFixture(t, gdb)
	fx.tag("Web")
	fx.tag("Django")
	fx.tag("Go")

	tags, err := NewTagService(gdb).List(context.Background())
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	want := []TagSummary{{Name: "Django", Slug: "django"}, {Name: "Go", Slug: "go"}, {Name: "Web", Slug: "web"}}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(tags))
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], tags[i])
		}
	}
}

func TestTagService_CreateAndDelete(t *testing.T) {
	gdb := setupServiceTestDB(t, "tag-create")
	svc := NewTagService(gdb)
	ctx := context.Background()

	tag, err := svc.Create(ctx, "Django Test", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if tag.Slug != "django-test" {
		t.Fatalf("unexpected slug %q", tag.Slug)
	}

	if _, err := svc.Create(ctx, "Other", "django-test"); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
	if _, err := svc.Create(ctx, "", ""); !errors.Is(err, ErrTagNameRequired) {
		t.Fatalf("expected ErrTagNameRequired, got %v", err)
	}

	fx := newBlogFixture(t, gdb)
	tech := fx.category("Tech")
	fx.post("Tagged", tech, ago(time.Hour), *tag)
	if err := svc.Delete(ctx, tag.ID); !errors.Is(err, ErrTagInUse) {
		t.Fatalf("expected ErrTagInUse, got %v", err)
	}

	unused, err := svc.Create(ctx, "Unused", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := svc.Delete(ctx, unused.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}
	if err := svc.Delete(ctx, unused.ID); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestTaxonomy_CreateNormalizesSuppliedSlug(t *testing.T) {
	gdb := setupServiceTestDB(t, "taxonomy-slug")
	ctx := context.Background()
	tags := NewTagService(gdb)
	categories := NewCategoryService(gdb)

	tag, err := tags.Create(ctx, "Mine", "  My Tag ")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if tag.Slug != "my-tag" {
		t.Fatalf("expected slug my-tag, got %q", tag.Slug)
	}
	if _, err := tags.Create(ctx, "Another", "MY TAG"); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected ErrTagExists for equivalent slug, got %v", err)
	}
	fallback, err := tags.Create(ctx, "Fallback Name", "!!!")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if fallback.Slug != "fallback-name" {
		t.Fatalf("expected slug derived from name, got %q", fallback.Slug)
	}

	category, err := categories.Create(ctx, "Café", "Café Culture")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "cafe-culture" {
		t.Fatalf("expected slug cafe-culture, got %q", category.Slug)
	}
}

func TestAuthorService_Create(t *testing.T) {
	gdb := setupServiceTestDB(t, "author-create")
	svc := NewAuthorService(gdb)
	ctx := context.Background()

	author, err := svc.Create(ctx, AuthorInput{Name: " Ada ", Email: "Ada@Example.com", Bio: "Pioneer"})
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	if author.Name != "Ada" || author.Email != "ada@example.com" {
		t.Fatalf("unexpected author %+v", author)
	}

	if _, err := svc.Create(ctx, AuthorInput{Name: "Ada Again", Email: "ada@example.com"}); !errors.Is(err, ErrAuthorExists) {
		t.Fatalf("expected ErrAuthorExists, got %v", err)
	}

	for _, input := range []AuthorInput{
		{Name: "", Email: "x@example.com"},
		{Name: "No Email"},
		{Name: "Bad Email", Email: "not-an-email"},
	} {
		if _, err := svc.Create(ctx, input); !errors.Is(err, ErrAuthorInvalid) {
			t.Fatalf("input %+v: expected ErrAuthorInvalid, got %v", input, err)
		}
	}

	authors, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list authors: %v", err)
	}
	if len(authors) != 1 {
		t.Fatalf("expected 1 author, got %d", len(authors))
	}
}
