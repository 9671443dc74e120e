package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codesmith/internal/db"
	"github.com/codesmith/internal/service"
)

func TestListPostsDefaultsToSixPerPage(t *testing.T) {
	api, _ := newTestAPI(t, "list-default")
	r := newTestEngine(api)
	seed := seedBlog(t, api.DB())

	for i := 0; i < 8; i++ {
		createPost(t, api.DB(), seed, fmt.Sprintf("Past %d", i), published(-time.Duration(i+1)*time.Hour))
	}
	createPost(t, api.DB(), seed, "Scheduled", published(48*time.Hour))
	createPost(t, api.DB(), seed, "Draft", nil)

	rr := doJSON(t, r, http.MethodGet, "/blog-api/post-page/1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var page service.PostPage
	decodeBody(t, rr, &page)
	if page.PerPage != service.DefaultPerPage || len(page.Posts) != service.DefaultPerPage {
		t.Fatalf("expected %d posts per page, got per_page=%d len=%d", service.DefaultPerPage, page.PerPage, len(page.Posts))
	}
	if page.Total != 8 || !page.HasNext {
		t.Fatalf("expected total 8 with a next page, got %+v", page)
	}
	if page.Posts[0].Title != "Past 0" {
		t.Fatalf("expected newest post first, got %q", page.Posts[0].Title)
	}

	rr = doJSON(t, r, http.MethodGet, "/blog-api/post-page/2", nil)
	decodeBody(t, rr, &page)
	if len(page.Posts) != 2 || page.HasNext {
		t.Fatalf("expected last page with 2 posts, got %+v", page)
	}
}

func TestListPostsRejectsBadInput(t *testing.T) {
	api, _ := newTestAPI(t, "list-bad")
	r := newTestEngine(api)

	tests := []struct {
		name string
		path string
	}{
		{name: "zero page", path: "/blog-api/post-page/0"},
		{name: "non numeric page", path: "/blog-api/post-page/abc"},
		{name: "zero per page", path: "/blog-api/post-page/1?per_page=0"},
		{name: "non numeric per page", path: "/blog-api/post-page/1?per_page=six"},
		{name: "malformed filter", path: "/blog-api/post-page/1?filter=" + url.QueryEscape(`{"title":`)},
		{name: "unknown filter key", path: "/blog-api/post-page/1?filter=" + url.QueryEscape(`{"author":"alice"}`)},
		{name: "wrong filter type", path: "/blog-api/post-page/1?filter=" + url.QueryEscape(`{"tags":"go"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, r, http.MethodGet, tt.path, nil)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
			}
			if msg := errorMessage(t, rr); msg == "" {
				t.Fatalf("expected a non-empty error message")
			}
		})
	}
}

func TestListPostsAppliesFilter(t *testing.T) {
	api, _ := newTestAPI(t, "list-filter")
	r := newTestEngine(api)
	seed := seedBlog(t, api.DB())

	createPost(t, api.DB(), seed, "Tagged", published(-time.Hour), seed.tag)
	createPost(t, api.DB(), seed, "Plain", published(-2*time.Hour))

	filter := url.QueryEscape(fmt.Sprintf(`{"tags":[%q],"category":%q}`, seed.tag.Slug, seed.category.Slug))
	rr := doJSON(t, r, http.MethodGet, "/blog-api/post-page/1?filter="+filter, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var page service.PostPage
	decodeBody(t, rr, &page)
	if page.Total != 1 || len(page.Posts) != 1 || page.Posts[0].Title != "Tagged" {
		t.Fatalf("expected only the tagged post, got %+v", page)
	}
	if len(page.Posts[0].Tags) != 1 || page.Posts[0].Tags[0].Slug != seed.tag.Slug {
		t.Fatalf("expected tag summary in listing, got %+v", page.Posts[0].Tags)
	}
}

func TestCountPages(t *testing.T) {
	api, _ := newTestAPI(t, "count-pages")
	r := newTestEngine(api)
	seed := seedBlog(t, api.DB())

	for i := 0; i < 5; i++ {
		createPost(t, api.DB(), seed, fmt.Sprintf("Post %d", i), published(-time.Hour))
	}
	createPost(t, api.DB(), seed, "Future", published(time.Hour))

	rr := doJSON(t, r, http.MethodGet, "/blog-api/count_pages/2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]int64
	decodeBody(t, rr, &body)
	if body["pages"] != 2 {
		t.Fatalf("expected 2 full pages, got %d", body["pages"])
	}

	rr = doJSON(t, r, http.MethodGet, "/blog-api/count_pages/0", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero page size, got %d", rr.Code)
	}
}

func TestGetPostBySlug(t *testing.T) {
	api, _ := newTestAPI(t, "get-post")
	r := newTestEngine(api)
	seed := seedBlog(t, api.DB())

	post := createPost(t, api.DB(), seed, "Hello Gin", published(-time.Hour))
	draft := createPost(t, api.DB(), seed, "Hidden", nil)

	rr := doJSON(t, r, http.MethodGet, "/blog-api/post/"+post.Slug, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var detail service.PostDetail
	decodeBody(t, rr, &detail)
	if detail.Slug != "hello-gin" || !strings.Contains(detail.ContentHTML, "<strong>bold</strong>") {
		t.Fatalf("unexpected detail %+v", detail)
	}

	for _, slug := range []string{draft.Slug, "missing"} {
		rr = doJSON(t, r, http.MethodGet, "/blog-api/post/"+slug, nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %q, got %d", slug, rr.Code)
		}
		if msg := errorMessage(t, rr); msg != "post not found" {
			t.Fatalf("unexpected error message %q", msg)
		}
	}
}

func TestRelatedPostsExcludesCurrent(t *testing.T) {
	api, _ := newTestAPI(t, "related")
	r := newTestEngine(api)
	seed := seedBlog(t, api.DB())

	current := createPost(t, api.DB(), seed, "Current", published(-time.Hour))
	for i := 0; i < 4; i++ {
		createPost(t, api.DB(), seed, fmt.Sprintf("Other %d", i), published(-time.Duration(i+2)*time.Hour))
	}

	rr := doJSON(t, r, http.MethodGet, "/blog-api/related/"+seed.category.Slug+"?exclude="+current.Slug, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var related []service.RelatedPost
	decodeBody(t, rr, &related)
	if len(related) != service.RelatedPostLimit {
		t.Fatalf("expected %d related posts, got %d", service.RelatedPostLimit, len(related))
	}
	for _, item := range related {
		if item.Slug == current.Slug {
			t.Fatalf("current post must be excluded")
		}
	}
}

func TestListTaxonomies(t *testing.T) {
	api, _ := newTestAPI(t, "taxonomies")
	r := newTestEngine(api)
	seed := seedBlog(t, api.DB())

	createPost(t, api.DB(), seed, "Visible", published(-time.Hour), seed.tag)
	createPost(t, api.DB(), seed, "Later", published(time.Hour))

	rr := doJSON(t, r, http.MethodGet, "/blog-api/categories", nil)
	var categories []service.CategoryCount
	decodeBody(t, rr, &categories)
	if len(categories) != 1 || categories[0].BlogCount != 1 {
		t.Fatalf("expected one category counting only published posts, got %+v", categories)
	}

	rr = doJSON(t, r, http.MethodGet, "/blog-api/tags", nil)
	var tags []service.TagSummary
	decodeBody(t, rr, &tags)
	if len(tags) != 1 || tags[0].Name != "Gin" || tags[0].Slug != "gin" {
		t.Fatalf("unexpected tags %+v", tags)
	}
}

func TestCommentsFlow(t *testing.T) {
	api, _ := newTestAPI(t, "comments")
	r := newTestEngine(api)
	seed := seedBlog(t, api.DB())
	post := createPost(t, api.DB(), seed, "Discuss", published(-time.Hour))

	path := "/blog-api/post/" + post.Slug + "/comments"
	rr := doJSON(t, r, http.MethodPost, path, map[string]string{
		"name":    "Bob",
		"email":   "bob@example.com",
		"content": "First!",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	hidden := db.Comment{PostID: post.ID, Name: "Spam", Email: "spam@example.com", Content: "buy now"}
	if err := api.DB().Create(&hidden).Error; err != nil {
		t.Fatalf("create hidden comment: %v", err)
	}

	rr = doJSON(t, r, http.MethodGet, path, nil)
	var comments []service.CommentView
	decodeBody(t, rr, &comments)
	if len(comments) != 1 || comments[0].Content != "First!" {
		t.Fatalf("expected only the public comment, got %+v", comments)
	}

	rr = doJSON(t, r, http.MethodPost, path, map[string]string{"name": "Bob", "email": "not-an-email", "content": "x"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", rr.Code)
	}

	rr = doJSON(t, r, http.MethodPost, "/blog-api/post/missing/comments", map[string]string{
		"name":    "Bob",
		"email":   "bob@example.com",
		"content": "Hello",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown post, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	api, _ := newTestAPI(t, "health")
	r := newTestEngine(api)

	rr := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != `{"database":"up","status":"ok"}` {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}
