package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCommentService_ListAndCreate(t *testing.T) {
	gdb := setupServiceTestDB(t, "comment-list")
	fx := newBlogFixture(t, gdb)
	tech := fx.category("Tech")
	post := fx.post("Hello", tech, ago(time.Hour))
	scheduled := fx.post("Later", tech, ahead(time.Hour))

	fx.comment(post, true)
	hidden := fx.comment(post, false)

	svc := NewCommentService(gdb)
	svc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	created, err := svc.Create(ctx, post.Slug, CommentInput{Name: " Carol ", Email: "carol@example.com", Content: "Great read"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if created.Name != "Carol" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	comments, err := svc.ListPublic(ctx, post.Slug)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 public comments, got %d", len(comments))
	}
	if comments[1].ID != created.ID {
		t.Fatalf("expected newest comment last")
	}
	for _, comment := range comments {
		if comment.ID == hidden.ID {
			t.Fatalf("hidden comment must not be listed")
		}
	}

	if err := svc.SetVisibility(ctx, hidden.ID, true); err != nil {
		t.Fatalf("unhide comment: %v", err)
	}
	comments, err = svc.ListPublic(ctx, post.Slug)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 public comments, got %d", len(comments))
	}

	if err := svc.SetVisibility(ctx, 9999, false); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
	if _, err := svc.ListPublic(ctx, scheduled.Slug); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for scheduled post, got %v", err)
	}
	if _, err := svc.Create(ctx, "missing", CommentInput{Name: "A", Email: "a@example.com", Content: "x"}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommentService_CreateValidation(t *testing.T) {
	gdb := setupServiceTestDB(t, "comment-validation")
	fx := newBlogFixture(t, gdb)
	post := fx.post("Hello", fx.category("Tech"), ago(time.Hour))

	svc := NewCommentService(gdb)
	svc.now = func() time.Time { return fixedNow }

	tests := []struct {
		name  string
		input CommentInput
	}{
		{name: "missing name", input: CommentInput{Email: "a@example.com", Content: "hi"}},
		{name: "invalid email", input: CommentInput{Name: "A", Email: "nope", Content: "hi"}},
		{name: "blank content", input: CommentInput{Name: "A", Email: "a@example.com", Content: "   "}},
		{name: "too long", input: CommentInput{Name: "A", Email: "a@example.com", Content: strings.Repeat("x", maxCommentLength+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), post.Slug, tt.input); !errors.Is(err, ErrCommentInvalid) {
				t.Fatalf("expected ErrCommentInvalid, got %v", err)
			}
		})
	}
}
