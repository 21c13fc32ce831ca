package docservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/docsource"
	"github.com/starford/othala/internal/testutil"
)

const post = `---
title: Morning Pages
date: 2024-03-10
tags:
  - writing
---
Some thoughts about *mornings*.`

func testService(t *testing.T, production bool) *Service {
	t.Helper()
	_, store := testutil.TestContentDir(t)
	db := testutil.TestDB(t)
	return NewService(store, db, docsource.NewIndexSource(db), production)
}

func TestCreateAndGetDocument(t *testing.T) {
	svc := testService(t, false)
	ctx := context.Background()

	created, err := svc.CreateDocument(ctx, "morning.md", []byte(post))
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if created.Title != "Morning Pages" {
		t.Errorf("title = %q", created.Title)
	}
	if created.Checksum == "" {
		t.Error("checksum should be set")
	}

	got, err := svc.GetDocument(ctx, "morning.md")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Content != post {
		t.Errorf("content mismatch")
	}
	if len(got.Tags) != 1 || got.Tags[0] != "writing" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestCreateDocument_Duplicate(t *testing.T) {
	svc := testService(t, false)
	ctx := context.Background()

	if _, err := svc.CreateDocument(ctx, "dup.md", []byte(post)); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateDocument(ctx, "dup.md", []byte(post))
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateDocument_RejectsInvalid(t *testing.T) {
	svc := testService(t, false)
	ctx := context.Background()

	_, err := svc.CreateDocument(ctx, "bad.md", []byte("---\ntitle: No Date\n---\nbody"))
	if !errors.Is(err, apperr.ErrInvalidDocument) {
		t.Errorf("err = %v, want ErrInvalidDocument", err)
	}

	// Nothing should have been written.
	if _, err := svc.GetDocument(ctx, "bad.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("invalid document was written: %v", err)
	}
}

func TestUpdateDocument_ChecksumConflict(t *testing.T) {
	svc := testService(t, false)
	ctx := context.Background()

	created, err := svc.CreateDocument(ctx, "lock.md", []byte(post))
	if err != nil {
		t.Fatal(err)
	}

	v2 := strings.Replace(post, "Morning Pages", "Morning Pages v2", 1)
	if _, err := svc.UpdateDocument(ctx, "lock.md", []byte(v2), created.Checksum); err != nil {
		t.Fatalf("update with fresh checksum: %v", err)
	}

	// The stored checksum changed, so the old one must now conflict.
	_, err = svc.UpdateDocument(ctx, "lock.md", []byte(v2), created.Checksum)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestDeleteDocument_RemovesFromIndex(t *testing.T) {
	svc := testService(t, false)
	ctx := context.Background()

	if _, err := svc.CreateDocument(ctx, "gone.md", []byte(post)); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteDocument(ctx, "gone.md"); err != nil {
		t.Fatal(err)
	}

	_, total, err := svc.ListDocuments(ctx, 10, 0, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestViews_ProductionHidesDrafts(t *testing.T) {
	svc := testService(t, true)
	ctx := context.Background()

	if _, err := svc.CreateDocument(ctx, "live.md", []byte(post)); err != nil {
		t.Fatal(err)
	}
	draft := "---\ntitle: Draft\ndate: 2024-04-01\ndraft: true\n---\nnot yet"
	if _, err := svc.CreateDocument(ctx, "draft.md", []byte(draft)); err != nil {
		t.Fatal(err)
	}

	views, err := svc.Views(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(views.Chronology) != 1 {
		t.Fatalf("chronology = %d entries, want 1", len(views.Chronology))
	}
	if views.Chronology[0].Title != "Morning Pages" {
		t.Errorf("title = %q", views.Chronology[0].Title)
	}

	// The draft's list presence is an authoring concern, not a view one.
	_, total, err := svc.ListDocuments(ctx, 10, 0, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("authoring list total = %d, want 2", total)
	}
}

func TestGetPost_RendersAndLinks(t *testing.T) {
	svc := testService(t, false)
	ctx := context.Background()

	older := "---\ntitle: Older\ndate: 2024-01-01\n---\nolder body"
	if _, err := svc.CreateDocument(ctx, "older.md", []byte(older)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateDocument(ctx, "morning.md", []byte(post)); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetPost(ctx, "morning")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if !strings.Contains(got.HTML, "<em>mornings</em>") {
		t.Errorf("html = %q, want rendered emphasis", got.HTML)
	}
	if got.PrevTitle != "Older" {
		t.Errorf("prev title = %q, want Older", got.PrevTitle)
	}
	if got.NextLocation != "" {
		t.Errorf("newest post should have no next, got %q", got.NextLocation)
	}
}

func TestGetPost_DraftHiddenInProduction(t *testing.T) {
	svc := testService(t, true)
	ctx := context.Background()

	draft := "---\ntitle: Secret\ndate: 2024-04-01\ndraft: true\n---\nshh"
	if _, err := svc.CreateDocument(ctx, "secret.md", []byte(draft)); err != nil {
		t.Fatal(err)
	}

	_, err := svc.GetPost(ctx, "secret")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	svc := testService(t, false)
	ctx := context.Background()

	if _, err := svc.CreateDocument(ctx, "morning.md", []byte(post)); err != nil {
		t.Fatal(err)
	}

	results, err := svc.Search(ctx, "mornings", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}
