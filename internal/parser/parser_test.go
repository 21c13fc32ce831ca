package parser

import (
	"testing"
	"time"
)

func TestParse_FullFrontmatter(t *testing.T) {
	input := []byte(`---
title: First Post
date: 2024-01-10
draft: true
category: journal
tags:
  - go
  - writing
---
Body text.
`)
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "First Post" {
		t.Errorf("title = %q, want %q", r.Title, "First Post")
	}
	want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if !r.Published.Equal(want) {
		t.Errorf("published = %v, want %v", r.Published, want)
	}
	if !r.Draft {
		t.Error("draft should be true")
	}
	if r.Category != "journal" {
		t.Errorf("category = %q, want journal", r.Category)
	}
	if len(r.Tags) != 2 || r.Tags[0] != "go" || r.Tags[1] != "writing" {
		t.Errorf("tags = %v, want [go writing]", r.Tags)
	}
	if r.Body != "Body text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_DefaultsWhenFieldsAbsent(t *testing.T) {
	r, err := Parse([]byte("---\ntitle: Bare\ndate: 2023-05-01\n---\ntext\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Draft {
		t.Error("draft should default to false")
	}
	if r.Category != "" {
		t.Errorf("category = %q, want empty", r.Category)
	}
	if len(r.Tags) != 0 {
		t.Errorf("tags = %v, want none", r.Tags)
	}
}

func TestParse_RFC3339Date(t *testing.T) {
	r, err := Parse([]byte("---\ntitle: T\ndate: \"2024-06-01T09:30:00Z\"\n---\nx\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	if !r.Published.Equal(want) {
		t.Errorf("published = %v, want %v", r.Published, want)
	}
}

func TestParse_MissingDateLeavesZero(t *testing.T) {
	r, err := Parse([]byte("---\ntitle: Undated\n---\nx\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Published.IsZero() {
		t.Errorf("published = %v, want zero", r.Published)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	r, err := Parse([]byte("# Just a heading\nSome text.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	r, err := Parse([]byte("---\n: invalid: yaml: {{{\n---\nBody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestExtractTags_InlineAndFrontmatter(t *testing.T) {
	fm := map[string]interface{}{
		"tags": []interface{}{"Alpha"},
	}
	body := "Some text #beta and #Alpha again."
	tags := extractTags(body, fm)
	// Alpha from frontmatter, beta from body; Alpha not duplicated, casing kept.
	if len(tags) != 2 || tags[0] != "Alpha" || tags[1] != "beta" {
		t.Errorf("tags = %v, want [Alpha beta]", tags)
	}
}

func TestDeriveTitle_FrontmatterOverH1(t *testing.T) {
	fm := map[string]interface{}{"title": "FM Title"}
	if got := deriveTitle(fm, "# H1 Title\ntext"); got != "FM Title" {
		t.Errorf("title = %q, want FM Title", got)
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	if got := deriveTitle(nil, "some text\n# My Heading\nmore"); got != "My Heading" {
		t.Errorf("title = %q, want My Heading", got)
	}
}
