package models

import (
	"testing"
	"time"
)

func TestDocumentValidate(t *testing.T) {
	valid := Document{
		ID:        "notes/hello",
		Title:     "Hello",
		Published: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid document failed: %v", err)
	}

	cases := []struct {
		name string
		mut  func(d *Document)
	}{
		{"missing id", func(d *Document) { d.ID = "" }},
		{"missing title", func(d *Document) { d.Title = "" }},
		{"zero date", func(d *Document) { d.Published = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			tc.mut(&d)
			if err := d.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
