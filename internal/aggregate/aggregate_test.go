package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/othala/internal/docsource"
	"github.com/starford/othala/internal/models"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func post(id string, published time.Time, tags ...string) models.Document {
	return models.Document{
		ID:        id,
		Path:      id + ".md",
		Title:     "Title " + id,
		Published: published,
		Tags:      tags,
	}
}

func TestFilter(t *testing.T) {
	draft := post("d", day(2024, 1, 1))
	draft.Draft = true
	docs := []models.Document{post("a", day(2024, 1, 2)), draft}

	prod := Filter(docs, true)
	if len(prod) != 1 || prod[0].ID != "a" {
		t.Errorf("production filter = %v", prod)
	}

	dev := Filter(docs, false)
	if len(dev) != 2 {
		t.Errorf("development filter should keep drafts, got %v", dev)
	}
}

func TestChronology_OrderAndLinks(t *testing.T) {
	// Source order A, B, C; B is newest, C oldest.
	docs := []models.Document{
		post("a", day(2024, 1, 10)),
		post("b", day(2024, 6, 1)),
		post("c", day(2023, 12, 1)),
	}

	seq := Chronology(docs)
	if len(seq) != 3 {
		t.Fatalf("len = %d", len(seq))
	}
	if seq[0].ID != "b" || seq[1].ID != "a" || seq[2].ID != "c" {
		t.Fatalf("order = %s, %s, %s", seq[0].ID, seq[1].ID, seq[2].ID)
	}

	// First element has no next, last has no prev.
	if seq[0].NextLocation != "" || seq[0].NextTitle != "" {
		t.Error("first element must not have a next link")
	}
	if seq[2].PrevLocation != "" || seq[2].PrevTitle != "" {
		t.Error("last element must not have a prev link")
	}

	// Adjacent pairs cross-reference each other.
	if seq[0].PrevLocation != seq[1].Location || seq[0].PrevTitle != seq[1].Title {
		t.Errorf("seq[0].prev = %q/%q", seq[0].PrevLocation, seq[0].PrevTitle)
	}
	if seq[1].NextLocation != seq[0].Location || seq[1].NextTitle != seq[0].Title {
		t.Errorf("seq[1].next = %q/%q", seq[1].NextLocation, seq[1].NextTitle)
	}
	if seq[1].PrevLocation != seq[2].Location {
		t.Errorf("seq[1].prev = %q", seq[1].PrevLocation)
	}
	if seq[2].NextLocation != seq[1].Location {
		t.Errorf("seq[2].next = %q", seq[2].NextLocation)
	}
}

func TestChronology_StableTies(t *testing.T) {
	same := day(2024, 3, 3)
	docs := []models.Document{
		post("first", same),
		post("second", same),
		post("third", same),
	}
	seq := Chronology(docs)
	for i, want := range []string{"first", "second", "third"} {
		if seq[i].ID != want {
			t.Errorf("seq[%d] = %s, want %s (ties must keep source order)", i, seq[i].ID, want)
		}
	}
}

func TestChronology_DoesNotMutateInput(t *testing.T) {
	docs := []models.Document{
		post("old", day(2020, 1, 1)),
		post("new", day(2024, 1, 1)),
	}
	_ = Chronology(docs)
	if docs[0].ID != "old" || docs[1].ID != "new" {
		t.Error("input slice order must be preserved")
	}
}

func TestChronology_Single(t *testing.T) {
	seq := Chronology([]models.Document{post("only", day(2024, 1, 1))})
	if len(seq) != 1 {
		t.Fatalf("len = %d", len(seq))
	}
	e := seq[0]
	if e.NextLocation != "" || e.PrevLocation != "" {
		t.Error("single element has no neighbours")
	}
}

func TestYearIndex(t *testing.T) {
	docs := []models.Document{
		post("a", day(2024, 1, 10)),
		post("b", day(2024, 6, 1)),
		post("c", day(2023, 12, 1)),
	}
	years := YearIndex(docs)
	if len(years) != 2 {
		t.Fatalf("len = %d", len(years))
	}
	if years[0].Year != 2024 || years[1].Year != 2023 {
		t.Errorf("years = %d, %d (must be descending)", years[0].Year, years[1].Year)
	}
	y24 := years[0].Entries
	if len(y24) != 2 || y24[0].Title != "Title b" || y24[1].Title != "Title a" {
		t.Errorf("2024 bucket = %v (must be date-descending)", y24)
	}
	if len(years[1].Entries) != 1 || years[1].Entries[0].Title != "Title c" {
		t.Errorf("2023 bucket = %v", years[1].Entries)
	}
	if loc := y24[0].Location; loc != "/notes/b" {
		t.Errorf("location = %q", loc)
	}
}

func TestTagIndex_InsertionOrder(t *testing.T) {
	// Source order A, B, C: tag entries follow source order, not date order.
	docs := []models.Document{
		post("a", day(2024, 1, 10), "t1", "t2"),
		post("b", day(2024, 6, 1), "t1"),
		post("c", day(2023, 12, 1)),
	}
	tags := TagIndex(docs)
	if len(tags) != 2 {
		t.Fatalf("len = %d", len(tags))
	}
	t1 := tags["t1"]
	if t1 == nil || len(t1.Entries) != 2 {
		t.Fatalf("t1 = %+v", t1)
	}
	if t1.Entries[0].Title != "Title a" || t1.Entries[1].Title != "Title b" {
		t.Errorf("t1 entries = %v (must be source order)", t1.Entries)
	}
	if t1.Location != "/tags/t1" {
		t.Errorf("t1 location = %q", t1.Location)
	}
	t2 := tags["t2"]
	if t2 == nil || len(t2.Entries) != 1 || t2.Entries[0].Title != "Title a" {
		t.Errorf("t2 = %+v", t2)
	}
}

func TestTagIndex_EntryCountEqualsPairCount(t *testing.T) {
	docs := []models.Document{
		post("a", day(2024, 1, 1), "x", "y"),
		post("b", day(2024, 1, 2), "x"),
		post("c", day(2024, 1, 3)),
	}
	total := 0
	for _, g := range TagIndex(docs) {
		total += len(g.Entries)
	}
	if total != 3 {
		t.Errorf("total entries = %d, want 3 (one per document-tag pair)", total)
	}
}

func TestTagIndex_SlugCollisionKeepsFirstSeenName(t *testing.T) {
	docs := []models.Document{
		post("a", day(2024, 1, 1), "DevOps"),
		post("b", day(2024, 1, 2), "devops"),
	}
	tags := TagIndex(docs)
	if len(tags) != 1 {
		t.Fatalf("colliding tags must merge, got %d groups", len(tags))
	}
	g := tags["devops"]
	if g == nil {
		t.Fatal("missing devops group")
	}
	if g.Name != "DevOps" {
		t.Errorf("name = %q, want first-seen casing DevOps", g.Name)
	}
	if len(g.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(g.Entries))
	}
}

func TestCategoryIndex(t *testing.T) {
	a := post("a", day(2024, 1, 1))
	a.Category = "Essays"
	b := post("b", day(2024, 1, 2))
	// b has no category and must contribute nothing.
	docs := []models.Document{a, b}

	cats := CategoryIndex(docs)
	if len(cats) != 1 {
		t.Fatalf("len = %d", len(cats))
	}
	g := cats["essays"]
	if g == nil || g.Name != "Essays" || g.Location != "/categories/essays" {
		t.Errorf("group = %+v", g)
	}
	if len(g.Entries) != 1 || g.Entries[0].Title != "Title a" {
		t.Errorf("entries = %v", g.Entries)
	}
}

type staticSource struct {
	docs []models.Document
	err  error
}

func (s staticSource) GetAll(_ context.Context, pred docsource.Predicate) ([]models.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	if pred == nil {
		return s.docs, nil
	}
	var out []models.Document
	for _, d := range s.docs {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func TestBuild_DraftExcludedFromAllViewsInProduction(t *testing.T) {
	draft := post("d", day(2024, 2, 2), "t1")
	draft.Draft = true
	draft.Category = "misc"
	src := staticSource{docs: []models.Document{
		post("a", day(2024, 1, 1), "t1"),
		draft,
	}}

	prod, err := Build(context.Background(), src, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(prod.Chronology) != 1 {
		t.Error("draft present in production chronology")
	}
	if len(prod.Years) != 1 || len(prod.Years[0].Entries) != 1 {
		t.Error("draft present in production year index")
	}
	if len(prod.Tags["t1"].Entries) != 1 {
		t.Error("draft present in production tag index")
	}
	if len(prod.Categories) != 0 {
		t.Error("draft present in production category index")
	}

	dev, err := Build(context.Background(), src, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(dev.Chronology) != 2 || len(dev.Tags["t1"].Entries) != 2 || len(dev.Categories) != 1 {
		t.Error("draft missing from development views")
	}
}

func TestBuild_SourceErrorYieldsNoViews(t *testing.T) {
	boom := errors.New("schema validation failed")
	v, err := Build(context.Background(), staticSource{err: boom}, true)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped source error", err)
	}
	if v != nil {
		t.Error("no partial views on retrieval failure")
	}
}

// The worked end-to-end case: documents A(2024-01-10, t1+t2), B(2024-06-01,
// t1), C(2023-12-01) in source order A, B, C.
func TestBuild_WorkedExample(t *testing.T) {
	src := staticSource{docs: []models.Document{
		post("a", day(2024, 1, 10), "t1", "t2"),
		post("b", day(2024, 6, 1), "t1"),
		post("c", day(2023, 12, 1)),
	}}
	v, err := Build(context.Background(), src, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	seq := v.Chronology
	if seq[0].ID != "b" || seq[1].ID != "a" || seq[2].ID != "c" {
		t.Fatalf("chronology = %s, %s, %s", seq[0].ID, seq[1].ID, seq[2].ID)
	}
	if seq[0].NextLocation != "" || seq[0].PrevLocation != "/notes/a" {
		t.Errorf("B links wrong: next=%q prev=%q", seq[0].NextLocation, seq[0].PrevLocation)
	}
	if seq[1].NextLocation != "/notes/b" || seq[1].PrevLocation != "/notes/c" {
		t.Errorf("A links wrong: next=%q prev=%q", seq[1].NextLocation, seq[1].PrevLocation)
	}
	if seq[2].NextLocation != "/notes/a" || seq[2].PrevLocation != "" {
		t.Errorf("C links wrong: next=%q prev=%q", seq[2].NextLocation, seq[2].PrevLocation)
	}

	if v.Years[0].Year != 2024 || v.Years[1].Year != 2023 {
		t.Errorf("years = %v", v.Years)
	}
	if e := v.Years[0].Entries; len(e) != 2 || e[0].Title != "Title b" || e[1].Title != "Title a" {
		t.Errorf("2024 = %v", e)
	}

	// Tag order follows raw source order (A before B), not date order.
	t1 := v.Tags["t1"].Entries
	if len(t1) != 2 || t1[0].Title != "Title a" || t1[1].Title != "Title b" {
		t.Errorf("t1 = %v", t1)
	}
	if len(v.Tags["t2"].Entries) != 1 {
		t.Errorf("t2 = %v", v.Tags["t2"].Entries)
	}
}
