// Package aggregate derives the navigable views of the site from the full
// document set: the chronological sequence with prev/next links, the year
// archive, the tag index, and the category index.
//
// Every view starts from the same filtered document set and is rebuilt in
// full on each call; nothing here is cached or shared between invocations.
package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/starford/othala/internal/docsource"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/slug"
)

// NavEntry is a lightweight projection of a document used in index views.
type NavEntry struct {
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Published time.Time `json:"published"`
	Tags      []string  `json:"tags,omitempty"`
}

// ChronEntry is one element of the chronological sequence: the document plus
// links to its chronological neighbours. Next points at the newer document
// (earlier in the sequence), Prev at the older one.
type ChronEntry struct {
	models.Document
	Location     string `json:"location"`
	NextLocation string `json:"next_location,omitempty"`
	NextTitle    string `json:"next_title,omitempty"`
	PrevLocation string `json:"prev_location,omitempty"`
	PrevTitle    string `json:"prev_title,omitempty"`
}

// YearBucket groups the entries published in one calendar year.
type YearBucket struct {
	Year    int        `json:"year"`
	Entries []NavEntry `json:"entries"`
}

// Group is a named collection of entries sharing a tag or a category.
type Group struct {
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Location string     `json:"location"`
	Entries  []NavEntry `json:"entries"`
}

// Views bundles the four derived views built from one document set.
type Views struct {
	Chronology []ChronEntry      `json:"chronology"`
	Years      []YearBucket      `json:"years"`
	Tags       map[string]*Group `json:"tags"`
	Categories map[string]*Group `json:"categories"`
}

// Build fetches the full document set from src and derives all four views.
// production is threaded explicitly from the call boundary; it is never read
// from ambient process state. The fetch is the only suspension point: the
// transforms below it are pure and synchronous. A retrieval error yields no
// views at all.
func Build(ctx context.Context, src docsource.Source, production bool) (*Views, error) {
	docs, err := src.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	docs = Filter(docs, production)
	return &Views{
		Chronology: Chronology(docs),
		Years:      YearIndex(docs),
		Tags:       TagIndex(docs),
		Categories: CategoryIndex(docs),
	}, nil
}

// Filter applies the production draft rule: in production, drafts are
// excluded from every view; otherwise all documents pass. Pure.
func Filter(docs []models.Document, production bool) []models.Document {
	if !production {
		return docs
	}
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if !d.Draft {
			out = append(out, d)
		}
	}
	return out
}

// Chronology sorts documents by publication date descending (ties keep
// source order) and stitches prev/next links between neighbours. The input
// slice is not modified; links are assigned on a fresh output slice so no
// entry aliases its neighbour during construction.
func Chronology(docs []models.Document) []ChronEntry {
	sorted := make([]models.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})

	out := make([]ChronEntry, len(sorted))
	for i, d := range sorted {
		out[i] = ChronEntry{Document: d, Location: Location(d)}
	}
	for i := range out {
		if i > 0 {
			out[i].NextLocation = out[i-1].Location
			out[i].NextTitle = out[i-1].Title
		}
		if i < len(out)-1 {
			out[i].PrevLocation = out[i+1].Location
			out[i].PrevTitle = out[i+1].Title
		}
	}
	return out
}

// YearIndex buckets documents by publication year. Buckets are ordered by
// year descending; entries within a bucket by date descending, ties keeping
// source order.
func YearIndex(docs []models.Document) []YearBucket {
	buckets := make(map[int][]NavEntry)
	var years []int
	for _, d := range docs {
		y := d.Published.Year()
		if _, ok := buckets[y]; !ok {
			years = append(years, y)
		}
		buckets[y] = append(buckets[y], navEntry(d))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := make([]YearBucket, 0, len(years))
	for _, y := range years {
		entries := buckets[y]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Published.After(entries[j].Published)
		})
		out = append(out, YearBucket{Year: y, Entries: entries})
	}
	return out
}

// TagIndex groups documents by tag, keyed by tag slug. Documents are visited
// in source order and tags in their stored order, so entry order within a
// group is insertion order; no secondary sort is applied. A document with k
// tags appears in k groups.
func TagIndex(docs []models.Document) map[string]*Group {
	groups := make(map[string]*Group)
	for _, d := range docs {
		e := navEntry(d)
		for _, name := range d.Tags {
			appendEntry(groups, name, "/tags/", e)
		}
	}
	return groups
}

// CategoryIndex groups documents by their single optional category, keyed by
// category slug. Documents without a category contribute nothing.
func CategoryIndex(docs []models.Document) map[string]*Group {
	groups := make(map[string]*Group)
	for _, d := range docs {
		if d.Category == "" {
			continue
		}
		appendEntry(groups, d.Category, "/categories/", navEntry(d))
	}
	return groups
}

// Location returns the site path of a document's detail page.
func Location(d models.Document) string {
	return "/notes/" + slug.Make(d.ID)
}

func navEntry(d models.Document) NavEntry {
	return NavEntry{
		Title:     d.Title,
		Location:  Location(d),
		Published: d.Published,
		Tags:      d.Tags,
	}
}

// appendEntry adds e to the group for name, creating the group on first
// sight. Two differently-cased names sharing a slug merge into one group
// under the first-seen name; this first-write-wins behaviour is deliberate.
func appendEntry(groups map[string]*Group, name, prefix string, e NavEntry) {
	s := slug.Make(name)
	g, ok := groups[s]
	if !ok {
		g = &Group{Name: name, Slug: s, Location: prefix + s}
		groups[s] = g
	}
	g.Entries = append(g.Entries, e)
}
