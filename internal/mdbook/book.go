// Package mdbook implements the mdBook preprocessor protocol: the
// book content tree and the JSON contract spoken over stdin/stdout.
package mdbook

import (
	"encoding/json"
	"fmt"
)

// Book is the root of a book's content tree.
type Book struct {
	Sections []BookItem `json:"sections"`
}

// MarshalJSON emits the book the way mdBook's own serializer does,
// with the __non_exhaustive marker and a non-null sections array.
func (b Book) MarshalJSON() ([]byte, error) {
	sections := b.Sections
	if sections == nil {
		sections = []BookItem{}
	}
	return json.Marshal(struct {
		Sections      []BookItem  `json:"sections"`
		NonExhaustive interface{} `json:"__non_exhaustive"`
	}{sections, nil})
}

// EachChapter applies fn to every chapter, depth first, including
// chapters nested under other chapters. Iteration stops at the first
// error.
func (b *Book) EachChapter(fn func(*Chapter) error) error {
	return eachChapter(b.Sections, fn)
}

func eachChapter(items []BookItem, fn func(*Chapter) error) error {
	for idx := range items {
		ch := items[idx].Chapter
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := eachChapter(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}

// BookItem is one entry in the book tree: a chapter, a part title, or
// a separator line. Exactly one variant is set.
type BookItem struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// MarshalJSON writes the externally tagged form mdBook expects:
// {"Chapter": {...}}, {"PartTitle": "..."}, or the bare string
// "Separator".
func (i BookItem) MarshalJSON() ([]byte, error) {
	switch {
	case i.Chapter != nil:
		return json.Marshal(struct {
			Chapter *Chapter `json:"Chapter"`
		}{i.Chapter})
	case i.Separator:
		return json.Marshal("Separator")
	default:
		return json.Marshal(struct {
			PartTitle string `json:"PartTitle"`
		}{i.PartTitle})
	}
}

func (i *BookItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Separator" {
			return fmt.Errorf("unknown book item %q", s)
		}
		i.Separator = true
		return nil
	}

	var variant struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &variant); err != nil {
		return fmt.Errorf("parse book item: %w", err)
	}
	switch {
	case variant.Chapter != nil:
		i.Chapter = variant.Chapter
	case variant.PartTitle != nil:
		i.PartTitle = *variant.PartTitle
	default:
		return fmt.Errorf("book item has no recognized variant")
	}
	return nil
}

// Chapter is a single chapter with its raw markdown content. Draft
// chapters carry a null path and an empty content string.
type Chapter struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	Number      []int      `json:"number"`
	SubItems    []BookItem `json:"sub_items"`
	Path        *string    `json:"path"`
	SourcePath  *string    `json:"source_path"`
	ParentNames []string   `json:"parent_names"`
}

// MarshalJSON keeps sub_items and parent_names as arrays even when
// empty; mdBook requires arrays there. number and the path fields
// round-trip null.
func (c Chapter) MarshalJSON() ([]byte, error) {
	type chapterAlias Chapter
	alias := chapterAlias(c)
	if alias.SubItems == nil {
		alias.SubItems = []BookItem{}
	}
	if alias.ParentNames == nil {
		alias.ParentNames = []string{}
	}
	return json.Marshal(alias)
}
