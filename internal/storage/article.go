package storage

import (
	"strings"

	"github.com/matsen/obscat/internal/catalogue"
	"github.com/matsen/obscat/internal/reference"
	"github.com/matsen/obscat/internal/sanitize"
)

// Article is the queryable summary of one catalogued entry.
type Article struct {
	Key         string             `json:"key"`
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Authors     string             `json:"authors"` // display names joined by "; "
	AuthorList  []reference.Author `json:"author_list,omitempty"`
	FirstAuthor string             `json:"first_author"`
	Year        string             `json:"year"`
	Journal     string             `json:"journal"`
	URL         string             `json:"url,omitempty"`
	Folder      string             `json:"folder"`
	NoteFile    string             `json:"note_file,omitempty"`
	Outcome     string             `json:"outcome"`
	HasDocument bool               `json:"has_document"`
}

// FromResults converts catalogue results into articles, keeping their order.
// Entries rejected for an unsafe key have no folder and are left out.
func FromResults(results []catalogue.Result) []Article {
	articles := make([]Article, 0, len(results))
	for _, r := range results {
		if r.Outcome == catalogue.OutcomeUnsafeKey {
			continue
		}
		e := r.Entry
		a := Article{
			Key:         e.Key,
			Type:        e.Type,
			Title:       r.Title,
			Authors:     strings.Join(e.AuthorNames(), "; "),
			AuthorList:  e.Authors,
			FirstAuthor: e.MainAuthor(),
			Year:        e.Year(),
			Journal:     e.Journal(),
			Folder:      r.Folder,
			NoteFile:    r.NoteFile,
			Outcome:     r.Outcome.String(),
			HasDocument: r.Missing == nil,
		}
		if url, ok := e.Field("url"); ok {
			a.URL = sanitize.URL(url)
		}
		articles = append(articles, a)
	}
	return articles
}
