// Package catalog orders and groups parsed articles the way the blog lists
// them: newest first on the front page and by series on the series pages.
package catalog

import (
	"errors"
	"sort"

	"github.com/pfassina/folio/internal/markdown"
)

// ErrSeriesNotFound is returned when no article belongs to a series.
var ErrSeriesNotFound = errors.New("series not found")

// Series is a named group of articles.
type Series struct {
	Name         string
	Slug         string
	Articles     []*markdown.Article
	ShortSummary *string
	LongSummary  *string
}

// Total returns the number of articles in the series.
func (s *Series) Total() int {
	return len(s.Articles)
}

// AttachSummary copies a parsed summary.md onto the series.
func (s *Series) AttachSummary(summary markdown.SeriesSummary) {
	s.ShortSummary = summary.ShortSummary
	long := summary.LongSummary
	s.LongSummary = &long
}

// SortRecent sorts articles newest first. Articles with metadata come
// before those without; among them a missing date sorts last. Articles
// without metadata are ordered by name.
func SortRecent(articles []*markdown.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		switch {
		case a.Metadata != nil && b.Metadata != nil:
			return dateBefore(b.Metadata.Date, a.Metadata.Date)
		case a.Metadata != nil:
			return true
		case b.Metadata != nil:
			return false
		default:
			return a.Name < b.Name
		}
	})
}

// dateBefore orders optional dates with nil first.
func dateBefore(x, y *string) bool {
	switch {
	case x == nil:
		return y != nil
	case y == nil:
		return false
	default:
		return *x < *y
	}
}

// GroupSeries groups articles by their primary series and every name in
// their series list. An article listed under the same name twice appears
// twice.
func GroupSeries(articles []*markdown.Article) []Series {
	byName := make(map[string][]*markdown.Article)
	for _, a := range articles {
		if a.Metadata == nil {
			continue
		}
		if a.Metadata.PrimarySeries != nil {
			name := *a.Metadata.PrimarySeries
			byName[name] = append(byName[name], a)
		}
		for _, name := range a.Metadata.Series {
			byName[name] = append(byName[name], a)
		}
	}

	series := make([]Series, 0, len(byName))
	for name, members := range byName {
		series = append(series, newSeries(name, members))
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Name < series[j].Name })
	return series
}

// FindSeries returns the articles belonging to name.
func FindSeries(articles []*markdown.Article, name string) (Series, error) {
	var members []*markdown.Article
	for _, a := range articles {
		if belongsTo(a, name) {
			members = append(members, a)
		}
	}
	if len(members) == 0 {
		return Series{}, ErrSeriesNotFound
	}
	return newSeries(name, members), nil
}

func belongsTo(a *markdown.Article, name string) bool {
	if a.Metadata == nil {
		return false
	}
	if a.Metadata.PrimarySeries != nil && *a.Metadata.PrimarySeries == name {
		return true
	}
	for _, s := range a.Metadata.Series {
		if s == name {
			return true
		}
	}
	return false
}

func newSeries(name string, members []*markdown.Article) Series {
	sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return Series{
		Name:     name,
		Slug:     Slugify(name),
		Articles: members,
	}
}
