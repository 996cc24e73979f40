package markdown

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrMalformedMetadata is returned when a front-matter block is present
	// but does not decode.
	ErrMalformedMetadata = errors.New("malformed metadata")

	// ErrMalformedRecord is returned when a [[references]] or
	// [[article_series]] entry lacks a required field. It always comes
	// wrapped together with ErrMalformedMetadata.
	ErrMalformedRecord = errors.New("malformed record")
)

// Metadata is the decoded front-matter of an article.
type Metadata struct {
	Date        *string  `json:"date,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
	Topics      []string `json:"topics"`
	Tags        []string `json:"tags"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	ReadingTime *string  `json:"reading_time,omitempty"`
	Category    *string  `json:"category,omitempty"`

	// PrimarySeries comes from the folder an article lives in. The decoder
	// only carries a value written in the block; see Parser.ParseArticle.
	PrimarySeries *string      `json:"primary_series,omitempty"`
	Series        []string     `json:"series"`
	ArticleSeries []SeriesLink `json:"article_series"`

	// Legacy single-series navigation, superseded by ArticleSeries.
	PrevArticle *string `json:"prev_article,omitempty"`
	NextArticle *string `json:"next_article,omitempty"`

	References []Reference `json:"references"`

	ShowReferences bool `json:"show_references"`
	ShowDemo       bool `json:"show_demo"`
	ShowRelated    bool `json:"show_related"`
	ShowQuiz       bool `json:"show_quiz"`
}

// SeriesLink places an article inside one named series.
type SeriesLink struct {
	Name string  `json:"name"`
	Prev *string `json:"prev,omitempty"`
	Next *string `json:"next,omitempty"`
}

// Reference is an external resource listed under the article.
type Reference struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
}

// DefaultMetadata returns the record an empty block decodes to.
func DefaultMetadata() *Metadata {
	return &Metadata{
		Topics:         []string{},
		Tags:           []string{},
		Series:         []string{},
		ArticleSeries:  []SeriesLink{},
		References:     []Reference{},
		ShowReferences: true,
	}
}

// rawMetadata mirrors Metadata with pointer fields on the nested records so
// that missing required keys can be told apart from empty strings.
type rawMetadata struct {
	Date          *string         `toml:"date"`
	Author        *string         `toml:"author"`
	Summary       *string         `toml:"summary"`
	Topics        []string        `toml:"topics"`
	Tags          []string        `toml:"tags"`
	Thumbnail     *string         `toml:"thumbnail"`
	ReadingTime   *string         `toml:"reading_time"`
	Category      *string         `toml:"category"`
	PrimarySeries *string         `toml:"primary_series"`
	Series        []string        `toml:"series"`
	ArticleSeries []rawSeriesLink `toml:"article_series"`
	PrevArticle   *string         `toml:"prev_article"`
	NextArticle   *string         `toml:"next_article"`
	References    []rawReference  `toml:"references"`

	ShowReferences bool `toml:"show_references"`
	ShowDemo       bool `toml:"show_demo"`
	ShowRelated    bool `toml:"show_related"`
	ShowQuiz       bool `toml:"show_quiz"`
}

type rawSeriesLink struct {
	Name *string `toml:"name"`
	Prev *string `toml:"prev"`
	Next *string `toml:"next"`
}

func (r rawSeriesLink) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NotNil),
	)
}

type rawReference struct {
	Title       *string `toml:"title"`
	URL         *string `toml:"url"`
	Description *string `toml:"description"`
}

func (r rawReference) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NotNil),
		validation.Field(&r.URL, validation.NotNil),
	)
}

// DecodeMetadata decodes the TOML text of a front-matter block. Unknown keys
// are ignored and absent keys take their defaults. Syntax errors, type
// mismatches and records missing a required field fail the whole decode.
func DecodeMetadata(span string) (*Metadata, error) {
	raw := rawMetadata{ShowReferences: true}
	if _, err := toml.Decode(span, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMetadata, err)
	}

	meta := &Metadata{
		Date:           raw.Date,
		Author:         raw.Author,
		Summary:        raw.Summary,
		Topics:         nonNil(raw.Topics),
		Tags:           nonNil(raw.Tags),
		Thumbnail:      raw.Thumbnail,
		ReadingTime:    raw.ReadingTime,
		Category:       raw.Category,
		PrimarySeries:  raw.PrimarySeries,
		Series:         nonNil(raw.Series),
		ArticleSeries:  make([]SeriesLink, 0, len(raw.ArticleSeries)),
		PrevArticle:    raw.PrevArticle,
		NextArticle:    raw.NextArticle,
		References:     make([]Reference, 0, len(raw.References)),
		ShowReferences: raw.ShowReferences,
		ShowDemo:       raw.ShowDemo,
		ShowRelated:    raw.ShowRelated,
		ShowQuiz:       raw.ShowQuiz,
	}

	for i, link := range raw.ArticleSeries {
		if err := link.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w: article_series[%d]: %w", ErrMalformedMetadata, ErrMalformedRecord, i, err)
		}
		meta.ArticleSeries = append(meta.ArticleSeries, SeriesLink{
			Name: *link.Name,
			Prev: link.Prev,
			Next: link.Next,
		})
	}

	for i, ref := range raw.References {
		if err := ref.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w: references[%d]: %w", ErrMalformedMetadata, ErrMalformedRecord, i, err)
		}
		meta.References = append(meta.References, Reference{
			Title:       *ref.Title,
			URL:         *ref.URL,
			Description: ref.Description,
		})
	}

	return meta, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
