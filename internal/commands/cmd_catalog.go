package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/catalog"
	"github.com/pfassina/folio/internal/markdown"
	"github.com/pfassina/folio/internal/ui"
)

type CatalogCmd struct {
	flags *Flags

	// flags
	series string
	group  bool
}

// NewCatalogCmd creates a new catalog command
func NewCatalogCmd(flags *Flags) *CatalogCmd {
	return &CatalogCmd{flags: flags}
}

// Register adds the catalog command to the application
func (cmd *CatalogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "catalog",
		Usage:     "Order or group articles without using the index",
		UsageText: "folio catalog [--group | --series NAME] FILE...",
		Description: `Parses the given files directly and lists them newest first.

Use --group to list every series found in the files, or --series NAME to
show one series with its summary.md.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "series",
				Aliases:     []string{"s"},
				Usage:       "show a single series",
				Destination: &cmd.series,
			},
			&cli.BoolFlag{
				Name:        "group",
				Aliases:     []string{"g"},
				Usage:       "group articles by series",
				Destination: &cmd.group,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CatalogCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("no files given")
	}

	articles, err := cmd.parseAll(c.Args().Slice())
	if err != nil {
		return err
	}

	out := c.Root().Writer

	switch {
	case cmd.series != "":
		s, err := catalog.FindSeries(articles, cmd.series)
		if err != nil {
			return fmt.Errorf("series %q: %w", cmd.series, err)
		}
		if summary, ok := loadSeriesSummary(cmd.flags.Config.ArticlesDir, s.Name); ok {
			s.AttachSummary(summary)
		}
		return ui.RenderSeries(out, s)

	case cmd.group:
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "SERIES\tSLUG\tARTICLES")
		for _, s := range catalog.GroupSeries(articles) {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", s.Name, s.Slug, s.Total())
		}
		return w.Flush()

	default:
		catalog.SortRecent(articles)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "DATE\tTITLE\tPATH")
		for _, a := range articles {
			var date *string
			if a.Metadata != nil {
				date = a.Metadata.Date
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", orDash(date), a.Title, a.Path)
		}
		return w.Flush()
	}
}

func (cmd *CatalogCmd) parseAll(files []string) ([]*markdown.Article, error) {
	root, err := cmd.flags.articlesRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve articles dir: %w", err)
	}
	parser := markdown.NewParser("")

	articles := make([]*markdown.Article, 0, len(files))
	for _, file := range files {
		content, err := readSource(nil, file)
		if err != nil {
			return nil, err
		}
		rel, ok := relToRoot(root, file)
		if !ok {
			rel = filepath.Base(file)
		}
		a := parser.ParseArticle(rel, content)
		if a.Metadata == nil {
			log.Debug().Str("path", file).Msg("no metadata")
		}
		articles = append(articles, a)
	}
	return articles, nil
}
