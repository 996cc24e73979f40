package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/index"
	"github.com/pfassina/folio/internal/ui"
)

type LsCmd struct {
	flags *Flags

	// flags
	tag   string
	limit int
	json  bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List indexed articles, newest first",
		UsageText: "folio ls [--tag TAG] [--limit N] [--json]",
		Description: `Lists articles the way the front page orders them: articles with metadata
by date, newest first, then the rest by name.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "only list articles with this tag",
				Destination: &cmd.tag,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of articles",
				Value:       50,
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	db, err := cmd.flags.openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var articles []index.ArticleSummary
	if cmd.tag != "" {
		articles, err = db.ArticlesByTag(cmd.tag)
	} else {
		articles, err = db.Recent(cmd.limit)
	}
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}

	out := c.Root().Writer
	if cmd.json {
		return writeJSON(out, articles)
	}
	if len(articles) == 0 {
		fmt.Fprintln(os.Stderr, ui.Warn("No articles found"))
		return nil
	}
	return writeSummaries(out, articles)
}

func writeSummaries(out io.Writer, articles []index.ArticleSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tTITLE\tSERIES\tPATH")
	for _, a := range articles {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", orDash(a.Date), a.Title, orDash(a.PrimarySeries), a.Path)
	}
	return w.Flush()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
