package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

type SearchCmd struct {
	flags *Flags

	// flags
	headings bool
	limit    int
	json     bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Full-text search over indexed articles",
		UsageText: "folio search [--headings] [--limit N] QUERY...",
		Description: `Searches article titles, bodies, tags and headings using SQLite FTS5 syntax.

Use --headings to match heading text instead and print where each heading sits.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "headings",
				Usage:       "search headings only",
				Destination: &cmd.headings,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of results",
				Value:       20,
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

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("no query given")
	}

	db, err := cmd.flags.openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := c.Root().Writer
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if cmd.headings {
		results, err := db.SearchHeadings(query, cmd.limit)
		if err != nil {
			return fmt.Errorf("search headings: %w", err)
		}
		if cmd.json {
			return writeJSON(out, results)
		}
		_, _ = fmt.Fprintln(w, "PATH\tLINE\tHEADING")
		for _, r := range results {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s %s\n", r.ArticlePath, r.Line, strings.Repeat("#", r.Level), r.Text)
		}
		return w.Flush()
	}

	results, err := db.Search(query, cmd.limit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if cmd.json {
		return writeJSON(out, results)
	}
	_, _ = fmt.Fprintln(w, "TITLE\tPATH")
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r.Title, r.Path)
	}
	return w.Flush()
}
