package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/ui"
)

type SeriesCmd struct {
	flags *Flags

	// flags
	json bool
}

// NewSeriesCmd creates a new series command
func NewSeriesCmd(flags *Flags) *SeriesCmd {
	return &SeriesCmd{flags: flags}
}

// Register adds the series command to the application
func (cmd *SeriesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "series",
		Usage:     "List series in the index, or the articles of one series",
		UsageText: "folio series [--json] [NAME]",
		Description: `Without NAME, lists every series with its article count.

With NAME, prints the series summary from <articles_dir>/NAME/summary.md
when present, followed by the member articles ordered by name.`,
		Flags: []cli.Flag{
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

func (cmd *SeriesCmd) run(ctx context.Context, c *cli.Command) error {
	db, err := cmd.flags.openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := c.Root().Writer

	if c.Args().Len() == 0 {
		names, err := db.SeriesNames()
		if err != nil {
			return fmt.Errorf("list series: %w", err)
		}
		if cmd.json {
			return writeJSON(out, names)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "SERIES\tARTICLES")
		for _, s := range names {
			_, _ = fmt.Fprintf(w, "%s\t%d\n", s.Name, s.Count)
		}
		return w.Flush()
	}

	name := c.Args().First()
	members, err := db.ArticlesInSeries(name)
	if err != nil {
		return fmt.Errorf("list series %s: %w", name, err)
	}
	if cmd.json {
		return writeJSON(out, members)
	}
	if len(members) == 0 {
		fmt.Fprintln(os.Stderr, ui.Warn(fmt.Sprintf("No articles in series %q", name)))
		return nil
	}

	_, _ = fmt.Fprintln(out, ui.TitleStyle.Render(name))
	if summary, ok := loadSeriesSummary(cmd.flags.Config.ArticlesDir, name); ok {
		if summary.ShortSummary != nil {
			_, _ = fmt.Fprintln(out, ui.SubtitleStyle.Render(*summary.ShortSummary))
		}
		if summary.LongSummary != "" {
			_, _ = fmt.Fprintf(out, "\n%s\n", summary.LongSummary)
		}
	}
	_, _ = fmt.Fprintln(out)
	return writeSummaries(out, members)
}
