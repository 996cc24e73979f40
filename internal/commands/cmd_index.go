package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/index"
)

type IndexCmd struct {
	flags *Flags

	// flags
	remove bool
}

// NewIndexCmd creates a new index command
func NewIndexCmd(flags *Flags) *IndexCmd {
	return &IndexCmd{flags: flags}
}

// Register adds the index command to the application
func (cmd *IndexCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "index",
		Usage:     "Add articles to the search index",
		UsageText: "folio index [--remove] FILE...",
		Description: `Parses each FILE and stores its metadata, headings and text in the index.

Unchanged files are skipped. Paths are recorded relative to the articles
directory, and the folder below it becomes the article's primary series.
Directories are not walked; pass the files to index, e.g. articles/**/*.md.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "remove",
				Usage:       "remove the files from the index instead",
				Destination: &cmd.remove,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *IndexCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("no files given")
	}

	root, err := cmd.flags.articlesRoot()
	if err != nil {
		return fmt.Errorf("resolve articles dir: %w", err)
	}

	db, err := cmd.flags.openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	indexer := index.NewIndexer(db, root)

	done, failed := 0, 0
	for _, file := range c.Args().Slice() {
		if err := ctx.Err(); err != nil {
			return err
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", file, err)
		}

		if cmd.remove {
			err = indexer.RemoveFile(abs)
		} else {
			err = indexer.IndexFile(abs)
		}
		if err != nil {
			log.Error().Err(err).Str("path", file).Msg("index failed")
			failed++
			continue
		}
		log.Debug().Str("path", file).Bool("remove", cmd.remove).Msg("indexed")
		done++
	}

	verb := "indexed"
	if cmd.remove {
		verb = "removed"
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "%s %d file(s)\n", verb, done)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}
