package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/catalog"
)

type NewCmd struct {
	flags *Flags

	// flags
	author   string
	category string
	tags     []string
	series   string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags) *NewCmd {
	return &NewCmd{flags: flags}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a new article with a front-matter block",
		UsageText: "folio new [--author NAME] [--category NAME] [--tag TAG]... [--series NAME] TITLE...",
		Description: `Writes <articles_dir>/[SERIES/]<slug>.md with today's date and the given
fields in its ##### block. Existing files are never overwritten.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "author",
				Aliases:     []string{"a"},
				Usage:       "article author",
				Destination: &cmd.author,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "article category",
				Destination: &cmd.category,
			},
			&cli.StringSliceFlag{
				Name:        "tag",
				Aliases:     []string{"t"},
				Usage:       "tag (repeatable)",
				Destination: &cmd.tags,
			},
			&cli.StringFlag{
				Name:        "series",
				Aliases:     []string{"s"},
				Usage:       "series folder the article is created in",
				Destination: &cmd.series,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if title == "" {
		return fmt.Errorf("no title given")
	}

	draft := catalog.Draft{
		Title:    title,
		Author:   cmd.author,
		Category: cmd.category,
		Tags:     cmd.tags,
		Series:   cmd.series,
	}

	dir := cmd.flags.Config.ArticlesDir
	if cmd.series != "" {
		dir = filepath.Join(dir, filepath.FromSlash(cmd.series))
	}
	path := catalog.DraftPath(dir, draft)

	if err := catalog.WriteDraft(path, draft); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("created article")
	_, _ = fmt.Fprintln(c.Root().Writer, path)
	return nil
}
