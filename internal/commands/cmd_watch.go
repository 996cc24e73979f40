package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/index"
)

type WatchCmd struct {
	flags *Flags
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{flags: flags}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Keep the index up to date while articles change",
		UsageText: "folio watch [DIR...]",
		Description: `Watches each DIR (default: the articles directory) and re-indexes .md files
as they are written, renamed or removed. Subdirectories are not watched
unless listed. Stop with Ctrl-C.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	root, err := cmd.flags.articlesRoot()
	if err != nil {
		return fmt.Errorf("resolve articles dir: %w", err)
	}

	dirs := c.Args().Slice()
	if len(dirs) == 0 {
		dirs = []string{root}
	}
	for i, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", dir, err)
		}
		dirs[i] = abs
	}

	db, err := cmd.flags.openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := c.Root().Writer
	watcher, err := index.NewWatcher(index.NewIndexer(db, root), dirs, log.With().Str("component", "watcher").Logger(), func(path string) {
		_, _ = fmt.Fprintf(out, "re-indexed %s\n", path)
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watcher.Start(ctx)
}
