package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/commands"
	"github.com/pfassina/folio/internal/config"
	"github.com/pfassina/folio/internal/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()
	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "folio",
		Usage:     "Parse, index and organise markdown articles with ##### front matter",
		UsageText: "folio [global options] command [command options]",
		Description: `Articles are markdown files whose metadata sits between two ##### lines
as TOML. folio splits and decodes that block, keeps a searchable SQLite
index of articles, and groups them into series by folder.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FOLIO_CONFIG"),
				Value:       config.ConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "articles-dir",
				Usage:       "directory holding the articles",
				Sources:     cli.EnvVars("FOLIO_ARTICLES_DIR"),
				Destination: &flags.ArticlesDir,
			},
			&cli.StringFlag{
				Name:        "index",
				Usage:       "path to the index database",
				Sources:     cli.EnvVars("FOLIO_INDEX"),
				Destination: &flags.IndexPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FOLIO_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("FOLIO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := flags.LoadConfig(); err != nil {
				return ctx, err
			}

			logger, closer, err := logutils.New(flags.Config.LogLevel, flags.Config.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			log.Debug().
				Str("config", flags.ConfigPath).
				Str("articles_dir", flags.Config.ArticlesDir).
				Str("index", flags.Config.IndexPath).
				Msg("configuration loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewParseCmd(flags).Register(app)
	app = commands.NewIndexCmd(flags).Register(app)
	app = commands.NewSearchCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewSeriesCmd(flags).Register(app)
	app = commands.NewCatalogCmd(flags).Register(app)
	app = commands.NewWatchCmd(flags).Register(app)
	app = commands.NewNewCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
