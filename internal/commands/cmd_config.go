package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/config"
)

type ConfigCmd struct {
	flags *Flags

	// flags
	force bool
}

// NewConfigCmd creates a new config command
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Show or write the configuration",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: cmd.runShow,
			},
			{
				Name:      "init",
				Usage:     "Write the effective configuration to the config file",
				UsageText: "folio config init [--force]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "force",
						Usage:       "overwrite an existing config file",
						Destination: &cmd.force,
					},
				},
				Action: cmd.runInit,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runShow(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	out := c.Root().Writer
	_, _ = fmt.Fprintf(out, "config_file  = %s\n", cmd.flags.ConfigPath)
	_, _ = fmt.Fprintf(out, "articles_dir = %s\n", cfg.ArticlesDir)
	_, _ = fmt.Fprintf(out, "index_path   = %s\n", cfg.IndexPath)
	_, _ = fmt.Fprintf(out, "log_level    = %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintf(out, "log_file     = %s\n", cfg.LogFile)
	_, _ = fmt.Fprintf(out, "format       = %s\n", cfg.Format)
	return nil
}

func (cmd *ConfigCmd) runInit(ctx context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath
	if _, err := os.Stat(path); err == nil && !cmd.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveFile(*cmd.flags.Config, path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, path)
	return nil
}
