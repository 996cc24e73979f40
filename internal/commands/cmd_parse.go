package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pfassina/folio/internal/markdown"
	"github.com/pfassina/folio/internal/ui"
)

type ParseCmd struct {
	flags *Flags

	// flags
	format string
	strict bool
}

// NewParseCmd creates a new parse command
func NewParseCmd(flags *Flags) *ParseCmd {
	return &ParseCmd{flags: flags}
}

// Register adds the parse command to the application
func (cmd *ParseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "parse",
		Usage:     "Parse an article and print its metadata and content",
		UsageText: "folio parse [--format text|json] [--strict] FILE|-",
		Description: `Splits the ##### front-matter block from the article body and decodes it.

A block that fails to decode is reported as "no metadata" and its text is
still removed from the content. Use --strict to fail instead.
Pass - to read the document from stdin.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json); defaults to the configured format",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "fail when the front-matter block does not decode",
				Destination: &cmd.strict,
			},
		},
		Action: cmd.run,
	})

	return app
}

// parseOutput is the JSON form of a parsed article.
type parseOutput struct {
	Path       string             `json:"path"`
	Title      string             `json:"title"`
	Metadata   *markdown.Metadata `json:"metadata"`
	Navigation *navigationOutput  `json:"navigation,omitempty"`
	Headings   []markdown.Heading `json:"headings"`
	Content    string             `json:"content"`
}

type navigationOutput struct {
	Series *string `json:"series,omitempty"`
	Prev   *string `json:"prev,omitempty"`
	Next   *string `json:"next,omitempty"`
}

func (cmd *ParseCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one FILE argument (or - for stdin)")
	}
	source := c.Args().First()

	content, err := readSource(c.Root().Reader, source)
	if err != nil {
		return err
	}

	if cmd.strict {
		if _, err := markdown.Inspect(string(content)); err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
	}

	baseDir, relPath := cmd.locate(source)
	article := markdown.NewParser(baseDir).ParseArticle(relPath, content)
	log.Debug().Str("path", relPath).Bool("metadata", article.Metadata != nil).Msg("parsed article")

	format := cmd.format
	if format == "" {
		format = cmd.flags.Config.Format
	}

	out := c.Root().Writer
	switch format {
	case "json":
		return writeJSON(out, toParseOutput(article))
	case "text", "":
		return ui.RenderArticle(out, article)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// locate maps source to the base directory and relative path the parser
// derives a primary series from. Files outside the articles directory
// have no folder series.
func (cmd *ParseCmd) locate(source string) (string, string) {
	if source == "-" {
		return "", "stdin.md"
	}
	root, err := cmd.flags.articlesRoot()
	if err != nil {
		return "", filepath.Base(source)
	}
	rel, ok := relToRoot(root, source)
	if !ok {
		return "", filepath.Base(source)
	}
	return filepath.ToSlash(root), rel
}

func toParseOutput(a *markdown.Article) parseOutput {
	out := parseOutput{
		Path:     a.Path,
		Title:    a.Title,
		Metadata: a.Metadata,
		Headings: a.Headings,
		Content:  a.Content,
	}
	if out.Headings == nil {
		out.Headings = []markdown.Heading{}
	}
	if nav := a.Metadata.Navigation(); nav.Series != nil || !nav.Empty() {
		out.Navigation = &navigationOutput{Series: nav.Series, Prev: nav.Prev, Next: nav.Next}
	}
	return out
}

func readSource(stdin io.Reader, source string) ([]byte, error) {
	if source == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
