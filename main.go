package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"

	"github.com/mcncl/formatdrill/internal/config"
	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/exercise"
	"github.com/mcncl/formatdrill/internal/i18n"
	"github.com/mcncl/formatdrill/internal/models"
	"github.com/mcncl/formatdrill/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to a config file. Defaults to the nearest .formatdrill.yml." type:"path"`
	Lang    string           `help:"Language of messages (en or fa)." short:"l" enum:",en,fa" default:""`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Exercises ExercisesCmd `cmd:"" help:"List the available exercises."`
	Show      ShowCmd      `cmd:"" help:"Print the prompt and starter text of an exercise."`
	Check     CheckCmd     `cmd:"" help:"Check an answer against an exercise."`
	Convert   ConvertCmd   `cmd:"" help:"Convert a document between JSON, YAML and XML."`
	CSV       CSVCmd       `cmd:"" name:"csv" help:"Print CSV data as a table."`
}

// Context holds the runtime context
type Context struct {
	Config     *config.Config
	Logger     *slog.Logger
	Translator i18n.Translator
	Stdout     io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("formatdrill"),
		kong.Description("Practice writing JSON, YAML and XML, and convert between them"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("formatdrill version %s", Version)},
	)

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// usage has been printed by kong.UsageOnError()
		os.Exit(1)
	}

	ctx, err := newContext(CLI.Config, CLI.Lang, CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := kctx.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		if !stderrors.Is(err, errors.ErrDiscrepancies) {
			fmt.Fprintf(os.Stderr, "\nFor help, run: formatdrill --help\n")
		}
		os.Exit(1)
	}
}

// newContext loads the configuration and sets up logging
func newContext(configPath, lang string, debug bool) (*Context, error) {
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, lang, debug)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}

	logger := newLogger(os.Stderr, cfg.Dev.Debug)
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath, "language", cfg.Language, "indent", cfg.Formatting.Indent)
	}

	return &Context{
		Config:     cfg,
		Logger:     logger,
		Translator: cfg.Translator(),
		Stdout:     os.Stdout,
	}, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// catalog returns the built-in exercises merged with the configured catalog
func (c *Context) catalog() (*exercise.Catalog, error) {
	cat, err := exercise.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	if path := c.Config.CatalogPath(); path != "" {
		extra, err := exercise.LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		cat.Merge(extra)
		c.Logger.Debug("merged exercise catalog", "path", path, "exercises", extra.Len())
	}

	if err := cat.Check(); err != nil {
		return nil, err
	}
	return cat, nil
}

// dump logs a decoded tree when debug logging is enabled
func (c *Context) dump(msg string, v models.Value) {
	if !c.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	c.Logger.Debug(msg, "kind", v.Kind().String(), "tree", spew.Sdump(v))
}

// readInput reads a document from a file, piped stdin or interactively.
// When format is empty it is inferred from the file extension.
func readInput(path string, format models.Format, interactive bool) (string, models.Format, error) {
	if path != "" {
		return parser.ReadFile(path, format)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", format, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if interactive {
			text, err := readInteractiveInput(format)
			return text, format, err
		}
		return "", format, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", format, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", format, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), format, nil
}

// writeOutput writes text to a file or stdout
func (c *Context) writeOutput(path, text string) error {
	if path != "" {
		err := os.WriteFile(path, []byte(strings.TrimRight(text, "\n")+"\n"), 0o644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", path)
		return nil
	}

	if _, err := fmt.Fprintln(c.Stdout, strings.TrimRight(text, "\n")); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste a document and signal completion
// with Ctrl+D (EOF)
func readInteractiveInput(format models.Format) (string, error) {
	label := "your document"
	if format != "" {
		label = "your " + format.Label()
	}
	fmt.Fprintln(os.Stderr, "formatdrill interactive mode")
	fmt.Fprintf(os.Stderr, "Paste %s below and press Ctrl+D (or Ctrl+Z on Windows) when done:\n", label)

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing...")
	return text, nil
}
