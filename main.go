package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mcncl/jsonview/internal/clipboard"
	"github.com/mcncl/jsonview/internal/config"
	"github.com/mcncl/jsonview/internal/errors"
	"github.com/mcncl/jsonview/internal/logging"
	"github.com/mcncl/jsonview/internal/parser"
	"github.com/mcncl/jsonview/internal/stats"
	"github.com/mcncl/jsonview/internal/tree"
	"github.com/mcncl/jsonview/internal/tui"
	"github.com/mcncl/jsonview/internal/viewer"
)

// Output modes
const (
	ModeTree   = "tree"
	ModeFormat = "format"
	ModeMinify = "minify"
	ModeStats  = "stats"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Mode        string `help:"What to print: tree, format, minify or stats." short:"m" enum:"tree,format,minify,stats" default:"tree"`
	Stats       bool   `help:"Print the statistics panel after the tree."`
	ExpandDepth int    `help:"Open every node shallower than this depth." default:"-1"`
	Indent      int    `help:"Spaces per tree level." default:"-1"`
	NoColor     bool   `help:"Disable coloured output."`
	Copy        bool   `help:"Copy the formatted document to the clipboard."`
	Sample      bool   `help:"Load the built-in sample document instead of reading input."`
	YAML        bool   `help:"Read the input as YAML. Mapping keys are shown sorted." name:"yaml"`
	Browse      bool   `help:"Browse the document in a full-screen tree view." short:"b"`
	Config      string `help:"Path to config file. If not specified, searches for .jsonview.yml" short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *zap.Logger
	// Out receives results written to stdout; nil means os.Stdout.
	Out io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := kong.Must(&CLI,
		kong.Name("jsonview"),
		kong.Description("View JSON as a collapsible tree, format or minify it, and count what it contains"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := cli.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonview version %s\n", Version)
		return
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, config.CLIOverrides{
		ExpandDepth: CLI.ExpandDepth,
		Indent:      CLI.Indent,
		NoColor:     CLI.NoColor,
		Stats:       CLI.Stats,
		Debug:       CLI.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), err)))
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	defer func() { _ = logger.Sync() }()

	err = run(&Context{Debug: CLI.Debug, Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		if !errors.IsMalformedInput(err) {
			fmt.Fprintf(os.Stderr, "\nFor help, run: jsonview --help\n")
		}
		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = zap.NewNop()
	}
	log := ctx.Logger

	// 1. Load the document into a session
	session := viewer.New(ctx.Config, log)
	if CLI.Sample {
		session.LoadSample()
	} else {
		text, err := readInput()
		if err != nil {
			return err
		}
		if CLI.YAML {
			session.SetYAMLInput(text)
		} else {
			session.SetInput(text)
		}
	}

	switch session.State() {
	case viewer.StateInvalid:
		return session.Err()
	case viewer.StateEmpty:
		fmt.Fprintln(os.Stderr, "No JSON document to display.")
		return nil
	}

	// 2. Optional clipboard export; failure never stops the output
	if CLI.Copy {
		if err := session.Copy(clipboard.System{}); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		} else {
			fmt.Fprintln(os.Stderr, "Copied!")
		}
	}

	renderer := newRenderer(ctx.Config)

	// 3. Full-screen browsing takes over the terminal
	if CLI.Browse {
		model := tui.New(session, renderer, clipboard.System{}, log)
		return tui.Run(model, tea.WithInputTTY())
	}

	// 4. Render the requested view
	out, err := render(session, renderer, ctx.Config)
	if err != nil {
		return err
	}

	// 5. Output the result
	return writeOutput(ctx, out)
}

// newRenderer builds the tree renderer from the tree settings.
func newRenderer(cfg *config.Config) *tree.Renderer {
	r := tree.NewRenderer(useColor(cfg.Tree.Color))
	r.Indent = cfg.Tree.Indent
	r.Palette, _ = tree.PaletteFromNames(cfg.Tree.Colors, cfg.Tree.FallbackColor)
	return r
}

// useColor resolves the colour mode. Auto colours only a terminal stdout.
func useColor(mode string) bool {
	switch mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
		return true
	default:
		return CLI.Output == "" && term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// render produces the text for the selected mode.
func render(session *viewer.Session, renderer *tree.Renderer, cfg *config.Config) (string, error) {
	switch CLI.Mode {
	case ModeFormat:
		return session.Formatted()
	case ModeMinify:
		return session.Minified()
	case ModeStats:
		return statsTable(session)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, session.Tree()); err != nil {
		return "", errors.NewRenderError("failed to render tree", err)
	}
	if cfg.Stats.Show {
		table, err := statsTable(session)
		if err != nil {
			return "", err
		}
		buf.WriteString("\n")
		buf.WriteString(table)
	}
	return buf.String(), nil
}

func statsTable(session *viewer.Session) (string, error) {
	result, ok := session.Stats()
	if !ok {
		return "", errors.ErrNoDocument
	}
	var buf bytes.Buffer
	if err := stats.WriteTable(&buf, result); err != nil {
		return "", errors.NewRenderError("failed to render statistics", err)
	}
	return buf.String(), nil
}

// readInput reads raw JSON text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := parser.ReadFile(CLI.Input)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := parser.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeOutput writes text to file or stdout
func writeOutput(ctx *Context, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		ctx.Logger.Debug("output written", zap.String("path", CLI.Output), zap.Int("bytes", len(text)))
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	out := ctx.Out
	if out == nil {
		out = os.Stdout
	}
	if _, err := io.WriteString(out, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonview Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonBuilder.String(), nil
}
