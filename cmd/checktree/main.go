package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/checktree/pkg/checklist"
	"github.com/vanderheijden86/checktree/pkg/config"
	"github.com/vanderheijden86/checktree/pkg/debug"
	"github.com/vanderheijden86/checktree/pkg/export"
	"github.com/vanderheijden86/checktree/pkg/loader"
	"github.com/vanderheijden86/checktree/pkg/model"
	"github.com/vanderheijden86/checktree/pkg/ui"
	"github.com/vanderheijden86/checktree/pkg/version"
)

// debugFileEnvVar names the file debug output goes to while the TUI owns the
// terminal.
const debugFileEnvVar = "CHECKTREE_DEBUG_FILE"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	policy     string
	tree       string
	format     string
	configPath string
	expand     int
	clipboard  bool
	print      bool
	debug      bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("checktree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.policy, "policy", "", "Propagation policy: independent, cascade or ask")
	fs.StringVar(&opts.tree, "tree", "", "Load the checklist from a YAML, JSON or outline file")
	fs.StringVar(&opts.format, "format", "", "Output format: json or markdown")
	fs.StringVar(&opts.configPath, "config", "", "Read configuration from this file instead of the default locations")
	fs.IntVar(&opts.expand, "expand", -1, "Expand parents shallower than this depth at start")
	fs.BoolVar(&opts.clipboard, "clipboard", false, "Also copy the output to the clipboard")
	fs.BoolVar(&opts.print, "print", false, "Skip the checklist and print the initial selection")
	fs.BoolVar(&opts.debug, "debug", false, "Log debug output to stderr, or to $"+debugFileEnvVar+" while the checklist is open")
	fs.BoolVar(&opts.version, "version", false, "Show version")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: checktree [options]")
		fmt.Fprintln(stderr, "\nAn interactive terminal checklist. Prints the selected items on exit.")
		fs.PrintDefaults()
	}
	return opts, fs.Parse(args)
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "checktree %s\n", version.Version)
		return 0
	}

	if opts.debug {
		debug.SetEnabled(true)
		debug.SetOutput(stderr)
	}

	if err := execute(opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func execute(opts options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	interactive := !opts.print && isTerminal()
	if !opts.print && !interactive {
		fmt.Fprintln(stderr, "Warning: stdin is not a terminal, printing the initial selection")
	}

	policy, err := resolvePolicy(cfg, interactive)
	if err != nil {
		return err
	}

	tree, title, err := loadTree(cfg.Tree)
	if err != nil {
		return err
	}

	final := tree
	var names []string
	if interactive {
		m, err := runChecklist(tree, title, policy, cfg, stderr)
		if err != nil {
			return err
		}
		final = m.Session().Tree()
		names = m.Exported()
		if !m.Quitting() {
			names = m.Session().Export()
		}
	} else {
		names = checklist.Export(tree, policy)
	}

	out, err := writeOutput(cfg, final, policy, title, names, stdout)
	if err != nil {
		return err
	}

	if cfg.Output.Clipboard {
		if err := export.CopyToClipboard(out); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}
	return nil
}

// loadConfig resolves configuration files and applies flag overrides.
func loadConfig(opts options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	if opts.policy != "" {
		cfg.Policy = opts.policy
	}
	if opts.tree != "" {
		cfg.Tree = opts.tree
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.clipboard {
		cfg.Output.Clipboard = true
	}
	if opts.expand >= 0 {
		cfg.UI.ExpandDepth = opts.expand
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	debug.Dump("config", cfg)
	return cfg, nil
}

func resolvePolicy(cfg config.Config, interactive bool) (checklist.Policy, error) {
	if !cfg.AsksPolicy() {
		return cfg.ResolvedPolicy()
	}
	if !interactive {
		return checklist.PolicyIndependent, errors.New("policy \"ask\" needs a terminal, pass --policy independent or --policy cascade")
	}
	p, err := askPolicy()
	if err != nil {
		return p, fmt.Errorf("choosing policy: %w", err)
	}
	return p, nil
}

// loadTree returns the checklist and the title to show for it. A file
// without a title of its own is named after the file.
func loadTree(path string) (model.Tree, string, error) {
	if path == "" {
		return loader.Default(), "checktree", nil
	}
	tree, title, err := loader.Load(path)
	if err != nil {
		return nil, "", err
	}
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return tree, title, nil
}

func runChecklist(tree model.Tree, title string, policy checklist.Policy, cfg config.Config, stderr io.Writer) (ui.Model, error) {
	// The alternate screen owns stdout and stderr while the program runs
	if debug.Enabled() {
		path := os.Getenv(debugFileEnvVar)
		if path == "" {
			path = "checktree-debug.log"
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Warning: cannot open debug log %s: %v\n", path, err)
			debug.SetOutput(io.Discard)
		} else {
			defer f.Close()
			debug.SetOutput(f)
			defer debug.SetOutput(stderr)
		}
	}

	m := ui.NewModel(tree, ui.Options{
		Title:            title,
		Policy:           policy,
		ExpandDepth:      cfg.UI.ExpandDepth,
		ShowDescriptions: cfg.DescriptionsVisible(),
		Theme:            ui.NewTheme(cfg.UI.Theme),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	start := time.Now()
	final, err := p.Run()
	debug.LogTiming("checklist session", time.Since(start))
	if err != nil {
		return m, fmt.Errorf("running checklist: %w", err)
	}
	fm, ok := final.(ui.Model)
	if !ok {
		return m, fmt.Errorf("running checklist: unexpected model %T", final)
	}
	return fm, nil
}

// writeOutput prints the result and returns the undecorated text for the
// clipboard. Markdown is rendered with glamour when stdout is a terminal.
func writeOutput(cfg config.Config, tree model.Tree, policy checklist.Policy, title string, names []string, stdout io.Writer) (string, error) {
	if !cfg.Markdown() {
		var buf strings.Builder
		if err := export.WriteJSON(io.MultiWriter(stdout, &buf), names); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return buf.String(), nil
	}

	out := export.GenerateMarkdown(tree, policy, title)
	display := out
	if isOutputTerminal() {
		if rendered, err := export.RenderMarkdown(out, outputWidth()); err == nil {
			display = rendered
		} else {
			debug.Log("markdown render failed: %v", err)
		}
	}
	if _, err := io.WriteString(stdout, display); err != nil {
		return "", fmt.Errorf("writing output: %w", err)
	}
	return out, nil
}
