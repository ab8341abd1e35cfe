package notemerger

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RunCmdOptions contains options for customizing RunCmd behavior
type RunCmdOptions struct {
	// MCPTransport allows providing a custom transport for MCP server (used for testing)
	MCPTransport mcp.Transport
	// Stdout writer for normal output (defaults to os.Stdout)
	Stdout io.Writer
	// Stderr writer for log output (defaults to os.Stderr)
	Stderr io.Writer
}

// commandContext holds runtime context for command execution
type commandContext struct {
	stdout io.Writer
	stderr io.Writer
	config *Config
	logger *log.Logger
}

func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "note-merger",
		Level:  level,
	})
}

func RunCmd(args []string, options *RunCmdOptions) error {
	stdout := io.Writer(os.Stdout)
	stderr := io.Writer(os.Stderr)
	if options != nil {
		if options.Stdout != nil {
			stdout = options.Stdout
		}
		if options.Stderr != nil {
			stderr = options.Stderr
		}
	}

	if len(args) < 1 {
		return ShowHelp(stdout)
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		help       = fs.Bool("h", false, "Show help")
		mcpOption  = fs.Bool("mcp", false, "Run as MCP server")
		verbose    = fs.Bool("v", false, "Verbose output")
		dryRun     = fs.Bool("dry-run", false, "Show the merged note without writing it")
		configFile = fs.String("config", "", "Path to configuration file")
	)

	if len(args) > 1 {
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
	}

	if *help {
		return ShowHelp(stdout)
	}

	config, err := LoadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := NewLogger(stderr, *verbose)

	if *mcpOption {
		var transport mcp.Transport
		if options != nil && options.MCPTransport != nil {
			transport = options.MCPTransport
		}
		return RunMCPServer(config, logger, transport)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return ShowHelp(stdout)
	}

	cmdCtx := &commandContext{
		stdout: stdout,
		stderr: stderr,
		config: config,
		logger: logger,
	}

	ctx := context.Background()
	switch remaining[0] {
	case "merge":
		return mergeCommand(ctx, cmdCtx, remaining[1:], *dryRun)
	case "preview":
		return previewCommand(ctx, cmdCtx, remaining[1:])
	case "title":
		return titleCommand(cmdCtx, remaining[1:])
	default:
		return fmt.Errorf("unknown command: %s", remaining[0])
	}
}

func ShowHelp(w io.Writer) error {
	help := `Obsidian Note Merger - Merge several notes into one

Usage:
  note-merger [OPTIONS] COMMAND [ARGS...]
  note-merger -mcp              Run as MCP server

Options:
  -h, --help           Show this help message
  -v, --verbose        Enable verbose output
  --dry-run            Print the merged note without writing or moving anything
  --config FILE        Path to configuration file
  -mcp                 Run as MCP server

Commands:
  merge        Merge notes into a new note
  preview      Show the merged note without writing it
  title        Show the file name a title will be saved under

Merge options:
  --files              Comma-separated note paths relative to --root
  --root               Vault directory (defaults to the current directory)
  --title              Title of the merged note (defaults to "Merged - <first note>")
  --keep-order         Merge in --files order instead of sorting by name
  --exclude-properties Leave the merged properties block out
  --exclude-note-names Leave out the "# <note>" heading before each note
  --move               Move the original notes to the backup folder afterwards
  --no-backup          Delete the original notes afterwards (!!danger!!)

Examples:
  note-merger merge --files="a.md,b.md" --root="/path/to/vault" --title="Combined"
  note-merger merge --files="b.md,a.md" --keep-order --move --root="/path/to/vault"
  note-merger preview --files="a.md,b.md" --root="/path/to/vault" --render
  note-merger title --title="Meeting: 2024/01/02"
  note-merger -mcp --config="/path/to/config.yaml"
`
	_, _ = fmt.Fprint(w, help)
	return nil
}

// selectionFlags are the flags shared by merge and preview.
type selectionFlags struct {
	files             *string
	root              *string
	title             *string
	keepOrder         *bool
	excludeProperties *bool
	excludeNoteNames  *bool
	jsonOutput        *bool
}

func addSelectionFlags(fs *flag.FlagSet, cwd string) selectionFlags {
	return selectionFlags{
		files:             fs.String("files", "", "Comma-separated note paths relative to root"),
		root:              fs.String("root", cwd, "Vault root directory"),
		title:             fs.String("title", "", "Title of the merged note"),
		keepOrder:         fs.Bool("keep-order", false, "Merge in --files order instead of sorting by name"),
		excludeProperties: fs.Bool("exclude-properties", false, "Leave the merged properties out"),
		excludeNoteNames:  fs.Bool("exclude-note-names", false, "Leave out each note's heading"),
		jsonOutput:        fs.Bool("json", false, "Output as JSON"),
	}
}

// prepare builds the merger and selection the flags describe.
func (f selectionFlags) prepare(ctx context.Context, cmdCtx *commandContext, notifier Notifier) (*DefaultNoteMerger, *Selection, string, error) {
	validator := NewDefaultValidator(cmdCtx.config)
	if err := validator.ValidatePath(*f.root); err != nil {
		return nil, nil, "", fmt.Errorf("invalid root path: %w", err)
	}

	paths, err := ParseFilePaths(*f.files)
	if err != nil {
		return nil, nil, "", err
	}

	merger, err := NewDefaultNoteMerger(cmdCtx.config, NewAFSStore(*f.root), notifier, cmdCtx.logger)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create note merger: %w", err)
	}

	selection, err := merger.LoadSelection(ctx, paths)
	if err != nil {
		return nil, nil, "", err
	}

	if *f.keepOrder {
		if err := selection.Reorder(paths); err != nil {
			return nil, nil, "", err
		}
	}

	title := *f.title
	if title == "" {
		title = selection.DefaultTitle(cmdCtx.config.TitlePrefix)
	}

	return merger, selection, title, nil
}

func (f selectionFlags) options() MergeOptions {
	return MergeOptions{
		ExcludeProperties:   *f.excludeProperties,
		ExcludeEachNoteName: *f.excludeNoteNames,
	}
}

func mergeCommand(ctx context.Context, cmdCtx *commandContext, args []string, globalDryRun bool) error {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.stderr)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	flags := addSelectionFlags(fs, cwd)
	moveNotes := fs.Bool("move", false, "Move the original notes to the backup folder")
	noBackup := fs.Bool("no-backup", false, "Delete the original notes")
	localDryRun := fs.Bool("dry-run", false, "Show the merged note without writing it")

	if err := fs.Parse(args); err != nil {
		return err
	}

	merger, selection, title, err := flags.prepare(ctx, cmdCtx, NewLogNotifier(cmdCtx.logger))
	if err != nil {
		return err
	}

	options := flags.options()
	options.MoveNotes = *moveNotes
	options.NoBackup = *noBackup

	if globalDryRun || *localDryRun {
		_, _ = fmt.Fprintln(cmdCtx.stdout, "DRY RUN MODE - No files will be written, moved or deleted")
		result, err := merger.Preview(ctx, selection, title, options)
		if err != nil {
			return err
		}
		return writeResult(cmdCtx, result, *flags.jsonOutput, true)
	}

	result, err := merger.Merge(ctx, selection, title, options)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return fmt.Errorf("merged note already exists: %w", err)
		}
		return fmt.Errorf("failed to merge notes: %w", err)
	}

	return writeResult(cmdCtx, result, *flags.jsonOutput, false)
}

func previewCommand(ctx context.Context, cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.stderr)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	flags := addSelectionFlags(fs, cwd)
	render := fs.Bool("render", false, "Render the merged markdown for the terminal")
	style := fs.String("style", "dark", "Glamour style used with --render")

	if err := fs.Parse(args); err != nil {
		return err
	}

	merger, selection, title, err := flags.prepare(ctx, cmdCtx, &RecordingNotifier{})
	if err != nil {
		return err
	}

	result, err := merger.Preview(ctx, selection, title, flags.options())
	if err != nil {
		return err
	}

	if *render && !*flags.jsonOutput {
		rendered, err := glamour.Render(result.Content, *style)
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		_, _ = fmt.Fprintf(cmdCtx.stdout, "%s\n", result.OutputPath)
		_, _ = fmt.Fprint(cmdCtx.stdout, rendered)
		return nil
	}

	return writeResult(cmdCtx, result, *flags.jsonOutput, true)
}

func writeResult(cmdCtx *commandContext, result *MergeResult, jsonOutput bool, withContent bool) error {
	if jsonOutput {
		return json.NewEncoder(cmdCtx.stdout).Encode(result)
	}

	_, _ = fmt.Fprint(cmdCtx.stdout, SummarizeResult(result))
	if withContent {
		_, _ = fmt.Fprintf(cmdCtx.stdout, "\n%s", result.Content)
	}
	return nil
}

func titleCommand(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("title", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.stderr)
	title := fs.String("title", "", "Title to check")
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	validation := NewDefaultValidator(cmdCtx.config).ValidateTitle(*title)
	fileName := NormalizeTitle(*title) + cmdCtx.config.Extension

	if *jsonOutput {
		return json.NewEncoder(cmdCtx.stdout).Encode(struct {
			FileName string `json:"file_name"`
			*ValidationResult
		}{fileName, validation})
	}

	_, _ = fmt.Fprintf(cmdCtx.stdout, "%s\n", fileName)
	for _, issue := range validation.Issues {
		_, _ = fmt.Fprintf(cmdCtx.stdout, "  Issue: %s\n", issue)
	}
	return nil
}

// ParseFilePaths splits a comma separated list of vault relative note paths.
func ParseFilePaths(filesStr string) ([]string, error) {
	if filesStr == "" {
		return nil, fmt.Errorf("--files is required")
	}

	parts := strings.Split(filesStr, ",")
	var filePaths []string
	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p != "" {
			if filepath.IsAbs(p) {
				return nil, fmt.Errorf("file path must be relative to root: %s", p)
			}
			filePaths = append(filePaths, filepath.ToSlash(p))
		}
	}

	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no valid file paths provided")
	}

	return filePaths, nil
}
