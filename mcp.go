package notemerger

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Parameter structures for MCP tools
type MergeNotesParams struct {
	Root                string   `json:"root" jsonschema:"absolute path of the vault"`
	Files               []string `json:"files" jsonschema:"note paths relative to root"`
	Title               string   `json:"title,omitempty" jsonschema:"title of the merged note"`
	KeepOrder           bool     `json:"keep_order,omitempty" jsonschema:"merge in the given order instead of sorting by name"`
	ExcludeProperties   bool     `json:"exclude_properties,omitempty"`
	ExcludeEachNoteName bool     `json:"exclude_each_note_name,omitempty"`
	MoveNotes           bool     `json:"move_notes,omitempty"`
	NoBackup            bool     `json:"no_backup,omitempty"`
}

type NormalizeTitleParams struct {
	Title string `json:"title"`
}

type MergeNotesOutput struct {
	Result  MergeResult `json:"result"`
	Notices []Notice    `json:"notices,omitempty"`
}

type NormalizeTitleOutput struct {
	FileName   string            `json:"file_name"`
	Validation *ValidationResult `json:"validation"`
}

// mcpTools carries the shared state of the tool handlers.
type mcpTools struct {
	config *Config
	logger *log.Logger
}

func (t *mcpTools) prepare(ctx context.Context, args MergeNotesParams, notifier Notifier) (*DefaultNoteMerger, *Selection, string, error) {
	if err := NewDefaultValidator(t.config).ValidatePath(args.Root); err != nil {
		return nil, nil, "", fmt.Errorf("invalid root path: %w", err)
	}

	merger, err := NewDefaultNoteMerger(t.config, NewAFSStore(args.Root), notifier, t.logger)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create note merger: %w", err)
	}

	selection, err := merger.LoadSelection(ctx, args.Files)
	if err != nil {
		return nil, nil, "", err
	}

	if args.KeepOrder {
		if err := selection.Reorder(args.Files); err != nil {
			return nil, nil, "", err
		}
	}

	title := args.Title
	if title == "" {
		title = selection.DefaultTitle(t.config.TitlePrefix)
	}
	return merger, selection, title, nil
}

func (args MergeNotesParams) options() MergeOptions {
	return MergeOptions{
		ExcludeProperties:   args.ExcludeProperties,
		ExcludeEachNoteName: args.ExcludeEachNoteName,
		MoveNotes:           args.MoveNotes,
		NoBackup:            args.NoBackup,
	}
}

// Tool handler functions
func (t *mcpTools) MergeNotesTool(ctx context.Context, req *mcp.CallToolRequest, args MergeNotesParams) (*mcp.CallToolResult, MergeNotesOutput, error) {
	notifier := &RecordingNotifier{}
	merger, selection, title, err := t.prepare(ctx, args, notifier)
	if err != nil {
		return nil, MergeNotesOutput{}, err
	}

	result, err := merger.Merge(ctx, selection, title, args.options())
	if err != nil {
		// Lead with what the user would have been told.
		var messages []string
		for _, notice := range notifier.Notices() {
			messages = append(messages, notice.Message)
		}
		if len(messages) > 0 {
			return nil, MergeNotesOutput{}, fmt.Errorf("%s: failed to merge notes: %w", strings.Join(messages, "; "), err)
		}
		return nil, MergeNotesOutput{}, fmt.Errorf("failed to merge notes: %w", err)
	}

	return nil, MergeNotesOutput{Result: *result, Notices: notifier.Notices()}, nil
}

func (t *mcpTools) PreviewMergeTool(ctx context.Context, req *mcp.CallToolRequest, args MergeNotesParams) (*mcp.CallToolResult, MergeNotesOutput, error) {
	merger, selection, title, err := t.prepare(ctx, args, &RecordingNotifier{})
	if err != nil {
		return nil, MergeNotesOutput{}, err
	}

	result, err := merger.Preview(ctx, selection, title, args.options())
	if err != nil {
		return nil, MergeNotesOutput{}, fmt.Errorf("failed to preview merge: %w", err)
	}

	return nil, MergeNotesOutput{Result: *result}, nil
}

func (t *mcpTools) NormalizeTitleTool(ctx context.Context, req *mcp.CallToolRequest, args NormalizeTitleParams) (*mcp.CallToolResult, NormalizeTitleOutput, error) {
	return nil, NormalizeTitleOutput{
		FileName:   NormalizeTitle(args.Title) + t.config.Extension,
		Validation: NewDefaultValidator(t.config).ValidateTitle(args.Title),
	}, nil
}

// NewMCPServer builds the MCP server with every note merger tool registered.
func NewMCPServer(config *Config, logger *log.Logger) *mcp.Server {
	tools := &mcpTools{config: config, logger: logger}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "note-merger",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_notes",
		Description: "Merge notes into a new note, optionally moving or deleting the originals",
	}, tools.MergeNotesTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_merge",
		Description: "Build the merged note without writing it",
	}, tools.PreviewMergeTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize_title",
		Description: "Show the file name a merged note title will be saved under",
	}, tools.NormalizeTitleTool)

	return server
}

// RunMCPServer starts the MCP server implementation using the official Go SDK
// If transport is nil, it will use stdio transport
func RunMCPServer(config *Config, logger *log.Logger, transport mcp.Transport) error {
	if err := NewDefaultValidator(config).ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	server := NewMCPServer(config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if transport == nil {
		transport = &mcp.StdioTransport{}
	}
	return server.Run(ctx, transport)
}
