// Package cli implements the hierarchy command-line interface.
//
// The CLI loads hierarchies and multimethods from TOML definition files (or
// hierarchies from JSON exports) and answers questions about them: is-a
// queries, dispatch resolution, rendering and export. It is built using cobra
// and supports verbose logging via the charmbracelet/log library; with
// --verbose, hierarchy and dispatch events are logged at debug level.
//
// # Commands
//
//   - check: Load a file and print a summary
//   - isa: Answer is-a queries
//   - resolve: Resolve dispatch values against a declared multimethod
//   - render: Write a DOT or SVG node-link diagram
//   - export: Write the hierarchy as JSON
package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/hierarchy/pkg/errors"
	hio "github.com/matzehuels/hierarchy/pkg/io"
	"github.com/matzehuels/hierarchy/pkg/observability"
)

// appName is the application name used for display.
const appName = "hierarchy"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running any subcommand routes observability events to the CLI logger.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Hierarchy answers is-a and dispatch questions about type hierarchies",
		Long:         `Hierarchy loads is-a hierarchies and multimethod tables from definition files, resolves dispatch values to the most specific implementation, and renders the hierarchy as a diagram.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.installHooks()
			return nil
		},
	}

	root.SetVersionTemplate(versionTemplate())

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.isaCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) installHooks() {
	hooks := logHooks{logger: c.Logger}
	observability.SetHierarchyHooks(hooks)
	observability.SetDispatchHooks(hooks)
}

// =============================================================================
// Loading
// =============================================================================

// load reads a definition file, or a JSON export when path ends in .json.
// JSON exports carry no multimethods.
func (c *CLI) load(path string) (*hio.Model, error) {
	prog := newProgress(c.Logger)
	defer prog.done("Loaded " + path)

	if strings.EqualFold(filepath.Ext(path), ".json") {
		h, err := hio.ImportJSON(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return &hio.Model{Hierarchy: h}, nil
	}

	def, err := hio.LoadDefinition(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	m, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	return m, nil
}

// describeError renders err without its code prefix for display.
func describeError(err error) string {
	if code := errs.GetCode(err); code != "" {
		return fmt.Sprintf("%s (%s)", errs.UserMessage(err), code)
	}
	return err.Error()
}
