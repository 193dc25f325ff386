package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/hierarchy/pkg/errors"
	hio "github.com/matzehuels/hierarchy/pkg/io"
	"github.com/matzehuels/hierarchy/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path; stdout when empty
	format    string // "dot" or "svg"; inferred from output when empty
	detailed  bool   // show ancestor and descendant counts
	highlight string // node whose ancestors are highlighted
}

// renderCommand creates the render command for node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the hierarchy as a DOT or SVG diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			m, err := c.load(args[0])
			if err != nil {
				return err
			}

			var nlOpts nodelink.Options
			nlOpts.Detailed = opts.detailed
			if opts.highlight != "" {
				nlOpts.Highlight = m.Hierarchy.Ancestors(opts.highlight)
				if nlOpts.Highlight == nil {
					return errs.New(errs.ErrCodeNotFound, "unknown node %q", opts.highlight)
				}
			}

			dot := nodelink.ToDOT(m.Hierarchy, nlOpts)
			out := []byte(dot)
			if format == formatSVG {
				prog := newProgress(c.Logger)
				if out, err = nodelink.RenderSVG(cmd.Context(), dot); err != nil {
					return fmt.Errorf("render %s: %w", args[0], err)
				}
				prog.done("Rendered SVG")
			}

			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := errs.ValidatePath(opts.output); err != nil {
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess(cmd.OutOrStdout(), "Rendered %s", format)
			printFile(cmd.OutOrStdout(), opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg (default from output extension, else dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ancestor and descendant counts")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "highlight the ancestors of this node")

	return cmd
}

// resolveFormat picks the explicit format, or infers it from the output
// extension.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" || format == "gv" {
			format = formatDOT
		}
	}
	switch format {
	case formatDOT, formatSVG:
		return format, nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "unsupported format %q (want dot or svg)", format)
}

// exportCommand creates the export command, which writes the hierarchy of a
// file as JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the hierarchy as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.load(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return hio.WriteJSON(m.Hierarchy, cmd.OutOrStdout())
			}
			if err := hio.ExportJSON(m.Hierarchy, output); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported %d nodes", m.Hierarchy.Len())
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
