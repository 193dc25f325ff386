package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	hio "github.com/matzehuels/hierarchy/pkg/io"
)

// resolveCommand creates the resolve command, which prints the label of the
// implementation each dispatch value selects.
func (c *CLI) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [file] [method] [value]...",
		Short: "Resolve dispatch values against a multimethod",
		Long: `Resolve dispatch values against a multimethod declared in file and print
the label of the most specific implementation.

Tuple values are written with commas: "rect,shape".`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.load(args[0])
			if err != nil {
				return err
			}
			method := args[1]
			if _, ok := m.Method(method); !ok {
				return fmt.Errorf("no multimethod named %q in %s", method, args[0])
			}

			w := cmd.OutOrStdout()
			var failed []error
			for _, s := range args[2:] {
				v, err := hio.ParseValue(s)
				if err != nil {
					return fmt.Errorf("value %q: %w", s, err)
				}
				label, err := m.Resolve(method, v)
				if err != nil {
					printError(w, "%s: %s", StyleHighlight.Render(v.String()), describeError(err))
					failed = append(failed, err)
					continue
				}
				printSuccess(w, "%s %s %s", StyleHighlight.Render(v.String()), StyleDim.Render(iconArrow), StyleValue.Render(label))
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d values did not resolve: %w", len(failed), len(args)-2, errors.Join(failed...))
			}
			return nil
		},
	}
}
