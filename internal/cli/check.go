package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// checkCommand creates the check command, which loads a file and prints a
// summary of what it declares.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a definition file and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.load(args[0])
			if err != nil {
				return err
			}
			h := m.Hierarchy
			w := cmd.OutOrStdout()

			printSuccess(w, "Loaded %s", StyleTitle.Render(args[0]))
			printKeyValue(w, "Nodes", strconv.Itoa(h.Len()))
			printKeyValue(w, "Edges", strconv.Itoa(len(h.Edges())))
			printKeyValue(w, "Version", strconv.FormatUint(h.Version(), 10))
			printKeyValue(w, "Roots", joinNodes(h.Roots()))
			if names := m.MethodNames(); len(names) > 0 {
				printKeyValue(w, "Methods", StyleHighlight.Render(strings.Join(names, ", ")))
			} else {
				printInfo(w, "No multimethods declared")
			}
			return nil
		},
	}
}
