package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hierarchy/pkg/hierarchy"
	hio "github.com/matzehuels/hierarchy/pkg/io"
)

// isaQuery is one CHILD PARENT pair from the command line.
type isaQuery struct {
	child, parent hierarchy.Value
	result        bool
}

// isaCommand creates the isa command. Several CHILD PARENT pairs may be
// given; they are answered concurrently and printed in order.
func (c *CLI) isaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "isa [file] [child] [parent] [child parent]...",
		Short: "Report whether child is-a parent",
		Long: `Report whether child is-a parent in the hierarchy of file.

Tuple values are written with commas: "square,rect".`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 || len(args)%2 == 0 {
				return fmt.Errorf("expected a file followed by child/parent pairs, got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			queries, err := parseQueries(args[1:])
			if err != nil {
				return err
			}
			m, err := c.load(args[0])
			if err != nil {
				return err
			}

			runQueries(m.Hierarchy, queries)

			w := cmd.OutOrStdout()
			for _, q := range queries {
				if q.result {
					printSuccess(w, "%s is-a %s", StyleHighlight.Render(q.child.String()), StyleHighlight.Render(q.parent.String()))
				} else {
					printError(w, "%s is not a %s", StyleHighlight.Render(q.child.String()), StyleHighlight.Render(q.parent.String()))
				}
			}
			return nil
		},
	}
}

func parseQueries(pairs []string) ([]*isaQuery, error) {
	queries := make([]*isaQuery, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		child, err := hio.ParseValue(pairs[i])
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", pairs[i], err)
		}
		parent, err := hio.ParseValue(pairs[i+1])
		if err != nil {
			return nil, fmt.Errorf("parent %q: %w", pairs[i+1], err)
		}
		queries = append(queries, &isaQuery{child: child, parent: parent})
	}
	return queries, nil
}

func runQueries(h *hierarchy.Hierarchy, queries []*isaQuery) {
	var g errgroup.Group
	for _, q := range queries {
		g.Go(func() error {
			q.result = h.IsA(q.child, q.parent)
			return nil
		})
	}
	_ = g.Wait()
}
