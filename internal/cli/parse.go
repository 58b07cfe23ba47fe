package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laneweave/laneweave/pkg/diagram"
)

// parseCommand creates the parse command.
// It reads diagram text and prints the parsed graph as JSON. Parsing is
// best-effort: unrecognized lines are dropped, never reported as errors.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output string
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse diagram text into a graph",
		Long: `Parse diagram text into its typed graph: lanes, nodes, edges, and stats.

Reads from the given file, or from stdin when the file is "-".

Examples:
  laneweave parse flow.lw                 # Graph JSON to stdout
  laneweave parse flow.lw -o graph.json   # Graph JSON to a file
  laneweave parse - < flow.lw             # Read from stdin
  laneweave parse flow.lw --stats         # Just the counts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			graph := diagram.Parse(code)

			if stats {
				printStats(graph.Stats)
				return nil
			}

			data, err := diagram.MarshalGraph(graph)
			if err != nil {
				return fmt.Errorf("encode graph: %w", err)
			}
			return writeOutput(output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print element counts instead of the full graph")

	return cmd
}
