package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/laneweave/laneweave/pkg/diagram/patch"
)

// patchCommand creates the patch command.
func (c *CLI) patchCommand() *cobra.Command {
	var (
		opsPath string
		output  string
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "patch <file>",
		Short: "Apply structured edit operations to diagram text",
		Long: `Apply a batch of structured edit operations to diagram text.

Operations come from a JSON file (or stdin with --ops -): an array of
objects like

  [
    {"kind": "insertNode", "laneId": "sales",
     "newNode": {"shape": "rectangle", "label": "Review"}},
    {"kind": "removeNode", "nodeId": "n3"}
  ]

Operations apply in order; one that can't apply is skipped with a reason
and the rest continue. The patched text goes to stdout (or -o FILE), and
the per-operation log goes to stderr.

Examples:
  laneweave patch flow.lw --ops edits.json
  laneweave patch flow.lw --ops edits.json -o flow2.lw
  echo '[...]' | laneweave patch flow.lw --ops -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			ops, err := readOperations(opsPath)
			if err != nil {
				return err
			}

			patched, results := patch.Apply(code, ops)

			if !quiet {
				reportResults(results)
			}
			return writeOutput(output, []byte(patched))
		},
	}

	cmd.Flags().StringVar(&opsPath, "ops", "", "operations JSON file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the per-operation log")
	_ = cmd.MarkFlagRequired("ops")

	return cmd
}

// readOperations loads the operations array from a JSON file or stdin.
func readOperations(path string) ([]patch.Operation, error) {
	data, err := readDiagram(path)
	if err != nil {
		return nil, err
	}

	var ops []patch.Operation
	if err := json.Unmarshal([]byte(data), &ops); err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}
	return ops, nil
}

// reportResults writes the per-operation log to stderr so stdout stays
// clean for the patched text.
func reportResults(results []patch.OpResult) {
	applied := 0
	for _, r := range results {
		if r.Applied {
			applied++
			if r.NodeID != "" {
				fmt.Fprintf(os.Stderr, "%s op %d %s: applied (new node %s)\n",
					styleIconSuccess.Render(iconSuccess), r.Index, r.Kind, r.NodeID)
			} else {
				fmt.Fprintf(os.Stderr, "%s op %d %s: applied\n",
					styleIconSuccess.Render(iconSuccess), r.Index, r.Kind)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%s op %d %s: skipped (%s)\n",
				styleIconWarning.Render(iconWarning), r.Index, r.Kind, r.Reason)
		}
	}
	fmt.Fprintf(os.Stderr, "%s\n", StyleDim.Render(
		fmt.Sprintf("%d/%d operations applied", applied, len(results))))
}
