package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/laneweave/laneweave/pkg/diagram/diff"
)

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var (
		asJSON      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Compute the structural diff between two diagram versions",
		Long: `Compute the structural diff between two versions of diagram text.

Both versions are parsed independently; the comparison runs on the parsed
graphs, so formatting-only edits never show up as changes.

Examples:
  laneweave diff v1.lw v2.lw           # One-line summary plus details
  laneweave diff v1.lw v2.lw --json    # Full delta as JSON
  laneweave diff v1.lw v2.lw -i        # Browse the delta interactively`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldText, err := readDiagram(args[0])
			if err != nil {
				return err
			}
			newText, err := readDiagram(args[1])
			if err != nil {
				return err
			}

			result := diff.Diff(oldText, newText)

			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				return writeOutput("", data)
			}

			if interactive {
				model := newDiffModel(result)
				_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
				return err
			}

			printDiff(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full delta as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the delta in a TUI")

	return cmd
}

// printDiff writes the plain-text rendering of a diff result.
func printDiff(r *diff.Result) {
	if r.Empty() {
		printInfo("%s", r.Summary)
		return
	}

	printSuccess("%s", r.Summary)
	printNewline()

	for _, id := range r.NodesAdded {
		fmt.Println("  " + StyleSuccess.Render("+ node "+id))
	}
	for _, id := range r.NodesRemoved {
		fmt.Println("  " + StyleWarning.Render("- node "+id))
	}
	for _, ch := range r.NodesUpdated {
		fmt.Println("  " + StyleHighlight.Render("~ node "+ch.ID))
		for field, fc := range ch.Fields {
			printDetail("%s: %q %s %q", field, fc.Old, iconArrow, fc.New)
		}
	}
	for _, e := range r.EdgesAdded {
		fmt.Println("  " + StyleSuccess.Render(fmt.Sprintf("+ edge %s %s %s", e.From, iconArrow, e.To)))
	}
	for _, e := range r.EdgesRemoved {
		fmt.Println("  " + StyleWarning.Render(fmt.Sprintf("- edge %s %s %s", e.From, iconArrow, e.To)))
	}
	for _, id := range r.LanesAdded {
		fmt.Println("  " + StyleSuccess.Render("+ lane "+id))
	}
	for _, id := range r.LanesRemoved {
		fmt.Println("  " + StyleWarning.Render("- lane "+id))
	}
}
