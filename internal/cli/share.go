package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laneweave/laneweave/pkg/remote"
)

// shareCommand creates the share command, which posts diagram text to the
// render/share service and prints the resulting URL.
func (c *CLI) shareCommand() *cobra.Command {
	var (
		serviceURL string
		view       string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "share <file>",
		Short: "Upload diagram text and get a shareable URL",
		Long: `Send diagram text to the render/share service and print the shareable URL.

The optional view selects how the service renders the diagram:
workflow (default), sequence, or architecture.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if serviceURL == "" {
				return fmt.Errorf("no share service configured (set --url)")
			}
			if !remote.ValidView(view) {
				return fmt.Errorf("unknown view %q (want workflow, sequence, or architecture)", view)
			}

			code, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			logger.Debug("posting to share service", "url", serviceURL, "view", view, "bytes", len(code))

			client := remote.NewShareClient(c.newRemoteClient(noCache), serviceURL)

			spinner := newSpinnerWithContext(cmd.Context(), "Uploading diagram...")
			spinner.Start()
			result, err := client.Share(cmd.Context(), code, view, refresh)
			spinner.Stop()
			if err != nil {
				return err
			}

			printSuccess("Diagram shared")
			fmt.Println("  " + StyleLink.Render(result.URL))
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceURL, "url", "", "share service URL")
	cmd.Flags().StringVar(&view, "view", "", "rendering view (workflow, sequence, architecture)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")

	return cmd
}
