package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laneweave/laneweave/pkg/remote"
)

// validateCommand creates the validate command, which proxies to the
// external validation service.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		serviceURL string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate diagram text against the validation service",
		Long: `Send diagram text to the external validation service and report its verdict.

Responses are cached by text hash; identical diagrams don't re-post.
Note that parsing locally never needs this: the parser is best-effort and
accepts anything. Validation is for catching mistakes the parser silently
skips.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if serviceURL == "" {
				return fmt.Errorf("no validation service configured (set --url)")
			}

			code, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			logger.Debug("posting to validation service", "url", serviceURL, "bytes", len(code))

			client := remote.NewValidateClient(c.newRemoteClient(noCache), serviceURL)

			spinner := newSpinnerWithContext(cmd.Context(), "Validating diagram...")
			spinner.Start()
			result, err := client.Validate(cmd.Context(), code, refresh)
			spinner.Stop()
			if err != nil {
				return err
			}

			if result.Valid {
				printSuccess("Diagram is valid")
			} else {
				printError("Diagram has %d error(s)", len(result.Errors))
			}
			for _, issue := range result.Errors {
				printDetail("line %d: %s", issue.Line, issue.Message)
			}
			for _, warning := range result.Warnings {
				printWarning("%s", warning)
			}
			printDetail("%d lanes · %d nodes · %d edges",
				result.Stats.Lanes, result.Stats.Nodes, result.Stats.Edges)

			if !result.Valid {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceURL, "url", "", "validation service URL")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache entirely")

	return cmd
}
