package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(app *cliApp) *cobra.Command {
	var nodeID string
	var probe bool
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask the learning assistant",
		Long: `Ask the learning assistant a question. With --node the question is about
that roadmap node: "explain" asks for an explanation, "resources" or "help"
for learning resources, and "problem", "error" or "stuck" for troubleshooting.

When the assistant backend is unavailable a canned answer is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if probe {
				res := app.assistant.Probe(cmd.Context())
				fmt.Fprintln(out, res.Message)
				return nil
			}

			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				return fmt.Errorf("a question is required")
			}
			if nodeID != "" {
				if _, ok := app.catalog.Node(nodeID); !ok {
					return fmt.Errorf("unknown node %q (see 'roadmap nodes')", nodeID)
				}
			}

			reply := app.assistant.Chat(cmd.Context(), message, nodeID)
			fmt.Fprintln(out, reply.Content)
			return nil
		},
	}
	cmd.Flags().StringVar(&nodeID, "node", "", "roadmap node the question is about")
	cmd.Flags().BoolVar(&probe, "probe", false, "check that the assistant backend answers")
	return cmd
}
