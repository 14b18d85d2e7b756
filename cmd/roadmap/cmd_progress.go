package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arturoeanton/roadmapai/internal/domain"
)

func newProgressCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show completion, badges and what to learn next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			d := app.roadmap.Dashboard(cmd.Context(), localClient)

			if user := app.session.User(); user != nil {
				fmt.Fprintf(out, "%s's progress\n", user.Name)
			}
			fmt.Fprintf(out, "Completed %d/%d nodes (%d%%)\n", d.CompletedCount, d.TotalNodes, d.Progress.TotalProgress)
			for _, c := range d.Categories {
				fmt.Fprintf(out, "  %-10s %d/%d\n", c.Category, c.Completed, c.Total)
			}

			if len(d.Progress.Badges) > 0 {
				fmt.Fprintln(out, "Badges:")
				for _, b := range d.Progress.Badges {
					printBadge(out, b)
				}
			}
			if len(d.NextNodes) > 0 {
				fmt.Fprintf(out, "Up next: %s\n", strings.Join(d.NextNodes, ", "))
			}
			return nil
		},
	}
}

func newCompleteCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <node-id>",
		Short: "Mark a roadmap node complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := app.catalog.Node(args[0]); !ok {
				return fmt.Errorf("unknown node %q (see 'roadmap nodes')", args[0])
			}

			out := cmd.OutOrStdout()
			p, awarded := app.progress.MarkComplete(cmd.Context(), localClient, args[0])
			fmt.Fprintf(out, "Completed %s. Progress: %d%%\n", args[0], p.TotalProgress)
			for _, b := range awarded {
				fmt.Fprint(out, "New badge! ")
				printBadge(out, b)
			}
			return nil
		},
	}
}

func newIncompleteCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "incomplete <node-id>",
		Short: "Mark a roadmap node not complete (badges are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.progress.MarkIncomplete(cmd.Context(), localClient, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Progress: %d%%\n", p.TotalProgress)
			return nil
		},
	}
}

func newResetCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all progress and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.progress.Reset(cmd.Context(), localClient)
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		},
	}
}

func newNodesCmd(app *cliApp) *cobra.Command {
	var category, difficulty string
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List roadmap nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes := app.roadmap.Nodes(cmd.Context(), localClient, domain.NodeFilter{
				Category:   domain.NodeCategory(category),
				Difficulty: domain.Difficulty(difficulty),
			})
			out := cmd.OutOrStdout()
			for _, n := range nodes {
				mark := " "
				if n.Completed {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %-15s %-28s %-9s %-13s %s\n", mark, n.ID, n.Title, n.Category, n.Difficulty, n.EstimatedTime)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category (frontend, backend, database, devops, tools)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "filter by difficulty (beginner, intermediate, advanced)")
	return cmd
}

func printBadge(w io.Writer, b domain.Badge) {
	fmt.Fprintf(w, "%s %s - %s\n", b.Icon, b.Name, b.Description)
}
