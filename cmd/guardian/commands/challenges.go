package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"guardian/internal/domain"
)

func challengesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Manage wellness challenges",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List challenges",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := appCtx.Challenges.List(cmd.Context())
				if err != nil {
					return err
				}
				printChallenges(cmd, list)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <text>",
			Short: "Add a challenge",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, added, err := appCtx.Challenges.Add(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if !added {
					return fmt.Errorf("challenge text is blank")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %d\n", c.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Mark a challenge done or not done",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("id must be a number: %w", err)
				}
				allDone, err := appCtx.Challenges.Toggle(cmd.Context(), id)
				if err != nil {
					return err
				}
				if allDone {
					fmt.Fprintln(cmd.OutOrStdout(), "Hooray! All challenges completed.")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a challenge",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("id must be a number: %w", err)
				}
				return appCtx.Challenges.Delete(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func printChallenges(cmd *cobra.Command, list []domain.Challenge) {
	out := cmd.OutOrStdout()
	for _, c := range list {
		mark := " "
		if c.Done {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %d\t%s\n", mark, c.ID, c.Text)
	}
}
