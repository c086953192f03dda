package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage emergency contacts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List emergency contacts in call order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := appCtx.Contacts.Contacts(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no emergency contacts")
					return nil
				}
				for i, c := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, c)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <number>",
			Short: "Append an emergency contact",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				added, err := appCtx.Contacts.Add(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !added {
					return fmt.Errorf("number is blank")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "added")
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <index>",
			Short: "Remove the contact at index (see list)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				i, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("index must be a number: %w", err)
				}
				if err := appCtx.Contacts.Remove(cmd.Context(), i); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "removed")
				return nil
			},
		},
	)
	return cmd
}
