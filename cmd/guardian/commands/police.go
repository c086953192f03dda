package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func policeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "police",
		Short: "Show police options for the current location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := appCtx.Police.Options(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Police: %s\n", opts.Number)
			fmt.Fprintf(out, "Location: %s\n", opts.MapsLink)
			fmt.Fprintf(out, "Call: %s\n", opts.Call.URI)
			fmt.Fprintf(out, "Send Location: %s\n", opts.SMS.URI)
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "call",
			Short: "Call the police number",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := appCtx.Police.Call(cmd.Context())
				return err
			},
		},
		&cobra.Command{
			Use:   "sms",
			Short: "Text the police number a link to the current location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := appCtx.Police.SendLocation(cmd.Context())
				return err
			},
		},
	)
	return cmd
}
