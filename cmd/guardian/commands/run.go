package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// run: switch monitoring on and block until interrupted.
func runCmd() *cobra.Command {
	var (
		dropAfter time.Duration
		watch     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Turn safety monitoring on until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if watch {
				if err := appCtx.WatchContacts(ctx); err != nil {
					return err
				}
			}
			appCtx.Session.SetEnabled(ctx, true)
			fmt.Fprintln(cmd.OutOrStdout(), "monitoring; press Ctrl-C to stop")

			if dropAfter > 0 {
				timer := time.AfterFunc(dropAfter, appCtx.Accelerometer.Drop)
				defer timer.Stop()
			}
			<-ctx.Done()
			appCtx.Session.SetEnabled(context.WithoutCancel(ctx), false)
			return nil
		},
	}
	cmd.Flags().DurationVar(&dropAfter, "drop-after", 0, "simulate a fall after this long")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload contacts when the contact file changes")
	return cmd
}
