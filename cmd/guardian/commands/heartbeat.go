package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func heartbeatCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "heartbeat",
		Short: "Measure heart rate with a fingertip on the camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			st, err := appCtx.Heartbeat.Measure(ctx)
			if err != nil {
				return err
			}
			bpm, _ := st.BPM()
			fmt.Fprintf(cmd.OutOrStdout(), "%d BPM (%s)\n", bpm, st.Source)
			if st.ErrorMessage != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), st.ErrorMessage)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up after this long")
	return cmd
}
