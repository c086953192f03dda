package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"guardian/internal/domain"
)

var errSOSFailed = errors.New("SOS failed: emergency contacts could not be read")

func sosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sos",
		Short: "Call every emergency contact now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := appCtx.SOS.Trigger(cmd.Context(), domain.TriggerManual)
			fmt.Fprintf(cmd.OutOrStdout(), "SOS %s (%d calls)\n", res.Outcome, len(res.Intents))
			return sosExitError(res)
		},
	}
}

// sosExitError maps a dispatch outcome to the command's exit error.
func sosExitError(res domain.DispatchResult) error {
	switch res.Outcome {
	case domain.OutcomeNoContacts:
		return domain.ErrNoContacts
	case domain.OutcomeFailed:
		return errSOSFailed
	}
	return nil
}
