package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

// errBackendDown makes health exit non-zero without repeating the printed status.
var errBackendDown = errors.New("backend unavailable")

func newHealthCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the ATS backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client(nil)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			h, err := client.Health(ctx)

			if a.jsonOutput {
				if err != nil {
					return err
				}
				if err := writeJSON(cmd.OutOrStdout(), h); err != nil {
					return err
				}
			} else {
				a.printer(cmd.OutOrStdout()).PrintHealth(h, err)
			}
			if err != nil || !h.Up() {
				return errBackendDown
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Health check timeout")
	return cmd
}
