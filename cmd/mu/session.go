package main

import (
	"github.com/mikey-austin/mu_browse/internal/core"
	"github.com/spf13/cobra"
)

func sessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "command <name>",
		Short: "Send a named session command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			result, err := app.service.Command(ctx, app.session, args[0])
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
}

func watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream session events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx := cmd.Context()

			nodeID, events, errs, err := app.service.WatchEvents(ctx, app.session)
			if err != nil {
				return err
			}
			for {
				select {
				case <-ctx.Done():
					return nil
				case evt, ok := <-events:
					if !ok {
						return nil
					}
					if err := app.printer.Print(core.EventResult{NodeID: nodeID, Event: evt}); err != nil {
						return err
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					if err != nil {
						return err
					}
				}
			}
		},
	}
}
