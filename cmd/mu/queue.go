package main

import (
	"time"

	"github.com/spf13/cobra"
)

func playCommand() *cobra.Command {
	var startIndex int64
	var position time.Duration

	cmd := &cobra.Command{
		Use:   "play <id...>",
		Short: "Build a play queue from browse ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			result, err := app.service.SetQueue(ctx, app.session, args, startIndex, position.Milliseconds())
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.Flags().Int64Var(&startIndex, "index", 0, "start index when several ids are given")
	cmd.Flags().DurationVar(&position, "position", 0, "start position (e.g. 1m30s)")
	return cmd
}

func addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id...>",
		Short: "Resolve browse ids into queue items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			result, err := app.service.AddItems(ctx, app.session, args)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
}

func resumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Show the queue saved by the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			result, err := app.service.Resume(ctx, app.session)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
}
