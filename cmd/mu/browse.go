package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [id]",
		Short: "List the children of a browse id (root when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			result, err := app.service.Children(ctx, app.session, id, 0, 0)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}

	cmd.AddCommand(browseRootCommand())
	cmd.AddCommand(browseItemCommand())
	return cmd
}

func browseRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Show the browse root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			result, err := app.service.Root(ctx, app.session)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
}

func browseItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "item <id>",
		Short: "Show a single browse item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			result, err := app.service.Item(ctx, app.session, args[0])
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
}

func searchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search and list the result menu",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := withTimeout(cmd.Context(), app.timeout)
			defer cancel()

			result, err := app.service.Search(ctx, app.session, strings.Join(args, " "), 0, 0)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
	return cmd
}
