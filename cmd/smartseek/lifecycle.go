package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/smartseek/internal/settings"
)

func (c *cli) lifecycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifecycle",
		Short: "Inspect or run install and update reconciliation",
		Long: `Every command runs pending install or update reconciliation before it
starts. These subcommands run it explicitly.

  install  writes the default settings, replacing whatever is stored
  update   fills missing fields and moves fields still on a legacy
           default to the current default
  run      does whichever of the two the recorded state calls for`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show which transition is pending",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				l, err := c.app.Lifecycle()
				if err != nil {
					return err
				}
				reason, err := l.Detect(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderBlock("Lifecycle", []row{
					{"Version", version},
					{"Pending", reason.String()},
				}))
				return nil
			},
		},
		c.lifecycleRunCmd("install", "Write the default settings", (*settings.Lifecycle).Install),
		c.lifecycleRunCmd("update", "Reconcile stored settings with the defaults", (*settings.Lifecycle).Update),
		c.lifecycleRunCmd("run", "Run the pending transition, if any", (*settings.Lifecycle).Run),
	)
	for _, sub := range cmd.Commands() {
		sub.Annotations = map[string]string{annotationNoStartup: "true"}
	}
	return cmd
}

func (c *cli) lifecycleRunCmd(use, short string, run func(*settings.Lifecycle, context.Context) (settings.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.app.Lifecycle()
			if err != nil {
				return err
			}
			res, err := run(l, cmd.Context())
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
}

func printResult(cmd *cobra.Command, res settings.Result) {
	out := cmd.OutOrStdout()
	if res.Reason == settings.ReasonNone {
		printHint(out, "Nothing to do; settings are current for "+res.Version+".")
		return
	}

	rows := []row{{"Transition", res.Reason.String()}}
	if res.PreviousVersion != "" {
		rows = append(rows, row{"From", res.PreviousVersion})
	}
	rows = append(rows,
		row{"To", res.Version},
		row{"Install ID", res.InstallID},
		row{"Migrated", listOrNone(res.Migrated)},
	)
	fmt.Fprintln(out, renderBlock("Lifecycle", rows))

	s, err := settings.FromRecord(res.Settings, settings.Defaults())
	if err != nil {
		printWarn(out, err.Error())
	}
	printSettings(out, "Settings", s)
}
