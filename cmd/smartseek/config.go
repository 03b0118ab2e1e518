package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/smartseek/internal/app"
)

func (c *cli) configCmd() *cobra.Command {
	skip := map[string]string{annotationSkipStore: "true"}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the command configuration",
	}

	var force bool
	write := &cobra.Command{
		Use:         "write [PATH]",
		Short:       "Write the resolved configuration to a file",
		Long:        "Write the resolved configuration as YAML. PATH defaults to the user config location.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: skip,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(args)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := app.WriteConfigFile(path, c.cfg); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote "+path)
			return nil
		},
	}
	write.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	cmd.AddCommand(
		&cobra.Command{
			Use:         "show",
			Short:       "Show the resolved configuration",
			Args:        cobra.NoArgs,
			Annotations: skip,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), renderBlock("Configuration", []row{
					{"Store", c.cfg.Store},
					{"Log level", c.cfg.Log.Level},
					{"Log file", valueOr(c.cfg.Log.File, "none")},
					{"Videos", strings.Join(c.cfg.Player.Videos, ", ")},
					{"Duration", c.cfg.Player.Duration.String()},
					{"OSD", c.cfg.Player.OSD.String()},
				}))
				return nil
			},
		},
		write,
	)
	return cmd
}

func configPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return app.DefaultConfigPath()
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
