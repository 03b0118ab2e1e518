package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/smartseek/internal/app"
	"github.com/dshills/smartseek/internal/options"
)

func (c *cli) optionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show and edit all settings",
	}
	cmd.AddCommand(
		c.optionsShowCmd(),
		c.optionsSetCmd(),
		c.optionsResetCmd(),
		c.optionsCaptureCmd(),
	)
	return cmd
}

func (c *cli) optionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := c.app.OptionsForm(cmd.Context())
			if err != nil {
				return err
			}
			c.printForm(cmd, "Settings", form)
			return nil
		},
	}
}

func (c *cli) optionsSetCmd() *cobra.Command {
	var amount, back, forward string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Validate and save settings",
		Example: `  smartseek options set --amount 10
  smartseek options set --back "Alt+ArrowLeft" --forward "Alt+ArrowRight"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("amount") && !flags.Changed("back") && !flags.Changed("forward") {
				return errors.New("nothing to set: pass --amount, --back or --forward")
			}

			form, err := c.app.OptionsForm(cmd.Context())
			if err != nil {
				return err
			}
			if flags.Changed("amount") {
				form.SeekAmount = amount
			}
			if flags.Changed("back") {
				form.BackKey = back
			}
			if flags.Changed("forward") {
				form.ForwardKey = forward
			}
			return c.saveForm(cmd, form)
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Seek amount in seconds")
	cmd.Flags().StringVar(&back, "back", "", "Back key binding, e.g. Shift+J")
	cmd.Flags().StringVar(&forward, "forward", "", "Forward key binding, e.g. Shift+L")
	return cmd
}

func (c *cli) optionsResetCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Fill the form with the defaults",
		Long: `Fill the form with the default settings. Nothing is stored unless
--save is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := c.app.OptionsForm(cmd.Context())
			if err != nil {
				return err
			}
			form.Reset()
			if save {
				return c.saveForm(cmd, form)
			}
			c.printForm(cmd, "Defaults", form)
			printHint(cmd.OutOrStdout(), "Not saved. Run with --save to store these settings.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Save the defaults")
	return cmd
}

func (c *cli) optionsCaptureCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "capture back|forward",
		Short:       "Bind a key by pressing it",
		Long:        "Wait for a key press and save it as the back or forward binding. Escape keeps the current binding.",
		Args:        cobra.ExactArgs(1),
		ValidArgs:   []string{"back", "forward"},
		Annotations: map[string]string{annotationOwnsTerm: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var field options.Field
			switch strings.ToLower(args[0]) {
			case "back":
				field = options.BackField
			case "forward":
				field = options.ForwardField
			default:
				return fmt.Errorf("unknown binding %q: want back or forward", args[0])
			}

			form, err := c.app.OptionsForm(cmd.Context())
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			err = app.CaptureBinding(cmd.Context(), screen, form, field)
			screen.Fini()
			if err != nil {
				return err
			}
			return c.saveForm(cmd, form)
		},
	}
}

// saveForm saves form and prints the outcome the way the options page
// shows it.
func (c *cli) saveForm(cmd *cobra.Command, form *options.Form) error {
	saved, err := form.Save(cmd.Context())
	if err != nil {
		if form.Error != "" {
			return errors.New(form.Error)
		}
		return err
	}
	printSettings(cmd.OutOrStdout(), "Settings", saved)
	printSuccess(cmd.OutOrStdout(), form.Status)
	return nil
}

func (c *cli) printForm(cmd *cobra.Command, title string, form *options.Form) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderBlock(title, []row{
		{"Seek amount", form.SeekAmount + "s"},
		{"Back key", form.BackKey},
		{"Forward key", form.ForwardKey},
	}))
	if c.app.UsingFallback() {
		printWarn(out, "Settings store unavailable; showing in-memory settings.")
	}
}
