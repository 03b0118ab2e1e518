package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/smartseek/internal/popup"
)

func (c *cli) popupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popup",
		Short: "Quickly adjust the seek amount",
		Long: fmt.Sprintf(`Adjust the seek amount in %gs steps within [%g, %d] seconds.
Only the seek amount is written; key bindings are left alone.`, popup.Step, popup.Min, popup.Max),
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the seek amount and bindings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := c.app.Popup(cmd.Context())
				if err != nil {
					return err
				}
				c.printPopup(cmd, p)
				return nil
			},
		},
		c.popupStepCmd("up", "Increase the seek amount by one step", (*popup.Popup).Increase),
		c.popupStepCmd("down", "Decrease the seek amount by one step", (*popup.Popup).Decrease),
		&cobra.Command{
			Use:   "set SECONDS",
			Short: "Set the seek amount, clamped to the popup range",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid seek amount %q", args[0])
				}
				p, err := c.app.Popup(cmd.Context())
				if err != nil {
					return err
				}
				if _, err := p.SetAmount(cmd.Context(), n); err != nil {
					return err
				}
				c.printPopup(cmd, p)
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) popupStepCmd(use, short string, step func(*popup.Popup, context.Context) (float64, error)) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.Popup(cmd.Context())
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				if _, err := step(p, cmd.Context()); err != nil {
					return err
				}
			}
			c.printPopup(cmd, p)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of steps")
	return cmd
}

func (c *cli) printPopup(cmd *cobra.Command, p *popup.Popup) {
	out := cmd.OutOrStdout()
	s := p.Settings()

	limits := "none"
	switch {
	case !p.CanDecrease():
		limits = "at minimum"
	case !p.CanIncrease():
		limits = "at maximum"
	}

	fmt.Fprintln(out, renderBlock("Smart Seek", []row{
		{"Seek amount", fmt.Sprintf("%gs", p.Amount())},
		{"Back key", s.BackKey},
		{"Forward key", s.ForwardKey},
		{"Limit", limits},
	}))
	if c.app.UsingFallback() {
		printWarn(out, "Settings store unavailable; changes will not persist.")
	}
}
