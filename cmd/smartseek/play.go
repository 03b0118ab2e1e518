package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func (c *cli) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the terminal player",
		Long: `Open the terminal player with the configured videos.

The bound back and forward keys seek the active video, as do the fixed
Shift+Left and Shift+Right. Space toggles playback, Tab toggles a text
field focus (seeking is suspended while it is focused), Escape quits.`,
		Annotations: map[string]string{annotationOwnsTerm: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			return c.app.Play(cmd.Context(), screen)
		},
	}
}
