package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notica/notica/internal/tui"
)

var demoOpts struct {
	style       string
	onTap       string
	minVelocity float64
	minDistance float64
	noStretch   bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the banner presentation playground",
	Long: `Run an interactive terminal playground for the banner presentation
engine. Key presses stand in for touch gestures, so entrance, auto-dismiss,
drag, rubber-band, and swipe behavior can be explored without a compositor.

Key bindings:
  n           Present a banner
  u           Cycle urgency for the next banner
  j/k, ↑/↓    Drag down / up
  r           Release the drag
  f           Flick (fast release)
  esc         Cancel the drag
  t           Tap the banner
  e           Extend the display duration
  x           Close with animation
  ?           Show help
  q           Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoOpts.style, "style", "",
		"Banner style (top, bottom, center; default from config)")
	demoCmd.Flags().StringVar(&demoOpts.onTap, "on-tap", "",
		"Tap action (dismiss, delay-exit, forward, none)")
	demoCmd.Flags().Float64Var(&demoOpts.minVelocity, "min-velocity", 0,
		"Minimum fling velocity to complete a swipe (points/s)")
	demoCmd.Flags().Float64Var(&demoOpts.minDistance, "min-distance", 0,
		"Minimum distance past the resting edge to complete a swipe")
	demoCmd.Flags().BoolVar(&demoOpts.noStretch, "no-stretch", false,
		"Disable the rubber-band stretch")
}

func runDemo(cmd *cobra.Command, args []string) error {
	// Work on a copy so flag overrides never leak into a saved config.
	demoCfg := *cfg
	if demoOpts.style != "" {
		demoCfg.Display.Style = demoOpts.style
	}
	if demoOpts.onTap != "" {
		demoCfg.Interaction.OnTap = demoOpts.onTap
	}
	if demoOpts.minVelocity > 0 {
		demoCfg.Interaction.MinSwipeVelocity = demoOpts.minVelocity
	}
	if demoOpts.minDistance > 0 {
		demoCfg.Interaction.MinSwipeDistance = demoOpts.minDistance
	}
	if demoOpts.noStretch {
		demoCfg.Interaction.StretchEnabled = false
	}
	if err := demoCfg.Validate(); err != nil {
		return fmt.Errorf("invalid playground options: %w", err)
	}

	return tui.Run(&demoCfg)
}
