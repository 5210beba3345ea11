package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the demo playground.
type KeyMap struct {
	// Banner lifecycle
	Present key.Binding
	Urgency key.Binding
	Close   key.Binding
	Extend  key.Binding

	// Gestures
	Tap      key.Binding
	DragUp   key.Binding
	DragDown key.Binding
	Release  key.Binding
	Flick    key.Binding
	Cancel   key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Present, k.DragDown, k.Flick, k.Tap, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Present, k.Urgency, k.Close, k.Extend},
		{k.DragUp, k.DragDown, k.Release, k.Flick},
		{k.Tap, k.Cancel, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Present: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "present banner"),
		),
		Urgency: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "cycle urgency"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		Extend: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "extend display"),
		),
		Tap: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tap"),
		),
		DragUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "drag up"),
		),
		DragDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "drag down"),
		),
		Release: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "release drag"),
		),
		Flick: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flick"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
