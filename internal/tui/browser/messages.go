// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     browser
// Description: Message types and key bindings for the tag browser
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package browser

import (
	"github.com/charmbracelet/bubbles/key"
)

// reloadedMsg is sent when a reload of the document has finished
type reloadedMsg struct {
	err error
}

// keyMap defines the browser key bindings
type keyMap struct {
	Next    key.Binding
	Restart key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func newKeyMap(t func(string) string) keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " ", "j", "down", "right"),
			key.WithHelp("n/space", t("browse.help.next")),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "home"),
			key.WithHelp("r", t("browse.help.restart")),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", t("browse.help.reload")),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", t("browse.help.quit")),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Restart, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
