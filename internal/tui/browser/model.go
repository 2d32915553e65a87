// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     browser
// Description: Bubbletea model that walks a tag store with its cursor
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/tagscript/foundation/core/i18n"
	"github.com/msto63/tagscript/foundation/tag"
	"github.com/msto63/tagscript/foundation/tag/store"
)

// Config holds browser configuration
type Config struct {
	// Store holds the loaded document; the browser moves its cursor
	Store *store.Store

	// File is reloaded from the store's source on R
	File string

	// Translator for all visible text (default: built-in English catalog)
	Translator store.Translator
}

// Model is the main Bubbletea model of the browser
type Model struct {
	width  int
	height int
	ready  bool

	viewport viewport.Model
	help     help.Model
	keys     keyMap

	store  *store.Store
	file   string
	tr     store.Translator
	status string
	err    error
}

// New creates a browser model
func New(cfg Config) Model {
	tr := cfg.Translator
	if tr == nil {
		tr = i18n.Default()
	}

	m := Model{
		help:  help.New(),
		store: cfg.Store,
		file:  cfg.File,
		tr:    tr,
	}
	m.keys = newKeyMap(func(k string) string { return m.t(k) })
	return m
}

// Run starts the browser in the alternate screen and blocks until it quits
func Run(cfg Config) error {
	_, err := tea.NewProgram(New(cfg), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		headerHeight := 4 // Title panel + position
		footerHeight := 3 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case reloadedMsg:
		m.err = msg.err
		if msg.err != nil {
			m.status = m.store.Diagnostic(m.file, msg.err)
		} else {
			m.status = m.t("browse.reloaded", map[string]interface{}{"File": m.file})
		}
		m.updateViewportContent()
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.store.Advance()
		m.updateViewportContent()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.store.Rewind()
		m.status = ""
		m.updateViewportContent()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.file == "" {
			return m, nil
		}
		return m, m.reload
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// reload loads the file again through the store
func (m Model) reload() tea.Msg {
	return reloadedMsg{err: m.store.LoadFile(context.Background(), m.file)}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(TagPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// renderHeader renders the title and the cursor position
func (m Model) renderHeader() string {
	title := LogoStyle.Render(Logo) + "  " + m.t("browse.title")

	name := m.store.FileIdentity()
	if name == "" {
		name = m.file
	}

	position := PositionStyle.Render(fmt.Sprintf("%s  %s", name, m.positionText()))
	header := lipgloss.JoinVertical(lipgloss.Left, title, position)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// positionText returns "tag i of n" or the end marker
func (m Model) positionText() string {
	total := m.store.Len()
	index := m.store.Index()
	if index >= total {
		return m.t("browse.end")
	}
	return m.t("browse.position", map[string]interface{}{"Index": index + 1, "Total": total})
}

// renderStatusBar renders the last reload result
func (m Model) renderStatusBar() string {
	status := m.status
	switch {
	case status == "":
		status = " "
	case m.err != nil:
		status = StatusErrorStyle.Render(status)
	default:
		status = StatusOKStyle.Render(status)
	}
	return StatusBarStyle.Width(m.width - 2).Render(status)
}

// updateViewportContent renders the tag under the cursor into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTag())
	m.viewport.GotoTop()
}

// renderTag renders the current tag with its properties
func (m Model) renderTag() string {
	if m.store.Len() == 0 {
		return EmptyStyle.Render(m.t("browse.empty"))
	}

	current, ok := m.store.Current()
	if !ok {
		return EmptyStyle.Render(m.t("browse.end"))
	}
	return renderTagBody(current, m.t("browse.line", map[string]interface{}{"Line": current.Line()}), m.t("browse.no_properties"))
}

func renderTagBody(t tag.Tag, lineText, noProps string) string {
	var b strings.Builder

	b.WriteString(TagNameStyle.Render("[" + t.Name() + "]"))
	b.WriteString("  ")
	b.WriteString(TagLineStyle.Render(lineText))
	b.WriteString("\n\n")

	if t.Len() == 0 {
		b.WriteString(EmptyStyle.Render(noProps))
		return b.String()
	}

	width := 0
	for _, p := range t.Properties() {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}
	for _, p := range t.Properties() {
		b.WriteString(PropertyNameStyle.Render(fmt.Sprintf("%-*s", width, p.Name)))
		b.WriteString(" = ")
		b.WriteString(PropertyValueStyle.Render(fmt.Sprintf("%q", p.Value)))
		b.WriteString("\n")
	}
	return b.String()
}

// t translates key through the configured catalog
func (m Model) t(key string, data ...map[string]interface{}) string {
	return m.tr.T(key, data...)
}
