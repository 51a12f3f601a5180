package ui

import (
	"strings"

	"kisan/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Model is the root Bubble Tea model.
type Model struct {
	deps     Deps
	registry Registry
	nav      *Navigator
	view     screenView

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	keys KeyMap
}

// New creates a new root model showing the home screen.
func New(deps Deps) Model {
	deps = deps.withDefaults()
	registry := DefaultRegistry()
	nav := NewNavigator()
	view, _ := registry.Resolve(nav.Current(), deps)
	return Model{
		deps:     deps,
		registry: registry,
		nav:      nav,
		view:     view,
		keys:     DefaultKeyMap(),
	}
}

// Current returns the screen being shown.
func (m Model) Current() model.Screen {
	return m.nav.Current()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.view.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if key.Matches(msg, m.keys.ForceQuit) {
			m.view.Dispose()
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.view.Capturing() {
			return m, m.view.Update(msg)
		}
		return m.handleGlobalKey(msg)

	case model.NavigateMsg:
		return m, m.navigate(msg.Screen, msg.Typing)

	case model.InfoMsg:
		m.info = msg.Text
		return m, nil

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil
	}

	// Delegate to current screen
	return m, m.view.Update(msg)
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.info = ""
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showingHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.nav.Current() == model.ScreenHome {
			return m, nil
		}
		return m, m.navigate(model.ScreenHome, false)
	case key.Matches(msg, m.keys.Quit) && m.nav.Current() == model.ScreenHome:
		m.view.Dispose()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Home):
		return m, m.navigate(model.ScreenHome, false)
	case key.Matches(msg, m.keys.Voice):
		return m, m.navigate(model.ScreenVoice, false)
	case key.Matches(msg, m.keys.Image):
		return m, m.navigate(model.ScreenImage, false)
	case key.Matches(msg, m.keys.Mandi):
		return m, m.navigate(model.ScreenMandi, false)
	case key.Matches(msg, m.keys.Schemes):
		return m, m.navigate(model.ScreenSchemes, false)
	}
	return m, m.view.Update(msg)
}

// navigate applies a navigation request. Staying on the same screen keeps the
// mounted view and its state.
func (m *Model) navigate(target model.Screen, typing bool) tea.Cmd {
	if target == m.nav.Current() {
		if typing {
			if v, ok := m.view.(*VoiceModel); ok {
				return v.BeginTyping()
			}
		}
		return nil
	}

	view, err := m.registry.Resolve(target, m.deps)
	if err != nil {
		m.deps.Log.Error("resolve screen", zap.Stringer("screen", target), zap.Error(err))
		m.error = err.Error()
		return nil
	}

	from := m.nav.Current()
	m.view.Dispose()
	m.nav.Navigate(target)
	m.view = view
	m.error = ""
	m.info = ""
	m.deps.Log.Debug("navigate", zap.Stringer("from", from), zap.Stringer("to", target))

	cmds := []tea.Cmd{view.Init()}
	if typing {
		if v, ok := view.(*VoiceModel); ok {
			cmds = append(cmds, v.BeginTyping())
		}
	}
	return tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	current := m.nav.Current()
	header := m.renderHeader(current)
	tabs := renderTabs(current, m.width)
	footer := RenderHelp(current, m.view.Capturing(), m.width)

	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		banners = append(banners, SuccessStyle.Width(m.width).Render(m.info))
	}

	// Header and tabs take 2 lines each, the footer 2.
	contentHeight := max(1, m.height-6-len(banners))
	content := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(m.view.View(m.width, contentHeight))

	parts := []string{header, tabs}
	parts = append(parts, banners...)
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTabs(screen model.Screen, width int) string {
	var tabStrings []string
	for i, s := range model.Screens {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if screen == s {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		name := s.Title()
		if s == model.ScreenHome {
			name = "Home"
		}
		tabStrings = append(tabStrings, tabStyle.Render(string(rune('1'+i))+" "+name))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func (m Model) renderHeader(screen model.Screen) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("🌾 " + model.ScreenHome.Title())

	var breadcrumb string
	if screen != model.ScreenHome {
		breadcrumb = BreadcrumbStyle.Render(" › ") + BreadcrumbActiveStyle.Render(screen.Title())
	}

	left := "  " + title + breadcrumb

	// Right side: current date
	dateStr := m.deps.Now().Format("Mon 02 Jan")
	right := BreadcrumbStyle.Render(dateStr) + "  "

	padding := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(m.width).Render(headerContent)
}
