package ui

import (
	"strings"

	"kisan/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type homeItem struct {
	title       string
	description string
	screen      model.Screen
	typing      bool
	// info is shown instead of navigating when the item has no screen.
	info string
}

var homeActions = []homeItem{
	{title: "🎤 Ask a Question", description: "Get instant answers using voice", screen: model.ScreenVoice},
	{title: "⌨️  Type Your Question", description: "Type your farming queries", screen: model.ScreenVoice, typing: true},
	{title: "📷 Upload Crop Image", description: "Detect diseases with AI", screen: model.ScreenImage},
}

var homeQueries = []homeItem{
	{title: "🌱 Crop Disease Help", description: "Identify and treat plant diseases", info: "Ask by voice or upload a crop photo to get disease help"},
	{title: "💰 Fertilizer Advice", description: "Get personalized fertilizer recommendations", info: "Ask a question to get fertilizer recommendations"},
	{title: "📈 Mandi Prices", description: "Real-time market prices", screen: model.ScreenMandi},
	{title: "🏛  Government Schemes", description: "Discover available schemes and subsidies", screen: model.ScreenSchemes},
}

// HomeModel is the landing screen.
type HomeModel struct {
	deps   Deps
	keys   KeyMap
	items  []homeItem
	cursor int
}

// NewHomeModel creates a new home model.
func NewHomeModel(deps Deps) *HomeModel {
	deps = deps.withDefaults()
	items := append([]homeItem(nil), homeActions...)
	items = append(items, homeQueries...)
	return &HomeModel{deps: deps, keys: DefaultKeyMap(), items: items}
}

func (m *HomeModel) Screen() model.Screen { return model.ScreenHome }
func (m *HomeModel) Init() tea.Cmd        { return nil }
func (m *HomeModel) Capturing() bool      { return false }
func (m *HomeModel) Dispose()             {}

// Update handles key presses.
func (m *HomeModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.MoveDown()
	case key.Matches(keyMsg, m.keys.Up):
		m.MoveUp()
	case key.Matches(keyMsg, m.keys.Select):
		return m.Activate()
	}
	return nil
}

// MoveDown moves the cursor down.
func (m *HomeModel) MoveDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor up.
func (m *HomeModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Activate opens the item under the cursor.
func (m *HomeModel) Activate() tea.Cmd {
	item := m.items[m.cursor]
	if item.info != "" {
		return infoCmd(item.info)
	}
	screen, typing := item.screen, item.typing
	return func() tea.Msg {
		return model.NavigateMsg{Screen: screen, Typing: typing}
	}
}

// View renders the home screen.
func (m *HomeModel) View(width, height int) string {
	welcome := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render("Welcome to Your Farming Assistant"),
		HelpDescStyle.Render("Get expert advice, analyze your crops, check market prices, and discover government schemes - all in one place."),
	)

	var actions []string
	for i, item := range homeActions {
		actions = append(actions, m.renderItem(i, item))
	}
	var queries []string
	for i, item := range homeQueries {
		queries = append(queries, m.renderItem(len(homeActions)+i, item))
	}

	stats := PanelStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render("Today's Quick Stats"),
		renderStat("1,247", "Queries Answered", ColorGreen)+"   "+
			renderStat("₹24/kg", "Avg Tomato Price", ColorBlue)+"   "+
			renderStat("87%", "Success Rate", ColorPurple),
	))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		welcome,
		"",
		strings.Join(actions, "\n"),
		"",
		LabelStyle.Render("🔍 Common Queries"),
		strings.Join(queries, "\n"),
		"",
		stats,
	))
}

func (m *HomeModel) renderItem(idx int, item homeItem) string {
	line := item.title + "  " + HelpDescStyle.Render(item.description)
	if idx == m.cursor {
		return SelectedRowStyle.Render("› "+item.title) + "  " + HelpDescStyle.Render(item.description)
	}
	return NormalRowStyle.Render("  ") + line
}

func renderStat(value, label string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(value) + " " + HelpDescStyle.Render(label)
}
