package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kisan/internal/model"
	"kisan/internal/provider"
	"kisan/internal/util"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// SchemesModel is the government schemes screen.
type SchemesModel struct {
	deps Deps
	keys SchemesKeyMap
	nav  KeyMap

	all      []model.Scheme
	visible  []model.Scheme
	category model.SchemeCategory
	cursor   int
	loaded   bool
	errMsg   string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSchemesModel creates a new schemes model showing every category.
func NewSchemesModel(deps Deps) *SchemesModel {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &SchemesModel{
		deps:     deps,
		keys:     DefaultSchemesKeyMap(),
		nav:      DefaultKeyMap(),
		category: model.CategoryAll,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (m *SchemesModel) Screen() model.Screen { return model.ScreenSchemes }
func (m *SchemesModel) Capturing() bool      { return false }

// Init loads the scheme catalog.
func (m *SchemesModel) Init() tea.Cmd {
	return loadSchemesCmd(m.ctx, m.deps.Services)
}

// Dispose cancels the catalog load if it is still running.
func (m *SchemesModel) Dispose() {
	m.cancel()
}

// Category returns the selected category.
func (m *SchemesModel) Category() model.SchemeCategory {
	return m.category
}

// Visible returns the schemes in the selected category.
func (m *SchemesModel) Visible() []model.Scheme {
	return m.visible
}

// Err returns the inline error message, if any.
func (m *SchemesModel) Err() string {
	return m.errMsg
}

// Selected returns the scheme under the cursor.
func (m *SchemesModel) Selected() (model.Scheme, bool) {
	if len(m.visible) == 0 {
		return model.Scheme{}, false
	}
	return m.visible[m.cursor], true
}

// SetCategory re-filters the catalog. Selecting the current category again
// changes nothing.
func (m *SchemesModel) SetCategory(c model.SchemeCategory) {
	if c == m.category && m.visible != nil {
		return
	}
	m.category = c
	m.visible = model.FilterSchemes(m.all, c)
	m.cursor = 0
}

// CycleCategory moves to the next (or previous) category.
func (m *SchemesModel) CycleCategory(step int) {
	idx := 0
	for i, c := range model.SchemeCategories {
		if c == m.category {
			idx = i
			break
		}
	}
	n := len(model.SchemeCategories)
	m.SetCategory(model.SchemeCategories[((idx+step)%n+n)%n])
}

// Update handles messages.
func (m *SchemesModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case model.SchemesLoadedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return nil
			}
			m.deps.Log.Warn("load schemes", zap.Error(msg.Err))
			m.errMsg = provider.UserMessage(msg.Err)
			return nil
		}
		m.all = msg.Schemes
		m.loaded = true
		m.visible = model.FilterSchemes(m.all, m.category)
		if m.cursor >= len(m.visible) {
			m.cursor = 0
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevCategory):
			m.CycleCategory(-1)
		case key.Matches(msg, m.keys.NextCategory):
			m.CycleCategory(1)
		case key.Matches(msg, m.keys.All):
			m.SetCategory(model.CategoryAll)
		case key.Matches(msg, m.keys.Financial):
			m.SetCategory(model.CategoryFinancial)
		case key.Matches(msg, m.keys.Insurance):
			m.SetCategory(model.CategoryInsurance)
		case key.Matches(msg, m.keys.Equipment):
			m.SetCategory(model.CategoryEquipment)
		case key.Matches(msg, m.keys.Training):
			m.SetCategory(model.CategoryTraining)
		case key.Matches(msg, m.nav.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.nav.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return nil
}

// View renders the schemes screen.
func (m *SchemesModel) View(width, height int) string {
	var tabs []string
	for _, c := range model.SchemeCategories {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(ColorMuted)
		if c == m.category {
			style = style.Foreground(ColorBase).Background(ColorAccent).Bold(true)
		}
		tabs = append(tabs, style.Render(c.Label()))
	}

	sections := []string{
		LabelStyle.Render("🏛 Government Schemes") + "  " +
			HelpDescStyle.Render("Discover schemes and subsidies available for farmers"),
		lipgloss.JoinHorizontal(lipgloss.Left, tabs...),
		"",
	}

	if m.errMsg != "" {
		sections = append(sections, ErrorStyle.Render(m.errMsg))
	}

	switch {
	case !m.loaded:
		sections = append(sections, EmptyStateStyle.Render("Loading schemes..."))
	case len(m.visible) == 0:
		sections = append(sections, EmptyStateStyle.Render("No schemes in this category."))
	default:
		listWidth := min(44, max(24, width/3))
		var list []string
		for i, s := range m.visible {
			line := util.PadRight(util.TruncateString(s.Name, listWidth-14), listWidth-12) + s.Amount
			if i == m.cursor {
				list = append(list, SelectedRowStyle.Render(util.TruncateString("› "+line, listWidth)))
			} else {
				list = append(list, NormalRowStyle.Render(util.TruncateString("  "+line, listWidth)))
			}
		}
		detailWidth := max(20, width-listWidth-12)
		selected, _ := m.Selected()
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(listWidth).Render(strings.Join(list, "\n")),
			"  ",
			renderSchemeDetail(selected, detailWidth),
		))
		sections = append(sections, StatusBarStyle.Render(fmt.Sprintf("%d of %d schemes  ·  %s",
			len(m.visible), len(m.all), m.category.Label())))
	}

	sections = append(sections, "", PanelStyle.Render(
		LabelStyle.Render("Need help applying?")+"\n"+
			HelpDescStyle.Render("Visit your nearest Common Service Centre or agriculture office with the documents listed.")))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderSchemeDetail(s model.Scheme, width int) string {
	lines := []string{
		LabelStyle.Render(s.Name) + "  " + statusStyle(s.Status).Render(s.Status),
		HelpDescStyle.Render(s.FullName),
		"",
		NormalRowStyle.Render(s.Description),
		"",
		fmt.Sprintf("%s %s", LabelStyle.Render("Amount:"), s.Amount),
		fmt.Sprintf("%s %s", LabelStyle.Render("Eligibility:"), s.Eligibility),
		fmt.Sprintf("%s %s", LabelStyle.Render("Deadline:"), s.Deadline),
	}
	if len(s.Benefits) > 0 {
		lines = append(lines, "", LabelStyle.Render("Key Benefits"), util.Bullets(s.Benefits))
	}
	if len(s.Documents) > 0 {
		lines = append(lines, "", LabelStyle.Render("Required Documents"), util.Bullets(s.Documents))
	}
	return ActivePanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Commands

func loadSchemesCmd(ctx context.Context, svc provider.Services) tea.Cmd {
	return func() tea.Msg {
		schemes, err := provider.Call(ctx, svc.Policy, "schemes.list", func(ctx context.Context) ([]model.Scheme, error) {
			return svc.Schemes.Schemes(ctx)
		})
		return model.SchemesLoadedMsg{Schemes: schemes, Err: err}
	}
}
