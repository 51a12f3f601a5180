package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"kisan/internal/model"
	"kisan/internal/provider"
	"kisan/internal/util"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type priceColumn struct {
	key   string
	label string
	width int
}

// MandiModel is the mandi price screen.
type MandiModel struct {
	deps     Deps
	keys     MandiKeyMap
	nav      KeyMap
	formKeys FormKeyMap

	state     model.MandiState
	table     model.PriceTable
	loaded    bool
	requestID string
	cancel    context.CancelFunc
	errMsg    string

	rows         []model.CropPrice
	cursor       int
	columns      []priceColumn
	activeColumn int
	sortKey      string
	sortDesc     bool

	prompting bool
	input     textinput.Model
	spinner   spinner.Model
}

// NewMandiModel creates a new mandi price model for the configured location.
func NewMandiModel(deps Deps) *MandiModel {
	deps = deps.withDefaults()
	input := textinput.New()
	input.Placeholder = "Mandi city, e.g. Hyderabad"
	input.CharLimit = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &MandiModel{
		deps:     deps,
		keys:     DefaultMandiKeyMap(),
		nav:      DefaultKeyMap(),
		formKeys: DefaultFormKeyMap(),
		state:    model.MandiState{Location: deps.Location},
		columns: []priceColumn{
			{key: "crop", label: "crop", width: 16},
			{key: "price", label: "price", width: 12},
			{key: "change", label: "change", width: 10},
			{key: "quality", label: "quality", width: 10},
			{key: "supply", label: "supply", width: 10},
		},
		input:   input,
		spinner: sp,
	}
}

func (m *MandiModel) Screen() model.Screen { return model.ScreenMandi }
func (m *MandiModel) Capturing() bool      { return m.prompting }

// Init fetches prices for the initial location.
func (m *MandiModel) Init() tea.Cmd {
	return m.Refresh()
}

// Dispose cancels an in-flight fetch.
func (m *MandiModel) Dispose() {
	m.abandon()
}

// State returns a copy of the mandi state.
func (m *MandiModel) State() model.MandiState {
	return m.state
}

// Table returns the price table being shown.
func (m *MandiModel) Table() model.PriceTable {
	return m.table
}

// Rows returns the displayed rows in their current sort order.
func (m *MandiModel) Rows() []model.CropPrice {
	return m.rows
}

// Err returns the inline error message, if any.
func (m *MandiModel) Err() string {
	return m.errMsg
}

func (m *MandiModel) abandon() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.requestID = ""
	m.state.Refreshing = false
}

// Refresh fetches prices for the current location, superseding any fetch
// still in flight.
func (m *MandiModel) Refresh() tea.Cmd {
	m.abandon()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.requestID = uuid.NewString()
	m.state.Refreshing = true
	m.errMsg = ""
	m.deps.Log.Debug("mandi refresh",
		zap.String("location", m.state.Location),
		zap.String("request_id", m.requestID),
	)
	return tea.Batch(pricesCmd(ctx, m.deps.Services, m.requestID, m.state.Location), m.spinner.Tick)
}

// SetLocation switches to another mandi and refreshes. Unknown locations are
// rejected; the current one is a no-op.
func (m *MandiModel) SetLocation(location string) tea.Cmd {
	if !model.IsLocation(location) {
		m.errMsg = fmt.Sprintf("Unknown mandi %q", location)
		return nil
	}
	if location == m.state.Location {
		return nil
	}
	m.state.Location = location
	return m.Refresh()
}

// CycleLocation moves to the next (or previous) mandi in the fixed list.
func (m *MandiModel) CycleLocation(step int) tea.Cmd {
	idx := 0
	for i, l := range model.Locations {
		if l == m.state.Location {
			idx = i
			break
		}
	}
	n := len(model.Locations)
	next := ((idx+step)%n + n) % n
	return m.SetLocation(model.Locations[next])
}

// nearestLocation matches free text to a mandi: exact or prefix match first,
// then the smallest edit distance within a third of the name's length.
func nearestLocation(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, l := range model.Locations {
		if strings.HasPrefix(strings.ToLower(l), q) {
			return l, true
		}
	}

	best, bestDist := "", -1
	for _, l := range model.Locations {
		d := levenshtein.ComputeDistance(q, strings.ToLower(l))
		if bestDist < 0 || d < bestDist {
			best, bestDist = l, d
		}
	}
	if bestDist > max(2, len(best)/3) {
		return "", false
	}
	return best, true
}

func (m *MandiModel) rebuild() {
	rows := append([]model.CropPrice(nil), m.table.Rows...)
	if m.sortKey != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			left := m.getValue(rows[i], m.sortKey)
			right := m.getValue(rows[j], m.sortKey)
			if m.sortDesc {
				return left > right
			}
			return left < right
		})
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m *MandiModel) getValue(row model.CropPrice, key string) string {
	switch key {
	case "crop":
		return strings.ToLower(row.Name)
	case "price":
		return fmt.Sprintf("%08d", row.Price)
	case "change":
		return fmt.Sprintf("%06d", row.ChangePercent+100000)
	case "quality":
		return strings.ToLower(row.Quality)
	case "supply":
		return supplyRank(row.Supply)
	default:
		return ""
	}
}

func supplyRank(s model.Supply) string {
	switch s {
	case model.SupplyExcellent:
		return "3"
	case model.SupplyGood:
		return "2"
	case model.SupplyLimited:
		return "1"
	default:
		return "0"
	}
}

func (m *MandiModel) NextColumn() {
	m.activeColumn = (m.activeColumn + 1) % len(m.columns)
}

func (m *MandiModel) PrevColumn() {
	m.activeColumn--
	if m.activeColumn < 0 {
		m.activeColumn = len(m.columns) - 1
	}
}

func (m *MandiModel) SortActiveColumn(desc bool) {
	m.sortKey = m.columns[m.activeColumn].key
	m.sortDesc = desc
	m.rebuild()
}

// Update handles messages.
func (m *MandiModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case model.PricesLoadedMsg:
		if msg.RequestID == "" || msg.RequestID != m.requestID {
			return nil
		}
		m.cancel = nil
		m.requestID = ""
		m.state.Refreshing = false
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return nil
			}
			m.deps.Log.Warn("mandi prices", zap.String("location", m.state.Location), zap.Error(msg.Err))
			m.errMsg = provider.UserMessage(msg.Err)
			return nil
		}
		m.table = msg.Table
		m.loaded = true
		m.rebuild()
		return nil

	case spinner.TickMsg:
		if !m.state.Refreshing {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m.Refresh()
		case key.Matches(msg, m.keys.PrevCity):
			return m.CycleLocation(-1)
		case key.Matches(msg, m.keys.NextCity):
			return m.CycleLocation(1)
		case key.Matches(msg, m.keys.FindCity):
			m.prompting = true
			return m.input.Focus()
		case key.Matches(msg, m.keys.NextColumn):
			m.NextColumn()
		case key.Matches(msg, m.keys.PrevColumn):
			m.PrevColumn()
		case key.Matches(msg, m.keys.SortAsc):
			m.SortActiveColumn(false)
		case key.Matches(msg, m.keys.SortDesc):
			m.SortActiveColumn(true)
		case key.Matches(msg, m.keys.Ask):
			return navigateCmd(model.ScreenVoice)
		case key.Matches(msg, m.keys.Schemes):
			return navigateCmd(model.ScreenSchemes)
		case key.Matches(msg, m.nav.Down):
			if m.cursor < len(m.rows)-1 {
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

func (m *MandiModel) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.closePrompt()
		return nil
	case key.Matches(msg, m.formKeys.Submit):
		query := m.input.Value()
		m.closePrompt()
		location, ok := nearestLocation(query)
		if !ok {
			m.errMsg = fmt.Sprintf("No mandi matches %q", strings.TrimSpace(query))
			return nil
		}
		return m.SetLocation(location)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *MandiModel) closePrompt() {
	m.prompting = false
	m.input.Reset()
	m.input.Blur()
}

// View renders the mandi price screen.
func (m *MandiModel) View(width, height int) string {
	var locs []string
	for _, l := range model.Locations {
		if l == m.state.Location {
			locs = append(locs, BreadcrumbActiveStyle.Bold(true).Render("["+l+"]"))
		} else {
			locs = append(locs, BreadcrumbStyle.Render(l))
		}
	}

	status := HelpDescStyle.Render("Updated " + util.FormatClock(m.table.FetchedAt))
	if m.state.Refreshing {
		status = lipgloss.NewStyle().Foreground(ColorBlue).Render(m.spinner.View() + " Refreshing...")
	}

	sections := []string{
		LabelStyle.Render("📈 Mandi Prices") + "  " + HelpDescStyle.Render(util.FormatLongDate(m.deps.Now())),
		strings.Join(locs, " ") + "   " + status,
	}

	if m.prompting {
		sections = append(sections, ActivePanelStyle.Render(m.input.View()))
	}
	if m.errMsg != "" {
		sections = append(sections, ErrorStyle.Render(m.errMsg))
	}
	if m.table.Stale {
		sections = append(sections, WarningStyle.Render(fmt.Sprintf(
			"⚠ Showing last known prices from %s. Live prices are unavailable.",
			util.FormatClock(m.table.FetchedAt))))
	}

	sections = append(sections, "",
		LabelStyle.Render("📍 "+m.state.Location+" Market")+"  "+
			HelpDescStyle.Render("Prices from authorized mandis and wholesale markets"))

	if !m.loaded {
		sections = append(sections, EmptyStateStyle.Render("Fetching prices..."))
	} else {
		sections = append(sections, m.renderTable(width))
		if insights := priceInsights(m.table.Rows); len(insights) > 0 {
			sections = append(sections, "", PanelStyle.Width(max(20, width-8)).Render(
				LabelStyle.Render("💡 Market Insights")+"\n"+strings.Join(insights, "\n")))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *MandiModel) renderTable(width int) string {
	if len(m.rows) == 0 {
		return EmptyStateStyle.Render("No prices reported for this mandi today.")
	}

	widths := make([]int, len(m.columns))
	headers := make([]string, len(m.columns))
	for i, col := range m.columns {
		label := strings.ToUpper(col.label)
		if m.sortKey == col.key {
			if m.sortDesc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		style := TableHeaderStyle
		if i == m.activeColumn {
			style = ActiveHeaderStyle
		}
		widths[i] = col.width + 2
		headers[i] = style.Width(widths[i]).Render(label)
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Left, headers...)}
	for i, row := range m.rows {
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		trend := lipgloss.NewStyle().Foreground(ColorGreen)
		if !row.Rising() {
			trend = lipgloss.NewStyle().Foreground(ColorRed)
		}
		name := row.Name
		if row.Emoji != "" {
			name = row.Emoji + " " + row.Name
		}
		cells := []string{
			util.TruncateString(name, m.columns[0].width),
			util.FormatRupees(row.Price, row.Unit),
			trend.Render(util.FormatTrend(row.ChangePercent) + " " + util.FormatChange(row.ChangePercent)),
			row.Quality,
			supplyStyle(string(row.Supply)).Render(string(row.Supply)),
		}
		lines = append(lines, renderTableRow(cells, widths, style))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("%d crops  ·  row %d/%d  ·  col %s",
		len(m.rows), m.cursor+1, len(m.rows), strings.ToUpper(m.columns[m.activeColumn].label)))
	lines = append(lines, status)
	return strings.Join(lines, "\n")
}

// Helper function to render a table row
func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

// priceInsights summarises a price table: rising crops, the best selling
// opportunity and falling prices.
func priceInsights(rows []model.CropPrice) []string {
	if len(rows) == 0 {
		return nil
	}
	var rising, falling []string
	best := rows[0]
	for _, r := range rows {
		if r.ChangePercent > 0 {
			rising = append(rising, r.Name)
		}
		if r.ChangePercent < 0 {
			falling = append(falling, r.Name)
		}
		if r.ChangePercent > best.ChangePercent {
			best = r
		}
	}

	var out []string
	if len(rising) > 0 {
		out = append(out, SuccessStyle.Render("📈 Price Trends: ")+
			strings.Join(rising, ", ")+" prices are trending upward. Consider selling good quality stock.")
	}
	if best.ChangePercent > 0 {
		out = append(out, lipgloss.NewStyle().Foreground(ColorBlue).Padding(0, 1).Render("🎯 Best Selling Opportunity: ")+
			fmt.Sprintf("%s at %s (%s).", best.Name, util.FormatRupees(best.Price, best.Unit), util.FormatChange(best.ChangePercent)))
	}
	if len(falling) > 0 {
		out = append(out, WarningStyle.Render("⚠ Market Alert: ")+
			strings.Join(falling, ", ")+" prices are falling. Holding stock may pay off if storage allows.")
	}
	return out
}

// Commands

func pricesCmd(ctx context.Context, svc provider.Services, id, location string) tea.Cmd {
	return func() tea.Msg {
		table, err := provider.Call(ctx, svc.Policy, "market.prices", func(ctx context.Context) (model.PriceTable, error) {
			return svc.Market.Prices(ctx, location)
		})
		return model.PricesLoadedMsg{RequestID: id, Table: table, Err: err}
	}
}
