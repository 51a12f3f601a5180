package ui

import (
	"context"
	"errors"
	"strings"

	"kisan/internal/model"
	"kisan/internal/provider"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VoiceModel is the voice query screen.
type VoiceModel struct {
	deps     Deps
	keys     VoiceKeyMap
	formKeys FormKeyMap

	state     model.VoiceQueryState
	requestID string
	cancel    context.CancelFunc
	errMsg    string

	typing  bool
	input   textinput.Model
	spinner spinner.Model
}

// NewVoiceModel creates a new voice query model.
func NewVoiceModel(deps Deps) *VoiceModel {
	deps = deps.withDefaults()
	input := textinput.New()
	input.Placeholder = "Type your farming question..."
	input.CharLimit = 300

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &VoiceModel{
		deps:     deps,
		keys:     DefaultVoiceKeyMap(),
		formKeys: DefaultFormKeyMap(),
		input:    input,
		spinner:  sp,
	}
}

func (m *VoiceModel) Screen() model.Screen { return model.ScreenVoice }
func (m *VoiceModel) Init() tea.Cmd        { return nil }
func (m *VoiceModel) Capturing() bool      { return m.typing }

// Dispose cancels the pending request, if any.
func (m *VoiceModel) Dispose() {
	m.abandon()
}

// State returns a copy of the current query state.
func (m *VoiceModel) State() model.VoiceQueryState {
	return m.state
}

// Phase returns the derived phase of the query.
func (m *VoiceModel) Phase() model.VoicePhase {
	return m.state.Phase()
}

// Err returns the inline error message, if any.
func (m *VoiceModel) Err() string {
	return m.errMsg
}

// begin starts a new request, cancelling whatever was pending.
func (m *VoiceModel) begin() (context.Context, string) {
	m.abandon()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.requestID = uuid.NewString()
	return ctx, m.requestID
}

// abandon cancels the pending request and forgets its ID so a late result
// is dropped.
func (m *VoiceModel) abandon() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.requestID = ""
}

// Start begins listening. Only valid from Idle.
func (m *VoiceModel) Start() tea.Cmd {
	if m.state.Phase() != model.VoiceIdle {
		return nil
	}
	ctx, id := m.begin()
	m.state = model.VoiceQueryState{Listening: true}
	m.errMsg = ""
	m.deps.Log.Debug("voice listening", zap.String("request_id", id))
	return tea.Batch(transcribeCmd(ctx, m.deps.Services, id), m.spinner.Tick)
}

// Stop stops listening without producing a transcript. Only valid while
// listening.
func (m *VoiceModel) Stop() {
	if m.state.Phase() != model.VoiceListening {
		return
	}
	m.deps.Log.Debug("voice stopped", zap.String("request_id", m.requestID))
	m.abandon()
	m.state = model.VoiceQueryState{}
}

// Retry cancels any in-flight work and clears the query.
func (m *VoiceModel) Retry() {
	m.abandon()
	m.state = model.VoiceQueryState{}
	m.errMsg = ""
	m.typing = false
	m.input.Reset()
	m.input.Blur()
}

// BeginTyping focuses the question prompt. Only valid from Idle.
func (m *VoiceModel) BeginTyping() tea.Cmd {
	if m.state.Phase() != model.VoiceIdle {
		return nil
	}
	m.typing = true
	m.errMsg = ""
	return m.input.Focus()
}

// SubmitTyped sends a typed question straight to the advisor.
func (m *VoiceModel) SubmitTyped(question string) tea.Cmd {
	question = strings.TrimSpace(question)
	if question == "" {
		m.errMsg = "Type a question first."
		return nil
	}
	m.typing = false
	m.input.Reset()
	m.input.Blur()

	ctx, id := m.begin()
	m.state = model.VoiceQueryState{Processing: true, Transcript: question}
	m.errMsg = ""
	return tea.Batch(answerCmd(ctx, m.deps.Services, id, question), m.spinner.Tick)
}

func (m *VoiceModel) busy() bool {
	return m.state.Listening || m.state.Processing
}

// fail ends the flow in Idle with an inline message.
func (m *VoiceModel) fail(op string, err error) {
	m.deps.Log.Warn("voice query failed", zap.String("op", op), zap.Error(err))
	m.abandon()
	m.state = model.VoiceQueryState{}
	m.errMsg = provider.UserMessage(err)
}

// Update handles messages.
func (m *VoiceModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case model.TranscribedMsg:
		if msg.RequestID == "" || msg.RequestID != m.requestID || !m.state.Listening {
			return nil
		}
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return nil
			}
			m.fail("transcribe", msg.Err)
			return nil
		}
		m.state.Listening = false
		m.state.Processing = true
		m.state.Transcript = msg.Transcript
		ctx, id := m.begin()
		return answerCmd(ctx, m.deps.Services, id, msg.Transcript)

	case model.AnsweredMsg:
		if msg.RequestID == "" || msg.RequestID != m.requestID || !m.state.Processing {
			return nil
		}
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return nil
			}
			m.fail("answer", msg.Err)
			return nil
		}
		m.cancel = nil
		m.requestID = ""
		m.state.Processing = false
		m.state.Response = msg.Response
		return nil

	case spinner.TickMsg:
		if !m.busy() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Start):
			return m.Start()
		case key.Matches(msg, m.keys.Stop):
			m.Stop()
		case key.Matches(msg, m.keys.Retry):
			m.Retry()
		case key.Matches(msg, m.keys.Type):
			return m.BeginTyping()
		case key.Matches(msg, m.keys.Image):
			return navigateCmd(model.ScreenImage)
		case key.Matches(msg, m.keys.Mandi):
			return navigateCmd(model.ScreenMandi)
		}
	}
	return nil
}

func (m *VoiceModel) updateTyping(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.typing = false
		m.input.Reset()
		m.input.Blur()
		return nil
	case key.Matches(msg, m.formKeys.Submit):
		return m.SubmitTyped(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the voice query screen.
func (m *VoiceModel) View(width, height int) string {
	var status string
	switch m.state.Phase() {
	case model.VoiceListening:
		status = lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Foreground(ColorRed).Bold(true).Render(m.spinner.View()+" 🎤 Listening..."),
			HelpDescStyle.Render("Speak your question clearly. Press s to stop."),
		)
	case model.VoiceProcessing:
		status = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(m.spinner.View() + " Processing your question...")
	case model.VoiceAnswered:
		status = SuccessStyle.Render("✓ Answer ready. Press r to ask again.")
	default:
		status = lipgloss.JoinVertical(
			lipgloss.Left,
			LabelStyle.Render("🎤 Tap to Speak"),
			HelpDescStyle.Render("Press space to start listening, or t to type your question."),
		)
	}

	sections := []string{
		LabelStyle.Render("Ask Your Farming Question"),
		HelpDescStyle.Render("Speak naturally in your preferred language"),
		"",
		status,
	}

	if m.typing {
		sections = append(sections, "", ActivePanelStyle.Render(m.input.View()))
	}

	if m.errMsg != "" {
		sections = append(sections, "", ErrorStyle.Render(m.errMsg))
	}

	panelWidth := max(20, width-8)
	if m.state.Transcript != "" {
		sections = append(sections, "",
			PanelStyle.Width(panelWidth).Render(lipgloss.JoinVertical(
				lipgloss.Left,
				LabelStyle.Render("You asked:"),
				QuoteStyle.Render(`"`+m.state.Transcript+`"`),
			)))
	}
	if m.state.Response != "" {
		sections = append(sections, "",
			ActivePanelStyle.Width(panelWidth).Render(lipgloss.JoinVertical(
				lipgloss.Left,
				LabelStyle.Render("🤖 Kisan Assistant"),
				NormalRowStyle.Render(m.state.Response),
			)))
	}

	sections = append(sections, "",
		HelpDescStyle.Render("Quick actions: i crop image · m mandi prices"))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Commands

func transcribeCmd(ctx context.Context, svc provider.Services, id string) tea.Cmd {
	return func() tea.Msg {
		text, err := provider.Call(ctx, svc.Policy, "speech.transcribe", func(ctx context.Context) (string, error) {
			return svc.Speech.Transcribe(ctx, provider.TranscribeRequest{ID: id})
		})
		return model.TranscribedMsg{RequestID: id, Transcript: text, Err: err}
	}
}

func answerCmd(ctx context.Context, svc provider.Services, id, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := provider.Call(ctx, svc.Policy, "advisor.answer", func(ctx context.Context) (string, error) {
			return svc.Advisor.Answer(ctx, provider.AnswerRequest{ID: id, Transcript: question})
		})
		return model.AnsweredMsg{RequestID: id, Response: answer, Err: err}
	}
}
