package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kisan/internal/model"
	"kisan/internal/provider"
	"kisan/internal/util"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageBytes caps the size of an image read from disk.
const MaxImageBytes = 10 << 20

// SampleImageName is shown for the generated sample leaf.
const SampleImageName = "sample-leaf.png"

// ImageModel is the crop image analysis screen.
type ImageModel struct {
	deps     Deps
	keys     ImageKeyMap
	formKeys FormKeyMap

	state     model.ImageAnalysisState
	name      string
	requestID string
	loadID    string
	cancel    context.CancelFunc
	errMsg    string

	prompting bool
	input     textinput.Model
	spinner   spinner.Model

	preview     string
	previewSize [2]int
}

// NewImageModel creates a new image analysis model.
func NewImageModel(deps Deps) *ImageModel {
	deps = deps.withDefaults()
	input := textinput.New()
	input.Placeholder = "Path to a crop photo (png, jpg, gif)"
	input.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ImageModel{
		deps:     deps,
		keys:     DefaultImageKeyMap(),
		formKeys: DefaultFormKeyMap(),
		input:    input,
		spinner:  sp,
	}
}

func (m *ImageModel) Screen() model.Screen { return model.ScreenImage }
func (m *ImageModel) Init() tea.Cmd        { return nil }
func (m *ImageModel) Capturing() bool      { return m.prompting }

// Dispose cancels an in-flight analysis.
func (m *ImageModel) Dispose() {
	m.abandon()
	m.loadID = ""
}

// State returns a copy of the current analysis state.
func (m *ImageModel) State() model.ImageAnalysisState {
	return m.state
}

// Phase returns the derived phase of the analysis.
func (m *ImageModel) Phase() model.ImagePhase {
	return m.state.Phase()
}

// Err returns the inline error message, if any.
func (m *ImageModel) Err() string {
	return m.errMsg
}

func (m *ImageModel) abandon() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.requestID = ""
}

// SelectImage stores a new image and clears any previous result. It is
// ignored while an analysis is running.
func (m *ImageModel) SelectImage(name string, data []byte) bool {
	if m.state.Analyzing {
		return false
	}
	if len(data) == 0 {
		m.errMsg = "The selected file is empty."
		return false
	}
	m.state = model.ImageAnalysisState{Image: data}
	m.name = name
	m.errMsg = ""
	m.preview = ""
	m.previewSize = [2]int{}
	m.deps.Log.Debug("image selected", zap.String("name", name), zap.Int("bytes", len(data)))
	return true
}

// ClearImage returns to Empty from any state.
func (m *ImageModel) ClearImage() {
	m.abandon()
	m.loadID = ""
	m.state = model.ImageAnalysisState{}
	m.name = ""
	m.errMsg = ""
	m.preview = ""
}

// Analyze sends the selected image to the classifier. It does nothing unless
// an image is selected and not yet analyzed.
func (m *ImageModel) Analyze() tea.Cmd {
	if m.state.Phase() != model.ImageSelected {
		return nil
	}
	m.abandon()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.requestID = uuid.NewString()
	m.state.Analyzing = true
	m.errMsg = ""
	return tea.Batch(classifyCmd(ctx, m.deps.Services, m.requestID, m.state.Image), m.spinner.Tick)
}

// OpenPrompt focuses the file path input.
func (m *ImageModel) OpenPrompt() tea.Cmd {
	if m.state.Analyzing {
		return nil
	}
	m.prompting = true
	return m.input.Focus()
}

func (m *ImageModel) closePrompt() {
	m.prompting = false
	m.input.Reset()
	m.input.Blur()
}

// Update handles messages.
func (m *ImageModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case model.ImageLoadedMsg:
		if msg.RequestID == "" || msg.RequestID != m.loadID {
			return nil
		}
		m.loadID = ""
		if msg.Err != nil {
			m.deps.Log.Warn("load image", zap.String("name", msg.Name), zap.Error(msg.Err))
			m.errMsg = provider.UserMessage(msg.Err)
			return nil
		}
		if m.state.Analyzing {
			m.errMsg = fmt.Sprintf("%s was not loaded: wait for the current analysis to finish.", msg.Name)
			return nil
		}
		m.SelectImage(msg.Name, msg.Bytes)
		return nil

	case model.AnalyzedMsg:
		if msg.RequestID == "" || msg.RequestID != m.requestID || !m.state.Analyzing {
			return nil
		}
		m.cancel = nil
		m.requestID = ""
		m.state.Analyzing = false
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return nil
			}
			m.deps.Log.Warn("classify image", zap.Error(msg.Err))
			m.errMsg = provider.UserMessage(msg.Err)
			return nil
		}
		result := msg.Result
		m.state.Result = &result
		return nil

	case spinner.TickMsg:
		if !m.state.Analyzing {
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
		case key.Matches(msg, m.keys.Open):
			return m.OpenPrompt()
		case key.Matches(msg, m.keys.Sample):
			m.SelectImage(SampleImageName, SampleLeafPNG())
		case key.Matches(msg, m.keys.Analyze):
			return m.Analyze()
		case key.Matches(msg, m.keys.Clear):
			m.ClearImage()
		}
	}
	return nil
}

func (m *ImageModel) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.closePrompt()
		return nil
	case key.Matches(msg, m.formKeys.Submit):
		path := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if path == "" {
			return nil
		}
		m.loadID = uuid.NewString()
		return loadImageCmd(m.loadID, path)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the crop analysis screen.
func (m *ImageModel) View(width, height int) string {
	sections := []string{
		LabelStyle.Render("Crop Disease Detection"),
		HelpDescStyle.Render("Upload a photo of your crop to detect diseases and get treatment advice"),
		"",
	}

	if m.prompting {
		sections = append(sections, ActivePanelStyle.Render(m.input.View()), "")
	}

	switch m.state.Phase() {
	case model.ImageEmpty:
		sections = append(sections, EmptyStateStyle.Render(
			"📷 No image selected.\nPress  o  to open a photo or  s  to use the sample leaf."))
	default:
		sections = append(sections, m.renderSelected(width, height))
	}

	if m.loadID != "" {
		sections = append(sections, HelpDescStyle.Render("Loading image..."))
	}
	if m.errMsg != "" {
		sections = append(sections, ErrorStyle.Render(m.errMsg))
	}

	if res := m.state.Result; res != nil {
		sections = append(sections, "", renderAnalysis(*res, max(20, width-8)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *ImageModel) renderSelected(width, height int) string {
	pw := min(48, max(10, width/2))
	ph := min(16, max(4, height/3))
	if m.preview == "" || m.previewSize != [2]int{pw, ph} {
		m.preview = RenderPreview(m.state.Image, m.deps.Terminal, pw, ph)
		m.previewSize = [2]int{pw, ph}
	}
	preview := m.preview
	if preview == "" {
		preview = EmptyStateStyle.Render("preview unavailable")
	}

	info := []string{
		LabelStyle.Render(m.name),
		HelpDescStyle.Render(util.FormatBytes(len(m.state.Image))),
		"",
	}
	switch m.state.Phase() {
	case model.ImageAnalyzing:
		info = append(info, lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(m.spinner.View()+" Analyzing image..."))
	case model.ImageSelected:
		info = append(info, SuccessStyle.Render("🔍 Press a to analyze"))
	case model.ImageResulted:
		info = append(info, HelpDescStyle.Render("Press x to remove, or o/s to pick another image"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(preview),
		lipgloss.NewStyle().PaddingLeft(2).Render(lipgloss.JoinVertical(lipgloss.Left, info...)),
	)
}

func renderAnalysis(r model.AnalysisResult, width int) string {
	heading := ErrorStyle.Bold(true).Render("⚠ Disease Detected")
	if r.Healthy() {
		heading = SuccessStyle.Bold(true).Render("✓ Healthy Crop")
	}

	lines := []string{
		heading,
		"",
		LabelStyle.Render(r.Disease) + "  " +
			HelpDescStyle.Render("Confidence "+util.FormatConfidence(r.Confidence)) +
			severityStyle(string(r.Severity)).Render(string(r.Severity)),
		NormalRowStyle.Render(r.Description),
	}

	if r.NeedsTreatment() {
		lines = append(lines, "",
			LabelStyle.Render("💊 Treatment Recommendation"),
			fmt.Sprintf("%s %s", HelpDescStyle.Render("Treatment:"), r.Treatment),
			fmt.Sprintf("%s %s", HelpDescStyle.Render("Best time to spray:"), r.SprayTime),
		)
	}

	lines = append(lines, "",
		LabelStyle.Render("🛡 Prevention Tips"),
		NormalRowStyle.Render(r.Prevention),
	)

	return ActivePanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Commands

func classifyCmd(ctx context.Context, svc provider.Services, id string, image []byte) tea.Cmd {
	return func() tea.Msg {
		res, err := provider.Call(ctx, svc.Policy, "vision.classify", func(ctx context.Context) (model.AnalysisResult, error) {
			return svc.Vision.Classify(ctx, provider.ClassifyRequest{ID: id, Image: image})
		})
		return model.AnalyzedMsg{RequestID: id, Result: res, Err: err}
	}
}

func loadImageCmd(id, path string) tea.Cmd {
	return func() tea.Msg {
		name := filepath.Base(path)
		data, err := readImageFile(path)
		return model.ImageLoadedMsg{RequestID: id, Name: name, Bytes: data, Err: err}
	}
}

// readImageFile reads a photo from disk, rejecting missing, oversized and
// undecodable files.
func readImageFile(path string) ([]byte, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, provider.Errorf("image.load", provider.ErrInvalidInput, "stat %s: %v", path, err)
	}
	if info.IsDir() {
		return nil, provider.Errorf("image.load", provider.ErrInvalidInput, "%s is a directory", path)
	}
	if info.Size() > MaxImageBytes {
		return nil, provider.Errorf("image.load", provider.ErrInvalidInput, "%s is larger than %s", path, util.FormatBytes(MaxImageBytes))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, provider.Errorf("image.load", provider.ErrInvalidInput, "read %s: %v", path, err)
	}
	if _, _, err := DecodeImage(data); err != nil {
		return nil, provider.Errorf("image.load", provider.ErrInvalidInput, "%s is not a png, jpeg or gif image", path)
	}
	return data, nil
}
