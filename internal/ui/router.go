package ui

import (
	"fmt"
	"time"

	"kisan/internal/model"
	"kisan/internal/provider"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// screenView is a mounted screen. The root model owns exactly one at a time
// and disposes it before mounting the next.
type screenView interface {
	Screen() model.Screen
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	// Capturing reports whether a text input has focus, in which case the
	// root model does not interpret global keys.
	Capturing() bool
	// Dispose cancels any in-flight provider calls owned by the view.
	Dispose()
}

// Deps are handed to every view when it is mounted.
type Deps struct {
	Services provider.Services
	Log      *zap.Logger
	Location string
	Terminal TerminalCapabilities
	Now      func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if !model.IsLocation(d.Location) {
		d.Location = model.DefaultLocation
	}
	return d
}

// Registry maps every screen to the constructor of its view.
type Registry map[model.Screen]func(Deps) screenView

// DefaultRegistry returns the registry covering every screen.
func DefaultRegistry() Registry {
	return Registry{
		model.ScreenHome:    func(d Deps) screenView { return NewHomeModel(d) },
		model.ScreenVoice:   func(d Deps) screenView { return NewVoiceModel(d) },
		model.ScreenImage:   func(d Deps) screenView { return NewImageModel(d) },
		model.ScreenMandi:   func(d Deps) screenView { return NewMandiModel(d) },
		model.ScreenSchemes: func(d Deps) screenView { return NewSchemesModel(d) },
	}
}

// Resolve mounts a fresh view for s.
func (r Registry) Resolve(s model.Screen, d Deps) (screenView, error) {
	ctor, ok := r[s]
	if !ok {
		return nil, fmt.Errorf("no view registered for screen %q", s)
	}
	return ctor(d), nil
}

// Navigator holds the current screen. It is the only thing that changes it.
type Navigator struct {
	current model.Screen
}

// NewNavigator starts on the home screen.
func NewNavigator() *Navigator {
	return &Navigator{current: model.ScreenHome}
}

// Current returns the screen being shown.
func (n *Navigator) Current() model.Screen {
	return n.current
}

// Navigate switches to target and reports whether the screen changed.
func (n *Navigator) Navigate(target model.Screen) bool {
	if n.current == target {
		return false
	}
	n.current = target
	return true
}

// navigateCmd publishes a navigation request for the root model.
func navigateCmd(s model.Screen) tea.Cmd {
	return func() tea.Msg {
		return model.NavigateMsg{Screen: s}
	}
}

func infoCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return model.InfoMsg{Text: text}
	}
}
