package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// NavigateMsg asks the root model to switch screens.
type NavigateMsg struct {
	Screen Screen
	// Typing opens the voice screen with the question prompt focused.
	Typing bool
}

// InfoMsg shows a transient line in the status banner.
type InfoMsg struct {
	Text string
}

// TranscribedMsg is sent when speech-to-text finishes.
type TranscribedMsg struct {
	RequestID  string
	Transcript string
	Err        error
}

// AnsweredMsg is sent when the advisory engine replies.
type AnsweredMsg struct {
	RequestID string
	Response  string
	Err       error
}

// ImageLoadedMsg is sent when image bytes have been read from disk.
type ImageLoadedMsg struct {
	RequestID string
	Name      string
	Bytes     []byte
	Err       error
}

// AnalyzedMsg is sent when image classification finishes.
type AnalyzedMsg struct {
	RequestID string
	Result    AnalysisResult
	Err       error
}

// PricesLoadedMsg is sent when a mandi price fetch finishes.
type PricesLoadedMsg struct {
	RequestID string
	Table     PriceTable
	Err       error
}

// SchemesLoadedMsg is sent when the scheme catalog is loaded.
type SchemesLoadedMsg struct {
	Schemes []Scheme
	Err     error
}

// Screen represents different app screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenVoice
	ScreenImage
	ScreenMandi
	ScreenSchemes
)

// Screens lists every screen in menu order.
var Screens = []Screen{ScreenHome, ScreenVoice, ScreenImage, ScreenMandi, ScreenSchemes}

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenVoice:
		return "voice"
	case ScreenImage:
		return "image"
	case ScreenMandi:
		return "mandi"
	case ScreenSchemes:
		return "schemes"
	default:
		return "unknown"
	}
}

// Title is the header text for a screen.
func (s Screen) Title() string {
	switch s {
	case ScreenVoice:
		return "Voice Query"
	case ScreenImage:
		return "Crop Analysis"
	case ScreenMandi:
		return "Mandi Prices"
	case ScreenSchemes:
		return "Government Schemes"
	default:
		return "Project Kisan"
	}
}
