package model

// VoicePhase is the derived phase of a voice query.
type VoicePhase int

const (
	VoiceIdle VoicePhase = iota
	VoiceListening
	VoiceProcessing
	VoiceAnswered
)

func (p VoicePhase) String() string {
	switch p {
	case VoiceListening:
		return "listening"
	case VoiceProcessing:
		return "processing"
	case VoiceAnswered:
		return "answered"
	default:
		return "idle"
	}
}

// VoiceQueryState holds the fields of the voice query screen.
// At most one of Listening and Processing is true.
type VoiceQueryState struct {
	Listening  bool
	Processing bool
	Transcript string
	Response   string
}

// Phase derives the current phase from the fields.
func (s VoiceQueryState) Phase() VoicePhase {
	switch {
	case s.Listening:
		return VoiceListening
	case s.Processing:
		return VoiceProcessing
	case s.Response != "":
		return VoiceAnswered
	default:
		return VoiceIdle
	}
}

// ImagePhase is the derived phase of an image analysis.
type ImagePhase int

const (
	ImageEmpty ImagePhase = iota
	ImageSelected
	ImageAnalyzing
	ImageResulted
)

func (p ImagePhase) String() string {
	switch p {
	case ImageSelected:
		return "selected"
	case ImageAnalyzing:
		return "analyzing"
	case ImageResulted:
		return "resulted"
	default:
		return "empty"
	}
}

// ImageAnalysisState holds the fields of the image upload screen.
// Result is only set while Image is present and Analyzing is false.
type ImageAnalysisState struct {
	Image     []byte
	Analyzing bool
	Result    *AnalysisResult
}

// Phase derives the current phase from the fields.
func (s ImageAnalysisState) Phase() ImagePhase {
	switch {
	case len(s.Image) == 0:
		return ImageEmpty
	case s.Analyzing:
		return ImageAnalyzing
	case s.Result != nil:
		return ImageResulted
	default:
		return ImageSelected
	}
}

// MandiState holds the mutable fields of the mandi price screen.
type MandiState struct {
	Location   string
	Refreshing bool
}
