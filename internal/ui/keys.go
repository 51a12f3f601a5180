package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Home      key.Binding
	Voice     key.Binding
	Image     key.Binding
	Mandi     key.Binding
	Schemes   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "home"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Voice: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "voice"),
		),
		Image: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "crop image"),
		),
		Mandi: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "mandi"),
		),
		Schemes: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "schemes"),
		),
	}
}

// VoiceKeyMap defines keybindings on the voice query screen.
type VoiceKeyMap struct {
	Start key.Binding
	Stop  key.Binding
	Retry key.Binding
	Type  key.Binding
	Image key.Binding
	Mandi key.Binding
}

// DefaultVoiceKeyMap returns the default voice screen keybindings.
func DefaultVoiceKeyMap() VoiceKeyMap {
	return VoiceKeyMap{
		Start: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "listen")),
		Stop:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Type:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type question")),
		Image: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "crop image")),
		Mandi: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mandi prices")),
	}
}

// ImageKeyMap defines keybindings on the crop analysis screen.
type ImageKeyMap struct {
	Open    key.Binding
	Sample  key.Binding
	Analyze key.Binding
	Clear   key.Binding
}

// DefaultImageKeyMap returns the default image screen keybindings.
func DefaultImageKeyMap() ImageKeyMap {
	return ImageKeyMap{
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		Sample:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sample photo")),
		Analyze: key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "analyze")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove image")),
	}
}

// MandiKeyMap defines keybindings on the mandi price screen.
type MandiKeyMap struct {
	Refresh    key.Binding
	PrevCity   key.Binding
	NextCity   key.Binding
	FindCity   key.Binding
	NextColumn key.Binding
	PrevColumn key.Binding
	SortAsc    key.Binding
	SortDesc   key.Binding
	Ask        key.Binding
	Schemes    key.Binding
}

// DefaultMandiKeyMap returns the default mandi screen keybindings.
func DefaultMandiKeyMap() MandiKeyMap {
	return MandiKeyMap{
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		PrevCity:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev mandi")),
		NextCity:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next mandi")),
		FindCity:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "choose mandi")),
		NextColumn: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next col")),
		PrevColumn: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev col")),
		SortAsc:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort asc")),
		SortDesc:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort desc")),
		Ask:        key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "ask about prices")),
		Schemes:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "market support")),
	}
}

// SchemesKeyMap defines keybindings on the schemes screen.
type SchemesKeyMap struct {
	PrevCategory key.Binding
	NextCategory key.Binding
	All          key.Binding
	Financial    key.Binding
	Insurance    key.Binding
	Equipment    key.Binding
	Training     key.Binding
}

// DefaultSchemesKeyMap returns the default schemes screen keybindings.
func DefaultSchemesKeyMap() SchemesKeyMap {
	return SchemesKeyMap{
		PrevCategory: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev category")),
		NextCategory: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next category")),
		All:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Financial:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "financial")),
		Insurance:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insurance")),
		Equipment:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "equipment")),
		Training:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "training")),
	}
}

// FormKeyMap defines keybindings while a text prompt is focused.
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultFormKeyMap returns the default prompt keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
