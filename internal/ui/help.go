package ui

import (
	"strings"

	"kisan/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, capturing bool, width int) string {
	if capturing {
		return renderPromptHelp(width)
	}

	switch screen {
	case model.ScreenHome:
		return renderHomeHelp(width)
	case model.ScreenVoice:
		return renderVoiceHelp(width)
	case model.ScreenImage:
		return renderImageHelp(width)
	case model.ScreenMandi:
		return renderMandiHelp(width)
	case model.ScreenSchemes:
		return renderSchemesHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderHomeHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "open"),
		helpKey("1-5", "jump"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderVoiceHelp(width int) string {
	keys := []string{
		helpKey("space", "listen"),
		helpKey("s", "stop"),
		helpKey("r", "retry"),
		helpKey("t", "type"),
		helpKey("i", "crop image"),
		helpKey("m", "mandi"),
		helpKey("b/esc", "home"),
	}
	return renderHelpLine(keys, width)
}

func renderImageHelp(width int) string {
	keys := []string{
		helpKey("o", "open file"),
		helpKey("s", "sample"),
		helpKey("a/enter", "analyze"),
		helpKey("x", "remove"),
		helpKey("b/esc", "home"),
	}
	return renderHelpLine(keys, width)
}

func renderMandiHelp(width int) string {
	keys := []string{
		helpKey("[/]", "mandi"),
		helpKey("l", "find mandi"),
		helpKey("r", "refresh"),
		helpKey("j/k", "navigate"),
		helpKey("tab", "next col"),
		helpKey("s/S", "sort"),
		helpKey("v", "ask"),
		helpKey("g", "schemes"),
		helpKey("b/esc", "home"),
	}
	return renderHelpLine(keys, width)
}

func renderSchemesHelp(width int) string {
	keys := []string{
		helpKey("h/l", "category"),
		helpKey("a/f/i/e/t", "pick category"),
		helpKey("j/k", "navigate"),
		helpKey("b/esc", "home"),
	}
	return renderHelpLine(keys, width)
}

func renderPromptHelp(width int) string {
	keys := []string{
		helpKey("enter", "submit"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("b/esc", "home"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"1 - 5", "Home, voice, crop image, mandi, schemes"},
			{"b / esc", "Back to home"},
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"enter", "Open / select"},
			{"q", "Quit (from home)"},
			{"ctrl+c", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Voice Query"),
		helpSection([]helpItem{
			{"space / enter", "Start listening"},
			{"s", "Stop listening"},
			{"r", "Retry (clear and start over)"},
			{"t", "Type your question instead"},
			{"i / m", "Go to crop image / mandi prices"},
		}),
		titleSection("Crop Analysis"),
		helpSection([]helpItem{
			{"o", "Open an image file"},
			{"s", "Use the sample leaf photo"},
			{"a / enter", "Analyze the selected image"},
			{"x", "Remove the image"},
		}),
		titleSection("Mandi Prices"),
		helpSection([]helpItem{
			{"[ / ]", "Previous / next mandi"},
			{"l", "Choose a mandi by name"},
			{"r", "Refresh prices"},
			{"tab / shift+tab", "Cycle active column"},
			{"s / S", "Sort active column asc/desc"},
			{"v / g", "Ask about prices / schemes"},
		}),
		titleSection("Government Schemes"),
		helpSection([]helpItem{
			{"h / l / ← / →", "Previous / next category"},
			{"a f i e t", "All, financial, insurance, equipment, training"},
			{"j / k", "Select a scheme"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
