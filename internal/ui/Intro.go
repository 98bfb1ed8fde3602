package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected IntroChoice
	width    int
	height   int
}

var introButtons = []struct {
	label  string
	choice IntroChoice
}{
	{"Play", ChoicePlay},
	{"Demo", ChoiceDemo},
	{"High Scores", ChoiceScores},
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: ChoicePlay, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.selected = (m.selected + IntroChoice(len(introButtons)) - 1) % IntroChoice(len(introButtons))
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % IntroChoice(len(introButtons))
		case "enter":
			return m, func() tea.Msg { return IntroSubmitMsg(m.selected) }
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

var basiliskAscii = `
▄▄▄▄·  ▄▄▄· .▄▄ · ▪  ▄▄▌  ▪  .▄▄ · ▄ •▄
▐█ ▀█▪▐█ ▀█ ▐█ ▀. ██ ██•  ██ ▐█ ▀. █▌▄▌▪
▐█▀▀█▄▄█▀▀█ ▄▀▀▀█▄▐█·██▪  ▐█·▄▀▀▀█▄▐▀▀▄·
██▄▪▐█▐█ ▪▐▌▐█▄▪▐█▐█▌▐█▌▐▌▐█▌▐█▄▪▐█▐█.█▌
·▀▀▀▀  ▀  ▀  ▀▀▀▀ ▀▀▀.▀▀▀ ▀▀▀ ▀▀▀▀ ·▀  ▀
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Margin(1, 0)

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("42")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(basiliskAscii))
	sb.WriteString("\n")
	sb.WriteString(taglineStyle.Render("eat, grow, avoid the bombs"))

	rendered := make([]string, len(introButtons))
	for i, b := range introButtons {
		if b.choice == m.selected {
			rendered[i] = introSelectedButtonStyle.Render(b.label)
		} else {
			rendered[i] = introButtonStyle.Render(b.label)
		}
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, rendered...)

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
