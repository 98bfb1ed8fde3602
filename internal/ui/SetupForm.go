package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mnowak/basilisk/internal/game"
)

const (
	defaultBoardWidth  = 30
	defaultBoardHeight = 20
)

// boardSizes the player can cycle through on the setup form.
var boardSizes = []struct{ w, h int }{
	{20, 12},
	{30, 20},
	{40, 24},
	{60, 30},
}

var wallLayouts = []string{"Open torus", "Bordered"}

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// Form fields in focus order.
const (
	fieldName = iota
	fieldPreset
	fieldSize
	fieldWalls
	fieldSubmit
	fieldCount
)

// SetupModel is the pre-game form: player name, difficulty preset, board
// size and wall layout.
type SetupModel struct {
	nameInput  textinput.Model
	preset     int
	sizeIndex  int
	bordered   bool
	focusIndex int
	width      int
	height     int
}

func NewSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput: ti,
		preset:    game.DefaultPreset,
		sizeIndex: 1,
		width:     w,
		height:    h,
	}
}

// Init starts the cursor blinking.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "esc" {
			return m, func() tea.Msg { return BackToIntroMsg{} }
		}

		// Focus navigation.
		if s == "enter" || s == "tab" || s == "shift+tab" || (s == "down" && m.focusIndex != fieldName) || (s == "up" && m.focusIndex != fieldName) {
			if s == "enter" && m.focusIndex == fieldSubmit {
				size := boardSizes[m.sizeIndex]
				return m, func() tea.Msg {
					return SetupSubmitMsg{
						Name:     strings.TrimSpace(m.nameInput.Value()),
						Preset:   m.preset,
						Width:    size.w,
						Height:   size.h,
						Bordered: m.bordered,
					}
				}
			}
			if s == "shift+tab" || s == "up" {
				m.focusIndex = (m.focusIndex + fieldCount - 1) % fieldCount
			} else {
				m.focusIndex = (m.focusIndex + 1) % fieldCount
			}
			if m.focusIndex == fieldName {
				m.nameInput.Focus()
			} else {
				m.nameInput.Blur()
			}
			return m, nil
		}

		// Left/right cycles the focused selector.
		if s == "left" || s == "right" {
			delta := 1
			if s == "left" {
				delta = -1
			}
			switch m.focusIndex {
			case fieldPreset:
				n := len(game.PresetNames)
				m.preset = (m.preset + delta + n) % n
				return m, nil
			case fieldSize:
				n := len(boardSizes)
				m.sizeIndex = (m.sizeIndex + delta + n) % n
				return m, nil
			case fieldWalls:
				m.bordered = !m.bordered
				return m, nil
			}
		}

		// Anything else goes to the name input when it has focus.
		if m.focusIndex == fieldName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) selector(field int, label, value string) string {
	line := fmt.Sprintf("%s  %s", label, choiceStyle.Render("◀ "+value+" ▶"))
	if m.focusIndex == field {
		return focusedStyle.Render(line)
	}
	return blurredStyle.Render(line)
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	size := boardSizes[m.sizeIndex]
	b.WriteString(center(m.selector(fieldPreset, "Difficulty", game.PresetNames[m.preset])))
	b.WriteString("\n")
	b.WriteString(center(m.selector(fieldSize, "Board", fmt.Sprintf("%d x %d", size.w, size.h))))
	b.WriteString("\n")
	layout := wallLayouts[0]
	if m.bordered {
		layout = wallLayouts[1]
	}
	b.WriteString(center(m.selector(fieldWalls, "Walls", layout)))
	b.WriteString("\n\n")

	submitText := "Start"
	var submitButton string
	if m.focusIndex == fieldSubmit {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(tab to move, arrows to change, enter to start, esc back)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
