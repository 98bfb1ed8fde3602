package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mnowak/basilisk/internal/game"
)

type gamePhase int

const (
	phasePlaying gamePhase = iota
	phaseGameOver
	phaseScores
)

// gameEventMsg carries one controller event into the bubbletea loop.
type gameEventMsg game.Event

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("172"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	foodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	bombStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Padding(0, 1)
)

var headRunes = map[game.Direction]rune{
	game.DirUp:    '▲',
	game.DirDown:  '▼',
	game.DirLeft:  '◀',
	game.DirRight: '▶',
}

var shapeRunes = map[game.Shape]rune{
	game.ShapeTopDown:   '│',
	game.ShapeLeftRight: '─',
	game.ShapeTopLeft:   '┘',
	game.ShapeTopRight:  '└',
	game.ShapeDownLeft:  '┐',
	game.ShapeDownRight: '┌',
}

// GameModel renders a running game and owns the screen-side half of its
// lifecycle: steering, pausing, restarting and the game-over flow.
type GameModel struct {
	gc         *game.GameController
	scores     *game.HighScoreService
	playerName string

	width  int
	height int

	phase    gamePhase
	gameOver GameOverState
	saved    bool
}

func NewGameModel(gc *game.GameController, scores *game.HighScoreService, playerName string, screenWidth, screenHeight int) GameModel {
	return GameModel{
		gc:         gc,
		scores:     scores,
		playerName: playerName,
		width:      screenWidth,
		height:     screenHeight,
		phase:      phasePlaying,
		gameOver: GameOverState{
			Scores:       scores,
			PlayerName:   playerName,
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

func (m GameModel) Init() tea.Cmd {
	return m.listenForGameEvents()
}

// listenForGameEvents blocks on the controller's event stream. Every event
// triggers a redraw; the command is re-issued from Update.
func (m GameModel) listenForGameEvents() tea.Cmd {
	events := m.gc.Events()
	return func() tea.Msg {
		return gameEventMsg(<-events)
	}
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gameOver.ScreenWidth = msg.Width
		m.gameOver.ScreenHeight = msg.Height
		return m, nil

	case gameEventMsg:
		if game.Event(msg) == game.EventFinished {
			m.phase = phaseGameOver
			m.gameOver.FinalPoints = m.gc.Points()
			m.gameOver.FinalMoves = m.gc.Move()
			m.gameOver.SelectedButton = 0
			m.saveScore()
		}
		if game.Event(msg) == game.EventStopped {
			return m, nil
		}
		return m, m.listenForGameEvents()

	case tea.KeyMsg:
		switch m.phase {
		case phasePlaying:
			return m.updatePlaying(msg)
		case phaseGameOver:
			return m.updateGameOver(msg)
		case phaseScores:
			switch msg.String() {
			case "esc", "enter", "q":
				m.phase = phaseGameOver
			}
			return m, nil
		}
	}
	return m, nil
}

func (m GameModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "w":
		m.steer(game.DirUp)
	case "down", "s":
		m.steer(game.DirDown)
	case "left", "a":
		m.steer(game.DirLeft)
	case "right", "d":
		m.steer(game.DirRight)
	case "p", " ":
		if err := m.gc.TogglePause(); err != nil {
			log.Debug("pause toggle ignored", "error", err)
		}
	case "r":
		m.saved = false
		if err := m.gc.RestartGame(m.gc.IsAutoGame()); err != nil {
			log.Error("restart failed", "error", err)
		}
	case "q", "esc":
		return m, func() tea.Msg { return BackToIntroMsg{} }
	}
	return m, nil
}

func (m GameModel) steer(dir game.Direction) {
	// The demo snake steers itself.
	if !m.gc.IsAutoGame() {
		m.gc.SetDirection(dir)
	}
}

func (m GameModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.gameOver.SelectedButton > 0 {
			m.gameOver.SelectedButton--
		}
	case "right", "l", "tab":
		if m.gameOver.SelectedButton < len(gameOverButtons)-1 {
			m.gameOver.SelectedButton++
		}
	case "esc", "q":
		return m, func() tea.Msg { return BackToIntroMsg{} }
	case "enter":
		switch m.gameOver.SelectedButton {
		case 0: // Play again
			m.phase = phasePlaying
			m.saved = false
			if err := m.gc.RestartGame(false); err != nil {
				log.Error("restart failed", "error", err)
			}
		case 1: // High scores
			m.phase = phaseScores
		case 2: // Menu
			return m, func() tea.Msg { return BackToIntroMsg{} }
		}
	}
	return m, nil
}

func (m *GameModel) saveScore() {
	if m.saved || m.scores == nil || m.gc.IsAutoGame() {
		return
	}
	name := m.playerName
	if name == "" {
		name = "anonymous"
	}
	if err := m.scores.SaveScore(name, m.gameOver.FinalPoints, m.gameOver.FinalMoves); err != nil {
		log.Error("saving score failed", "error", err)
		return
	}
	m.saved = true
}

func (m GameModel) View() string {
	switch m.phase {
	case phaseGameOver:
		return m.gameOver.RenderGameOverScreen()
	case phaseScores:
		return renderLeaderboard(m.scores, m.width, m.height)
	}

	snap := m.gc.Snapshot()

	board := boardStyle.Render(renderBoard(snap))
	status := statusPanelStyle.Render(m.renderStatusPanel(snap))
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", status)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderBoard draws the whole grid, one character cell per board cell.
func renderBoard(snap game.Snapshot) string {
	type styledRune struct {
		r     rune
		style lipgloss.Style
	}

	overlay := make(map[game.Point]styledRune, len(snap.Items)+len(snap.Body))
	for _, it := range snap.Items {
		style := foodStyle
		if it.IsBomb {
			style = bombStyle
		}
		overlay[it.Point] = styledRune{it.Glyph, style}
	}
	for i, p := range snap.Body {
		overlay[p] = styledRune{bodyRune(snap.Body, i), bodyStyle}
	}

	var sb strings.Builder
	for y := 0; y < snap.Height; y++ {
		if y > 0 {
			sb.WriteString("\n")
		}
		for x := 0; x < snap.Width; x++ {
			p := game.Point{X: x, Y: y}
			if cell, ok := overlay[p]; ok {
				sb.WriteString(cell.style.Render(string(cell.r)))
				continue
			}
			if snap.Cells[x][y] == game.CellWall {
				sb.WriteString(wallStyle.Render("▒"))
			} else {
				sb.WriteString(" ")
			}
		}
	}
	return sb.String()
}

// bodyRune picks the glyph for body segment i: an arrow head, a corner or
// straight piece for the middle, a straight piece for the tail.
func bodyRune(body []game.Point, i int) rune {
	if len(body) == 1 {
		return headRunes[game.DirUp]
	}
	switch {
	case i == 0:
		return headRunes[game.DirectionBetween(body[1], body[0])]
	case i == len(body)-1:
		d := game.DirectionBetween(body[i], body[i-1])
		if d == game.DirUp || d == game.DirDown {
			return shapeRunes[game.ShapeTopDown]
		}
		return shapeRunes[game.ShapeLeftRight]
	default:
		return shapeRunes[game.ShapeBetween(body[i-1], body[i], body[i+1])]
	}
}

func (m GameModel) renderStatusPanel(snap game.Snapshot) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Game ---") + "\n")
	if snap.Auto {
		b.WriteString("Demo game\n")
	} else if m.playerName != "" {
		b.WriteString(fmt.Sprintf("Player: %s\n", m.playerName))
	}
	b.WriteString(fmt.Sprintf("Score: %d\n", snap.Points))
	b.WriteString(fmt.Sprintf("Move:  %d\n", snap.Move))
	b.WriteString(fmt.Sprintf("Speed: %.2f/s\n", snap.Speed))

	if snap.State == game.StatePaused {
		b.WriteString("\n" + pausedStyle.Render("PAUSED") + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	b.WriteString("WASD / Arrows: steer\n")
	b.WriteString("P / Space: pause\n")
	b.WriteString("R: restart\n")
	b.WriteString("Q / Esc: back to menu\n")

	return b.String()
}
