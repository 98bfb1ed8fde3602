package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mnowak/basilisk/internal/game"
)

// GameOverState holds the data and local state for the game over screen.
type GameOverState struct {
	Scores         *game.HighScoreService
	PlayerName     string
	FinalPoints    int
	FinalMoves     int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

var gameOverButtons = []string{"Play Again", "High Scores", "Menu"}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("42")).
				Foreground(lipgloss.Color("0"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the death message, the final score and the
// button row.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render("G A M E   O V E R")

	stats := fmt.Sprintf("\nScore: %d\nMoves: %d\n", g.FinalPoints, g.FinalMoves)

	rendered := make([]string, len(gameOverButtons))
	for i, label := range gameOverButtons {
		if i == g.SelectedButton {
			rendered[i] = selectedButtonStyle.Render(label)
		} else {
			rendered[i] = gameOverButtonStyle.Render(label)
		}
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, rendered...)

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// renderLeaderboard draws the persisted top scores as a table. With no
// score service available it renders a placeholder instead.
func renderLeaderboard(scores *game.HighScoreService, screenWidth, screenHeight int) string {
	var rows []game.Score
	if scores != nil {
		var err error
		rows, err = scores.TopScores(10, 0)
		if err != nil {
			log.Error("loading high scores failed", "error", err)
		}
	}

	nameWidth := 18
	numWidth := 8

	var table strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(3).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(numWidth).Render("Score"),
		leaderboardHeaderStyle.Width(numWidth).Render("Moves"),
	)
	table.WriteString(header + "\n")

	for i, s := range rows {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(3).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(s.PlayerName),
			leaderboardRowStyle.Width(numWidth).Render(strconv.Itoa(s.Points)),
			leaderboardRowStyle.Width(numWidth).Render(strconv.Itoa(s.Moves)),
		)
		table.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}
	if len(rows) == 0 {
		table.WriteString(leaderboardRowStyle.Render("No scores recorded yet.") + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("HIGH SCORES")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC to go back.")

	content := lipgloss.JoinVertical(lipgloss.Center, title, table.String(), instruction)

	return lipgloss.Place(screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// ScoresModel is the standalone high-score screen reachable from the intro
// menu.
type ScoresModel struct {
	scores *game.HighScoreService
	width  int
	height int
}

func NewScoresModel(scores *game.HighScoreService, w, h int) ScoresModel {
	return ScoresModel{scores: scores, width: w, height: h}
}

func (m ScoresModel) Init() tea.Cmd { return nil }

func (m ScoresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return BackToIntroMsg{} }
		}
	}
	return m, nil
}

func (m ScoresModel) View() string {
	return renderLeaderboard(m.scores, m.width, m.height)
}
