package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mnowak/basilisk/internal/game"
	"github.com/mnowak/basilisk/internal/ui"
)

func main() {
	dbPath := os.Getenv("BASILISK_DB_PATH")
	if dbPath == "" {
		dbPath = "basilisk.db"
	}

	scores, err := game.NewHighScoreService(dbPath)
	if err != nil {
		log.Error("opening high score database, scores will not be saved", "path", dbPath, "error", err)
		scores = nil
	} else {
		defer scores.Close()
	}

	p := tea.NewProgram(ui.NewControllerModel(scores, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program failed", "error", err)
		os.Exit(1)
	}
}
