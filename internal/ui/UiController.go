package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mnowak/basilisk/internal/game"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	ScoresScreen
)

// IntroChoice is the option picked on the intro screen.
type IntroChoice int

const (
	ChoicePlay IntroChoice = iota
	ChoiceDemo
	ChoiceScores
)

// Messages for state transitions between screens.
type IntroSubmitMsg IntroChoice

type SetupSubmitMsg struct {
	Name     string
	Preset   int
	Width    int
	Height   int
	Bordered bool
}

// BackToIntroMsg returns to the intro screen from any other screen.
type BackToIntroMsg struct{}

// ControllerModel multiplexes the intro, setup, game and high-score
// screens, one active at a time. The score service may be nil, in which
// case results are simply not persisted.
type ControllerModel struct {
	CurrentScreen Screen
	Scores        *game.HighScoreService

	IntroModel  tea.Model
	SetupModel  tea.Model
	GameModel   tea.Model
	ScoresModel tea.Model

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(scores *game.HighScoreService, screenWidth, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Scores:        scores,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewSetupModel(screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game loading..."
	case ScoresScreen:
		return m.ScoresModel.View()
	default:
		return "Unknown screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopGame()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		// Every model gets the new size, not just the visible one.
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		if m.ScoresModel != nil {
			m.ScoresModel, _ = m.ScoresModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		switch IntroChoice(msg) {
		case ChoicePlay:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()

		case ChoiceDemo:
			gm, cmd, err := m.newGame("", nil, true)
			if err != nil {
				log.Error("starting demo game failed", "error", err)
				return m, nil
			}
			m.CurrentScreen = GameScreen
			m.GameModel = gm
			return m, cmd

		case ChoiceScores:
			m.CurrentScreen = ScoresScreen
			m.ScoresModel = NewScoresModel(m.Scores, m.ScreenWidth, m.ScreenHeight)
			return m, m.ScoresModel.Init()
		}

	case SetupSubmitMsg:
		gm, cmd, err := m.newGame(msg.Name, &msg, false)
		if err != nil {
			log.Error("starting game failed", "error", err)
			return m, nil
		}
		m.CurrentScreen = GameScreen
		m.GameModel = gm
		return m, cmd

	case BackToIntroMsg:
		m.stopGame()
		m.GameModel = nil
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case ScoresScreen:
		m.ScoresModel, cmd = m.ScoresModel.Update(msg)
	}
	return m, cmd
}

func (m ControllerModel) newGame(name string, setup *SetupSubmitMsg, auto bool) (tea.Model, tea.Cmd, error) {
	config := game.DefaultConfiguration()
	var walls [][]bool
	if setup != nil {
		cfg, err := game.Preset(setup.Preset)
		if err != nil {
			return nil, nil, err
		}
		config = cfg
		if setup.Bordered {
			walls = game.BorderedWalls(setup.Width, setup.Height)
		} else {
			walls = game.PlainWalls(setup.Width, setup.Height)
		}
	} else {
		walls = game.PlainWalls(defaultBoardWidth, defaultBoardHeight)
	}

	gc, err := game.NewGameController(config, game.DefaultCharSkin(), walls)
	if err != nil {
		return nil, nil, err
	}
	if err := gc.StartGame(auto); err != nil {
		return nil, nil, err
	}
	gm := NewGameModel(gc, m.Scores, name, m.ScreenWidth, m.ScreenHeight)
	return gm, gm.Init(), nil
}

func (m ControllerModel) stopGame() {
	if gm, ok := m.GameModel.(GameModel); ok {
		gm.gc.StopGame()
	}
}
