package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// GameState is the controller's finite state.
type GameState int

const (
	StateStopped GameState = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s GameState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Event is a notification emitted to the render/UI collaborator.
type Event int

const (
	EventStarting Event = iota
	EventUpdated
	EventPaused
	EventResuming
	EventFinished
	EventStopped
)

func (e Event) String() string {
	switch e {
	case EventStarting:
		return "game starting"
	case EventUpdated:
		return "game updated"
	case EventPaused:
		return "game paused"
	case EventResuming:
		return "game resuming"
	case EventFinished:
		return "game finished"
	case EventStopped:
		return "game stopped"
	}
	return "unknown event"
}

// joinTimeout bounds how long StopGame waits for each background task to
// exit. Tasks that miss the deadline are abandoned, not killed.
const joinTimeout = time.Second

// animInterval is the fixed period of the item animation task.
const animInterval = 100 * time.Millisecond

// GameController orchestrates the turn loop: timed stepping, item aging
// and spawning, auto-mode direction selection and the
// stop/run/pause/finish state machine. All shared state is guarded by one
// coarse lock; the mover and animation goroutines and every external
// command serialize on it.
type GameController struct {
	mu   sync.Mutex
	cond *sync.Cond

	config   *GameConfiguration
	skin     Skin
	grid     *Grid
	snake    *Snake
	strategy Strategy

	state    GameState
	auto     bool
	moveDir  Direction
	headDir  Direction
	move     int
	animated atomic.Bool

	quit      chan struct{}
	moverDone chan struct{}
	animDone  chan struct{}

	events chan Event
}

// NewGameController builds a controller with its own grid and snake. The
// wall layout may be nil for an open torus.
func NewGameController(config *GameConfiguration, skin Skin, walls [][]bool) (*GameController, error) {
	grid, err := NewGridFromWalls(walls)
	if err != nil {
		return nil, err
	}
	snake, err := NewSnake(grid)
	if err != nil {
		return nil, err
	}
	gc := &GameController{
		config:   config,
		skin:     skin,
		grid:     grid,
		snake:    snake,
		strategy: DefaultStrategy{},
		moveDir:  DirUp,
		headDir:  DirUp,
		events:   make(chan Event, 64),
	}
	gc.cond = sync.NewCond(&gc.mu)
	gc.animated.Store(true)
	return gc, nil
}

// Events is the notification stream consumed by the render collaborator.
// Events are dispatched fire-and-forget: a full buffer drops rather than
// blocks the simulation.
func (gc *GameController) Events() <-chan Event { return gc.events }

func (gc *GameController) emit(e Event) {
	select {
	case gc.events <- e:
	default:
		log.Debug("event dropped, no listener draining", "event", e)
	}
}

// Config returns the current game configuration.
func (gc *GameController) Config() *GameConfiguration {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.config
}

// Skin returns the active skin.
func (gc *GameController) Skin() Skin {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.skin
}

// Points returns the score: snake length minus one.
func (gc *GameController) Points() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.snake.Size() - 1
}

// Move returns the move counter.
func (gc *GameController) Move() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.move
}

// Speed returns the instantaneous speed in moves per second.
func (gc *GameController) Speed() float64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.config.Speed(gc.move, gc.snake.Size())
}

// State returns the controller's state.
func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.state
}

// IsAutoGame reports whether the current game is computer controlled.
func (gc *GameController) IsAutoGame() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.auto
}

// SetStrategy installs the direction policy used in auto games.
func (gc *GameController) SetStrategy(s Strategy) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if s != nil {
		gc.strategy = s
	}
}

// SetAnimated toggles the item animation task. Hosts suspend animations
// while their window is hidden; the flag deliberately ignores pause so
// items stay lively on the pause screen.
func (gc *GameController) SetAnimated(on bool) { gc.animated.Store(on) }

// SetDirection requests a direction change from the player. Requests that
// reverse the current heading are silently ignored while the snake is
// longer than one segment.
func (gc *GameController) SetDirection(dir Direction) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.snake.Size() == 1 || !AreOpposites(dir, gc.headDir) {
		gc.moveDir = dir
	}
}

// StartGame launches the mover and animation tasks. It fails with
// ErrIllegalState unless the controller is stopped.
func (gc *GameController) StartGame(auto bool) error {
	gc.mu.Lock()
	if gc.state != StateStopped {
		gc.mu.Unlock()
		return ErrIllegalState
	}
	gc.auto = auto
	gc.quit = make(chan struct{})
	gc.moverDone = make(chan struct{})
	gc.animDone = make(chan struct{})
	gc.state = StateRunning
	quit, mover, anim := gc.quit, gc.moverDone, gc.animDone
	gc.mu.Unlock()

	gc.emit(EventStarting)
	go gc.runMover(quit, mover)
	go gc.runAnimations(quit, anim)
	log.Debug("game started", "auto", auto)
	return nil
}

// RestartGame resets the grid and snake and starts a fresh game, starting
// the background tasks when the controller was stopped and reusing them
// otherwise.
func (gc *GameController) RestartGame(auto bool) error {
	gc.mu.Lock()
	if err := gc.resetLocked(nil, nil, nil); err != nil {
		gc.mu.Unlock()
		return err
	}
	if gc.state == StateStopped {
		gc.mu.Unlock()
		return gc.StartGame(auto)
	}
	gc.auto = auto
	gc.state = StateRunning
	gc.cond.Broadcast()
	gc.mu.Unlock()

	gc.emit(EventUpdated)
	gc.emit(EventStarting)
	return nil
}

// PauseGame pauses a running game. Fails with ErrIllegalState otherwise.
func (gc *GameController) PauseGame() error {
	gc.mu.Lock()
	if gc.state != StateRunning {
		gc.mu.Unlock()
		return ErrIllegalState
	}
	gc.state = StatePaused
	gc.mu.Unlock()
	gc.emit(EventPaused)
	return nil
}

// ResumeGame resumes a paused game. Fails with ErrIllegalState otherwise.
func (gc *GameController) ResumeGame() error {
	gc.mu.Lock()
	if gc.state != StatePaused {
		gc.mu.Unlock()
		return ErrIllegalState
	}
	gc.state = StateRunning
	gc.cond.Broadcast()
	gc.mu.Unlock()
	gc.emit(EventResuming)
	return nil
}

// TogglePause pauses a running game or resumes a paused one.
func (gc *GameController) TogglePause() error {
	gc.mu.Lock()
	switch gc.state {
	case StateRunning:
		gc.state = StatePaused
		gc.mu.Unlock()
		gc.emit(EventPaused)
		return nil
	case StatePaused:
		gc.state = StateRunning
		gc.cond.Broadcast()
		gc.mu.Unlock()
		gc.emit(EventResuming)
		return nil
	default:
		gc.mu.Unlock()
		return ErrIllegalState
	}
}

// SetPaused is the no-fail convenience form: it pauses a running game or
// resumes a paused one and silently does nothing when the precondition
// does not hold.
func (gc *GameController) SetPaused(paused bool) {
	if paused {
		_ = gc.PauseGame()
	} else {
		_ = gc.ResumeGame()
	}
}

// StopGame transitions to stopped and waits, bounded, for both background
// tasks to exit. Safe to call when already stopped.
func (gc *GameController) StopGame() {
	gc.mu.Lock()
	if gc.state == StateStopped {
		gc.mu.Unlock()
		return
	}
	gc.state = StateStopped
	gc.cond.Broadcast()
	quit, mover, anim := gc.quit, gc.moverDone, gc.animDone
	gc.mu.Unlock()

	close(quit)
	for _, done := range []chan struct{}{mover, anim} {
		select {
		case <-done:
		case <-time.After(joinTimeout):
			log.Warn("game task did not exit before timeout")
		}
	}
	gc.emit(EventStopped)
	log.Debug("game stopped")
}

// ResetGame resets the game and optionally swaps the configuration, wall
// layout and skin; nil arguments keep the current ones. The move counter
// restarts at zero and a fresh snake is placed.
func (gc *GameController) ResetGame(config *GameConfiguration, walls [][]bool, skin Skin) error {
	gc.mu.Lock()
	err := gc.resetLocked(config, walls, skin)
	gc.mu.Unlock()
	if err != nil {
		return err
	}
	gc.emit(EventUpdated)
	return nil
}

func (gc *GameController) resetLocked(config *GameConfiguration, walls [][]bool, skin Skin) error {
	if config != nil {
		gc.config = config
	}
	if err := gc.grid.Reset(walls); err != nil {
		return err
	}
	if skin != nil && skin != gc.skin {
		gc.skin = skin
		// Ids from the old skin may be invalid under the new one.
		for _, it := range gc.grid.Items() {
			if it.IsFood() {
				it.SetImgID(skin.RandomFood())
			} else {
				it.SetImgID(skin.RandomBomb())
			}
		}
	}
	snake, err := NewSnake(gc.grid)
	if err != nil {
		return err
	}
	gc.snake = snake
	gc.move = 0
	gc.moveDir = DirUp
	gc.headDir = DirUp
	return nil
}

// runMover is the main task: sleep for the speed-derived interval, wait
// out pauses, then perform one simulated move. A dead snake finishes the
// game (or silently restarts it in auto mode).
func (gc *GameController) runMover(quit, done chan struct{}) {
	defer close(done)
	for {
		gc.mu.Lock()
		gc.move++
		interval := time.Duration(float64(time.Second) / gc.config.Speed(gc.move, gc.snake.Size()))
		gc.mu.Unlock()

		select {
		case <-quit:
			return
		case <-time.After(interval):
		}

		gc.mu.Lock()
		if !gc.waitRunningLocked() {
			gc.mu.Unlock()
			return
		}
		alive := gc.stepLocked()
		if !alive {
			gc.state = StateFinished
			gc.emit(EventFinished)
			if !gc.waitRunningLocked() {
				gc.mu.Unlock()
				return
			}
		}
		gc.mu.Unlock()
	}
}

// waitRunningLocked blocks while the game is paused or finished and
// reports false once the game is stopped. Must be called with the lock
// held.
func (gc *GameController) waitRunningLocked() bool {
	for gc.state == StatePaused || gc.state == StateFinished {
		gc.cond.Wait()
	}
	return gc.state != StateStopped
}

// stepLocked performs one simulated move and reports whether the snake is
// still alive. Must be called with the lock held.
func (gc *GameController) stepLocked() bool {
	if gc.auto {
		gc.moveDir = gc.strategy.NextDirection(gc.grid, gc.snake.Head(), gc.headDir, gc.snake.Size())
	}

	ate, err := gc.snake.Step(gc.moveDir)
	if err != nil {
		if died, ok := err.(*DeathError); ok {
			if gc.auto {
				// Demo games never finish; reset and keep going.
				if rerr := gc.resetLocked(nil, nil, nil); rerr != nil {
					log.Error("auto game reset failed", "error", rerr)
					return false
				}
				gc.emit(EventUpdated)
				return true
			}
			log.Debug("snake died", "point", died.Point, "state", died.State, "move", gc.move)
			return false
		}
		// Anything else is an invariant violation, not gameplay.
		log.Error("snake step failed", "error", err)
		return false
	}
	gc.headDir = gc.moveDir

	if ate {
		gc.snake.Grow(gc.config.FoodValue())
	}

	// Items get older.
	var expired []*Item
	for _, it := range gc.grid.Items() {
		if it.GetsOlder() {
			expired = append(expired, it)
		}
	}
	for _, it := range expired {
		if err := gc.grid.RemoveItem(it); err != nil {
			log.Error("removing expired item failed", "error", err)
		}
	}

	// Maybe spawn a new item, food first. A full grid just skips the
	// attempt for this tick.
	if gc.grid.CountFree() > 3 {
		if gc.config.PutFood(gc.grid.CountFood()) {
			gc.spawnItem(CellFood)
		} else if gc.config.PutBomb(gc.grid.CountBombs()) {
			gc.spawnItem(CellBomb)
		}
	}

	gc.emit(EventUpdated)
	return true
}

func (gc *GameController) spawnItem(state CellState) {
	p, err := gc.grid.RandomFree()
	if err != nil {
		return
	}
	var it *Item
	if state == CellFood {
		it = NewItem(p, CellFood, gc.config.FoodDuration(), gc.skin.RandomFood())
	} else {
		it = NewItem(p, CellBomb, gc.config.BombDuration(), gc.skin.RandomBomb())
	}
	if err := gc.grid.PutItem(it); err != nil {
		log.Error("placing new item failed", "error", err)
	}
}

// runAnimations advances item animation frames on a fixed period,
// independent of the simulation tick. It keeps running while the game is
// paused; only the animated flag and stopping gate it.
func (gc *GameController) runAnimations(quit, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(animInterval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
		}
		if !gc.animated.Load() {
			continue
		}
		gc.mu.Lock()
		if gc.state == StateStopped {
			gc.mu.Unlock()
			return
		}
		changed := gc.grid.NextFrame(gc.skin)
		gc.mu.Unlock()
		if changed {
			gc.emit(EventUpdated)
		}
	}
}
