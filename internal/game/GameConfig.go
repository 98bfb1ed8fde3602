package game

import (
	"fmt"
	"math"
	"math/rand"
)

// Indices into the configuration value array.
const (
	FoodMin         = 0
	FoodMax         = 1
	FoodDurationMin = 2
	FoodDurationMax = 3
	FoodValueMin    = 4
	FoodValueMax    = 5
	BombMin         = 6
	BombMax         = 7
	BombDurationMin = 8
	BombDurationMax = 9

	CfgCount = 10
)

// Built-in difficulty presets.
var presets = [][CfgCount]int{
	{2, 10, -1, -1, 1, 10, 0, 0, 200, 300},
	{2, 10, 200, 500, 0, 10, 0, 2, 200, 300},
	{1, 5, 50, 250, 0, 5, 0, 3, 50, 200},
	{1, 3, 50, 150, -1, 5, 1, 5, 50, 200},
	{1, 3, 50, 150, -1, 5, 1, 20, 10, 50},
}

// PresetNames lists the built-in presets in the order Preset accepts.
var PresetNames = []string{
	"Piece of cake",
	"Easy",
	"Medium",
	"Hard",
	"Nightmare",
}

// DefaultPreset is the preset used when none is chosen.
const DefaultPreset = 2

// GameConfiguration holds the randomized item count, duration and value
// bounds plus the speed function. It is immutable after construction.
type GameConfiguration struct {
	values [CfgCount]int
}

// NewGameConfiguration builds a configuration from a 10-value array in
// the fixed order [foodCountMin, foodCountMax, foodDurationMin,
// foodDurationMax, foodValueMin, foodValueMax, bombCountMin,
// bombCountMax, bombDurationMin, bombDurationMax]. A food duration pair
// of (-1, -1) means food never expires.
func NewGameConfiguration(values []int) (*GameConfiguration, error) {
	if len(values) != CfgCount {
		return nil, fmt.Errorf("%w: need %d values, got %d", ErrBadConfiguration, CfgCount, len(values))
	}
	cfg := &GameConfiguration{}
	copy(cfg.values[:], values)
	for i := 0; i < CfgCount; i += 2 {
		if cfg.values[i] > cfg.values[i+1] {
			return nil, fmt.Errorf("%w: min %d above max %d at index %d", ErrBadConfiguration, cfg.values[i], cfg.values[i+1], i)
		}
	}
	return cfg, nil
}

// Preset returns the built-in configuration with the given index.
func Preset(i int) (*GameConfiguration, error) {
	if i < 0 || i >= len(presets) {
		return nil, fmt.Errorf("%w: no preset %d", ErrBadConfiguration, i)
	}
	return &GameConfiguration{values: presets[i]}, nil
}

// DefaultConfiguration returns the default preset.
func DefaultConfiguration() *GameConfiguration {
	return &GameConfiguration{values: presets[DefaultPreset]}
}

// Get returns the value at the given index.
func (c *GameConfiguration) Get(idx int) int { return c.values[idx] }

// Values returns a copy of all configuration values.
func (c *GameConfiguration) Values() [CfgCount]int { return c.values }

// randRange returns a uniform value from [min, max] inclusive. When the
// bounds are equal it returns min without drawing.
func randRange(min, max int) int {
	if min == max {
		return min
	}
	return min + rand.Intn(max-min+1)
}

// putItem decides whether a new item should spawn given the current count
// and the configured [min, max] bounds. It is always false at or above
// max; below that the probability grows with the distance from the bounds
// so the count gravitates towards them. For counts far enough below min
// the computed probability exceeds one and the spawn becomes certain.
func putItem(count, min, max int) bool {
	return count < max &&
		rand.Float64() < math.Hypot(float64(min-count), float64(max-count))/1.25/float64(max-min)
}

// PutFood reports whether a new food item should spawn.
func (c *GameConfiguration) PutFood(count int) bool {
	return putItem(count, c.values[FoodMin], c.values[FoodMax])
}

// PutBomb reports whether a new bomb should spawn.
func (c *GameConfiguration) PutBomb(count int) bool {
	return putItem(count, c.values[BombMin], c.values[BombMax])
}

// FoodDuration draws a random food duration from the configured bounds.
func (c *GameConfiguration) FoodDuration() int {
	return randRange(c.values[FoodDurationMin], c.values[FoodDurationMax])
}

// BombDuration draws a random bomb duration from the configured bounds.
func (c *GameConfiguration) BombDuration() int {
	return randRange(c.values[BombDurationMin], c.values[BombDurationMax])
}

// FoodValue draws a random food value from the configured bounds.
func (c *GameConfiguration) FoodValue() int {
	return randRange(c.values[FoodValueMin], c.values[FoodValueMax])
}

// Speed returns the snake's speed in moves per second for the given move
// number. The snake's length is accepted for future tuning but does not
// influence the current formula.
func (c *GameConfiguration) Speed(move, length int) float64 {
	return 2.5 * math.Pow(float64(move), 0.25)
}
