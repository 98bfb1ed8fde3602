package game

import "math/rand"

// Skin is the capability interface the controller and grid use to assign
// display ids to items and to drive their animation. Rendering proper is
// the UI's business; the core only hands the ids and frames through.
type Skin interface {
	// FrameCount returns how many animation frames the image with the
	// given id has. Images with fewer than two frames are static.
	FrameCount(id int) int
	// RandomFood returns a display id for a new food item.
	RandomFood() int
	// RandomBomb returns a display id for a new bomb.
	RandomBomb() int
	// Glyph returns the rune the UI should draw for the given id and
	// frame.
	Glyph(id, frame int) rune
}

// PlainSkin is the procedural skin: one static food image and one static
// bomb image.
type PlainSkin struct{}

const (
	plainFoodID = 0
	plainBombID = 1
)

func (PlainSkin) FrameCount(id int) int { return 1 }
func (PlainSkin) RandomFood() int       { return plainFoodID }
func (PlainSkin) RandomBomb() int       { return plainBombID }

func (PlainSkin) Glyph(id, frame int) rune {
	if id == plainBombID {
		return '✸'
	}
	return '●'
}

// CharSkin is the atlas-style skin: several food and bomb images, each a
// sequence of animation frames. Food ids occupy [0, len(food)); bomb ids
// follow at [len(food), len(food)+len(bombs)).
type CharSkin struct {
	food  [][]rune
	bombs [][]rune
}

// NewCharSkin builds a skin from per-image frame sequences. Both slices
// must be non-empty.
func NewCharSkin(food, bombs [][]rune) *CharSkin {
	return &CharSkin{food: food, bombs: bombs}
}

// DefaultCharSkin is a skin with a couple of animated items, used by the
// bundled UIs.
func DefaultCharSkin() *CharSkin {
	return NewCharSkin(
		[][]rune{
			{'●'},
			{'✿', '❀'},
			{'◆', '◇'},
		},
		[][]rune{
			{'✸', '✶', '✳'},
			{'☢'},
		},
	)
}

func (s *CharSkin) FrameCount(id int) int {
	if id < len(s.food) {
		return len(s.food[id])
	}
	return len(s.bombs[id-len(s.food)])
}

func (s *CharSkin) RandomFood() int { return rand.Intn(len(s.food)) }

func (s *CharSkin) RandomBomb() int { return len(s.food) + rand.Intn(len(s.bombs)) }

func (s *CharSkin) Glyph(id, frame int) rune {
	if id < len(s.food) {
		return s.food[id][frame%len(s.food[id])]
	}
	frames := s.bombs[id-len(s.food)]
	return frames[frame%len(frames)]
}
