package game

// Item is a piece of food or a bomb lying on the grid. Items age once per
// simulated move and disappear when their duration runs out; a negative
// duration means the item stays forever.
type Item struct {
	point    Point
	state    CellState // CellFood or CellBomb
	duration int
	imgID    int
	frame    int
}

// NewItem creates an item of the given kind. State must be CellFood or
// CellBomb; duration is the number of moves the item stays on the grid,
// negative for infinite. The image id comes from the active skin.
func NewItem(point Point, state CellState, duration, imgID int) *Item {
	return &Item{point: point, state: state, duration: duration, imgID: imgID}
}

func (it *Item) Point() Point     { return it.point }
func (it *Item) State() CellState { return it.state }
func (it *Item) IsFood() bool     { return it.state == CellFood }
func (it *Item) IsBomb() bool     { return it.state == CellBomb }
func (it *Item) Duration() int    { return it.duration }
func (it *Item) ImgID() int       { return it.imgID }
func (it *Item) Frame() int       { return it.frame }

// GetsOlder ages the item by one move and reports whether it should be
// removed from the grid. A duration of zero reports true without
// decrementing further; a negative duration never ages.
func (it *Item) GetsOlder() bool {
	if it.duration < 0 {
		return false
	}
	if it.duration == 0 {
		return true
	}
	it.duration--
	return it.duration == 0
}

// SetImgID assigns a new image id, resetting the animation frame. Used
// when the skin changes and ids from the old skin become invalid.
func (it *Item) SetImgID(id int) {
	it.imgID = id
	it.frame = 0
}

// NextFrame advances the item's animation frame with wraparound. It
// reports false when the image is not animated under the given skin.
func (it *Item) NextFrame(skin Skin) bool {
	frames := skin.FrameCount(it.imgID)
	if frames < 2 {
		return false
	}
	it.frame = (it.frame + 1) % frames
	return true
}
