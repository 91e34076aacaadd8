package label

// SelectionState tracks which shape is hovered and which is selected for one
// canvas session. Callers own an instance per canvas; nothing in this package
// keeps process-wide selection state. Indices refer to the caller's shape
// list; None means no shape.
type SelectionState struct {
	Hovered  int
	Selected int
}

// None is the index value meaning "no shape".
const None = -1

// NewSelectionState returns a state with nothing hovered or selected.
func NewSelectionState() *SelectionState {
	return &SelectionState{Hovered: None, Selected: None}
}

// Selector resolves cursor positions to shapes.
type Selector struct {
	// Tolerance is the pixel tolerance for point and line hits.
	Tolerance float64
}

// NewSelector returns a selector with the default hit tolerance.
func NewSelector() *Selector {
	return &Selector{Tolerance: DefaultHitTolerance}
}

// ShapeAt returns the index of the shape under (x, y), or None. When several
// shapes overlap the cursor the smallest-area one wins, so a small shape drawn
// inside a larger one stays reachable.
func (sel *Selector) ShapeAt(x, y float64, shapes []Shape) int {
	best := None
	bestArea := 0.0
	for i, s := range shapes {
		if !s.ContainsWithTolerance(x, y, sel.Tolerance) {
			continue
		}
		area := s.Area()
		if best == None || area < bestArea {
			best = i
			bestArea = area
		}
	}
	return best
}

// Hover updates the hovered shape for the cursor position and reports whether
// it changed.
func (sel *Selector) Hover(state *SelectionState, x, y float64, shapes []Shape) bool {
	hit := sel.ShapeAt(x, y, shapes)
	if hit == state.Hovered {
		return false
	}
	state.Hovered = hit
	return true
}

// Click selects the shape under the cursor, clearing the selection when the
// click lands on empty canvas. Reports whether the selection changed.
func (sel *Selector) Click(state *SelectionState, x, y float64, shapes []Shape) bool {
	hit := sel.ShapeAt(x, y, shapes)
	if hit == state.Selected {
		return false
	}
	state.Selected = hit
	return true
}
