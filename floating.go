package richedit

import "time"

// FloatingCursor implements the platform floating-cursor gesture: a
// cursor that tracks the drag freely, clamped to the content bounds plus
// a margin, while the true caret snaps between text positions underneath.
// Releasing the drag animates the floating cursor back onto the snapped
// caret and then commits the selection.
//
// The animation is driven externally through Advance, so hosts tie it to
// their frame clock and tests drive it deterministically.
type FloatingCursor struct {
	geom     Geometry
	delegate SelectionDelegate
	policy   Policy

	active bool

	startPointer Point
	startCaret   Rect
	previousRaw  Point

	// Per-axis relative origin implementing re-origin-on-edge: once the
	// raw position is clamped at an edge, further travel past it is
	// absorbed, and travel back re-anchors the origin so tracking resumes
	// without a jump.
	relativeOrigin  Point
	resetLeft       bool
	resetRight      bool
	resetTop        bool
	resetBottom     bool

	bounded  Point
	resolved Position

	animating bool
	elapsed   time.Duration
	snapFrom  Rect
	snapTo    Rect
}

// NewFloatingCursor creates an inactive floating cursor.
func NewFloatingCursor(delegate SelectionDelegate, geom Geometry, policy Policy) *FloatingCursor {
	return &FloatingCursor{
		delegate: delegate,
		geom:     geom,
		policy:   policy,
	}
}

// Active reports whether a floating-cursor drag is in progress.
func (f *FloatingCursor) Active() bool { return f.active }

// Animating reports whether the release snap-back is running.
func (f *FloatingCursor) Animating() bool { return f.animating }

// SetGeometry replaces the layout the cursor resolves against.
func (f *FloatingCursor) SetGeometry(geom Geometry) { f.geom = geom }

// Resolved returns the text position under the floating cursor.
func (f *FloatingCursor) Resolved() Position { return f.resolved }

// Start begins a floating-cursor drag at pointer position p. The origin
// is the caret rect of the current selection extent.
func (f *FloatingCursor) Start(p Point) {
	v := f.delegate.Value()
	sel := v.Selection
	if !sel.IsValid() {
		sel = CollapsedSelection(0)
	}
	pos := Position{Offset: sel.Extent, Affinity: sel.Affinity}

	f.active = true
	f.animating = false
	f.startPointer = p
	f.startCaret = f.geom.CaretRect(pos, f.policy.Caret)
	f.previousRaw = Pt(f.startCaret.MinX, f.startCaret.MinY)
	f.relativeOrigin = Pt(0, 0)
	f.resetLeft, f.resetRight, f.resetTop, f.resetBottom = false, false, false, false
	f.bounded = f.previousRaw
	f.resolved = pos
}

// Update moves the floating cursor to track pointer position p.
func (f *FloatingCursor) Update(p Point) {
	if !f.active {
		return
	}
	raw := Pt(
		f.startCaret.MinX+(p.X-f.startPointer.X),
		f.startCaret.MinY+(p.Y-f.startPointer.Y),
	)
	f.bounded = f.boundedOffset(raw)
	f.previousRaw = raw

	f.resolved = f.geom.PositionForPoint(Pt(
		f.bounded.X,
		f.bounded.Y+f.geom.LineHeight()/2,
	))
}

// End finishes the drag and starts the snap-back animation from the last
// bounded position to the caret rect of the resolved text position.
func (f *FloatingCursor) End() {
	if !f.active {
		return
	}
	f.active = false
	f.snapFrom = f.cursorRectAt(f.bounded)
	f.snapTo = f.geom.CaretRect(f.resolved, f.policy.Caret)
	f.elapsed = 0
	f.animating = true
}

// Advance drives the snap-back animation by dt. It reports whether the
// animation is still running; on completion the selection is committed
// at the resolved position if it differs from the current extent.
func (f *FloatingCursor) Advance(dt time.Duration) bool {
	if !f.animating {
		return false
	}
	f.elapsed += dt
	if f.elapsed < f.policy.FloatingResetDuration {
		return true
	}
	f.animating = false
	f.commit()
	return false
}

// CursorRect returns the rectangle where the floating cursor should be
// drawn right now: the bounded drag position while active, the eased
// snap-back position while animating, and the zero rect otherwise.
func (f *FloatingCursor) CursorRect() Rect {
	switch {
	case f.active:
		return f.cursorRectAt(f.bounded)
	case f.animating:
		t := float64(f.elapsed) / float64(f.policy.FloatingResetDuration)
		if t > 1 {
			t = 1
		}
		t = easeOut(t)
		return lerpRect(f.snapFrom, f.snapTo, t)
	default:
		return Rect{}
	}
}

func (f *FloatingCursor) commit() {
	v := f.delegate.Value()
	if v.Selection.IsValid() && v.Selection.Extent == f.resolved.Offset {
		return
	}
	v.Selection = Selection{
		Base:     f.resolved.Offset,
		Extent:   f.resolved.Offset,
		Affinity: f.resolved.Affinity,
	}
	f.delegate.SetValue(v, CauseFloatingCursor)
}

// boundedOffset clamps raw to the content bounds expanded by the margin,
// re-anchoring the per-axis origin when the pointer turns back after
// being clamped at an edge.
func (f *FloatingCursor) boundedOffset(raw Point) Point {
	m := f.policy.FloatingCursorMargin
	b := f.geom.Bounds()
	leftBound := b.MinX - m
	rightBound := b.MaxX + m - f.policy.Caret.Width
	topBound := b.MinY - m
	bottomBound := b.MaxY + m - f.geom.LineHeight()
	if rightBound < leftBound {
		rightBound = leftBound
	}
	if bottomBound < topBound {
		bottomBound = topBound
	}

	deltaX := raw.X - f.previousRaw.X
	deltaY := raw.Y - f.previousRaw.Y

	currentX := raw.X - f.relativeOrigin.X
	currentY := raw.Y - f.relativeOrigin.Y

	if f.resetLeft && deltaX > 0 {
		f.relativeOrigin.X = raw.X - leftBound
		currentX = leftBound
		f.resetLeft = false
	} else if f.resetRight && deltaX < 0 {
		f.relativeOrigin.X = raw.X - rightBound
		currentX = rightBound
		f.resetRight = false
	}
	if f.resetTop && deltaY > 0 {
		f.relativeOrigin.Y = raw.Y - topBound
		currentY = topBound
		f.resetTop = false
	} else if f.resetBottom && deltaY < 0 {
		f.relativeOrigin.Y = raw.Y - bottomBound
		currentY = bottomBound
		f.resetBottom = false
	}

	if currentX < leftBound && deltaX < 0 {
		f.resetLeft = true
	} else if currentX > rightBound && deltaX > 0 {
		f.resetRight = true
	}
	if currentY < topBound && deltaY < 0 {
		f.resetTop = true
	} else if currentY > bottomBound && deltaY > 0 {
		f.resetBottom = true
	}

	return Pt(
		clampFloat(currentX, leftBound, rightBound),
		clampFloat(currentY, topBound, bottomBound),
	)
}

func (f *FloatingCursor) cursorRectAt(p Point) Rect {
	w := f.policy.Caret.Width
	if w <= 0 {
		w = 1
	}
	return R(p.X, p.Y, p.X+w, p.Y+f.geom.LineHeight())
}

// easeOut is a quadratic ease-out curve.
func easeOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

func lerpRect(a, b Rect, t float64) Rect {
	return Rect{
		MinX: a.MinX + (b.MinX-a.MinX)*t,
		MinY: a.MinY + (b.MinY-a.MinY)*t,
		MaxX: a.MaxX + (b.MaxX-a.MaxX)*t,
		MaxY: a.MaxY + (b.MaxY-a.MaxY)*t,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
