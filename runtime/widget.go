package runtime

// Widget is a node in the render tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider is implemented by widgets with children.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider is implemented by widgets that expose their layout bounds.
type BoundsProvider interface {
	Bounds() Rect
}

// Rect is a screen rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersection returns the overlap of r and other.
func (r Rect) Intersection(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Row returns the one-line rect at offset dy inside r.
func (r Rect) Row(dy int) Rect {
	if dy < 0 || dy >= r.Height {
		return Rect{}
	}
	return Rect{X: r.X, Y: r.Y + dy, Width: r.Width, Height: 1}
}

// Size is a width/height pair.
type Size struct {
	Width, Height int
}

// Constraints bound a widget's measured size.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that only admit size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints from zero up to size.
func Loose(size Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size Size) Size {
	return Size{
		Width:  clamp(size.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// MaxSize returns the largest admitted size.
func (c Constraints) MaxSize() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// HandleResult reports whether a message was consumed and any commands it produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled reports a consumed message.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled reports a message that should keep propagating.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand reports a consumed message that emits cmd.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}
