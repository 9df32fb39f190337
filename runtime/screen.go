package runtime

import "github.com/odvcencio/furry-viewmodels/backend"

// Layer is one entry in the screen's layer stack.
type Layer struct {
	Root  Widget
	Modal bool // If true, blocks input to layers below
}

// Screen owns the widget layers and the render buffer.
// Each call to Render is one render pass with its own pass number.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	services      Services
	pass          uint64
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
	}
}

// SetServices configures app services for bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and lays out every layer again.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	for _, layer := range s.layers {
		if layer.Root != nil {
			layer.Root.Layout(s.bounds())
		}
	}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// Pass returns the number of the most recent render pass.
func (s *Screen) Pass() uint64 {
	return s.pass
}

// SetRoot replaces the root widget of the base layer.
func (s *Screen) SetRoot(root Widget) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{})
	}
	base := s.layers[0]
	s.detach(base.Root)
	base.Root = root
	s.attach(root)
}

// Root returns the base layer's root widget.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds a new layer on top of the stack.
// If modal is true, input won't pass to layers below.
func (s *Screen) PushLayer(root Widget, modal bool) {
	s.layers = append(s.layers, &Layer{Root: root, Modal: modal})
	s.attach(root)
}

// PopLayer removes the top layer from the stack.
// Returns false if only the base layer remains.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	s.detach(top.Root)
	return true
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

// Render draws all layers, bottom to top, as one render pass.
func (s *Screen) Render() {
	s.pass++
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		layer.Root.Render(RenderContext{
			Buffer:  s.buffer,
			Focused: i == len(s.layers)-1,
			Bounds:  s.bounds(),
			Pass:    s.pass,
		})
	}
}

// HandleMessage dispatches a message to the top layer first. Unhandled
// messages fall through to lower layers until a modal layer is reached.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root != nil {
			result := layer.Root.HandleMessage(msg)
			for _, cmd := range result.Commands {
				s.handleCommand(cmd)
			}
			if result.Handled {
				return result
			}
		}
		if layer.Modal {
			break
		}
	}
	return Unhandled()
}

func (s *Screen) handleCommand(cmd Command) {
	switch c := cmd.(type) {
	case PopOverlay:
		s.PopLayer()
	case PushOverlay:
		s.PushLayer(c.Widget, c.Modal)
	}
}

func (s *Screen) attach(root Widget) {
	if root == nil {
		return
	}
	BindTree(root, s.services)
	root.Layout(s.bounds())
	MountTree(root)
}

func (s *Screen) detach(root Widget) {
	if root == nil {
		return
	}
	UnmountTree(root)
	UnbindTree(root)
}

func (s *Screen) bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// RenderContext is handed to widgets during a render pass.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool // Is the containing layer on top?
	Bounds  Rect // Widget's allocated bounds
	// Pass identifies the render pass. Zero means the context was built
	// outside a screen pass.
	Pass uint64
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	ctx.Bounds = bounds
	return ctx
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}
