package agent

import (
	"fmt"
	"time"

	"github.com/odvcencio/furry-viewmodels/runtime"
)

// Snapshot captures a structured view of the current UI state.
type Snapshot struct {
	Timestamp  time.Time    `json:"timestamp"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	LayerCount int          `json:"layer_count,omitempty"`
	Pass       uint64       `json:"pass"`
	Text       string       `json:"text,omitempty"`
	Widgets    []WidgetInfo `json:"widgets,omitempty"`
}

// WidgetInfo describes a widget in the UI tree.
type WidgetInfo struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Text        string       `json:"text,omitempty"`
	Bounds      runtime.Rect `json:"bounds"`
	NeedsRender bool         `json:"needs_render,omitempty"`
	Children    []WidgetInfo `json:"children,omitempty"`
}

type texter interface {
	Text() string
}

type renderTracker interface {
	NeedsRender() bool
}

func collect(screen *runtime.Screen) Snapshot {
	snap := Snapshot{Timestamp: time.Now()}
	if screen == nil {
		return snap
	}
	snap.Width, snap.Height = screen.Size()
	snap.LayerCount = screen.LayerCount()
	snap.Pass = screen.Pass()
	if root := screen.Root(); root != nil {
		snap.Widgets = []WidgetInfo{describe(root)}
	}
	return snap
}

func describe(w runtime.Widget) WidgetInfo {
	info := WidgetInfo{
		ID:   fmt.Sprintf("%p", w),
		Type: fmt.Sprintf("%T", w),
	}
	if bp, ok := w.(runtime.BoundsProvider); ok {
		info.Bounds = bp.Bounds()
	}
	if t, ok := w.(texter); ok {
		info.Text = t.Text()
	}
	if r, ok := w.(renderTracker); ok {
		info.NeedsRender = r.NeedsRender()
	}
	if cp, ok := w.(runtime.ChildProvider); ok {
		for _, child := range cp.ChildWidgets() {
			if child != nil {
				info.Children = append(info.Children, describe(child))
			}
		}
	}
	return info
}
