package scroll

import (
	"testing"

	"github.com/odvcencio/furry-viewmodels/runtime"
)

func TestWindowClampsOffset(t *testing.T) {
	var w Window
	w.SetView(5)
	w.SetTotal(20)

	w.ScrollTo(100)
	if got := w.Offset(); got != 15 {
		t.Fatalf("expected offset 15, got %d", got)
	}
	w.ScrollTo(-3)
	if got := w.Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestWindowShrinkingTotalPullsOffsetBack(t *testing.T) {
	var w Window
	w.SetView(4)
	w.SetTotal(10)
	w.ScrollTo(6)
	w.SetTotal(5)
	if got := w.Offset(); got != 1 {
		t.Fatalf("expected offset 1, got %d", got)
	}
	if start, end := w.Visible(); start != 1 || end != 5 {
		t.Fatalf("expected rows [1,5), got [%d,%d)", start, end)
	}
}

func TestWindowFollow(t *testing.T) {
	var w Window
	w.SetView(3)
	w.SetTotal(10)

	w.Follow(5)
	if got := w.Offset(); got != 3 {
		t.Fatalf("expected offset 3 after following row 5, got %d", got)
	}
	w.Follow(4)
	if got := w.Offset(); got != 3 {
		t.Fatalf("expected offset to stay 3 for visible row, got %d", got)
	}
	w.Follow(1)
	if got := w.Offset(); got != 1 {
		t.Fatalf("expected offset 1 after following row 1, got %d", got)
	}
}

func TestWindowFitsWithoutOverflow(t *testing.T) {
	var w Window
	w.SetView(8)
	w.SetTotal(3)
	w.ScrollBy(2)
	if w.Overflows() {
		t.Fatalf("expected no overflow")
	}
	if start, end := w.Visible(); start != 0 || end != 3 {
		t.Fatalf("expected rows [0,3), got [%d,%d)", start, end)
	}
}

func TestScrollbarThumb(t *testing.T) {
	var w Window
	w.SetView(5)
	w.SetTotal(20)
	bar := DefaultScrollbar()

	if pos, length := bar.Thumb(&w, 5); pos != 0 || length != 1 {
		t.Fatalf("expected thumb (0,1) at top, got (%d,%d)", pos, length)
	}
	w.ScrollTo(w.MaxOffset())
	if pos, length := bar.Thumb(&w, 5); pos != 4 || length != 1 {
		t.Fatalf("expected thumb (4,1) at bottom, got (%d,%d)", pos, length)
	}
}

func TestScrollbarDraw(t *testing.T) {
	var w Window
	w.SetView(4)
	w.SetTotal(8)
	w.ScrollTo(4)

	buf := runtime.NewBuffer(1, 4)
	DefaultScrollbar().Draw(buf, runtime.Rect{Width: 1, Height: 4}, &w)

	var col []rune
	for y := 0; y < 4; y++ {
		col = append(col, buf.Get(0, y).Rune)
	}
	if got := string(col); got != "||##" {
		t.Fatalf("expected ||##, got %q", got)
	}
}
