package state

import (
	"math"
	"testing"
)

type todoItem struct {
	ID   int
	Text string
}

type todoState struct {
	Items []todoItem
}

func TestSame_Scalars(t *testing.T) {
	if !Same(5, 5) {
		t.Fatalf("expected equal ints to be the same")
	}
	if Same(5, 6) {
		t.Fatalf("expected different ints to differ")
	}
	if !Same("foo", "foo") {
		t.Fatalf("expected equal strings to be the same")
	}
	if !Same(true, true) || Same(true, false) {
		t.Fatalf("unexpected bool identity")
	}
}

func TestSame_FloatSpecialCases(t *testing.T) {
	nan := math.NaN()
	if !Same(nan, nan) {
		t.Fatalf("expected NaN to be the same as NaN")
	}
	if !Same(nan, math.Float64frombits(math.Float64bits(nan)|1)) {
		t.Fatalf("expected NaN payloads to be the same")
	}
	negZero := math.Copysign(0, -1)
	if Same(0.0, negZero) {
		t.Fatalf("expected +0 and -0 to differ")
	}
	if !Same(negZero, negZero) {
		t.Fatalf("expected -0 to be the same as -0")
	}
	if !Same(float32(math.NaN()), float32(math.NaN())) {
		t.Fatalf("expected float32 NaN to be the same")
	}
	if Same(complex(0, 1), complex(negZero, 1)) {
		t.Fatalf("expected complex signed zero to differ")
	}
}

func TestSame_References(t *testing.T) {
	a := &todoState{}
	b := &todoState{}
	if !Same(a, a) {
		t.Fatalf("expected pointer to be the same as itself")
	}
	if Same(a, b) {
		t.Fatalf("expected distinct pointers with equal contents to differ")
	}

	m := map[string]int{"a": 1}
	if !Same(m, m) || Same(m, map[string]int{"a": 1}) {
		t.Fatalf("unexpected map identity")
	}

	items := []int{1, 2, 3}
	if !Same(items, items) {
		t.Fatalf("expected slice to be the same as itself")
	}
	if Same(items, []int{1, 2, 3}) {
		t.Fatalf("expected distinct slices with equal contents to differ")
	}
	if Same(items, items[:2]) {
		t.Fatalf("expected reslice with different length to differ")
	}

	var nilPtr *todoState
	if !Same(nilPtr, nil) {
		t.Fatalf("expected nil pointers to be the same")
	}
}

func TestSame_Funcs(t *testing.T) {
	fn := func() {}
	if Same(fn, fn) {
		t.Fatalf("expected funcs to never be the same")
	}
	var a, b func()
	if !Same(a, b) {
		t.Fatalf("expected nil funcs to be the same")
	}
}

func TestSame_Aggregates(t *testing.T) {
	items := []todoItem{{ID: 1, Text: "a"}}
	if !Same(todoState{Items: items}, todoState{Items: items}) {
		t.Fatalf("expected structs sharing a slice to be the same")
	}
	if Same(todoState{Items: items}, todoState{Items: []todoItem{{ID: 1, Text: "a"}}}) {
		t.Fatalf("expected structs with distinct slices to differ")
	}
	if !Same([2]float64{math.NaN(), 1}, [2]float64{math.NaN(), 1}) {
		t.Fatalf("expected arrays to compare element-wise")
	}
}

func TestSame_Interfaces(t *testing.T) {
	var a, b any
	if !Same(a, b) {
		t.Fatalf("expected nil interfaces to be the same")
	}
	if Same[any](1, int64(1)) {
		t.Fatalf("expected different dynamic types to differ")
	}
	if !Same[any]("x", "x") {
		t.Fatalf("expected equal dynamic strings to be the same")
	}
	if Same[any](nil, 0) {
		t.Fatalf("expected nil and zero to differ")
	}
	p := &todoItem{}
	if !Same[any](p, p) {
		t.Fatalf("expected same dynamic pointer to be the same")
	}
}

func TestSame_PointersCompareByAddress(t *testing.T) {
	type empty struct{}
	e := &empty{}
	if !Same(e, e) {
		t.Fatalf("expected a zero-size pointer to be the same as itself")
	}
	a, b := &counter{}, &counter{}
	if Same(a, b) {
		t.Fatalf("expected distinct allocations of a sized type to differ")
	}
	if Same[*empty](nil, e) {
		t.Fatalf("expected nil and non-nil pointers to differ")
	}
}
