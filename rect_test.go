package tricuspid

import (
	"testing"
)

func TestBoundingBoxOf(t *testing.T) {
	if _, ok := BoundingBoxOf(nil); ok {
		t.Error("empty bounding box reported as valid")
	}
	r, ok := BoundingBoxOf([]Point{Pt(1, 5), Pt(-2, 3), Pt(4, -1)})
	if !ok {
		t.Fatal("bounding box reported as invalid")
	}
	diff(t, Rect{-2, -1, 4, 5}, r)
}

func TestRectSquare(t *testing.T) {
	r := Square(Pt(1, 1), 2)
	diff(t, Rect{-1, -1, 3, 3}, r)
	diff(t, Pt(1, 1), r.Center())
	if !r.Contains(Pt(0, 2)) {
		t.Error("square doesn't contain interior point")
	}
	if r.Contains(Pt(3, 0)) {
		t.Error("square contains point on its open edge")
	}
}

func TestRectAbs(t *testing.T) {
	diff(t, Rect{0, 0, 10, 20}, Rect{10, 20, 0, 0}.Abs())
}
