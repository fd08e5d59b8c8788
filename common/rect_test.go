package common

import "testing"

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"contained", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching_edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"left", Rect{X: -6, Y: 0, Width: 5, Height: 5}, false},
		{"below", Rect{X: 0, Y: 11, Width: 5, Height: 5}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := base.Intersects(c.other); got != c.want {
				t.Fatalf("Intersects(%+v) = %v, want %v", c.other, got, c.want)
			}
			if got := c.other.Intersects(base); got != c.want {
				t.Fatalf("Intersects is not symmetric for %+v", c.other)
			}
		})
	}
}

func TestFrames(t *testing.T) {
	cases := map[float64]int{0: 1, 0.5: 30, 1: 60, 3: 180}
	for sec, want := range cases {
		if got := Frames(sec); got != want {
			t.Fatalf("Frames(%v) = %d, want %d", sec, got, want)
		}
	}
}
