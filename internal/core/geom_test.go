package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(5, 5, 10, 10),
			b:        NewBox(10, 10, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBox(5, 5, 10, 10),
			b:        NewBox(20, 5, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBox(5, 5, 10, 10),
			b:        NewBox(5, 20, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewBox(5, 5, 10, 10),
			b:        NewBox(15, 5, 10, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(10, 10, 20, 20),
			b:        NewBox(10, 10, 2, 2),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxOverlap(t *testing.T) {
	a := NewBox(10, 10, 10, 10) // 5..15
	b := NewBox(14, 12, 4, 4)   // 12..16, 10..14

	dx, dy := a.Overlap(b)
	if math.Abs(dx-3) > 1e-9 {
		t.Errorf("dx = %f, expected 3", dx)
	}
	if math.Abs(dy-4) > 1e-9 {
		t.Errorf("dy = %f, expected 4", dy)
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(50, 20, 10, 4)

	if b.Left() != 45 || b.Right() != 55 {
		t.Errorf("horizontal edges = (%f, %f), expected (45, 55)", b.Left(), b.Right())
	}
	if b.Top() != 18 || b.Bottom() != 22 {
		t.Errorf("vertical edges = (%f, %f), expected (18, 22)", b.Top(), b.Bottom())
	}
	if !b.Contains(V(45, 18)) {
		t.Error("top-left corner should be inside")
	}
	if b.Contains(V(55, 22)) {
		t.Error("bottom-right corner should be exclusive")
	}
}

func TestCircleOverlap(t *testing.T) {
	if !CirclesOverlap(V(0, 0), 1, V(1.5, 0), 1) {
		t.Error("circles 1.5 apart with radii 1 should overlap")
	}
	if CirclesOverlap(V(0, 0), 1, V(2, 0), 1) {
		t.Error("touching circles should not overlap")
	}
	if !CircleBoxOverlap(V(10, 4), 1.5, NewBox(10, 6, 10, 2)) {
		t.Error("circle above box within radius should overlap")
	}
	if CircleBoxOverlap(V(10, 0), 1.5, NewBox(10, 6, 10, 2)) {
		t.Error("circle far above box should not overlap")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return 5")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return 10")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned an unexpected value")
	}
}
