// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: -2}), Vector2D{X: 4, Y: 2}},
		{"sub", Vector2D{X: 3, Y: 4}.Sub(Vector2D{X: 1, Y: -2}), Vector2D{X: 2, Y: 6}},
		{"scale", Vector2D{X: 3, Y: -4}.Scale(0.5), Vector2D{X: 1.5, Y: -2}},
		{"scale_zero", Vector2D{X: 3, Y: -4}.Scale(0), Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVector2D_Length(t *testing.T) {
	if l := (Vector2D{X: 3, Y: 4}).Length(); l != 5 {
		t.Errorf("Expected length 5, got %f", l)
	}
	if l := (Vector2D{}).Length(); l != 0 {
		t.Errorf("Expected zero length, got %f", l)
	}
}

func TestFromAngle(t *testing.T) {
	up := FromAngle(3*math.Pi/2, 10)
	if math.Abs(up.X) > 1e-9 || math.Abs(up.Y+10) > 1e-9 {
		t.Errorf("Expected (0,-10) for an upward heading, got %v", up)
	}
	right := FromAngle(0, 2)
	if math.Abs(right.X-2) > 1e-9 || math.Abs(right.Y) > 1e-9 {
		t.Errorf("Expected (2,0), got %v", right)
	}
}
