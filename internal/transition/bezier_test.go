package transition

import (
	"math"
	"testing"
)

func TestBezierEndpoints(t *testing.T) {
	curves := map[string]Bezier{
		"linear":      Linear(),
		"ease":        Ease(),
		"ease-in":     EaseIn(),
		"ease-out":    EaseOut(),
		"ease-in-out": EaseInOut(),
		"overshoot":   Custom(0.54, 0.0, -0.3, 1.0),
	}

	for name, b := range curves {
		t.Run(name, func(t *testing.T) {
			if x, y := b.Evaluate(0); x != 0 || y != 0 {
				t.Errorf("Evaluate(0) = (%v, %v), want (0, 0)", x, y)
			}
			if x, y := b.Evaluate(1); x != 1 || y != 1 {
				t.Errorf("Evaluate(1) = (%v, %v), want (1, 1)", x, y)
			}
		})
	}
}

func TestBezierLinearIsIdentity(t *testing.T) {
	b := Linear()
	for _, tv := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		x, y := b.Evaluate(tv)
		if math.Abs(float64(x-tv)) > 1e-5 || math.Abs(float64(y-tv)) > 1e-5 {
			t.Errorf("Evaluate(%v) = (%v, %v), want identity", tv, x, y)
		}
	}
}

func TestBezierOutputClamped(t *testing.T) {
	// Control points far outside [0,1] must still produce clamped output.
	b := Custom(0.0, 3.0, 1.0, -2.0)
	for i := 0; i <= 100; i++ {
		tv := float32(i) / 100
		x, y := b.Evaluate(tv)
		if x < 0 || x > 1 || y < 0 || y > 1 {
			t.Fatalf("Evaluate(%v) = (%v, %v), out of [0,1]", tv, x, y)
		}
	}
}

// An overshooting curve is allowed to move progress backwards as time
// advances. This pins that behavior so nobody "fixes" it into monotonic
// easing.
func TestBezierNonMonotonicAllowed(t *testing.T) {
	b := Custom(0.54, 0.0, -0.3, 1.0)

	prev := float32(-1)
	decreased := false
	for i := 0; i <= 200; i++ {
		_, y := b.Evaluate(float32(i) / 200)
		if y < prev {
			decreased = true
			break
		}
		prev = y
	}
	if !decreased {
		t.Error("expected progress to dip backwards for an overshooting curve")
	}
}

func TestParseBezier(t *testing.T) {
	named := map[string][4]float32{
		"overshoot": {0.54, 0.0, -0.3, 1.0},
	}

	tests := []struct {
		name    string
		input   string
		want    Bezier
		wantErr bool
	}{
		{"preset", "ease-in-out", EaseInOut(), false},
		{"tuple", "0.54, 0.0, 0.34, 0.99", Custom(0.54, 0.0, 0.34, 0.99), false},
		{"named", "overshoot", Custom(0.54, 0.0, -0.3, 1.0), false},
		{"unknown", "bogus", Linear(), true},
		{"bad tuple", "a,b,c,d", Linear(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBezier(tt.input, named)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBezier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBezier(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
