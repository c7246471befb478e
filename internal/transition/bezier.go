package transition

// Bezier is a cubic easing curve anchored at (0,0) and (1,1), described by
// its two control points. Evaluate maps linear elapsed time onto the curve.
type Bezier struct {
	X1, Y1, X2, Y2 float32
}

func Linear() Bezier    { return Bezier{0.0, 0.0, 1.0, 1.0} }
func Ease() Bezier      { return Bezier{0.25, 0.1, 0.25, 1.0} }
func EaseIn() Bezier    { return Bezier{0.42, 0.0, 1.0, 1.0} }
func EaseOut() Bezier   { return Bezier{0.0, 0.0, 0.58, 1.0} }
func EaseInOut() Bezier { return Bezier{0.42, 0.0, 0.58, 1.0} }

func Custom(x1, y1, x2, y2 float32) Bezier {
	return Bezier{x1, y1, x2, y2}
}

// Evaluate returns (timeFactor, progress): the Bernstein polynomial in x and
// y at parameter t, each clamped to [0,1]. Overshooting control points can
// make progress dip backwards over time; that is allowed, only the range is
// clamped.
func (b Bezier) Evaluate(t float32) (float32, float32) {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t
	t3 := t2 * t

	x := 3.0*mt2*t*b.X1 + 3.0*mt*t2*b.X2 + t3
	y := 3.0*mt2*t*b.Y1 + 3.0*mt*t2*b.Y2 + t3

	return clamp01(x), clamp01(y)
}

func clamp01(v float32) float32 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
