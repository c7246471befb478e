package transition

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names a transition. The built-in set is closed; any other name is a
// custom kind resolved against the effect registry when its transform is
// computed.
type Kind string

const (
	KindNone   Kind = "none"
	KindSimple Kind = "simple"
	KindFade   Kind = "fade"
	KindLeft   Kind = "left"
	KindRight  Kind = "right"
	KindTop    Kind = "top"
	KindBottom Kind = "bottom"
	KindCenter Kind = "center"
	KindOuter  Kind = "outer"
	KindAny    Kind = "any"
	KindRandom Kind = "random"
	KindWipe   Kind = "wipe"
	KindWave   Kind = "wave"
	KindGrow   Kind = "grow"
)

// builtinKinds is the pool Random draws from when no allow-list restricts
// it. None and Random itself are excluded; reserved kinds render as identity
// but stay eligible, matching their place in the enumeration.
var builtinKinds = []Kind{
	KindSimple, KindFade, KindLeft, KindRight, KindTop, KindBottom,
	KindCenter, KindOuter, KindAny, KindWipe, KindWave, KindGrow,
}

// ParseKind maps a name onto a Kind. Unrecognized names become custom kinds
// rather than errors; resolution failures surface later as identity
// transforms.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindNone, KindSimple, KindFade, KindLeft, KindRight, KindTop,
		KindBottom, KindCenter, KindOuter, KindAny, KindRandom,
		KindWipe, KindWave, KindGrow:
		return k
	default:
		return k
	}
}

// IsBuiltin reports whether k is part of the closed built-in set.
func (k Kind) IsBuiltin() bool {
	switch k {
	case KindNone, KindSimple, KindFade, KindLeft, KindRight, KindTop,
		KindBottom, KindCenter, KindOuter, KindAny, KindRandom,
		KindWipe, KindWave, KindGrow:
		return true
	}
	return false
}

// Spec is the immutable description of one requested transition.
type Spec struct {
	Kind     Kind
	Duration uint64 // milliseconds
	// FPS caps the tick rate. 0 means no cap: the timer reschedules with
	// zero delay and the display paces the animation.
	FPS    uint64
	Bezier Bezier
	// EnabledKinds restricts which concrete kind Random may resolve to.
	// nil means unrestricted; empty means Random degrades to None.
	EnabledKinds []Kind
}

// ParseBezier accepts a preset name, a name registered in named, or a
// "x1,y1,x2,y2" tuple.
func ParseBezier(s string, named map[string][4]float32) (Bezier, error) {
	if parts := strings.Split(s, ","); len(parts) == 4 {
		var vals [4]float32
		ok := true
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
			if err != nil {
				ok = false
				break
			}
			vals[i] = float32(f)
		}
		if ok {
			return Custom(vals[0], vals[1], vals[2], vals[3]), nil
		}
	}

	switch s {
	case "linear":
		return Linear(), nil
	case "ease":
		return Ease(), nil
	case "ease-in":
		return EaseIn(), nil
	case "ease-out":
		return EaseOut(), nil
	case "ease-in-out":
		return EaseInOut(), nil
	}

	if c, ok := named[s]; ok {
		return Custom(c[0], c[1], c[2], c[3]), nil
	}

	return Linear(), fmt.Errorf("unknown bezier %q", s)
}
