package effects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/driftworks/driftpaper/internal/transition"
)

const testScript = `
transitions = {
	slide_fade = function(input)
		return {
			clip_right = input.progress,
			opacity = input.progress,
		}
	end,

	spin = function(input)
		return {
			rotation = input.time_factor * 3.14,
			radius = 0.5,
			blur = 4,
			blur_tint = { 0.1, 0.2, 0.3, 0.4 },
		}
	end,

	broken = function(input)
		error("boom")
	end,
}
`

func loadScript(t *testing.T, script string) *transition.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "effects.lua")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := transition.NewRegistry()
	if err := Load(path, registry); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return registry
}

func TestLoadRegistersEffects(t *testing.T) {
	registry := loadScript(t, testScript)

	for _, name := range []string{"slide_fade", "spin", "broken"} {
		if _, ok := registry.Lookup(name); !ok {
			t.Errorf("effect %q not registered", name)
		}
	}
}

func TestEffectReceivesInputAndReturnsFields(t *testing.T) {
	registry := loadScript(t, testScript)

	fn, _ := registry.Lookup("slide_fade")
	res, err := fn(transition.EffectInput{Progress: 0.25})
	if err != nil {
		t.Fatalf("effect failed: %v", err)
	}

	if res.ClipRight == nil || *res.ClipRight != 0.25 {
		t.Errorf("clip_right = %v, want 0.25", res.ClipRight)
	}
	if res.Opacity == nil || *res.Opacity != 0.25 {
		t.Errorf("opacity = %v, want 0.25", res.Opacity)
	}
	if res.ClipLeft != nil {
		t.Error("unset field came back non-nil")
	}
}

func TestEffectVectorAndScalarFields(t *testing.T) {
	registry := loadScript(t, testScript)

	fn, _ := registry.Lookup("spin")
	res, err := fn(transition.EffectInput{TimeFactor: 1})
	if err != nil {
		t.Fatalf("effect failed: %v", err)
	}

	if res.Rotation == nil || *res.Rotation < 3.13 || *res.Rotation > 3.15 {
		t.Errorf("rotation = %v, want ~3.14", res.Rotation)
	}
	// A scalar radius fans out to all four corners.
	if res.Radius == nil || *res.Radius != [4]float32{0.5, 0.5, 0.5, 0.5} {
		t.Errorf("radius = %v", res.Radius)
	}
	if res.Blur == nil || *res.Blur != 4 {
		t.Errorf("blur = %v, want 4", res.Blur)
	}
	if res.BlurTint == nil {
		t.Fatal("blur_tint missing")
	}
	if got := (*res.BlurTint)[3]; got < 0.39 || got > 0.41 {
		t.Errorf("blur_tint alpha = %v, want 0.4", got)
	}
}

func TestEffectErrorSurfaces(t *testing.T) {
	registry := loadScript(t, testScript)

	fn, _ := registry.Lookup("broken")
	if _, err := fn(transition.EffectInput{}); err == nil {
		t.Error("script error swallowed")
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	registry := transition.NewRegistry()
	if err := Load(filepath.Join(t.TempDir(), "absent.lua"), registry); err != nil {
		t.Errorf("missing effects file reported as error: %v", err)
	}
}

func TestLoadRejectsScriptWithoutTransitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effects.lua")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(path, transition.NewRegistry()); err == nil {
		t.Error("script without transitions table accepted")
	}
}
