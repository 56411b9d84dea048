// ABOUTME: Tests for CSS rendering and the loading spinner keyframe animation.
// ABOUTME: Covers determinism, token emission, media block ordering, and animation timing.
package theme_test

import (
	"strings"
	"testing"

	"github.com/aeriform/dronewatch/theme"
)

func TestSpinAnimationShape(t *testing.T) {
	table := theme.Dashboard()
	spin := table.Animation(theme.SpinAnimation)
	if spin == nil {
		t.Fatal("dashboard has no spin animation")
	}

	if spin.Duration != "1s" {
		t.Errorf("Duration = %q, want 1s", spin.Duration)
	}
	if spin.Easing != "linear" {
		t.Errorf("Easing = %q, want linear", spin.Easing)
	}
	if spin.Repeat != "infinite" {
		t.Errorf("Repeat = %q, want infinite", spin.Repeat)
	}

	// Exactly one non-trivial frame: the end state at 360 degrees.
	nonTrivial := 0
	for _, frame := range spin.Frames {
		for _, d := range frame.Decls {
			if d.Property == "transform" && d.Value != "rotate(0deg)" {
				nonTrivial++
				if frame.At != 100 {
					t.Errorf("non-trivial frame at %d%%, want 100%%", frame.At)
				}
				if d.Value != "rotate(360deg)" {
					t.Errorf("end transform = %q, want rotate(360deg)", d.Value)
				}
			}
		}
	}
	if nonTrivial != 1 {
		t.Errorf("expected exactly 1 non-trivial keyframe, got %d", nonTrivial)
	}
}

func TestCSSIsDeterministic(t *testing.T) {
	a := theme.Dashboard().CSS()
	b := theme.Dashboard().CSS()
	if a != b {
		t.Fatal("CSS() output differs between renders of the same table")
	}
}

func TestCSSEmitsRootTokens(t *testing.T) {
	css := theme.Dashboard().CSS()

	if !strings.HasPrefix(css, ":root {") {
		t.Error("stylesheet does not start with the :root token block")
	}
	for _, tok := range theme.RootTokens() {
		want := "--" + tok.Name + ": " + tok.Value + ";"
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing token declaration %q", want)
		}
	}
}

func TestCSSMediaBlocksWidestFirst(t *testing.T) {
	css := theme.Dashboard().CSS()

	wide := strings.Index(css, "@media (max-width: 1200px)")
	narrow := strings.Index(css, "@media (max-width: 768px)")
	if wide < 0 || narrow < 0 {
		t.Fatalf("missing media blocks: wide at %d, narrow at %d", wide, narrow)
	}
	if wide > narrow {
		t.Error("narrow media block rendered before wide; narrower layers must come last to win")
	}
}

func TestCSSEmitsKeyframesAndSpinnerReference(t *testing.T) {
	css := theme.Dashboard().CSS()

	if !strings.Contains(css, "@keyframes spin") {
		t.Error("stylesheet missing @keyframes spin")
	}
	if !strings.Contains(css, "animation: spin 1s linear infinite;") {
		t.Error("loading spinner does not reference the spin animation")
	}
	if !strings.Contains(css, "rotate(360deg)") {
		t.Error("spin animation missing 360deg end state")
	}
}

func TestCSSEmitsScrollbarPseudoElements(t *testing.T) {
	css := theme.Dashboard().CSS()
	for _, selector := range []string{
		"::-webkit-scrollbar",
		"::-webkit-scrollbar-track",
		"::-webkit-scrollbar-thumb",
		"::-webkit-scrollbar-thumb:hover",
	} {
		if !strings.Contains(css, selector+" {") {
			t.Errorf("stylesheet missing %s rule", selector)
		}
	}
}

func TestCSSHoverTransition(t *testing.T) {
	css := theme.Dashboard().CSS()
	if !strings.Contains(css, ".drone-card:hover {") {
		t.Error("stylesheet missing drone card hover rule")
	}
	if !strings.Contains(css, "transition: transform var(--transition-duration)") {
		t.Error("drone card transition does not use the transition-duration token")
	}
}
