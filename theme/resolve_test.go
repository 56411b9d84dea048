// ABOUTME: Tests for viewport-width resolution of the dashboard's responsive grid layers.
// ABOUTME: Covers base layout, the wide and narrow breakpoints, and widths between them.
package theme_test

import (
	"testing"

	"github.com/aeriform/dronewatch/theme"
)

func declValue(decls []theme.Decl, property string) string {
	for _, d := range decls {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

func TestBreakpointsAreStrictlyOrdered(t *testing.T) {
	if theme.BreakpointNarrow >= theme.BreakpointWide {
		t.Fatalf("breakpoints out of order: narrow %d >= wide %d", theme.BreakpointNarrow, theme.BreakpointWide)
	}
}

func TestResolveAboveBothBreakpoints(t *testing.T) {
	table := theme.Dashboard()
	const width = 1900

	tests := []struct {
		selector string
		want     string
	}{
		{theme.SelMainContent, "2fr 1fr"},
		{theme.SelDroneList, "repeat(3, 1fr)"},
		{theme.SelStatCards, "repeat(2, 1fr)"},
	}
	for _, tt := range tests {
		got := declValue(table.ResolveAt(width, tt.selector), "grid-template-columns")
		if got != tt.want {
			t.Errorf("ResolveAt(%d, %s) columns = %q, want base %q", width, tt.selector, got, tt.want)
		}
	}
}

func TestResolveBetweenBreakpoints(t *testing.T) {
	table := theme.Dashboard()
	const width = 1024 // wide layer applies, narrow does not

	if got := declValue(table.ResolveAt(width, theme.SelMainContent), "grid-template-columns"); got != "1fr" {
		t.Errorf("main content columns at %d = %q, want single column", width, got)
	}
	if got := declValue(table.ResolveAt(width, theme.SelDroneList), "grid-template-columns"); got != "repeat(2, 1fr)" {
		t.Errorf("drone list columns at %d = %q, want two columns", width, got)
	}
	// The stat card grid is only overridden by the narrow layer.
	if got := declValue(table.ResolveAt(width, theme.SelStatCards), "grid-template-columns"); got != "repeat(2, 1fr)" {
		t.Errorf("stat cards columns at %d = %q, want base two columns", width, got)
	}
}

func TestResolveBelowBothBreakpoints(t *testing.T) {
	table := theme.Dashboard()
	const width = 600

	for _, selector := range []string{theme.SelMainContent, theme.SelDroneList, theme.SelStatCards} {
		got := declValue(table.ResolveAt(width, selector), "grid-template-columns")
		if got != "1fr" {
			t.Errorf("%s columns at %d = %q, want single column", selector, width, got)
		}
	}
}

// Each narrower breakpoint must restrict column counts at least as much as
// the wider one for the same component.
func TestNarrowLayerNeverWidensGrids(t *testing.T) {
	table := theme.Dashboard()
	columns := map[string]int{"1fr": 1, "repeat(2, 1fr)": 2, "repeat(3, 1fr)": 3}

	for _, selector := range []string{theme.SelMainContent, theme.SelDroneList, theme.SelStatCards} {
		atWide := columns[declValue(table.ResolveAt(theme.BreakpointWide, selector), "grid-template-columns")]
		atNarrow := columns[declValue(table.ResolveAt(theme.BreakpointNarrow, selector), "grid-template-columns")]
		if atWide == 0 || atNarrow == 0 {
			t.Fatalf("%s resolved to an unexpected column spec", selector)
		}
		if atNarrow > atWide {
			t.Errorf("%s has %d columns at narrow but %d at wide", selector, atNarrow, atWide)
		}
	}
}

func TestResolveUnknownSelector(t *testing.T) {
	table := theme.Dashboard()
	if decls := table.ResolveAt(1024, ".does-not-exist"); decls != nil {
		t.Errorf("expected nil decls for unknown selector, got %v", decls)
	}
}

func TestResolvePreservesBaseDeclsUnderOverride(t *testing.T) {
	table := theme.Dashboard()
	decls := table.ResolveAt(600, theme.SelMainContent)

	if got := declValue(decls, "display"); got != "grid" {
		t.Errorf("display = %q, want grid (base decl lost under overrides)", got)
	}
	if got := declValue(decls, "padding"); got != "1rem" {
		t.Errorf("padding = %q, want narrow override 1rem", got)
	}
}
