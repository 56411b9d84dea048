// ABOUTME: The complete style table for the fleet dashboard: layout grids, cards, status colors.
// ABOUTME: Single source of the dashboard stylesheet; the web server renders it via CSS().
package theme

// Grid selectors whose column counts change across breakpoints.
const (
	SelMainContent = ".main-content"
	SelDroneList   = ".drone-list"
	SelStatCards   = ".stat-cards"
)

// Dashboard breakpoint widths in px. The narrow layer collapses every grid
// to one column; the wide layer only stacks the two main panels.
const (
	BreakpointWide   = 1200
	BreakpointNarrow = 768
)

// SpinAnimation is the name of the loading indicator's rotation animation.
const SpinAnimation = "spin"

// Dashboard returns the style table for the fleet monitoring dashboard.
// Callers must Validate the table once at startup before rendering it.
func Dashboard() *Table {
	spin := Keyframes{
		Name:     SpinAnimation,
		Duration: "1s",
		Easing:   "linear",
		Repeat:   "infinite",
		Frames: []Keyframe{
			{At: 0, Decls: []Decl{{Property: "transform", Value: "rotate(0deg)"}}},
			{At: 100, Decls: []Decl{{Property: "transform", Value: "rotate(360deg)"}}},
		},
	}

	t := &Table{
		Tokens:    RootTokens(),
		Keyframes: []Keyframes{spin},
		Rules: []Rule{
			{Selector: "body", Decls: []Decl{
				{Property: "margin", Value: "0"},
				{Property: "font-family", Value: "'Inter', -apple-system, BlinkMacSystemFont, sans-serif"},
				{Property: "background-color", Value: Var(TokenBackground)},
				{Property: "color", Value: "#1a1a1a"},
			}},
			{Selector: ".app-container", Decls: []Decl{
				{Property: "min-height", Value: "100vh"},
				{Property: "display", Value: "flex"},
				{Property: "flex-direction", Value: "column"},
			}},
			{Selector: ".header", Decls: []Decl{
				{Property: "background-color", Value: "#ffffff"},
				{Property: "box-shadow", Value: Var(TokenCardShadow)},
				{Property: "padding", Value: "1rem 2rem"},
			}},
			{Selector: ".header-content", Decls: []Decl{
				{Property: "display", Value: "flex"},
				{Property: "justify-content", Value: "space-between"},
				{Property: "align-items", Value: "center"},
			}},
			{Selector: ".header-title", Decls: []Decl{
				{Property: "margin", Value: "0"},
				{Property: "font-size", Value: "1.5rem"},
				{Property: "font-weight", Value: "600"},
				{Property: "color", Value: Var(TokenPrimary)},
			}},
			{Selector: ".header-timestamp", Decls: []Decl{
				{Property: "margin", Value: "0"},
				{Property: "font-size", Value: "0.875rem"},
				{Property: "color", Value: Var(TokenNeutral)},
			}},
			{Selector: SelMainContent, Decls: []Decl{
				{Property: "display", Value: "grid"},
				{Property: "grid-template-columns", Value: "2fr 1fr"},
				{Property: "gap", Value: "1.5rem"},
				{Property: "padding", Value: "1.5rem 2rem"},
				{Property: "flex", Value: "1"},
			}},
			{Selector: ".left-panel", Decls: []Decl{
				{Property: "display", Value: "flex"},
				{Property: "flex-direction", Value: "column"},
				{Property: "gap", Value: "1.5rem"},
			}},
			{Selector: ".right-panel", Decls: []Decl{
				{Property: "display", Value: "flex"},
				{Property: "flex-direction", Value: "column"},
				{Property: "gap", Value: "1.5rem"},
			}},
			{Selector: ".section-title", Decls: []Decl{
				{Property: "margin", Value: "0 0 1rem 0"},
				{Property: "font-size", Value: "1.125rem"},
				{Property: "font-weight", Value: "600"},
			}},
			{Selector: ".map-container", Decls: []Decl{
				{Property: "background-color", Value: "#ffffff"},
				{Property: "border-radius", Value: "8px"},
				{Property: "box-shadow", Value: Var(TokenCardShadow)},
				{Property: "padding", Value: "1rem"},
			}},
			{Selector: ".map-header", Decls: []Decl{
				{Property: "display", Value: "flex"},
				{Property: "justify-content", Value: "space-between"},
				{Property: "align-items", Value: "baseline"},
			}},
			{Selector: ".drone-section", Decls: []Decl{
				{Property: "background-color", Value: "#ffffff"},
				{Property: "border-radius", Value: "8px"},
				{Property: "box-shadow", Value: Var(TokenCardShadow)},
				{Property: "padding", Value: "1rem"},
			}},
			{Selector: SelDroneList, Decls: []Decl{
				{Property: "display", Value: "grid"},
				{Property: "grid-template-columns", Value: "repeat(3, 1fr)"},
				{Property: "gap", Value: "1rem"},
				{Property: "max-height", Value: "24rem"},
				{Property: "overflow-y", Value: "auto"},
			}},
			{Selector: ".drone-card", Decls: []Decl{
				{Property: "background-color", Value: "#ffffff"},
				{Property: "border", Value: "1px solid #e9ecef"},
				{Property: "border-radius", Value: "8px"},
				{Property: "padding", Value: "1rem"},
				{Property: "box-shadow", Value: Var(TokenCardShadow)},
				{Property: "transition", Value: "transform " + Var(TokenTransitionDuration) + ", box-shadow " + Var(TokenTransitionDuration)},
			}},
			{Selector: ".drone-card:hover", Decls: []Decl{
				{Property: "transform", Value: "translateY(-2px)"},
				{Property: "box-shadow", Value: "0 4px 8px rgba(0, 0, 0, 0.15)"},
			}},
			{Selector: ".drone-title", Decls: []Decl{
				{Property: "margin", Value: "0 0 0.5rem 0"},
				{Property: "font-size", Value: "1rem"},
				{Property: "font-weight", Value: "600"},
			}},
			{Selector: ".drone-details", Decls: []Decl{
				{Property: "display", Value: "flex"},
				{Property: "flex-direction", Value: "column"},
				{Property: "gap", Value: "0.25rem"},
				{Property: "font-size", Value: "0.875rem"},
			}},
			{Selector: ".drone-battery", Decls: []Decl{
				{Property: "color", Value: Var(TokenNeutral)},
			}},
			{Selector: ".low-battery", Decls: []Decl{
				{Property: "color", Value: Var(TokenDanger)},
				{Property: "font-weight", Value: "600"},
			}},
			{Selector: ".maintenance-warning", Decls: []Decl{
				{Property: "color", Value: Var(TokenWarning)},
				{Property: "font-weight", Value: "600"},
			}},
			{Selector: ".stats-panel", Decls: []Decl{
				{Property: "background-color", Value: "#ffffff"},
				{Property: "border-radius", Value: "8px"},
				{Property: "box-shadow", Value: Var(TokenCardShadow)},
				{Property: "padding", Value: "1rem"},
			}},
			{Selector: SelStatCards, Decls: []Decl{
				{Property: "display", Value: "grid"},
				{Property: "grid-template-columns", Value: "repeat(2, 1fr)"},
				{Property: "gap", Value: "1rem"},
			}},
			{Selector: ".stat-card", Decls: []Decl{
				{Property: "background-color", Value: Var(TokenBackground)},
				{Property: "border-radius", Value: "8px"},
				{Property: "padding", Value: "1rem"},
				{Property: "text-align", Value: "center"},
				{Property: "transition", Value: "transform " + Var(TokenTransitionDuration)},
			}},
			{Selector: ".stat-card:hover", Decls: []Decl{
				{Property: "transform", Value: "translateY(-2px)"},
			}},
			{Selector: ".stat-title", Decls: []Decl{
				{Property: "margin", Value: "0"},
				{Property: "font-size", Value: "0.8125rem"},
				{Property: "font-weight", Value: "500"},
				{Property: "color", Value: Var(TokenNeutral)},
				{Property: "text-transform", Value: "uppercase"},
			}},
			{Selector: ".stat-value", Decls: []Decl{
				{Property: "margin", Value: "0.25rem 0 0 0"},
				{Property: "font-size", Value: "1.5rem"},
				{Property: "font-weight", Value: "700"},
				{Property: "color", Value: Var(TokenPrimary)},
			}},
			{Selector: ".battery-gauge-container", Decls: []Decl{
				{Property: "margin-top", Value: "1rem"},
			}},
			{Selector: ".weather-panel", Decls: []Decl{
				{Property: "background-color", Value: "#ffffff"},
				{Property: "border-radius", Value: "8px"},
				{Property: "box-shadow", Value: Var(TokenCardShadow)},
				{Property: "padding", Value: "1rem"},
			}},
			{Selector: ".weather-info", Decls: []Decl{
				{Property: "display", Value: "flex"},
				{Property: "flex-direction", Value: "column"},
				{Property: "gap", Value: "0.5rem"},
				{Property: "font-size", Value: "0.875rem"},
			}},
			{Selector: ".flight-status", Decls: []Decl{
				{Property: "font-weight", Value: "600"},
			}},
			{Selector: ".error-message", Decls: []Decl{
				{Property: "color", Value: Var(TokenDanger)},
				{Property: "padding", Value: "1rem"},
				{Property: "text-align", Value: "center"},
			}},
			{Selector: ".loading-spinner", Decls: []Decl{
				{Property: "width", Value: "24px"},
				{Property: "height", Value: "24px"},
				{Property: "margin", Value: "1rem auto"},
				{Property: "border", Value: "3px solid #e9ecef"},
				{Property: "border-top-color", Value: Var(TokenPrimary)},
				{Property: "border-radius", Value: "50%"},
				{Property: "animation", Value: spin.Animation()},
			}},
			{Selector: "::-webkit-scrollbar", Decls: []Decl{
				{Property: "width", Value: "8px"},
			}},
			{Selector: "::-webkit-scrollbar-track", Decls: []Decl{
				{Property: "background", Value: Var(TokenBackground)},
			}},
			{Selector: "::-webkit-scrollbar-thumb", Decls: []Decl{
				{Property: "background", Value: "#c1c1c1"},
				{Property: "border-radius", Value: "4px"},
			}},
			{Selector: "::-webkit-scrollbar-thumb:hover", Decls: []Decl{
				{Property: "background", Value: Var(TokenNeutral)},
			}},
		},
		Breakpoints: []Breakpoint{
			{MaxWidth: BreakpointWide, Rules: []Rule{
				{Selector: SelMainContent, Decls: []Decl{
					{Property: "grid-template-columns", Value: "1fr"},
				}},
				{Selector: SelDroneList, Decls: []Decl{
					{Property: "grid-template-columns", Value: "repeat(2, 1fr)"},
				}},
			}},
			{MaxWidth: BreakpointNarrow, Rules: []Rule{
				{Selector: SelMainContent, Decls: []Decl{
					{Property: "padding", Value: "1rem"},
				}},
				{Selector: SelDroneList, Decls: []Decl{
					{Property: "grid-template-columns", Value: "1fr"},
				}},
				{Selector: SelStatCards, Decls: []Decl{
					{Property: "grid-template-columns", Value: "1fr"},
				}},
			}},
		},
	}

	// One status indicator class per display variant.
	for _, v := range Variants() {
		t.Rules = append(t.Rules, Rule{
			Selector: "." + v.ClassName(),
			Decls: []Decl{
				{Property: "color", Value: Var(v.ColorToken())},
				{Property: "font-weight", Value: "600"},
			},
		})
	}

	return t
}
