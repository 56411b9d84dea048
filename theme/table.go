// ABOUTME: Core style table types: declarations, rules, breakpoint layers, and keyframe animations.
// ABOUTME: A Table is defined once, validated at load time, and never mutated afterward.
package theme

// Decl is a single property/value declaration inside a rule.
type Decl struct {
	Property string
	Value    string
}

// Rule binds a selector to an ordered set of declarations. Later declarations
// for the same property win within a rule.
type Rule struct {
	Selector string
	Decls    []Decl
}

// Keyframe is one step of an animation, positioned at a percentage offset.
type Keyframe struct {
	At    int // percent, 0..100
	Decls []Decl
}

// Keyframes is a named animation with its timing parameters. Duration and
// easing live here rather than on the referencing rule so a single
// definition carries the full animation contract.
type Keyframes struct {
	Name     string
	Frames   []Keyframe
	Duration string // e.g. "1s"
	Easing   string // e.g. "linear"
	Repeat   string // e.g. "infinite"
}

// Animation returns the shorthand value referencing this animation,
// e.g. "spin 1s linear infinite".
func (k Keyframes) Animation() string {
	return k.Name + " " + k.Duration + " " + k.Easing + " " + k.Repeat
}

// Breakpoint is an explicit conditional layer over the base rules, applied
// by the renderer when the viewport is at most MaxWidth units wide.
// Breakpoints are layers, not cascade tricks: ResolveAt applies them wider
// first so narrower layers always take precedence where they overlap.
type Breakpoint struct {
	MaxWidth int
	Rules    []Rule
}

// Table is the complete style table for a page: root tokens, base rules,
// breakpoint layers, and keyframe animations. Construct it once, run
// Validate, and treat it as read-only from then on.
type Table struct {
	Tokens      []Token
	Rules       []Rule
	Breakpoints []Breakpoint
	Keyframes   []Keyframes
}

// Rule returns the base rule for a selector, or nil if none is declared.
func (t *Table) Rule(selector string) *Rule {
	for i := range t.Rules {
		if t.Rules[i].Selector == selector {
			return &t.Rules[i]
		}
	}
	return nil
}

// Animation returns the named keyframe animation, or nil if none is declared.
func (t *Table) Animation(name string) *Keyframes {
	for i := range t.Keyframes {
		if t.Keyframes[i].Name == name {
			return &t.Keyframes[i]
		}
	}
	return nil
}
