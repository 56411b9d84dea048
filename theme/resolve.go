// ABOUTME: Resolves effective declarations for a selector at a given viewport width.
// ABOUTME: Applies breakpoint layers over the base rule, wider layers first, narrower last.
package theme

import "sort"

// ResolveAt returns the effective declarations for a selector when the
// viewport is width units wide. The base rule applies first, then every
// breakpoint layer whose condition matches (width <= MaxWidth), ordered
// widest to narrowest so narrower layers win where they overlap. Property
// order follows first assignment; later layers overwrite values in place.
//
// This is the layer semantics the browser applies through source order;
// resolving it here makes the layering testable without a renderer.
func (t *Table) ResolveAt(width int, selector string) []Decl {
	var order []string
	values := make(map[string]string)

	apply := func(r *Rule) {
		if r == nil {
			return
		}
		for _, d := range r.Decls {
			if _, ok := values[d.Property]; !ok {
				order = append(order, d.Property)
			}
			values[d.Property] = d.Value
		}
	}

	apply(t.Rule(selector))

	matched := make([]Breakpoint, 0, len(t.Breakpoints))
	for _, bp := range t.Breakpoints {
		if width <= bp.MaxWidth {
			matched = append(matched, bp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].MaxWidth > matched[j].MaxWidth })

	for _, bp := range matched {
		for i := range bp.Rules {
			if bp.Rules[i].Selector == selector {
				apply(&bp.Rules[i])
			}
		}
	}

	if len(order) == 0 {
		return nil
	}
	decls := make([]Decl, 0, len(order))
	for _, prop := range order {
		decls = append(decls, Decl{Property: prop, Value: values[prop]})
	}
	return decls
}

// ResolveToken returns the value of a declared token and whether it exists.
func (t *Table) ResolveToken(name string) (string, bool) {
	for _, tok := range t.Tokens {
		if tok.Name == name {
			return tok.Value, true
		}
	}
	return "", false
}
