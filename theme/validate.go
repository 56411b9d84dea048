// ABOUTME: Load-time validation for style tables: token resolution, duplicate detection, breakpoint sanity.
// ABOUTME: Every failure the source format would swallow silently becomes a hard error here.
package theme

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Validate checks the table's definition-time invariants and returns all
// violations joined into a single error, or nil if the table is sound:
//
//   - every token is declared exactly once in the root scope
//   - every var() reference resolves to a declared token
//   - breakpoint conditions are positive, distinct, and reachable
//   - no breakpoint override is entirely shadowed by a wider layer
func (t *Table) Validate() error {
	var errs []error

	declared := make(map[string]bool, len(t.Tokens))
	for _, tok := range t.Tokens {
		if declared[tok.Name] {
			errs = append(errs, &DuplicateTokenError{Token: tok.Name})
			continue
		}
		declared[tok.Name] = true
	}

	// Token values may reference other tokens.
	for _, tok := range t.Tokens {
		for _, ref := range tokenRefs(tok.Value) {
			if !declared[ref] {
				errs = append(errs, &UndefinedTokenError{Token: ref, Selector: ":root", Property: "--" + tok.Name})
			}
		}
	}

	checkRules := func(rules []Rule) {
		for _, r := range rules {
			for _, d := range r.Decls {
				for _, ref := range tokenRefs(d.Value) {
					if !declared[ref] {
						errs = append(errs, &UndefinedTokenError{Token: ref, Selector: r.Selector, Property: d.Property})
					}
				}
			}
		}
	}
	checkRules(t.Rules)
	for _, bp := range t.Breakpoints {
		checkRules(bp.Rules)
	}
	for _, kf := range t.Keyframes {
		for _, frame := range kf.Frames {
			for _, d := range frame.Decls {
				for _, ref := range tokenRefs(d.Value) {
					if !declared[ref] {
						errs = append(errs, &UndefinedTokenError{Token: ref, Selector: "@keyframes " + kf.Name, Property: d.Property})
					}
				}
			}
		}
	}

	errs = append(errs, t.validateBreakpoints()...)

	return errors.Join(errs...)
}

// validateBreakpoints checks breakpoint conditions and cross-layer shadowing.
func (t *Table) validateBreakpoints() []error {
	var errs []error

	seen := make(map[int]bool, len(t.Breakpoints))
	for _, bp := range t.Breakpoints {
		if bp.MaxWidth <= 0 {
			errs = append(errs, &UnreachableOverrideError{MaxWidth: bp.MaxWidth, Reason: "condition matches no viewport"})
			continue
		}
		if seen[bp.MaxWidth] {
			errs = append(errs, &UnreachableOverrideError{MaxWidth: bp.MaxWidth, Reason: "duplicate max-width condition"})
			continue
		}
		seen[bp.MaxWidth] = true
	}

	// Widest to narrowest; a narrower layer whose overrides for a selector
	// all repeat a wider layer's values can never change the outcome.
	ordered := make([]Breakpoint, len(t.Breakpoints))
	copy(ordered, t.Breakpoints)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].MaxWidth > ordered[j].MaxWidth })

	for i, narrow := range ordered {
		for _, r := range narrow.Rules {
			if len(r.Decls) == 0 {
				continue
			}
			for j := 0; j < i; j++ {
				wide := ordered[j]
				if shadowsEntirely(wide, r) {
					errs = append(errs, &UnreachableOverrideError{
						MaxWidth: narrow.MaxWidth,
						Selector: r.Selector,
						Reason:   "identical to the layer at max-width " + strconv.Itoa(wide.MaxWidth),
					})
				}
			}
		}
	}

	return errs
}

// shadowsEntirely reports whether every declaration of r is repeated
// verbatim in the wider layer's rule for the same selector.
func shadowsEntirely(wide Breakpoint, r Rule) bool {
	var wideRule *Rule
	for i := range wide.Rules {
		if wide.Rules[i].Selector == r.Selector {
			wideRule = &wide.Rules[i]
			break
		}
	}
	if wideRule == nil {
		return false
	}
	for _, d := range r.Decls {
		found := false
		for _, wd := range wideRule.Decls {
			if wd.Property == d.Property && wd.Value == d.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// tokenRefs extracts token names from var(--name) references in a value.
// Fallback arguments (var(--name, fallback)) terminate the name at the comma.
func tokenRefs(value string) []string {
	var refs []string
	for {
		i := strings.Index(value, "var(--")
		if i < 0 {
			return refs
		}
		rest := value[i+len("var(--"):]
		end := strings.IndexAny(rest, ",)")
		if end < 0 {
			return refs
		}
		refs = append(refs, strings.TrimSpace(rest[:end]))
		value = rest[end:]
	}
}
