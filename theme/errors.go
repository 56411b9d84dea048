// ABOUTME: Typed validation errors for style table definition-time failures.
// ABOUTME: Undefined references, duplicate tokens, and unreachable breakpoint overrides are hard errors.
package theme

import "fmt"

// UndefinedTokenError reports a var() reference to a token that is never
// declared in the root scope. Browsers degrade silently on this; the table
// refuses to load instead.
type UndefinedTokenError struct {
	Token    string
	Selector string
	Property string
}

func (e *UndefinedTokenError) Error() string {
	return fmt.Sprintf("undefined token %q referenced by %s { %s }", e.Token, e.Selector, e.Property)
}

// DuplicateTokenError reports a token declared more than once in the root scope.
type DuplicateTokenError struct {
	Token string
}

func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("token %q declared more than once", e.Token)
}

// UnreachableOverrideError reports a breakpoint rule that can never change
// the rendered outcome: either its condition is impossible, or every one of
// its declarations is identical to a wider layer's for the same selector.
type UnreachableOverrideError struct {
	MaxWidth int
	Selector string
	Reason   string
}

func (e *UnreachableOverrideError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("unreachable breakpoint max-width %d: %s", e.MaxWidth, e.Reason)
	}
	return fmt.Sprintf("unreachable override at max-width %d for %s: %s", e.MaxWidth, e.Selector, e.Reason)
}
