// ABOUTME: Named design tokens (CSS custom properties) for the dashboard stylesheet.
// ABOUTME: Declares the root token set and the Var helper for referencing tokens in rule values.
package theme

import "fmt"

// Token is a named constant declared once at the root scope and referenced
// by name from rule declarations.
type Token struct {
	Name  string
	Value string
}

// Root token names. Every token referenced anywhere in a table must be
// declared under one of these names (or fail validation).
const (
	TokenPrimary            = "primary-color"
	TokenSuccess            = "success-color"
	TokenWarning            = "warning-color"
	TokenDanger             = "danger-color"
	TokenNeutral            = "neutral-color"
	TokenMaintenance        = "maintenance-color"
	TokenBackground         = "background-color"
	TokenCardShadow         = "card-shadow"
	TokenTransitionDuration = "transition-duration"
)

// Var returns a reference to the named token for use in a declaration value,
// e.g. Var(TokenPrimary) == "var(--primary-color)".
func Var(name string) string {
	return fmt.Sprintf("var(--%s)", name)
}

// RootTokens returns the token set used by the fleet dashboard. Color values
// match the fleet's brand palette; the shadow and transition tokens are
// shared by every card surface.
func RootTokens() []Token {
	return []Token{
		{Name: TokenPrimary, Value: "#00A4EF"},
		{Name: TokenSuccess, Value: "#7FBA00"},
		{Name: TokenWarning, Value: "#FFB900"},
		{Name: TokenDanger, Value: "#F25022"},
		{Name: TokenNeutral, Value: "#737373"},
		{Name: TokenMaintenance, Value: "#FF8C00"},
		{Name: TokenBackground, Value: "#f8f9fa"},
		{Name: TokenCardShadow, Value: "0 2px 4px rgba(0, 0, 0, 0.1)"},
		{Name: TokenTransitionDuration, Value: "0.2s"},
	}
}
