// ABOUTME: Closed set of drone display statuses, each carrying exactly one color token.
// ABOUTME: Provides the status-to-color association used by status indicator classes.
package theme

// StatusVariant is one of the closed set of drone display statuses shown on
// the dashboard. Each variant maps to exactly one color token; the mapping
// is total and never changes at runtime.
type StatusVariant int

const (
	StatusIdle StatusVariant = iota
	StatusInTransit
	StatusDelivering
	StatusReturning
	StatusCharging
	StatusMaintenance
)

// Variants returns all status variants in declaration order.
func Variants() []StatusVariant {
	return []StatusVariant{
		StatusIdle,
		StatusInTransit,
		StatusDelivering,
		StatusReturning,
		StatusCharging,
		StatusMaintenance,
	}
}

// String returns the wire name of the variant as reported by the fleet API.
func (v StatusVariant) String() string {
	switch v {
	case StatusIdle:
		return "idle"
	case StatusInTransit:
		return "in_transit"
	case StatusDelivering:
		return "delivering"
	case StatusReturning:
		return "returning"
	case StatusCharging:
		return "charging"
	case StatusMaintenance:
		return "maintenance"
	default:
		return "unknown"
	}
}

// ClassName returns the CSS class used for the variant's status indicator.
func (v StatusVariant) ClassName() string {
	return v.String() + "-status"
}

// VariantFor maps a wire status name to its display variant. Emergency has
// no variant of its own and borrows the returning (danger) styling; unknown
// names report false and fall back to charging (neutral).
func VariantFor(status string) (StatusVariant, bool) {
	switch status {
	case "idle":
		return StatusIdle, true
	case "in_transit":
		return StatusInTransit, true
	case "delivering":
		return StatusDelivering, true
	case "returning":
		return StatusReturning, true
	case "charging":
		return StatusCharging, true
	case "maintenance":
		return StatusMaintenance, true
	case "emergency":
		return StatusReturning, true
	}
	return StatusCharging, false
}

// ColorToken returns the name of the color token associated with the variant.
func (v StatusVariant) ColorToken() string {
	switch v {
	case StatusIdle:
		return TokenSuccess
	case StatusInTransit:
		return TokenPrimary
	case StatusDelivering:
		return TokenWarning
	case StatusReturning:
		return TokenDanger
	case StatusCharging:
		return TokenNeutral
	case StatusMaintenance:
		return TokenMaintenance
	default:
		return TokenNeutral
	}
}
