package analytics

const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

// RiskPolicy holds the inclusive lower bounds for the High and Medium
// tiers. Two policies are in force at different endpoints and are kept
// as separate named configurations on purpose.
type RiskPolicy struct {
	High   int
	Medium int
}

var (
	// SummaryRiskPolicy drives the per-location risk listing and the
	// dashboard bundle.
	SummaryRiskPolicy = RiskPolicy{High: 15, Medium: 5}
	// RegionRiskPolicy drives the city-wide region coloring.
	RegionRiskPolicy = RiskPolicy{High: 20, Medium: 5}
)

func (p RiskPolicy) Classify(count int) string {
	switch {
	case count >= p.High:
		return LevelHigh
	case count >= p.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}
