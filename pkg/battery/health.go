package battery

import (
	"math"

	"github.com/battrack/battrack/pkg/ptr"
)

// Condition thresholds on health percentage, used only when no source
// reported a condition string.
const (
	healthNormalPct  = 80
	healthServicePct = 50
)

// Derive fills computed fields: the health percentage from raw
// capacities and a coarse condition from health thresholds. A
// source-reported value always wins; derivation only fills gaps.
// Pure, no I/O.
func Derive(m Metrics) Metrics {
	if m.HealthPct == nil && m.MaxCapacityMAh != nil && m.DesignCapacityMAh != nil && *m.DesignCapacityMAh > 0 {
		pct := 100 * float64(*m.MaxCapacityMAh) / float64(*m.DesignCapacityMAh)
		m.HealthPct = ptr.To(math.Round(pct*10) / 10)
	}
	if m.Condition == "" && m.HealthPct != nil {
		m.Condition = conditionForHealth(*m.HealthPct)
	}
	return m
}

func conditionForHealth(pct float64) string {
	switch {
	case pct >= healthNormalPct:
		return ConditionNormal
	case pct >= healthServicePct:
		return ConditionService
	default:
		return ConditionReplaceNow
	}
}
