package battery

// Source identifies which extraction method produced a set of metrics.
type Source string

const (
	// SourceProfiler means all fields came from system_profiler.
	SourceProfiler Source = "profiler"
	// SourceIoreg means all fields came from the ioreg registry dump.
	SourceIoreg Source = "ioreg"
	// SourceMerged means the profiler values were gap-filled from ioreg.
	SourceMerged Source = "merged"
)

// Condition strings as reported by macOS. When no source reports one,
// a coarse condition is derived from the health percentage instead.
const (
	ConditionNormal      = "Normal"
	ConditionService     = "Service Recommended"
	ConditionReplaceSoon = "Replace Soon"
	ConditionReplaceNow  = "Replace Now"
	ConditionUnknown     = "Unknown"
)

// Metrics is one battery health snapshot. Capacities and charge are in
// mAh. A nil pointer means the field was not reported by any source;
// unknown fields are stored as NULL, never as zero.
type Metrics struct {
	CycleCount         *int     `json:"cycle_count"`
	MaxCapacityMAh     *int     `json:"max_capacity_mah"`
	DesignCapacityMAh  *int     `json:"design_capacity_mah"`
	ChargeRemainingMAh *int     `json:"charge_remaining_mah"`
	HealthPct          *float64 `json:"health_percentage"`
	Condition          string   `json:"condition,omitempty"`
	Source             Source   `json:"source"`
}

// Empty reports whether nothing at all was parsed from the source output.
func (m Metrics) Empty() bool {
	return m.CycleCount == nil &&
		m.MaxCapacityMAh == nil &&
		m.DesignCapacityMAh == nil &&
		m.ChargeRemainingMAh == nil &&
		m.HealthPct == nil &&
		m.Condition == ""
}
