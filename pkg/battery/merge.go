package battery

// merge reconciles the two extractions. Primary values always win;
// fallback values only fill fields the primary did not report. The
// source tag reflects which side actually contributed.
func merge(primary, fallback Metrics) Metrics {
	if primary.Empty() {
		return fallback
	}

	out := primary
	filled := false

	if out.CycleCount == nil && fallback.CycleCount != nil {
		out.CycleCount = fallback.CycleCount
		filled = true
	}
	if out.MaxCapacityMAh == nil && fallback.MaxCapacityMAh != nil {
		out.MaxCapacityMAh = fallback.MaxCapacityMAh
		filled = true
	}
	if out.DesignCapacityMAh == nil && fallback.DesignCapacityMAh != nil {
		out.DesignCapacityMAh = fallback.DesignCapacityMAh
		filled = true
	}
	if out.ChargeRemainingMAh == nil && fallback.ChargeRemainingMAh != nil {
		out.ChargeRemainingMAh = fallback.ChargeRemainingMAh
		filled = true
	}
	if out.HealthPct == nil && fallback.HealthPct != nil {
		out.HealthPct = fallback.HealthPct
		filled = true
	}
	if out.Condition == "" && fallback.Condition != "" {
		out.Condition = fallback.Condition
		filled = true
	}

	if filled {
		out.Source = SourceMerged
	}
	return out
}
