package battery

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/battrack/battrack/pkg/ptr"
)

// parseProfilerOutput extracts battery fields from `system_profiler
// SPPowerDataType` output. The format is line-oriented "Label: value"
// pairs at varying indentation. Unmatched lines are ignored; malformed
// values leave the field unset rather than failing the whole parse.
func parseProfilerOutput(out string) Metrics {
	m := Metrics{Source: SourceProfiler}

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		label, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(label)) {
		case "cycle count":
			m.CycleCount = parseCount(value)
		case "full charge capacity (mah)":
			m.MaxCapacityMAh = parseCount(value)
		case "design capacity (mah)":
			m.DesignCapacityMAh = parseCount(value)
		case "charge remaining (mah)":
			m.ChargeRemainingMAh = parseCount(value)
		case "maximum capacity":
			// Reported as a percentage, e.g. "Maximum Capacity: 97%".
			if pct := parsePercent(value); pct != nil {
				m.HealthPct = pct
			}
		case "condition":
			if value != "" {
				m.Condition = value
			}
		}
	}

	return m
}

// parseCount parses a non-negative integer, tolerating trailing text.
// Negative or non-numeric values are discarded.
func parseCount(s string) *int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return nil
	}
	return ptr.To(n)
}

func parsePercent(s string) *float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	pct, err := strconv.ParseFloat(s, 64)
	if err != nil || pct < 0 || pct > 100 {
		return nil
	}
	return ptr.To(pct)
}
