package battery

import (
	"regexp"
	"strconv"

	"github.com/battrack/battrack/pkg/ptr"
)

var ioregPropRe = regexp.MustCompile(`"([A-Za-z]+)" = (-?\d+)`)

// parseIoregOutput extracts battery fields from `ioreg -r -c
// AppleSmartBattery` output, a flat dump of quoted properties.
// "MaxCapacity" is a percentage on Apple Silicon but raw mAh on older
// Intel machines; values above 100 are treated as mAh.
func parseIoregOutput(out string) Metrics {
	m := Metrics{Source: SourceIoreg}

	for _, match := range ioregPropRe.FindAllStringSubmatch(out, -1) {
		n, err := strconv.Atoi(match[2])
		if err != nil || n < 0 {
			continue
		}
		switch match[1] {
		case "CycleCount":
			m.CycleCount = ptr.To(n)
		case "DesignCapacity":
			m.DesignCapacityMAh = ptr.To(n)
		case "AppleRawMaxCapacity":
			m.MaxCapacityMAh = ptr.To(n)
		case "MaxCapacity":
			if n <= 100 {
				m.HealthPct = ptr.To(float64(n))
			} else if m.MaxCapacityMAh == nil {
				// AppleRawMaxCapacity is more precise when present.
				m.MaxCapacityMAh = ptr.To(n)
			}
		}
	}

	return m
}
