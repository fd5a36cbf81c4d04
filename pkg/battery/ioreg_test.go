package battery

import "testing"

const sampleIoregOutput = `+-o AppleSmartBattery  <class AppleSmartBattery, id 0x100000322, registered, matched, active, busy 0 (1 ms), retain 6>
    {
      "TimeRemaining" = 287
      "AvgTimeToEmpty" = 287
      "CycleCount" = 120
      "DesignCapacity" = 5000
      "AppleRawMaxCapacity" = 4500
      "MaxCapacity" = 90
      "FullyCharged" = No
      "DesignCycleCount9C" = 1000
    }
`

func TestParseIoregOutput(t *testing.T) {
	m := parseIoregOutput(sampleIoregOutput)

	if m.Source != SourceIoreg {
		t.Errorf("Source = %q, want %q", m.Source, SourceIoreg)
	}
	if m.CycleCount == nil || *m.CycleCount != 120 {
		t.Errorf("CycleCount = %v, want 120", m.CycleCount)
	}
	if m.DesignCapacityMAh == nil || *m.DesignCapacityMAh != 5000 {
		t.Errorf("DesignCapacityMAh = %v, want 5000", m.DesignCapacityMAh)
	}
	if m.MaxCapacityMAh == nil || *m.MaxCapacityMAh != 4500 {
		t.Errorf("MaxCapacityMAh = %v, want 4500", m.MaxCapacityMAh)
	}
	// MaxCapacity <= 100 is a percentage.
	if m.HealthPct == nil || *m.HealthPct != 90 {
		t.Errorf("HealthPct = %v, want 90", m.HealthPct)
	}
	if m.Condition != "" {
		t.Errorf("Condition = %q, want empty (ioreg has no condition)", m.Condition)
	}
}

func TestParseIoregOutputRawMaxCapacity(t *testing.T) {
	// Intel machines report MaxCapacity in mAh instead of a percentage.
	out := `"MaxCapacity" = 4420
"DesignCapacity" = 5103
"CycleCount" = 301
`
	m := parseIoregOutput(out)

	if m.MaxCapacityMAh == nil || *m.MaxCapacityMAh != 4420 {
		t.Errorf("MaxCapacityMAh = %v, want 4420", m.MaxCapacityMAh)
	}
	if m.HealthPct != nil {
		t.Errorf("HealthPct = %v, want nil", m.HealthPct)
	}
}

func TestParseIoregOutputEmpty(t *testing.T) {
	m := parseIoregOutput("no battery device matched\n")
	if !m.Empty() {
		t.Errorf("Empty() = false, want true for %#v", m)
	}
}
