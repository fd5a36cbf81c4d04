package battery

import (
	"context"
	"errors"
	"os/exec"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoData indicates that neither source produced a usable cycle count.
// It is a soft failure: the attempt completed, there is just nothing to
// record this cycle.
var ErrNoData = errors.New("no battery data from any source")

// DefaultTimeout bounds each external command. system_profiler can take
// a few seconds on a loaded machine; it should never take this long.
const DefaultTimeout = 10 * time.Second

// runner executes an external command and returns its stdout.
type runner func(ctx context.Context, name string, args ...string) (string, error)

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Extractor reads battery health metrics from system inspection
// commands: system_profiler SPPowerDataType as the authoritative source,
// ioreg -r -c AppleSmartBattery as the fallback. Both are read-only.
type Extractor struct {
	timeout time.Duration
	run     runner
}

// NewExtractor returns an Extractor with the given per-command timeout.
// Non-positive timeouts fall back to DefaultTimeout.
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{timeout: timeout, run: runCommand}
}

// Extract runs the primary command and, if it fails or leaves the cycle
// count unknown, the fallback. Primary fields win; fallback fills gaps.
// Returns ErrNoData when no source reports a cycle count.
func (e *Extractor) Extract(ctx context.Context) (Metrics, error) {
	primary, err := e.runAndParse(ctx, parseProfilerOutput, "system_profiler", "SPPowerDataType")
	if err != nil {
		logrus.WithError(err).Warn("system_profiler failed, falling back to ioreg")
		primary = Metrics{Source: SourceProfiler}
	}
	if primary.CycleCount != nil {
		return primary, nil
	}

	fallback, err := e.runAndParse(ctx, parseIoregOutput, "ioreg", "-r", "-c", "AppleSmartBattery")
	if err != nil {
		logrus.WithError(err).Warn("ioreg failed")
		fallback = Metrics{Source: SourceIoreg}
	}

	merged := merge(primary, fallback)
	if merged.CycleCount == nil {
		return Metrics{}, ErrNoData
	}
	return merged, nil
}

func (e *Extractor) runAndParse(ctx context.Context, parse func(string) Metrics, name string, args ...string) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := e.run(ctx, name, args...)
	if err != nil {
		return Metrics{}, pkgerrors.Wrapf(err, "running %s", name)
	}
	return parse(out), nil
}
