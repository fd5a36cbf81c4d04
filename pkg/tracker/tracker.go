package tracker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/battrack/battrack/pkg/battery"
	"github.com/battrack/battrack/pkg/store"
)

// Status is the outcome of one collection attempt.
type Status string

const (
	// StatusRecorded means a new record was appended.
	StatusRecorded Status = "recorded"
	// StatusSkippedNoData means no source produced a cycle count, so
	// there was nothing to record. Not an error; the next scheduled
	// invocation simply tries again.
	StatusSkippedNoData Status = "skipped_no_data"
	// StatusSkippedUnchanged means today's record already covers the
	// current cycle count, so appending would only duplicate it.
	StatusSkippedUnchanged Status = "skipped_unchanged"
	// StatusFailed means the store rejected the append. Always surfaced,
	// never silently swallowed.
	StatusFailed Status = "failed"
)

// Result is what one Collect invocation produced. Record is non-nil only
// for StatusRecorded; Err is non-nil only for StatusFailed.
type Result struct {
	Status Status
	Record *store.Record
	Err    error
}

// Extractor produces one metrics snapshot per call.
type Extractor interface {
	Extract(ctx context.Context) (battery.Metrics, error)
}

// RecordStore is the subset of the store the tracker needs.
type RecordStore interface {
	Append(m battery.Metrics) (store.Record, error)
	Latest() (*store.Record, error)
}

// Tracker orchestrates one collection: extract, derive, persist. It
// holds no state between invocations; the external scheduler decides
// cadence and retries.
type Tracker struct {
	extractor Extractor
	store     RecordStore
}

// New returns a Tracker over the given extractor and store.
func New(extractor Extractor, recordStore RecordStore) *Tracker {
	return &Tracker{extractor: extractor, store: recordStore}
}

// Collect runs one collection cycle. force bypasses the same-day dedupe
// check. Every outcome is logged.
func (t *Tracker) Collect(ctx context.Context, force bool) Result {
	metrics, err := t.extractor.Extract(ctx)
	if err != nil {
		logrus.WithError(err).Warn("extraction produced no usable data, skipping this cycle")
		return Result{Status: StatusSkippedNoData}
	}
	if metrics.CycleCount == nil {
		logrus.Warn("extraction returned no cycle count, skipping this cycle")
		return Result{Status: StatusSkippedNoData}
	}

	metrics = battery.Derive(metrics)

	if !force {
		unchanged, err := t.isUnchangedToday(metrics)
		if err != nil {
			logrus.WithError(err).Error("failed to read latest record")
			return Result{Status: StatusFailed, Err: err}
		}
		if unchanged {
			logrus.WithField("cycleCount", *metrics.CycleCount).
				Info("cycle count unchanged since today's record, skipping")
			return Result{Status: StatusSkippedUnchanged}
		}
	}

	record, err := t.store.Append(metrics)
	if err != nil {
		logrus.WithError(err).Error("failed to append record")
		return Result{Status: StatusFailed, Err: err}
	}

	entry := logrus.WithFields(logrus.Fields{
		"id":         record.ID,
		"cycleCount": *record.CycleCount,
		"source":     record.Source,
	})
	if record.HealthPct != nil {
		entry = entry.WithField("healthPct", *record.HealthPct)
	}
	entry.Info("recorded battery metrics")

	return Result{Status: StatusRecorded, Record: &record}
}

// isUnchangedToday reports whether a record from today already carries
// the same cycle count. A record missing health data does not count if
// the new metrics would fill it in.
func (t *Tracker) isUnchangedToday(m battery.Metrics) (bool, error) {
	latest, err := t.store.Latest()
	if err != nil {
		return false, err
	}
	if latest == nil {
		return false, nil
	}

	y1, m1, d1 := latest.Timestamp.UTC().Date()
	y2, m2, d2 := nowUTC().Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false, nil
	}
	if *latest.CycleCount != *m.CycleCount {
		return false, nil
	}
	if latest.HealthPct == nil && m.HealthPct != nil {
		return false, nil
	}
	return true, nil
}

// nowUTC is swapped out in tests.
var nowUTC = func() time.Time { return time.Now().UTC() }
