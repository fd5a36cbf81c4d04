package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	pkgerrors "github.com/pkg/errors"

	"github.com/battrack/battrack/pkg/battery"
)

// Schema matches the original battery_cycles table. Creation is
// idempotent so every invocation can run it unconditionally.
const schema = `
CREATE TABLE IF NOT EXISTS battery_cycles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME NOT NULL,
	cycle_count INTEGER NOT NULL,
	max_capacity INTEGER,
	design_capacity INTEGER,
	health_percentage REAL,
	battery_condition TEXT,
	charge_remaining INTEGER,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_timestamp ON battery_cycles(timestamp);
`

// Record is one persisted battery sample. Records are immutable once
// written; nil fields were unknown at collection time and are stored as
// NULL.
type Record struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	battery.Metrics
}

// RangeStats aggregates a time range of records. A nil *RangeStats means
// the range was empty, which is distinct from a range of zero values.
type RangeStats struct {
	Records       int       `json:"records"`
	First         time.Time `json:"first"`
	Last          time.Time `json:"last"`
	MinHealthPct  *float64  `json:"min_health_percentage"`
	MaxHealthPct  *float64  `json:"max_health_percentage"`
	AvgHealthPct  *float64  `json:"avg_health_percentage"`
	MinCycleCount int       `json:"min_cycle_count"`
	MaxCycleCount int       `json:"max_cycle_count"`
	CycleDelta    int       `json:"cycle_delta"`
	CyclesPerDay  float64   `json:"cycles_per_day"`
}

// Store is an append-only, timestamp-indexed record store backed by
// SQLite. Append is the only mutation; WAL plus the driver's busy
// timeout make it safe against overlapping cron invocations.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at the given path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_loc=UTC")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pkgerrors.Wrap(err, "failed to initialize schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append writes one record with a store-assigned UTC timestamp and
// returns it with the assigned id. Either the row is fully durable or an
// error is returned; there is no partial success.
func (s *Store) Append(m battery.Metrics) (Record, error) {
	if m.CycleCount == nil {
		return Record{}, pkgerrors.New("refusing to append record without cycle count")
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO battery_cycles
		 (timestamp, cycle_count, max_capacity, design_capacity, health_percentage, battery_condition, charge_remaining, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		now, *m.CycleCount, m.MaxCapacityMAh, m.DesignCapacityMAh,
		m.HealthPct, nullableString(m.Condition), m.ChargeRemainingMAh, now,
	)
	if err != nil {
		return Record{}, pkgerrors.Wrap(err, "failed to append record")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, pkgerrors.Wrap(err, "failed to read inserted id")
	}

	return Record{ID: id, Timestamp: now, Metrics: m}, nil
}

// Latest returns the most recent record, or nil when the store is empty.
func (s *Store) Latest() (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, timestamp, cycle_count, max_capacity, design_capacity, health_percentage, battery_condition, charge_remaining
		 FROM battery_cycles ORDER BY timestamp DESC, id DESC LIMIT 1`)

	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read latest record")
	}
	return &r, nil
}

// Range returns records with start <= timestamp <= end in ascending
// timestamp order. start after end yields an empty result, not an error.
func (s *Store) Range(start, end time.Time) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, cycle_count, max_capacity, design_capacity, health_percentage, battery_condition, charge_remaining
		 FROM battery_cycles WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp, id`,
		start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to query range")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to scan record")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Stats aggregates the given range. Returns nil when the range holds no
// records.
func (s *Store) Stats(start, end time.Time) (*RangeStats, error) {
	records, err := s.Range(start, end)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	st := &RangeStats{
		Records:       len(records),
		First:         records[0].Timestamp,
		Last:          records[len(records)-1].Timestamp,
		MinCycleCount: *records[0].CycleCount,
		MaxCycleCount: *records[0].CycleCount,
	}

	var healthSum float64
	var healthN int
	for _, r := range records {
		if c := *r.CycleCount; c < st.MinCycleCount {
			st.MinCycleCount = c
		} else if c > st.MaxCycleCount {
			st.MaxCycleCount = c
		}
		if r.HealthPct == nil {
			continue
		}
		h := *r.HealthPct
		healthSum += h
		healthN++
		if st.MinHealthPct == nil || h < *st.MinHealthPct {
			st.MinHealthPct = &h
		}
		if st.MaxHealthPct == nil || h > *st.MaxHealthPct {
			st.MaxHealthPct = &h
		}
	}
	if healthN > 0 {
		avg := healthSum / float64(healthN)
		st.AvgHealthPct = &avg
	}

	st.CycleDelta = st.MaxCycleCount - st.MinCycleCount
	if days := st.Last.Sub(st.First).Hours() / 24; days > 0 {
		st.CyclesPerDay = float64(st.CycleDelta) / days
	}

	return st, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (Record, error) {
	var r Record
	var cycle int
	var condition sql.NullString
	err := row.Scan(&r.ID, &r.Timestamp, &cycle, &r.MaxCapacityMAh,
		&r.DesignCapacityMAh, &r.HealthPct, &condition, &r.ChargeRemainingMAh)
	if err != nil {
		return Record{}, err
	}
	r.CycleCount = &cycle
	if condition.Valid {
		r.Condition = condition.String
	}
	return r, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
