package battery

import (
	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
)

// ChargeState is a live snapshot of the battery charge from the OS power
// API. Display-only; it is never persisted alongside health records.
type ChargeState struct {
	Percent float64 `json:"percent"`
	State   string  `json:"state"`
}

// ReadChargeState reads the first battery reported by the OS.
func ReadChargeState() (*ChargeState, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read battery state")
	}
	if len(batteries) == 0 {
		return nil, pkgerrors.New("no batteries found")
	}

	bat := batteries[0]
	state := "unknown"
	switch bat.State {
	case battery.Charging:
		state = "charging"
	case battery.Discharging:
		state = "discharging"
	case battery.Full:
		state = "full"
	}

	var pct float64
	if bat.Full > 0 {
		pct = 100 * bat.Current / bat.Full
	}

	return &ChargeState{Percent: pct, State: state}, nil
}
