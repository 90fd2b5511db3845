package controller

import (
	"time"

	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	// SnapshotMap holds the latest Snapshot of every running loop, by id.
	SnapshotMap = cmap.New[Snapshot]()
)

// Snapshot is the observable state of a loop after its latest iteration.
type Snapshot struct {
	Id          string       `json:"id"`
	Sample      uint32       `json:"sample"`
	SampleAvg   float64      `json:"sampleAvg"`
	FullScale   uint32       `json:"fullScale"`
	Duty        duty.Percent `json:"duty"`
	Pwm         pwm.State    `json:"pwm"`
	HeartbeatOn bool         `json:"heartbeatOn"`
	Statistics  Statistics   `json:"statistics"`

	LastDisplayError string    `json:"lastDisplayError,omitempty"`
	LastInputError   string    `json:"lastInputError,omitempty"`
	LastPwmError     string    `json:"lastPwmError,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (l *Loop) publish(it Iteration) {
	previous, _ := SnapshotMap.Get(l.config.Id)

	snapshot := Snapshot{
		Id:          l.config.Id,
		Sample:      it.Sample,
		SampleAvg:   util.GetWindowAvg(l.window),
		FullScale:   l.mapper.FullScale,
		Duty:        it.Duty,
		Pwm:         it.Pwm,
		HeartbeatOn: it.HeartbeatOn,
		Statistics:  l.statistics,

		LastDisplayError: errorText(it.DisplayErr, previous.LastDisplayError),
		LastInputError:   errorText(it.InputErr, previous.LastInputError),
		LastPwmError:     errorText(it.PwmErr, previous.LastPwmError),
		UpdatedAt:        time.Now().UTC(),
	}
	SnapshotMap.Set(l.config.Id, snapshot)
}

func errorText(err error, previous string) string {
	if err == nil {
		return previous
	}
	return err.Error()
}
