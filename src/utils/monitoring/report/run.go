package report

import (
	"time"

	"go.uber.org/atomic"
)

type RunState struct {
	StartTimestamp atomic.Int64 `json:"start_timestamp"`
	UpForSeconds   atomic.Int64 `json:"up_for_seconds"`
}

type RunReport struct {
	State RunState `json:"state"`
}

func (self *RunReport) Fill() {
	self.State.UpForSeconds.Store(time.Now().Unix() - self.State.StartTimestamp.Load())
}
