package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names routed by the maintenance worker.
const (
	TypeBookingSweep = "booking:sweep"
	TypeFraudScan    = "fraud:scan"
)

// SweepPayload carries the reference time for a booking sweep run.
type SweepPayload struct {
	At time.Time `json:"at"`
}

// NewBookingSweepTask builds the periodic booking lifecycle sweep task.
func NewBookingSweepTask(at time.Time) (*asynq.Task, error) {
	b, err := json.Marshal(SweepPayload{At: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingSweep, b), nil
}

// NewFraudScanTask builds the heuristic analysis task. It carries no payload;
// thresholds come from configuration at run time.
func NewFraudScanTask() *asynq.Task {
	return asynq.NewTask(TypeFraudScan, nil)
}
