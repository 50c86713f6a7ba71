package merge

import "context"

// SweepJob runs the batch currency consolidation. It satisfies the worker
// pool's Job interface so the sweep can be scheduled periodically.
type SweepJob struct {
	svc Service
}

// NewSweepJob creates a currency sweep job
func NewSweepJob(svc Service) *SweepJob {
	return &SweepJob{svc: svc}
}

func (j *SweepJob) Process(ctx context.Context) error {
	_, err := j.svc.MergeCurrency(ctx)
	return err
}
