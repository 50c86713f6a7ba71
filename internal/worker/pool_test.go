package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	count *atomic.Int32
}

func (j *countingJob) Process(ctx context.Context) error {
	j.count.Add(1)
	return nil
}

func TestPoolProcessesJobs(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		pool.Enqueue(&countingJob{count: &count})
	}

	assert.Eventually(t, func() bool {
		return count.Load() == 5
	}, time.Second, 10*time.Millisecond)

	pool.Stop()
}
