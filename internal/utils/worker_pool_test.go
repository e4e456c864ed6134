package utils_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ejboucher/amazon-location-tracking-sdk-go/internal/utils"
)

// TestWorkerPool_RunsAllJobs tests that every submitted job runs before
// Shutdown returns.
func TestWorkerPool_RunsAllJobs(t *testing.T) {
	pool := utils.NewWorkerPool(3, 4)

	var done atomic.Int64
	for i := 0; i < 20; i++ {
		pool.Submit(func() {
			done.Add(1)
		})
	}
	pool.Shutdown()

	assert.Equal(t, int64(20), done.Load())
}
