package common

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// minRowsPerTask keeps tiny images from paying task submission overhead.
const minRowsPerTask = 32

// RowWorker splits row-oriented image work across a persistent worker pool.
// Workers live for the lifetime of the RowWorker so repeated conversions
// (skybox staging, readback unpacking) do not spawn goroutines per call.
type RowWorker struct {
	pool    worker.DynamicWorkerPool
	workers int
}

// NewRowWorker creates a RowWorker backed by a dynamic worker pool.
// A worker count below 1 defaults to one less than the number of CPUs.
//
// Parameters:
//   - workers: the number of pool workers
//
// Returns:
//   - *RowWorker: the newly created row worker
func NewRowWorker(workers int) *RowWorker {
	if workers < 1 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return &RowWorker{
		pool:    worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		workers: workers,
	}
}

// Workers returns the configured worker count.
func (r *RowWorker) Workers() int {
	if r == nil {
		return 1
	}
	return r.workers
}

// Run calls fn over contiguous row bands [y0, y1) that together cover [0, rows).
// It blocks until every band has completed. A nil RowWorker runs fn inline.
//
// Parameters:
//   - rows: the total number of rows
//   - fn: the band callback, which must only touch rows in its own band
func (r *RowWorker) Run(rows int, fn func(y0, y1 int)) {
	if rows <= 0 {
		return
	}
	if r == nil || r.pool == nil || r.workers == 1 || rows < minRowsPerTask*2 {
		fn(0, rows)
		return
	}

	bands := min(r.workers, (rows+minRowsPerTask-1)/minRowsPerTask)
	per := (rows + bands - 1) / bands

	var wg sync.WaitGroup
	taskID := 0
	for y0 := 0; y0 < rows; y0 += per {
		y1 := min(y0+per, rows)
		wg.Add(1)
		start, end := y0, y1
		r.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				fn(start, end)
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
}
