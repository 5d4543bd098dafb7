package registry

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

const transformBatchSize = 64

var ErrNonFinitePosition = errors.New("registry: transform produced a non-finite position")

type transformJob struct {
	group errgroup.Group
}

// StartTransformJob copies every live transform's world position into the
// position column on background goroutines. Call CompleteTransformJob before
// reading positions. Starting while a job is pending completes the pending job first.
func (r *Registry) StartTransformJob() {
	r.completePendingJob()
	if r.count == 0 {
		return
	}

	job := &transformJob{}
	job.group.SetLimit(runtime.GOMAXPROCS(0))

	positions := r.cols.positions[:r.count]
	transforms := r.cols.transforms[:r.count]
	owners := r.cols.owners[:r.count]
	records := r.records

	for start := 0; start < r.count; start += transformBatchSize {
		lo, hi := start, min(start+transformBatchSize, r.count)
		job.group.Go(func() error {
			var firstErr error
			for i := lo; i < hi; i++ {
				t := transforms[i]
				if t == nil {
					continue
				}
				p := t.WorldPosition()
				if !finite(p) {
					if firstErr == nil {
						firstErr = fmt.Errorf("source %d: %w", records[owners[i].index].SourceID, ErrNonFinitePosition)
					}
					continue
				}
				positions[i] = p
			}
			return firstErr
		})
	}
	r.job = job
}

// CompleteTransformJob blocks until the pending transform job finishes.
// Lights whose transform produced a non-finite position keep their previous position
// and the first such light is reported.
func (r *Registry) CompleteTransformJob() error {
	if r.job == nil {
		return nil
	}
	err := r.job.group.Wait()
	r.job = nil
	return err
}

func (r *Registry) completePendingJob() {
	if err := r.CompleteTransformJob(); err != nil {
		r.logger.Warnf("light transform job: %v", err)
	}
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
