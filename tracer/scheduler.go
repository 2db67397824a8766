package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign to the pool
	// of tracers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each tracer
	// in the input list. The assignments always add up to frameH as long
	// as frameH >= len(tracers).
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The naive scheduler splits the frame using each tracer's speed estimate.
type naiveScheduler struct {
}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	return speedAssignment(tracers, frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into blocks of variable height and assign to the pool
// of tracers using feedback collected from previous frames.
//
// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for tracer w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = speedAssignment(tracers, frameH)
		return sch.blockAssignment
	}

	// Use last frame statistics
	var total float64 = 0.0
	rates := make([]float64, len(tracers))
	for idx, tr := range tracers {
		stats := tr.Stats()
		renderTime := stats.RenderTime.Nanoseconds()
		if renderTime <= 0 {
			renderTime = 1
		}
		rates[idx] = float64(stats.BlockH) / float64(renderTime)
		total += rates[idx]
	}

	// No usable feedback; fall back to the speed estimates.
	if total == 0 {
		sch.blockAssignment = speedAssignment(tracers, frameH)
		return sch.blockAssignment
	}

	scaler := float64(frameH) / total
	for idx, rate := range rates {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(rate*scaler)))
	}
	balance(sch.blockAssignment, frameH)

	return sch.blockAssignment
}

// Distribute frame rows proportionally to each tracer's speed estimate.
func speedAssignment(tracers []Tracer, frameH uint32) []uint32 {
	blockAssignment := make([]uint32, len(tracers))
	if len(tracers) == 0 {
		return blockAssignment
	}

	var total float64 = 0.0
	speeds := make([]float64, len(tracers))
	for idx, tr := range tracers {
		speeds[idx] = float64(tr.Speed())
		total += speeds[idx]
	}

	// Without any estimates all tracers are treated as equals.
	if total == 0 {
		for idx := range speeds {
			speeds[idx] = 1
		}
		total = float64(len(speeds))
	}
	scaler := float64(frameH) / total

	for idx, speed := range speeds {
		blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(speed*scaler)))
	}
	balance(blockAssignment, frameH)

	return blockAssignment
}

// Make the assignments add up to frameH. Missing rows are appended to the
// first tracer; surplus rows are taken from the largest blocks.
func balance(blockAssignment []uint32, frameH uint32) {
	var scheduledRows uint32 = 0
	for _, rows := range blockAssignment {
		scheduledRows += rows
	}

	if scheduledRows <= frameH {
		blockAssignment[0] += frameH - scheduledRows
		return
	}

	for surplus := scheduledRows - frameH; surplus > 0; surplus-- {
		largest := 0
		for idx, rows := range blockAssignment {
			if rows > blockAssignment[largest] {
				largest = idx
			}
		}
		if blockAssignment[largest] <= 1 {
			return
		}
		blockAssignment[largest]--
	}
}
