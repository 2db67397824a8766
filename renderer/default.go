package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/go-raybench/framebuffer"
	"github.com/achilleasa/go-raybench/log"
	"github.com/achilleasa/go-raybench/scene"
	"github.com/achilleasa/go-raybench/tracer"
	"github.com/achilleasa/go-raybench/tracer/cpu"
)

// A renderer that splits each frame into row blocks and renders them in
// parallel using a pool of cpu tracers.
type defaultRenderer struct {
	logger log.Logger

	// Renderer options
	options Options

	// The shared tracing kernel.
	kernel *cpu.Kernel

	// Tracers and the scheduler that assigns blocks to them.
	tracers   []tracer.Tracer
	scheduler tracer.BlockScheduler

	frame *framebuffer.Framebuffer
	stats FrameStats
}

// Create a new default renderer using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if opts.NumTracers <= 0 {
		return nil, ErrNoTracers
	}

	frame, err := framebuffer.New(opts.FrameH, opts.FrameW, opts.FillColor)
	if err != nil {
		return nil, err
	}

	r := &defaultRenderer{
		logger:    log.New("renderer"),
		options:   opts,
		kernel:    cpu.NewKernel(sc, opts.Kernel),
		scheduler: scheduler,
		frame:     frame,
	}

	// Each tracer needs at least one row to work on.
	numTracers := opts.NumTracers
	if uint32(numTracers) > opts.FrameH {
		r.logger.Noticef("frame height %d is smaller than the requested %d tracers; using %d tracers", opts.FrameH, numTracers, opts.FrameH)
		numTracers = int(opts.FrameH)
	}

	for index := 0; index < numTracers; index++ {
		tr := cpu.NewTracer(fmt.Sprintf("cpu-%d", index), r.kernel)
		if err = tr.Init(frame); err != nil {
			r.Close()
			return nil, err
		}
		r.tracers = append(r.tracers, tr)
	}
	r.logger.Infof("attached %d cpu tracers", len(r.tracers))

	r.stats.Tracers = make([]TracerStat, len(r.tracers))
	return r, nil
}

// Render a frame. The render is all-or-nothing: if any block fails the
// frame contents are undefined and an error is returned.
func (r *defaultRenderer) Render(ctx context.Context) error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}
	if ctx.Err() != nil {
		return ErrInterrupted
	}

	start := time.Now()
	blockAssignment := r.scheduler.Schedule(r.tracers, r.options.FrameH)

	doneChan := make(chan uint32, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var blockY uint32 = 0
	pending := 0
	for idx, tr := range r.tracers {
		if blockAssignment[idx] == 0 {
			continue
		}
		tr.Enqueue(tracer.BlockRequest{
			BlockY:   blockY,
			BlockH:   blockAssignment[idx],
			DoneChan: doneChan,
			ErrChan:  errChan,
		})
		blockY += blockAssignment[idx]
		pending++
	}

	// Wait for all blocks so no tracer is still writing to the frame when
	// we return.
	var renderErr error
	interrupted := false
	for pending > 0 {
		select {
		case <-doneChan:
			pending--
		case err := <-errChan:
			pending--
			if renderErr == nil {
				renderErr = err
			}
		case <-ctx.Done():
			interrupted = true
			ctx = context.Background()
		}
	}

	if renderErr != nil {
		return fmt.Errorf("renderer: frame failed: %w", renderErr)
	}
	if interrupted {
		return ErrInterrupted
	}

	r.updateStats(time.Since(start))
	return nil
}

// Get the framebuffer holding the last rendered frame.
func (r *defaultRenderer) Frame() *framebuffer.Framebuffer {
	return r.frame
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats.RenderTime = renderTime
	for idx, tr := range r.tracers {
		trStats := tr.Stats()
		r.stats.Tracers[idx] = TracerStat{
			Id:           tr.Id(),
			BlockH:       trStats.BlockH,
			FramePercent: 100 * float32(trStats.BlockH) / float32(r.options.FrameH),
			RenderTime:   trStats.RenderTime,
		}
	}
	r.logger.Debugf("rendered frame in %d ms", renderTime.Nanoseconds()/1e6)
}

// Check whether an error returned by Render was caused by an interruption.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}
