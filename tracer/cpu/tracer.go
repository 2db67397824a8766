package cpu

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/achilleasa/go-raybench/framebuffer"
	"github.com/achilleasa/go-raybench/log"
	"github.com/achilleasa/go-raybench/tracer"
)

var (
	ErrNotInitialized  = errors.New("cpu tracer: tracer has not been initialized")
	ErrBlockOutOfFrame = errors.New("cpu tracer: block request exceeds frame height")
	ErrTracerClosed    = errors.New("cpu tracer: tracer is closed")
	ErrTraceAborted    = errors.New("cpu tracer: trace aborted")
)

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer's id.
	id string

	// The shared tracing kernel.
	kernel *Kernel

	// The frame that block requests are rendered into.
	frame atomic.Pointer[framebuffer.Framebuffer]

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel that is closed to signal the worker to exit.
	closeChan chan struct{}

	stats *tracer.Stats
}

// Create a new cpu tracer that renders blocks using the given kernel.
func NewTracer(id string, kernel *Kernel) tracer.Tracer {
	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		kernel:       kernel,
		blockReqChan: make(chan tracer.BlockRequest),
		stats:        &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Every cpu tracer runs a single worker so they are all equally fast.
func (tr *cpuTracer) Speed() uint32 {
	return 1
}

// Attach tracer to a frame and start processing incoming block requests.
func (tr *cpuTracer) Init(frame *framebuffer.Framebuffer) error {
	tr.Lock()
	defer tr.Unlock()

	tr.frame.Store(frame)
	if tr.closeChan == nil {
		tr.startWorker()
	}
	return nil
}

// Shutdown the worker goroutine.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan == nil {
		return
	}

	close(tr.closeChan)
	tr.wg.Wait()
	tr.closeChan = nil
	tr.frame.Store(nil)
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	tr.Lock()
	closeChan := tr.closeChan
	tr.Unlock()

	if closeChan == nil {
		blockReq.ErrChan <- ErrNotInitialized
		return
	}

	select {
	case tr.blockReqChan <- blockReq:
	case <-closeChan:
		blockReq.ErrChan <- ErrTracerClosed
	}
}

// Retrieve last block statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

func (tr *cpuTracer) startWorker() {
	tr.closeChan = make(chan struct{})
	closeChan := tr.closeChan

	readyChan := make(chan struct{})
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				startTime = time.Now()
				err = tr.renderBlock(tr.frame.Load(), &blockReq)
				if err != nil {
					tr.logger.Errorf("failed to render block [%d, %d): %v", blockReq.BlockY, blockReq.BlockY+blockReq.BlockH, err)
					blockReq.ErrChan <- err
					continue
				}

				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)

				blockReq.DoneChan <- blockReq.BlockH
			case <-closeChan:
				return
			}
		}
	}()

	// Wait for worker goroutine to start
	<-readyChan
}

// Render a block of rows. A panic raised while tracing (e.g. a surface
// contract violation) aborts the block and is reported as an error.
func (tr *cpuTracer) renderBlock(frame *framebuffer.Framebuffer, blockReq *tracer.BlockRequest) (err error) {
	if frame == nil {
		return ErrNotInitialized
	}
	if blockReq.BlockY+blockReq.BlockH > frame.Height() {
		return ErrBlockOutOfFrame
	}

	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()

	tr.kernel.Trace(frame, blockReq.BlockY, blockReq.BlockY+blockReq.BlockH, 0, frame.Width())
	return nil
}

// Convert a recovered panic value into an error, keeping any error value
// it carries in the chain.
func recoveredError(r interface{}) error {
	if err, isErr := r.(error); isErr {
		return fmt.Errorf("%w: %w", ErrTraceAborted, err)
	}
	return fmt.Errorf("%w: %v", ErrTraceAborted, r)
}
