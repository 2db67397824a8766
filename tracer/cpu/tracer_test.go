package cpu

import (
	"errors"
	"testing"
	"time"

	"github.com/achilleasa/go-raybench/framebuffer"
	"github.com/achilleasa/go-raybench/scene"
	"github.com/achilleasa/go-raybench/tracer"
	"github.com/achilleasa/go-raybench/types"
)

func TestTracerRendersBlock(t *testing.T) {
	sc := compileDemo(t, true)
	opts := Options{Viewport: scene.DefaultViewport, Shadows: true, ReflectionDepth: 2}
	kernel := NewKernel(sc, opts)

	fb, err := framebuffer.New(demoH, demoW, unusedColor)
	if err != nil {
		t.Fatal(err)
	}

	tr := NewTracer("cpu-0", kernel)
	if err = tr.Init(fb); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	rows, err := renderBlock(tr, 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if rows != 20 {
		t.Fatalf("expected tracer to report 20 completed rows; got %d", rows)
	}

	stats := tr.Stats()
	if stats.BlockH != 20 {
		t.Fatalf("expected stats block height to be 20; got %d", stats.BlockH)
	}
	if stats.RenderTime <= 0 {
		t.Fatalf("expected a positive render time; got %s", stats.RenderTime)
	}

	reference := traceFrame(t, sc, opts)
	fill := types.RGBAFromColor(unusedColor)
	for row := uint32(0); row < demoH; row++ {
		inBlock := row >= 10 && row < 30
		for col := uint32(0); col < demoW; col++ {
			got := fb.Pixel(row, col)
			switch {
			case inBlock && got != reference.Pixel(row, col):
				t.Fatalf("expected pixel (%d, %d) to match the reference render", row, col)
			case !inBlock && got != fill:
				t.Fatalf("expected pixel (%d, %d) outside the block to be untouched", row, col)
			}
		}
	}
}

func TestTracerErrors(t *testing.T) {
	kernel := NewKernel(compileDemo(t, true), Options{Viewport: scene.DefaultViewport})

	tr := NewTracer("cpu-0", kernel)
	if _, err := renderBlock(tr, 0, 1); err != ErrNotInitialized {
		t.Fatalf("expected to get ErrNotInitialized; got %v", err)
	}

	fb, err := framebuffer.New(4, 4, unusedColor)
	if err != nil {
		t.Fatal(err)
	}
	if err = tr.Init(fb); err != nil {
		t.Fatal(err)
	}

	if _, err = renderBlock(tr, 2, 3); err != ErrBlockOutOfFrame {
		t.Fatalf("expected to get ErrBlockOutOfFrame; got %v", err)
	}

	tr.Close()
	if _, err = renderBlock(tr, 0, 1); err != ErrNotInitialized {
		t.Fatalf("expected to get ErrNotInitialized after close; got %v", err)
	}
}

func TestTracerRecoversFromPanics(t *testing.T) {
	// A scene without a world makes the kernel panic on the first ray.
	kernel := NewKernel(&scene.Scene{}, Options{Viewport: scene.DefaultViewport})

	fb, err := framebuffer.New(4, 4, unusedColor)
	if err != nil {
		t.Fatal(err)
	}
	tr := NewTracer("cpu-0", kernel)
	if err = tr.Init(fb); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	_, err = renderBlock(tr, 0, 4)
	if !errors.Is(err, ErrTraceAborted) {
		t.Fatalf("expected to get ErrTraceAborted; got %v", err)
	}

	// The worker survives and keeps serving requests.
	_, err = renderBlock(tr, 0, 1)
	if !errors.Is(err, ErrTraceAborted) {
		t.Fatalf("expected to get ErrTraceAborted; got %v", err)
	}
}

func TestRecoveredContractError(t *testing.T) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoveredError(r)
			}
		}()
		scene.NewJumble(nil).Bounds()
		return nil
	}()

	if !errors.Is(err, ErrTraceAborted) {
		t.Fatalf("expected to get ErrTraceAborted; got %v", err)
	}

	var contractErr *scene.ContractError
	if !errors.As(err, &contractErr) {
		t.Fatalf("expected error chain to contain a contract error; got %v", err)
	}
	if contractErr.Surface != scene.JumbleSurface || contractErr.Operation != "bounds" {
		t.Fatalf("expected contract error for jumble bounds; got %v", contractErr)
	}

	if err = recoveredError("boom"); !errors.Is(err, ErrTraceAborted) {
		t.Fatalf("expected to get ErrTraceAborted; got %v", err)
	}
}

func renderBlock(tr tracer.Tracer, blockY, blockH uint32) (uint32, error) {
	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)
	tr.Enqueue(tracer.BlockRequest{
		BlockY:   blockY,
		BlockH:   blockH,
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case rows := <-doneChan:
		return rows, nil
	case err := <-errChan:
		return 0, err
	case <-time.After(30 * time.Second):
		return 0, errors.New("timeout waiting for block")
	}
}
