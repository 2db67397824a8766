package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/achilleasa/go-raybench/output"
	"github.com/achilleasa/go-raybench/renderer"
	"github.com/achilleasa/go-raybench/scene"
	"github.com/achilleasa/go-raybench/tracer"
	"github.com/achilleasa/go-raybench/tracer/cpu"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render the demo scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	format, err := output.ParseFormat(ctx.String("format"))
	if err != nil {
		return err
	}

	var frameW, frameH, reflectionDepth, thumbSize uint32
	for name, dst := range map[string]*uint32{
		"width":            &frameW,
		"height":           &frameH,
		"reflection-depth": &reflectionDepth,
		"thumbnail-size":   &thumbSize,
	} {
		if *dst, err = uintFlag(ctx, name); err != nil {
			return err
		}
	}

	opts := renderer.Options{
		FrameW:     frameW,
		FrameH:     frameH,
		FillColor:  scene.PaleGreen,
		NumTracers: ctx.Int("workers"),
		Kernel: cpu.Options{
			Viewport:        viewport(ctx),
			Shadows:         !ctx.Bool("no-shadows"),
			ReflectionDepth: reflectionDepth,
			Antialias:       !ctx.Bool("no-antialias"),
		},
	}

	start := time.Now()
	sc, err := compileScene(ctx)
	if err != nil {
		return err
	}
	logger.Noticef("setup time: %d ms", time.Since(start).Nanoseconds()/1e6)

	var scheduler tracer.BlockScheduler
	switch ctx.String("scheduler") {
	case "naive":
		scheduler = tracer.NaiveScheduler()
	case "perfect":
		scheduler = tracer.PerfectScheduler()
	default:
		return fmt.Errorf("unknown block scheduler %q", ctx.String("scheduler"))
	}

	r, err := renderer.NewDefault(sc, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	// Stop after the current frame on SIGINT.
	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	frames := ctx.Int("frames")
	for frame := 0; frame < frames; frame++ {
		err = r.Render(renderCtx)
		if renderer.IsInterrupted(err) && frame > 0 {
			logger.Warningf("interrupted after %d frames", frame)
			break
		}
		if err != nil {
			return err
		}

		logger.Noticef("render time: %d ms", r.Stats().RenderTime.Nanoseconds()/1e6)
		displayFrameStats(r.Stats())
	}

	outFile := ctx.String("out")
	if err = output.WriteFile(outFile, r.Frame(), format); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", outFile)

	if thumbFile := ctx.String("thumbnail"); thumbFile != "" {
		size := uint(thumbSize)
		if err = output.WriteThumbnail(thumbFile, r.Frame(), size, size); err != nil {
			return err
		}
		logger.Noticef("wrote thumbnail to %s", thumbFile)
	}

	return nil
}

// Read an int flag that must not be negative.
func uintFlag(ctx *cli.Context, name string) (uint32, error) {
	v := ctx.Int(name)
	if v < 0 || int64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("invalid value %d for --%s: expected a non-negative integer", v, name)
	}
	return uint32(v), nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Infof("frame statistics\n%s", buf.String())
}
