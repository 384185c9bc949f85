// Package engine drives a full render: resolve the timeline, build the
// scene once, rasterize frames across a worker pool and hand them to
// the encoder in presentation order.
package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/wordmark/internal/analyzer"
	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/overlay"
	"github.com/ivlev/wordmark/internal/system"
	"github.com/ivlev/wordmark/internal/timing"
	"github.com/ivlev/wordmark/internal/video"
)

// Project describes one render job: a request, the image it annotates
// and where the output goes.
type Project struct {
	Req   *config.Request
	Image image.Image

	// OutPath is the video file to encode. Ignored when FramesDir is
	// set.
	OutPath string

	// FramesDir, when non-empty, dumps numbered PNG frames instead of
	// invoking ffmpeg.
	FramesDir string

	// FontPath points at a TTF for the lower third.
	FontPath string

	// Encoder overrides the default ffmpeg encoder. Nil picks the best
	// available H.264 encoder.
	Encoder video.Encoder

	// Workers bounds the render pool. Zero means NumCPU.
	Workers int

	// SampleBackground replaces the request's background color with the
	// dominant border color of the image before rendering.
	SampleBackground bool

	// ShowStats prints the performance report after the run.
	ShowStats bool
}

// Report summarizes a finished render.
type Report struct {
	Frames     int
	Duration   time.Duration
	RenderTime time.Duration
	WriteTime  time.Duration
}

// EffectiveFPS is frames produced per wall-clock second.
func (r Report) EffectiveFPS() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Duration.Seconds()
}

type renderedFrame struct {
	index int
	img   *image.RGBA
}

// Run executes the project. Frames render out of order across the pool
// and are re-sequenced before writing, so the sink always sees frame N
// before frame N+1.
func Run(ctx context.Context, p Project) (Report, error) {
	start := time.Now()

	if p.SampleBackground {
		p.Req.BackgroundColor = analyzer.SampleBackground(p.Image)
	}

	scene, err := overlay.NewScene(p.Req, p.Image, overlay.Options{FontPath: p.FontPath})
	if err != nil {
		return Report{}, fmt.Errorf("build scene: %w", err)
	}

	tl := scene.Timeline
	fmt.Printf("[*] Clip: %d frames (%.2fs) at %dx%d @ %d FPS\n",
		tl.TotalFrames, tl.DurationSeconds(), tl.Width, tl.Height, tl.FPS)

	sink, err := p.openSink(ctx, tl)
	if err != nil {
		return Report{}, err
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > tl.TotalFrames {
		workers = tl.TotalFrames
	}

	jobs := make(chan int, workers)
	results := make(chan renderedFrame, workers*2)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < tl.TotalFrames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var renderWG sync.WaitGroup
	for w := 0; w < workers; w++ {
		renderWG.Add(1)
		g.Go(func() error {
			defer renderWG.Done()
			for i := range jobs {
				img, err := scene.RenderFrame(i)
				if err != nil {
					return fmt.Errorf("render frame %d: %w", i, err)
				}
				select {
				case results <- renderedFrame{index: i, img: img}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		renderWG.Wait()
		close(results)
	}()

	var writeTime time.Duration
	g.Go(func() error {
		pending := make(map[int]*image.RGBA, workers*2)
		next := 0
		for rf := range results {
			pending[rf.index] = rf.img
			for img, ok := pending[next]; ok; img, ok = pending[next] {
				delete(pending, next)
				t := time.Now()
				if err := sink.write(next, img); err != nil {
					return fmt.Errorf("write frame %d: %w", next, err)
				}
				writeTime += time.Since(t)
				next++
				if next%tl.FPS == 0 {
					fmt.Printf("[>] Ready: %d/%d\n", next, tl.TotalFrames)
				}
			}
		}
		if next != tl.TotalFrames {
			return fmt.Errorf("wrote %d of %d frames", next, tl.TotalFrames)
		}
		return nil
	})

	runErr := g.Wait()
	if closeErr := sink.close(); runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return Report{}, runErr
	}

	report := Report{
		Frames:    tl.TotalFrames,
		Duration:  time.Since(start),
		WriteTime: writeTime,
	}
	report.RenderTime = report.Duration - report.WriteTime

	if p.ShowStats {
		printStats(report)
	}
	return report, nil
}

func printStats(r Report) {
	stats := system.Probe()
	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Total Time: %.2fs\n"+
			"Rendering: %.2fs\n"+
			"Writing: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"%s\n"+
			"----------------------------\n",
		r.Duration.Seconds(), r.RenderTime.Seconds(), r.WriteTime.Seconds(),
		r.EffectiveFPS(), stats)
}

// frameSink abstracts the two outputs: an encoder session or a PNG
// frame directory.
type frameSink struct {
	encoder   video.Encoder
	framesDir string
}

func (p Project) openSink(ctx context.Context, tl timing.Timeline) (*frameSink, error) {
	if p.FramesDir != "" {
		if err := os.MkdirAll(p.FramesDir, 0o755); err != nil {
			return nil, fmt.Errorf("create frames dir: %w", err)
		}
		return &frameSink{framesDir: p.FramesDir}, nil
	}

	enc := p.Encoder
	if enc == nil {
		enc = &video.FFmpegEncoder{EncoderName: video.BestH264Encoder()}
	}
	if err := enc.Start(ctx, tl.Width, tl.Height, tl.FPS, p.OutPath); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}
	return &frameSink{encoder: enc}, nil
}

func (s *frameSink) write(index int, img *image.RGBA) error {
	if s.encoder != nil {
		return s.encoder.WriteFrame(img)
	}
	name := filepath.Join(s.framesDir, fmt.Sprintf("frame_%05d.png", index))
	return imaging.Save(img, name)
}

func (s *frameSink) close() error {
	if s.encoder != nil {
		return s.encoder.Close()
	}
	return nil
}
