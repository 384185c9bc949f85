// Package video encodes rendered frames into a clip by piping raw RGBA
// data to ffmpeg. One encoder session covers the whole clip: frames are
// written in order as the render pool completes them.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"

	"github.com/ivlev/wordmark/internal/system"
)

// Encoder consumes frames in presentation order and produces a video
// file.
type Encoder interface {
	Start(ctx context.Context, width, height, fps int, outPath string) error
	WriteFrame(img *image.RGBA) error
	Close() error
}

// FFmpegEncoder shells out to ffmpeg and streams rawvideo over stdin.
type FFmpegEncoder struct {
	EncoderName string // empty picks the best available
	Quality     int    // 0 picks a sane default per encoder

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
}

// Start launches the ffmpeg process. Width and height must match every
// frame written afterwards.
func (e *FFmpegEncoder) Start(ctx context.Context, width, height, fps int, outPath string) error {
	name := e.EncoderName
	if name == "" {
		name = BestH264Encoder()
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-r", fmt.Sprintf("%d", fps),
		"-pix_fmt", "yuv420p",
		"-c:v", name,
	}
	args = append(args, qualityArgs(name, e.Quality)...)
	args = append(args, outPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.width = width
	e.height = height
	return nil
}

// WriteFrame streams one frame. The image must be exactly the size the
// encoder was started with.
func (e *FFmpegEncoder) WriteFrame(img *image.RGBA) error {
	if e.stdin == nil {
		return fmt.Errorf("encoder not started")
	}

	bounds := img.Bounds()
	if bounds.Dx() != e.width || bounds.Dy() != e.height {
		return fmt.Errorf("frame size %dx%d does not match encoder %dx%d",
			bounds.Dx(), bounds.Dy(), e.width, e.height)
	}

	// ffmpeg expects tightly packed rows starting at (0,0).
	if img.Stride != bounds.Dx()*4 || bounds.Min.X != 0 || bounds.Min.Y != 0 {
		packed := system.GetFrame(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		defer system.PutFrame(packed)
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}

	if _, err := e.stdin.Write(img.Pix); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close finishes the stream and waits for ffmpeg to flush the file.
func (e *FFmpegEncoder) Close() error {
	if e.stdin == nil {
		return nil
	}
	e.stdin.Close()
	e.stdin = nil

	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w\n%s", err, e.stderr.String())
	}
	return nil
}

// qualityArgs maps the quality knob onto whatever the encoder
// understands. VideoToolbox takes a bitrate; NVENC and x264 take
// constant-quality values.
func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		if quality <= 0 {
			quality = 75
		}
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		if quality <= 0 {
			quality = 23
		}
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default:
		if quality <= 0 {
			quality = 21
		}
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// BestH264Encoder probes ffmpeg for hardware encoders, preferring
// VideoToolbox, then NVENC, then software x264.
func BestH264Encoder() string {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}
