package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/wordmark/internal/config"
	"github.com/ivlev/wordmark/internal/engine"
	"github.com/ivlev/wordmark/internal/ocr"
	"github.com/ivlev/wordmark/internal/source"
	"github.com/ivlev/wordmark/internal/system"
	"github.com/ivlev/wordmark/internal/video"
)

func main() {
	system.InitResourceLimits()

	requestPtr := flag.String("request", "", "Render request file (JSON or YAML); empty uses defaults")
	imagePtr := flag.String("image", "", "Source image (PNG/JPEG/WebP) or PDF")
	outputPtr := flag.String("out", "", "Output video path (empty generates one under output/)")
	framesDirPtr := flag.String("frames-dir", "", "Dump PNG frames here instead of encoding")
	fontPtr := flag.String("font", "", "TTF font for the attribution lower third")
	ocrPtr := flag.String("ocr", "", "Tesseract language; runs OCR when the request has no words")
	ocrConfPtr := flag.Float64("ocr-confidence", 0.6, "Minimum OCR word confidence")
	pdfPagePtr := flag.Int("pdf-page", 0, "Page to render when the input is a PDF")
	pdfDPIPtr := flag.Int("pdf-dpi", 150, "Render DPI for PDF input")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Render worker count")
	encoderPtr := flag.String("encoder", "", "ffmpeg encoder name (empty auto-detects)")
	qualityPtr := flag.Int("quality", 0, "Encoder quality (0 auto, x264: CRF, VideoToolbox: bitrate = Q*100kbit/s)")
	sampleBGPtr := flag.Bool("sample-bg", false, "Sample the background color from the image border")
	saveRequestPtr := flag.String("save-request", "", "Write the resolved request as a YAML snapshot")
	statsPtr := flag.Bool("stats", false, "Print the performance report")
	flag.Parse()

	if *imagePtr == "" {
		log.Fatal("[-] -image is required")
	}

	req := config.Default()
	if *requestPtr != "" {
		var err error
		req, err = config.LoadRequest(*requestPtr)
		if err != nil {
			log.Fatalf("[-] Load request: %v", err)
		}
	}

	src, err := source.Open(*imagePtr, *pdfPagePtr, *pdfDPIPtr)
	if err != nil {
		log.Fatalf("[-] Open source: %v", err)
	}
	defer src.Close()

	img, err := src.Image()
	if err != nil {
		log.Fatalf("[-] Decode source: %v", err)
	}

	// Oversized sources come down to a sane working size. Word boxes
	// were measured on the original, so they scale with it.
	if scaled := source.Normalize(img); scaled != img {
		factor := float64(scaled.Bounds().Dx()) / float64(img.Bounds().Dx())
		for i := range req.SelectedWords {
			w := &req.SelectedWords[i]
			w.Left *= factor
			w.Top *= factor
			w.Width *= factor
			w.Height *= factor
		}
		fmt.Printf("[*] Source downscaled x%.3f to %dx%d\n",
			factor, scaled.Bounds().Dx(), scaled.Bounds().Dy())
		img = scaled
		req.ImageWidth = 0
		req.ImageHeight = 0
	}
	if req.ImageWidth == 0 || req.ImageHeight == 0 {
		req.ImageWidth = img.Bounds().Dx()
		req.ImageHeight = img.Bounds().Dy()
	}

	ctx := context.Background()

	if len(req.SelectedWords) == 0 && *ocrPtr != "" {
		fmt.Printf("[*] OCR pass (%s)...\n", *ocrPtr)
		words, err := ocr.NewTesseract(*ocrPtr).Recognize(ctx, *imagePtr)
		if err != nil {
			log.Fatalf("[-] OCR: %v", err)
		}
		req.SelectedWords = ocr.FilterConfident(words, *ocrConfPtr)
		fmt.Printf("[*] OCR found %d words above confidence %.2f\n",
			len(req.SelectedWords), *ocrConfPtr)
	}

	if err := req.Validate(); err != nil {
		log.Fatalf("[-] Invalid request: %v", err)
	}

	if *saveRequestPtr != "" {
		if err := config.SaveRequest(req, *saveRequestPtr); err != nil {
			log.Fatalf("[-] Save request: %v", err)
		}
		fmt.Printf("[*] Request snapshot: %s\n", *saveRequestPtr)
	}

	outPath := *outputPtr
	if outPath == "" && *framesDirPtr == "" {
		if err := os.MkdirAll("output", 0o755); err != nil {
			log.Fatalf("[-] Create output dir: %v", err)
		}
		base := strings.TrimSuffix(filepath.Base(*imagePtr), filepath.Ext(*imagePtr))
		base = strings.ReplaceAll(base, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outPath = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", base, timestamp))
	}

	project := engine.Project{
		Req:              &req,
		Image:            img,
		OutPath:          outPath,
		FramesDir:        *framesDirPtr,
		FontPath:         *fontPtr,
		Workers:          *workersPtr,
		SampleBackground: *sampleBGPtr,
		ShowStats:        *statsPtr,
	}
	if *encoderPtr != "" || *qualityPtr != 0 {
		project.Encoder = &video.FFmpegEncoder{
			EncoderName: *encoderPtr,
			Quality:     *qualityPtr,
		}
	}

	report, err := engine.Run(ctx, project)
	if err != nil {
		log.Fatalf("[-] Render failed: %v", err)
	}

	if *framesDirPtr != "" {
		fmt.Printf("[*] Done: %d frames in %s (%.2fs)\n",
			report.Frames, *framesDirPtr, report.Duration.Seconds())
	} else {
		fmt.Printf("[*] Done: %s (%d frames, %.2fs)\n",
			outPath, report.Frames, report.Duration.Seconds())
	}
}
