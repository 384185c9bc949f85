package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Tesseract shells out to the tesseract CLI and parses its TSV output
// into WordBoxes. The engine itself never calls this; it exists so the
// CLI can produce a word list when the caller has none.
type Tesseract struct {
	Language string
}

func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{Language: language}
}

// Recognize runs tesseract on the image at path and returns all word-level
// detections. Requires the tesseract binary on PATH.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) ([]WordBox, error) {
	cmd := exec.CommandContext(ctx, "tesseract", imagePath, "stdout", "-l", t.Language, "tsv")
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tesseract run: %w\n%s", err, errOut.String())
	}

	return parseTSV(out.String())
}

// parseTSV reads tesseract's TSV format. Word rows have level 5 and
// twelve columns: level, page, block, par, line, word, left, top,
// width, height, conf, text.
func parseTSV(data string) ([]WordBox, error) {
	var words []WordBox
	lines := strings.Split(data, "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue // header
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		level, err := strconv.Atoi(cols[0])
		if err != nil || level != 5 {
			continue
		}
		left, _ := strconv.ParseFloat(cols[6], 64)
		top, _ := strconv.ParseFloat(cols[7], 64)
		width, _ := strconv.ParseFloat(cols[8], 64)
		height, _ := strconv.ParseFloat(cols[9], 64)
		conf, _ := strconv.ParseFloat(cols[10], 64)
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		words = append(words, WordBox{
			Text:       text,
			Left:       left,
			Top:        top,
			Width:      width,
			Height:     height,
			Confidence: conf / 100.0,
		})
	}
	return words, nil
}
