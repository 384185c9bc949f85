package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// PDFSource renders one page of a PDF document as the base image.
type PDFSource struct {
	doc  *fitz.Document
	page int
	dpi  int
}

func NewPDFSource(path string, page, dpi int) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	if page < 0 || page >= doc.NumPage() {
		doc.Close()
		return nil, fmt.Errorf("pdf page %d out of range (document has %d)", page, doc.NumPage())
	}
	if dpi <= 0 {
		dpi = 150
	}
	return &PDFSource{doc: doc, page: page, dpi: dpi}, nil
}

func (s *PDFSource) Image() (image.Image, error) {
	img, err := s.doc.ImageDPI(s.page, float64(s.dpi))
	if err != nil {
		return nil, fmt.Errorf("render pdf page %d: %w", s.page, err)
	}
	return img, nil
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
