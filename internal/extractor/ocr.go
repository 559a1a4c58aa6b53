package extractor

import (
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// OCROptions bound the cost of the OCR fallback.
type OCROptions struct {
	// DPI is the page rendering resolution. 300 gives Tesseract enough
	// detail for statement body text.
	DPI int
	// MaxPages caps how many pages are recognized. The five fields all
	// sit on the first page or two of every supported layout.
	MaxPages int
}

// DefaultOCROptions matches the service defaults.
var DefaultOCROptions = OCROptions{DPI: 300, MaxPages: 3}

// ExtractOCR renders the first pages of a scanned PDF to images and runs
// Tesseract on them. Each page image is converted to grayscale with boosted
// contrast before recognition. Returns the empty string on any failure.
func ExtractOCR(filePath string, opts OCROptions) string {
	if opts.DPI <= 0 {
		opts.DPI = DefaultOCROptions.DPI
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultOCROptions.MaxPages
	}

	doc, err := fitz.New(filePath)
	if err != nil {
		log.WithError(err).Warn("OCR: failed to open PDF")
		return ""
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if numPages > opts.MaxPages {
		numPages = opts.MaxPages
	}

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage("eng"); err != nil {
		log.WithError(err).Warn("OCR: failed to set language")
		return ""
	}
	// Statements are a single block of mixed-size text.
	_ = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)

	var pages []string
	for i := 0; i < numPages; i++ {
		img, err := doc.ImageDPI(i, float64(opts.DPI))
		if err != nil {
			log.WithError(err).WithField("page", i+1).Warn("OCR: page render failed")
			continue
		}

		// Grayscale + contrast boost improves Tesseract accuracy on
		// colored statement backgrounds.
		processed := imaging.AdjustContrast(imaging.Grayscale(img), 30)

		tmp, err := os.CreateTemp("", "ocr-page-*.png")
		if err != nil {
			continue
		}
		tmpName := tmp.Name()
		_ = tmp.Close()

		if err := imaging.Save(processed, tmpName); err != nil {
			_ = os.Remove(tmpName)
			continue
		}

		if err := client.SetImage(tmpName); err != nil {
			_ = os.Remove(tmpName)
			continue
		}
		text, err := client.Text()
		_ = os.Remove(tmpName)
		if err != nil {
			log.WithError(err).WithField("page", i+1).Warn("OCR: recognition failed")
			continue
		}

		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		log.WithField("file_path", filePath).Warn("OCR produced no text")
		return ""
	}

	log.WithField("pages", len(pages)).Info("OCR extraction complete")
	return strings.Join(pages, "\n")
}
