package extractor

import (
	"io"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "extractor")

// MinTextLength is the threshold below which primary extraction is
// considered insufficient and the OCR fallback kicks in.
const MinTextLength = 50

// Extract reads a PDF file and returns its text content. It tries several
// extraction methods to handle different PDF encodings and returns the
// first readable result. On any failure it returns the empty string —
// errors never cross this boundary.
func Extract(filePath string) string {
	if text := extractWithLibrary(filePath); isReadableText(text) {
		return text
	}
	// Library failed or returned garbage — render-engine extraction
	// handles custom font encodings the pure-Go library cannot.
	if text := extractWithFitz(filePath); isReadableText(text) {
		return text
	}
	log.WithField("file_path", filePath).Warn("no readable text extracted from PDF")
	return ""
}

// extractWithLibrary uses the ledongthuc/pdf library with multiple methods.
func extractWithLibrary(filePath string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Warn("PDF library crashed")
			text = ""
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		log.WithError(err).Debug("PDF open failed")
		return ""
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return ""
	}

	// Row-based extraction preserves table layout best.
	if text := extractByRow(r, numPages); isReadableText(text) {
		return text
	}
	// Coordinate-based row reconstruction from raw text objects.
	if text := extractByContent(r, numPages); isReadableText(text) {
		return text
	}
	// Whole-document plain text as the last library method.
	return extractByReaderPlainText(r)
}

func extractByRow(r *pdf.Reader, numPages int) string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n")
}

// extractByContent groups text pieces by Y coordinate to reconstruct rows,
// then sorts each row by X.
func extractByContent(r *pdf.Reader, numPages int) string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y runs bottom-to-top.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					// Large gap — column separator.
					parts = append(parts, "  ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n")
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithFitz extracts per-page text through MuPDF.
func extractWithFitz(filePath string) string {
	doc, err := fitz.New(filePath)
	if err != nil {
		log.WithError(err).Debug("fitz open failed")
		return ""
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// textQuality returns the ratio of readable ASCII characters (letters,
// digits, common punctuation, whitespace) to total characters. A strict
// ASCII check is used on purpose: identity-encoded fonts produce garbage
// full of accented letters that unicode.IsLetter would accept.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"%&@#!?+=*\t", r) ||
			r == '₹' || r == '$' {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually all credit-card statements. Text that
// contains none of them is likely garbage.
var commonWords = []string{
	"card", "credit", "statement", "payment", "due", "amount",
	"total", "bank", "balance", "date", "limit", "minimum",
	"period", "account", "transaction", "page",
}

func containsCommonWords(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// isReadableText checks that the text is long enough, mostly readable
// ASCII, and contains at least one recognizable statement word.
func isReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= MinTextLength {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	return containsCommonWords(text)
}

// IsReadableText is the exported version for use by other packages.
func IsReadableText(text string) bool {
	return isReadableText(text)
}
