package pdfsource

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// Extract is the package's single entry point: it returns positioned text
// fragments for a PDF on disk, trying the native library path first, then
// a layout-preserving pdftotext fallback, then OCR — a three-tier
// fallback chain where every tier still produces a BoundingBox instead of
// a flat string.
func Extract(filePath string) ([]model.TextFragment, error) {
	fragments, libErr := ExtractFragments(filePath)
	if libErr == nil && isReadableFragments(fragments) {
		return fragments, nil
	}

	layoutFragments, layoutErr := extractWithPdftotextLayout(filePath)
	if layoutErr == nil && isReadableFragments(layoutFragments) {
		return layoutFragments, nil
	}

	ocrFragments, ocrErr := ExtractFragmentsOCR(filePath)
	if ocrErr == nil && isReadableFragments(ocrFragments) {
		return ocrFragments, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("pdfsource: text extraction failed: %w. The PDF may use custom fonts or be image-based/scanned", libErr)
	}
	return nil, fmt.Errorf("pdfsource: no readable text could be extracted from %s", filePath)
}

// textQuality computes an ASCII-readability ratio, evaluated over
// fragment text rather than joined page strings.
func textQuality(fragments []model.TextFragment) float64 {
	total, readable := 0, 0
	for _, f := range fragments {
		for _, r := range f.Text {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(".,-/:;()'\"£$€%&@#!?+=*\t", r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

var commonStatementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "sort code",
	"money", "paid", "opening", "closing", "transfer", "direct",
	"number", "page", "period",
}

func containsCommonWords(fragments []model.TextFragment) bool {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(strings.ToLower(f.Text))
		b.WriteByte(' ')
	}
	combined := b.String()
	for _, word := range commonStatementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

func totalTextLen(fragments []model.TextFragment) int {
	n := 0
	for _, f := range fragments {
		n += len(strings.TrimSpace(f.Text))
	}
	return n
}

// isReadableFragments applies a three-part gate (enough text, mostly
// ASCII, at least one recognizable word) to a fragment slice instead of
// a page-string slice.
func isReadableFragments(fragments []model.TextFragment) bool {
	if totalTextLen(fragments) <= 50 {
		return false
	}
	if textQuality(fragments) <= 0.6 {
		return false
	}
	return containsCommonWords(fragments)
}

// extractWithPdftotextLayout shells out to pdftotext -layout, which
// preserves column alignment with spaces but not real coordinates. X is
// reconstructed from each word's rune offset within its line (scaled by an
// assumed monospace character width); Y is reconstructed from line index.
// This is an approximation, not a replacement for native coordinates, used
// only when the library path fails or yields unreadable text.
func extractWithPdftotextLayout(filePath string) ([]model.TextFragment, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	numPages := 1
	if out, err := exec.Command("pdfinfo", filePath).Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "Pages:") {
				if n, perr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:"))); perr == nil && n > 0 {
					numPages = n
				}
			}
		}
	}

	const charWidth = 6.0
	const lineHeight = 12.0

	var fragments []model.TextFragment
	for page := 1; page <= numPages; page++ {
		pageStr := strconv.Itoa(page)
		out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, filePath, "-").Output()
		if err != nil {
			continue
		}
		lines := strings.Split(string(out), "\n")
		for lineIdx, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			y := float64(lineIdx) * lineHeight
			for _, word := range splitWithOffsets(line) {
				fragments = append(fragments, model.TextFragment{
					Text: word.text,
					Box: model.BoundingBox{
						X:      float64(word.offset) * charWidth,
						Y:      y,
						Width:  float64(len([]rune(word.text))) * charWidth,
						Height: lineHeight,
					},
					PageNumber: page,
					Source:     model.SourceNative,
				})
			}
		}
	}

	if len(fragments) == 0 {
		return nil, fmt.Errorf("pdftotext produced no words")
	}
	return fragments, nil
}

type offsetWord struct {
	text   string
	offset int
}

// splitWithOffsets splits a line on whitespace runs while recording each
// word's starting rune offset, so column position survives the split.
func splitWithOffsets(line string) []offsetWord {
	var words []offsetWord
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		if i > start {
			words = append(words, offsetWord{text: string(runes[start:i]), offset: start})
		}
	}
	return words
}
