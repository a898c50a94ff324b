package pdfsource

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledgerscan/statement-engine/internal/model"
)

// ExtractFragmentsOCR converts each PDF page to an image with pdftoppm and
// runs Tesseract in TSV mode, which reports a bounding box per recognized
// word rather than a flat transcript. Requires pdftoppm (poppler-utils)
// and tesseract (tesseract-ocr) on PATH; Extract uses it only when neither
// the native text layer nor the pdftotext fallback yields readable text.
func ExtractFragmentsOCR(filePath string) ([]model.TextFragment, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdfsource: pdftoppm not available (install poppler-utils): %w", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("pdfsource: tesseract not available (install tesseract-ocr): %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "pdfsource-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("pdfsource: creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imgPrefix := filepath.Join(tmpDir, "page")
	// -r 200 balances OCR accuracy against tesseract TSV runtime; 300 is
	// noticeably slower per page in TSV mode than it is for a plain-text
	// transcript.
	cmd := exec.Command("pdftoppm", "-r", "200", "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdfsource: pdftoppm failed: %w (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("pdfsource: reading temp dir: %w", err)
	}

	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdfsource: pdftoppm produced no page images")
	}

	var fragments []model.TextFragment
	for pageIdx, imgFile := range imageFiles {
		outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
		cmd := exec.Command("tesseract", imgFile, outBase, "-l", "eng", "--psm", "4", "tsv")
		if out, err := cmd.CombinedOutput(); err != nil {
			fmt.Fprintf(os.Stderr, "pdfsource: tesseract warning for %s: %v (output: %s)\n", imgFile, err, string(out))
			continue
		}

		tsvFile := outBase + ".tsv"
		words, err := parseTesseractTSV(tsvFile, pageIdx+1)
		if err != nil {
			continue
		}
		fragments = append(fragments, words...)
	}

	if len(fragments) == 0 {
		return nil, fmt.Errorf("pdfsource: tesseract OCR produced no text from %d page images", len(imageFiles))
	}
	return fragments, nil
}

// parseTesseractTSV reads a tesseract --psm 4 tsv output file and returns
// one TextFragment per recognized word. The TSV column order is level,
// page_num, block_num, par_num, line_num, word_num, left, top, width,
// height, conf, text.
func parseTesseractTSV(path string, pageNumber int) ([]model.TextFragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fragments []model.TextFragment
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue // header row
		}
		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) < 12 {
			continue
		}
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		left, err1 := strconv.ParseFloat(cols[6], 64)
		top, err2 := strconv.ParseFloat(cols[7], 64)
		width, err3 := strconv.ParseFloat(cols[8], 64)
		height, err4 := strconv.ParseFloat(cols[9], 64)
		conf, err5 := strconv.ParseFloat(cols[10], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		var confidence *float64
		if err5 == nil && conf >= 0 {
			c := conf / 100
			confidence = &c
		}
		fragments = append(fragments, model.TextFragment{
			Text:       text,
			Box:        model.BoundingBox{X: left, Y: top, Width: width, Height: height},
			PageNumber: pageNumber,
			Confidence: confidence,
			Source:     model.SourceOCR,
		})
	}
	return fragments, scanner.Err()
}
