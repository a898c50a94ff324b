package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ledgerscan/statement-engine/internal/model"
)

func TestConvertFileMissingInput(t *testing.T) {
	err := convertFile(filepath.Join(t.TempDir(), "missing.pdf"), "", "csv", true, model.DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for a nonexistent input file")
	}
}

func TestConvertFileRejectsNonPDFExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("writing fixture file: %v", err)
	}

	err := convertFile(path, "", "csv", true, model.DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for a non-.pdf input file")
	}
}

func TestScanAndConvertMissingWatchDirDoesNotPanic(t *testing.T) {
	scanAndConvert(filepath.Join(t.TempDir(), "does-not-exist"), t.TempDir(), model.DefaultConfig(), "csv", true)
}

func TestScanAndConvertSkipsAlreadyConvertedFiles(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "statement.pdf")
	csvPath := filepath.Join(dir, "statement.csv")
	if err := os.WriteFile(pdfPath, []byte("%PDF-fake"), 0o644); err != nil {
		t.Fatalf("writing fixture pdf: %v", err)
	}
	sentinel := []byte("already converted, do not touch")
	if err := os.WriteFile(csvPath, sentinel, 0o644); err != nil {
		t.Fatalf("writing fixture csv: %v", err)
	}

	scanAndConvert(dir, dir, model.DefaultConfig(), "csv", true)

	got, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("reading csv after scan: %v", err)
	}
	if string(got) != string(sentinel) {
		t.Errorf("csv content changed = %q, want untouched sentinel content (already-converted file should be skipped)", got)
	}
}

func TestScanAndConvertIgnoresNonPDFAndDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("creating fixture subdir: %v", err)
	}

	scanAndConvert(dir, dir, model.DefaultConfig(), "csv", true)
}
