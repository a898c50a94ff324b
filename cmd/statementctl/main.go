// Command statementctl converts bank statement PDFs to CSV/XLSX from the
// command line, serves the engine over HTTP, or watches a directory for
// new PDFs to convert automatically.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/ledgerscan/statement-engine/internal/apiserver"
	"github.com/ledgerscan/statement-engine/internal/engine"
	"github.com/ledgerscan/statement-engine/internal/model"
	"github.com/ledgerscan/statement-engine/internal/pdfsource"
	"github.com/ledgerscan/statement-engine/internal/writer"
)

const version = "1.0.0"

func main() {
	formatFlag := flag.String("format", "csv", "Output format: csv, xlsx")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with the format's extension)")
	headerFlag := flag.Bool("header", true, "Include account metadata header rows in CSV output")
	localeFlag := flag.String("locale", "auto", "Locale hint: auto, en-GB, en-US, en-IN, ...")
	currencyFlag := flag.String("currency", "USD", "Local currency ISO code, used when converting embedded foreign amounts")
	strictFlag := flag.Bool("strict", true, "Reject documents that contain any error-status row")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API server instead of CLI mode")
	portFlag := flag.String("port", "8080", "Port for the HTTP API server (used with --serve)")
	watchFlag := flag.String("watch", "", "Watch this directory for new PDFs and convert them automatically")
	watchOutFlag := flag.String("watch-output", "", "Output directory for --watch conversions (defaults to the watched directory)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `statementctl — bank statement PDF to CSV/XLSX converter

Usage:
  statementctl [flags] <input.pdf> [input2.pdf ...]

  HTTP server mode:
  statementctl --serve [--port=8080]

  Watch mode:
  statementctl --watch ./incoming [--watch-output ./processed]

Flags:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statementctl v%s\n", version)
		os.Exit(0)
	}

	cfg := model.DefaultConfig()
	cfg.LocaleDetection = *localeFlag
	cfg.LocalCurrency = strings.ToUpper(*currencyFlag)
	cfg.StrictValidation = *strictFlag

	if *serveFlag {
		runServer(*portFlag, cfg)
		return
	}

	if *watchFlag != "" {
		runWatch(*watchFlag, *watchOutFlag, cfg, *formatFlag, *headerFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := convertFile(inputPath, *outputFlag, *formatFlag, *headerFlag, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func runServer(port string, cfg model.Config) {
	app := fiber.New(fiber.Config{
		AppName:   "statementctl v" + version,
		BodyLimit: 32 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	h, err := apiserver.NewHandler(cfg)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	h.RegisterRoutes(app)

	addr := ":" + port
	fmt.Printf("statementctl v%s listening on http://localhost%s\n", version, addr)
	log.Fatal(app.Listen(addr))
}

// runWatch polls watchDir every minute via cron and converts any PDF that
// has not already produced an output file, writing results to outDir (or
// watchDir itself when outDir is empty). This is a polling watch, not an
// inotify one, to keep the dependency surface to the cron package alone.
func runWatch(watchDir, outDir string, cfg model.Config, format string, includeHeader bool) {
	if outDir == "" {
		outDir = watchDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("cannot create watch output dir: %v", err)
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc("@every 1m", func() {
		scanAndConvert(watchDir, outDir, cfg, format, includeHeader)
	})
	if err != nil {
		log.Fatalf("cannot schedule watch job: %v", err)
	}

	fmt.Printf("statementctl watching %s (every 1m), writing to %s\n", watchDir, outDir)
	scanAndConvert(watchDir, outDir, cfg, format, includeHeader) // run once immediately
	scheduler.Run()
}

func scanAndConvert(watchDir, outDir string, cfg model.Config, format string, includeHeader bool) {
	entries, err := os.ReadDir(watchDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch: reading %s: %v\n", watchDir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		inputPath := filepath.Join(watchDir, e.Name())
		outPath := filepath.Join(outDir, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))+"."+format)
		if _, err := os.Stat(outPath); err == nil {
			continue // already converted
		}
		if err := convertFile(inputPath, outPath, format, includeHeader, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "watch: %s: %v\n", inputPath, err)
		} else {
			fmt.Printf("watch: converted %s -> %s\n", inputPath, outPath)
		}
	}
}

func convertFile(inputPath, outputPath, format string, includeHeader bool, cfg model.Config) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	fragments, err := pdfsource.Extract(inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}
	fmt.Printf("  Extracted %d text fragment(s)\n", len(fragments))

	validatedCfg, err := engine.NewConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	result := engine.ProcessDocument(context.Background(), filepath.Base(inputPath), fragments, validatedCfg, engine.NopObserver{})
	if !result.Success || result.Document == nil {
		if len(result.Errors) > 0 {
			return fmt.Errorf("processing failed: %s (%s)", result.Errors[0].Detail, result.Errors[0].Rule)
		}
		return fmt.Errorf("processing failed")
	}
	doc := *result.Document

	fmt.Printf("  Found %d transaction(s) across %d segment(s)\n", doc.Totals.Total, len(doc.Segments))
	if doc.Totals.Total == 0 {
		fmt.Println("  Warning: no transactions found; the PDF's layout may not match the column-detection heuristics.")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + format
	}

	switch strings.ToLower(format) {
	case "xlsx":
		w := &writer.XLSXWriter{}
		if err := w.WriteToFile(outPath, doc); err != nil {
			return fmt.Errorf("XLSX write failed: %w", err)
		}
	default:
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(outPath, doc); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)
	if doc.ExtractedHeader.AccountHolder != nil {
		fmt.Printf("  Account holder: %s\n", *doc.ExtractedHeader.AccountHolder)
	}
	if doc.ExtractedHeader.AccountNumberMasked != nil {
		fmt.Printf("  Account number: %s\n", *doc.ExtractedHeader.AccountNumberMasked)
	}
	if doc.ExtractedHeader.StatementPeriodFrom != nil && doc.ExtractedHeader.StatementPeriodTo != nil {
		fmt.Printf("  Period: %s to %s\n", *doc.ExtractedHeader.StatementPeriodFrom, *doc.ExtractedHeader.StatementPeriodTo)
	}
	fmt.Println("  Done.")
	return nil
}
