package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/EliasGomez98/PDF-Scrapping/internal/batch"
	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
	"github.com/EliasGomez98/PDF-Scrapping/internal/export"
	"github.com/EliasGomez98/PDF-Scrapping/internal/pdftext"
	"github.com/EliasGomez98/PDF-Scrapping/internal/registry"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir        = flag.String("dir", "", "directory of PDFs to process (required)")
		out        = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		prefix     = flag.String("prefix", "", "output filename prefix (default from config)")
		configPath = flag.String("config", "", "path to TOML config (default expedientes.toml)")
		upper      = flag.Bool("upper", true, "uppercase document text before matching")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.Load(*configPath)
	if *prefix == "" {
		*prefix = cfg.Export.Prefix
	}
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, export.Filename(*prefix, time.Now()))
	}

	reg, err := registry.FromConfig(cfg.Registry)
	if err != nil {
		logger.Error("invalid field registry", "err", err)
		os.Exit(1)
	}

	exportSvc, err := export.NewService(cfg.Export, logger)
	if err != nil {
		logger.Error("spreadsheet engine unavailable", "err", err)
		os.Exit(1)
	}

	// Collect PDFs in name order, read their bytes up front
	docs, err := collectPDFs(*dir)
	if err != nil {
		logger.Error("failed to read input directory", "dir", *dir, "err", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		printError("Error: no PDF files found in %s\n", *dir)
		os.Exit(1)
	}
	logger.Info("starting batch", "dir", *dir, "documents", len(docs))

	extractor := pdftext.NewExtractor(logger)
	proc := batch.NewProcessor(extractor, reg, logger)
	res := proc.Run(ctx, docs, batch.Options{Uppercase: *upper})

	xlsxBytes, err := exportSvc.WriteXLSX(res.Records, reg.Fields(), res.Errors)
	if err != nil {
		logger.Error("failed to export batch", "err", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "path", *out, "err", err)
		os.Exit(1)
	}

	logger.Info("batch complete",
		"batch_id", res.BatchID.String(),
		"documents", len(docs),
		"processed", res.Processed,
		"failed", res.Failed,
		"errors", len(res.Errors),
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents: %d\n", len(docs))
	fmt.Printf("- Processed: %d\n", res.Processed)
	fmt.Printf("- Failed: %d\n", res.Failed)
	fmt.Printf("- Observations: %d\n", len(res.Errors))
	fmt.Printf("- Output: %s\n", *out)
}

// collectPDFs lists *.pdf files (non-recursive) in name order and loads them.
func collectPDFs(dir string) ([]batch.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]batch.Document, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		docs = append(docs, batch.Document{Name: name, Data: data})
	}
	return docs, nil
}
