// Package watch processes CSV files dropped into a directory, writing one
// result file per input.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"distance-calculator/internal/bulk"
	"distance-calculator/internal/csvio"
	"distance-calculator/internal/domain"
	"distance-calculator/internal/export"
	"distance-calculator/internal/platform/obs"
)

// Watcher monitors a directory for new CSV files and runs the bulk pipeline
// on each. One file is processed at a time; a new arrival waits its turn.
type Watcher struct {
	Pipeline *bulk.Pipeline
	Mode     domain.TravelMode
	OutDir   string
	Format   string // "csv" or "xlsx"
}

func New(pipeline *bulk.Pipeline, mode domain.TravelMode, outDir, format string) *Watcher {
	if format == "" {
		format = "csv"
	}
	return &Watcher{Pipeline: pipeline, Mode: mode, OutDir: outDir, Format: format}
}

// Start watches dir until ctx is cancelled. Existing files are processed
// first, then arrivals as they are created.
func (w *Watcher) Start(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	if err := w.backfill(ctx, dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-watcher.Events:
			if shouldProcess(evt) {
				w.processFile(ctx, evt.Name)
			}
		case err := <-watcher.Errors:
			log.Printf("watcher error: %v", err)
		}
	}
}

// backfill processes files already present when watching starts.
func (w *Watcher) backfill(ctx context.Context, dir string) error {
	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if isCSV(e) {
			w.processFile(ctx, e)
		}
	}
	return nil
}

func (w *Watcher) processFile(ctx context.Context, path string) {
	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)

	log.Printf("run_id=%s processing %s", runID, path)

	f, err := os.Open(path)
	if err != nil {
		log.Printf("run_id=%s open %s: %v", runID, path, err)
		return
	}
	defer f.Close()

	results, err := w.Pipeline.ProcessFile(ctx, f, w.Mode)
	if err != nil {
		log.Printf("run_id=%s processing failed: %v", runID, err)
		return
	}

	headers := bulk.OutputHeaders(w.Mode, results)
	rows := bulk.OutputRows(w.Mode, results)

	outPath := filepath.Join(w.OutDir, outputName(path, w.Mode, w.Format))
	if err := writeOutput(outPath, w.Format, headers, rows); err != nil {
		log.Printf("run_id=%s write output: %v", runID, err)
		return
	}

	log.Printf("run_id=%s wrote %d rows to %s", runID, len(rows), outPath)
}

func writeOutput(path, format string, headers []string, rows []csvio.Row) error {
	if format == "xlsx" {
		return export.WriteXLSX(path, headers, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return csvio.Write(f, headers, rows)
}

func outputName(inPath string, mode domain.TravelMode, format string) string {
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	return base + "_" + string(mode) + "." + format
}

// shouldProcess reports whether an event introduces a new CSV file. Rename
// events carry the old path of a moved file; a file renamed into the watched
// directory surfaces as Create under its new name, so only Create counts.
func shouldProcess(evt fsnotify.Event) bool {
	return evt.Op.Has(fsnotify.Create) && isCSV(evt.Name)
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
