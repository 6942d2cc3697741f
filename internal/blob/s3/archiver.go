package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// ScanRunSource is the slice of the scan store the archiver needs: reading
// aged runs and pruning them once they are safely in object storage.
type ScanRunSource interface {
	ListBefore(ctx context.Context, before time.Time) ([]domain.ScanRun, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// Archiver exports aged scan runs to object storage as JSONL, one object per
// calendar month, then prunes the exported rows from the primary store.
type Archiver struct {
	writer domain.BlobWriter
	runs   ScanRunSource
}

// NewArchiver creates an Archiver over the given writer and scan run source.
func NewArchiver(writer domain.BlobWriter, runs ScanRunSource) *Archiver {
	return &Archiver{writer: writer, runs: runs}
}

// ArchiveScanRuns exports all runs recorded strictly before the cutoff and
// deletes them from the store. Rows are only deleted after every monthly
// object has been uploaded, so a failed upload leaves the store untouched.
// Returns the number of runs archived.
func (a *Archiver) ArchiveScanRuns(ctx context.Context, before time.Time) (int64, error) {
	runs, err := a.runs.ListBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("s3blob: archive scan runs query: %w", err)
	}
	if len(runs) == 0 {
		return 0, nil
	}

	byMonth := make(map[string][]domain.ScanRun)
	for _, run := range runs {
		month := run.RanAt.UTC().Format("2006-01")
		byMonth[month] = append(byMonth[month], run)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	for _, month := range months {
		buf, err := marshalJSONL(byMonth[month])
		if err != nil {
			return 0, fmt.Errorf("s3blob: archive scan runs marshal %s: %w", month, err)
		}
		path := archivePath(month)
		if err := a.writer.Put(ctx, path, bytes.NewReader(buf), "application/x-ndjson"); err != nil {
			return 0, fmt.Errorf("s3blob: archive scan runs upload %s: %w", path, err)
		}
	}

	deleted, err := a.runs.DeleteBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("s3blob: prune archived scan runs: %w", err)
	}
	return deleted, nil
}

// archivePath builds the object key for one month of scan runs:
//
//	archive/scan_runs/2026-07.jsonl
func archivePath(month string) string {
	return fmt.Sprintf("archive/scan_runs/%s.jsonl", month)
}

// marshalJSONL serialises records as newline-delimited JSON, one compact
// line per record.
func marshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("jsonl encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
