package s3blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

type fakeWriter struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeWriter) Put(_ context.Context, path string, data io.Reader, contentType string) error {
	if f.err != nil {
		return f.err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(data); err != nil {
		return err
	}
	f.objects[path] = buf.Bytes()
	f.types[path] = contentType
	return nil
}

type fakeRunSource struct {
	runs    []domain.ScanRun
	listErr error
	deleted bool
}

func (f *fakeRunSource) ListBefore(context.Context, time.Time) ([]domain.ScanRun, error) {
	return f.runs, f.listErr
}

func (f *fakeRunSource) DeleteBefore(context.Context, time.Time) (int64, error) {
	f.deleted = true
	return int64(len(f.runs)), nil
}

func runAt(t time.Time) domain.ScanRun {
	return domain.ScanRun{
		ID:        "run-" + t.Format("20060102"),
		Threshold: 5,
		Timeframe: domain.Timeframe24h,
		RanAt:     t,
	}
}

func TestArchiveScanRuns_GroupsByMonth(t *testing.T) {
	writer := newFakeWriter()
	source := &fakeRunSource{runs: []domain.ScanRun{
		runAt(time.Date(2026, 6, 5, 10, 0, 0, 0, time.UTC)),
		runAt(time.Date(2026, 6, 20, 10, 0, 0, 0, time.UTC)),
		runAt(time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)),
	}}

	a := NewArchiver(writer, source)
	n, err := a.ArchiveScanRuns(context.Background(), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, int64(3), n)
	assert.True(t, source.deleted)
	require.Len(t, writer.objects, 2)

	june := writer.objects["archive/scan_runs/2026-06.jsonl"]
	require.NotNil(t, june)
	assert.Equal(t, 2, strings.Count(string(june), "\n"))
	assert.Equal(t, "application/x-ndjson", writer.types["archive/scan_runs/2026-06.jsonl"])

	july := writer.objects["archive/scan_runs/2026-07.jsonl"]
	require.NotNil(t, july)
	assert.Equal(t, 1, strings.Count(string(july), "\n"))
}

func TestArchiveScanRuns_NothingToArchive(t *testing.T) {
	writer := newFakeWriter()
	a := NewArchiver(writer, &fakeRunSource{})

	n, err := a.ArchiveScanRuns(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, writer.objects)
}

func TestArchiveScanRuns_UploadFailureLeavesStoreUntouched(t *testing.T) {
	writer := newFakeWriter()
	writer.err = errors.New("s3: access denied")
	source := &fakeRunSource{runs: []domain.ScanRun{
		runAt(time.Date(2026, 6, 5, 10, 0, 0, 0, time.UTC)),
	}}

	a := NewArchiver(writer, source)
	_, err := a.ArchiveScanRuns(context.Background(), time.Now())

	assert.Error(t, err)
	assert.False(t, source.deleted)
}

func TestArchiveScanRuns_ListFailure(t *testing.T) {
	source := &fakeRunSource{listErr: errors.New("pg down")}
	a := NewArchiver(newFakeWriter(), source)

	_, err := a.ArchiveScanRuns(context.Background(), time.Now())
	assert.Error(t, err)
	assert.False(t, source.deleted)
}
