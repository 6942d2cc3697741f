package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/notify"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubScanRunner struct {
	report domain.ScanReport
	err    error
	calls  int
}

func (s *stubScanRunner) Scan(context.Context, float64, domain.Timeframe) (domain.ScanReport, error) {
	s.calls++
	return s.report, s.err
}

type stubScanStore struct {
	runs []domain.ScanRun
	err  error
}

func (s *stubScanStore) RecordRun(_ context.Context, run domain.ScanRun) error {
	if s.err != nil {
		return s.err
	}
	s.runs = append(s.runs, run)
	return nil
}

func (s *stubScanStore) ListRecent(context.Context, int) ([]domain.ScanRun, error) {
	return s.runs, nil
}

func (s *stubScanStore) ListBefore(context.Context, time.Time) ([]domain.ScanRun, error) {
	return nil, nil
}

func (s *stubScanStore) DeleteBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type stubLockManager struct {
	err      error
	acquired int
	released int
}

func (s *stubLockManager) Acquire(context.Context, string, time.Duration) (func(), error) {
	if s.err != nil {
		return nil, s.err
	}
	s.acquired++
	return func() { s.released++ }, nil
}

type stubAlerter struct {
	events []string
}

func (s *stubAlerter) Notify(_ context.Context, event, _, _ string) error {
	s.events = append(s.events, event)
	return nil
}

func TestRecorderRun_PersistsAndAlerts(t *testing.T) {
	scans := &stubScanRunner{report: domain.ScanReport{
		Threshold:        5,
		Timeframe:        domain.Timeframe24h,
		MomentumDetected: true,
		Found:            2,
		Tokens: []domain.MomentumResult{
			{Symbol: "BTC", Score: 40},
			{Symbol: "SOL", Score: 30},
		},
	}}
	store := &stubScanStore{}
	locks := &stubLockManager{}
	alerts := &stubAlerter{}

	r := NewRecorder(scans, store, locks, alerts, 5, domain.Timeframe24h, testLogger())
	require.NoError(t, r.Run(context.Background(), time.Minute))

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 5.0, run.Threshold)
	assert.Equal(t, domain.Timeframe24h, run.Timeframe)
	assert.Equal(t, 2, run.Found)
	assert.Len(t, run.Results, 2)
	assert.False(t, run.RanAt.IsZero())

	assert.Equal(t, 1, locks.acquired)
	assert.Equal(t, 1, locks.released)
	assert.Equal(t, []string{notify.EventMomentumDetected}, alerts.events)
}

func TestRecorderRun_NoMomentumNoAlert(t *testing.T) {
	scans := &stubScanRunner{report: domain.ScanReport{Threshold: 5, Timeframe: domain.Timeframe24h}}
	store := &stubScanStore{}
	alerts := &stubAlerter{}

	r := NewRecorder(scans, store, nil, alerts, 5, domain.Timeframe24h, testLogger())
	require.NoError(t, r.Run(context.Background(), time.Minute))

	assert.Len(t, store.runs, 1)
	assert.Empty(t, alerts.events)
}

func TestRecorderRun_HeldLockSkipsQuietly(t *testing.T) {
	scans := &stubScanRunner{}
	locks := &stubLockManager{err: domain.ErrLockHeld}

	r := NewRecorder(scans, &stubScanStore{}, locks, nil, 5, domain.Timeframe24h, testLogger())
	require.NoError(t, r.Run(context.Background(), time.Minute))

	assert.Equal(t, 0, scans.calls)
}

func TestRecorderRun_ScanFailureAlerts(t *testing.T) {
	scans := &stubScanRunner{err: errors.New("upstream down")}
	alerts := &stubAlerter{}

	r := NewRecorder(scans, &stubScanStore{}, nil, alerts, 5, domain.Timeframe24h, testLogger())
	err := r.Run(context.Background(), time.Minute)

	assert.Error(t, err)
	assert.Equal(t, []string{notify.EventScanFailed}, alerts.events)
}

func TestRecorderRun_PersistFailure(t *testing.T) {
	scans := &stubScanRunner{report: domain.ScanReport{Threshold: 5, Timeframe: domain.Timeframe24h}}
	store := &stubScanStore{err: errors.New("pg down")}

	r := NewRecorder(scans, store, nil, nil, 5, domain.Timeframe24h, testLogger())
	assert.Error(t, r.Run(context.Background(), time.Minute))
}

func TestRecorderRunLoop_StopsOnCancel(t *testing.T) {
	scans := &stubScanRunner{report: domain.ScanReport{Threshold: 5, Timeframe: domain.Timeframe24h}}
	store := &stubScanStore{}

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRecorder(scans, store, nil, nil, 5, domain.Timeframe24h, testLogger())

	done := make(chan error, 1)
	go func() { done <- r.RunLoop(ctx, time.Hour) }()

	// The loop records once immediately, then waits on the ticker.
	require.Eventually(t, func() bool { return scans.calls >= 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	assert.Len(t, store.runs, 1)
}
