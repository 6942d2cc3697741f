package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/momentum"
	"github.com/alanyoungcy/momentumbot/internal/pricing"
	"github.com/alanyoungcy/momentumbot/internal/technical"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v float64) *float64 { return &v }

type fakeProvider struct {
	universe []domain.TokenSnapshot
	snap     domain.TokenSnapshot
	history  []float64
	err      error

	gotLimit  int
	gotSymbol string
}

func (f *fakeProvider) TopMarkets(_ context.Context, limit int) ([]domain.TokenSnapshot, error) {
	f.gotLimit = limit
	return f.universe, f.err
}

func (f *fakeProvider) TokenMarket(_ context.Context, symbol string) (domain.TokenSnapshot, []float64, error) {
	f.gotSymbol = symbol
	return f.snap, f.history, f.err
}

type fakeBus struct {
	published map[string][][]byte
	err       error
}

func newFakeBus() *fakeBus {
	return &fakeBus{published: map[string][][]byte{}}
}

func (f *fakeBus) Publish(_ context.Context, channel string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published[channel] = append(f.published[channel], payload)
	return nil
}

func (f *fakeBus) Subscribe(context.Context, string) (<-chan []byte, error) {
	return nil, errors.New("not implemented")
}

// --- scan service ---

func TestScanService_PublishesEvents(t *testing.T) {
	provider := &fakeProvider{universe: []domain.TokenSnapshot{
		{Symbol: "BTC", Change24h: ptr(8.0)},
	}}
	bus := newFakeBus()
	svc := NewScanService(provider, momentum.NewScanner(chains.NewRegistry()), bus, 100, testLogger())

	report, err := svc.Scan(context.Background(), 5, domain.Timeframe24h)
	require.NoError(t, err)

	assert.Equal(t, 100, provider.gotLimit)
	assert.True(t, report.MomentumDetected)

	require.Len(t, bus.published[ChannelScan], 1)
	require.Len(t, bus.published[ChannelMomentum], 1)

	var event struct {
		Event  string            `json:"event"`
		Report domain.ScanReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(bus.published[ChannelMomentum][0], &event))
	assert.Equal(t, "momentum_detected", event.Event)
	assert.Equal(t, 1, event.Report.Found)
}

func TestScanService_NoMomentumEventWithoutMatches(t *testing.T) {
	provider := &fakeProvider{universe: []domain.TokenSnapshot{
		{Symbol: "BTC", Change24h: ptr(1.0)},
	}}
	bus := newFakeBus()
	svc := NewScanService(provider, momentum.NewScanner(chains.NewRegistry()), bus, 100, testLogger())

	_, err := svc.Scan(context.Background(), 5, domain.Timeframe24h)
	require.NoError(t, err)

	assert.Len(t, bus.published[ChannelScan], 1)
	assert.Empty(t, bus.published[ChannelMomentum])
}

func TestScanService_PublishFailureDoesNotFailScan(t *testing.T) {
	provider := &fakeProvider{universe: []domain.TokenSnapshot{
		{Symbol: "BTC", Change24h: ptr(8.0)},
	}}
	bus := newFakeBus()
	bus.err = errors.New("redis down")
	svc := NewScanService(provider, momentum.NewScanner(chains.NewRegistry()), bus, 100, testLogger())

	_, err := svc.Scan(context.Background(), 5, domain.Timeframe24h)
	assert.NoError(t, err)
}

func TestScanService_NilBus(t *testing.T) {
	provider := &fakeProvider{universe: []domain.TokenSnapshot{
		{Symbol: "BTC", Change24h: ptr(8.0)},
	}}
	svc := NewScanService(provider, momentum.NewScanner(chains.NewRegistry()), nil, 100, testLogger())

	_, err := svc.Scan(context.Background(), 5, domain.Timeframe24h)
	assert.NoError(t, err)
}

func TestScanService_UpstreamFailure(t *testing.T) {
	provider := &fakeProvider{err: domain.ErrUpstreamUnavailable}
	svc := NewScanService(provider, momentum.NewScanner(chains.NewRegistry()), nil, 100, testLogger())

	_, err := svc.Scan(context.Background(), 5, domain.Timeframe24h)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

// --- analysis service ---

func TestAnalysisService_NormalizesToken(t *testing.T) {
	provider := &fakeProvider{snap: domain.TokenSnapshot{
		Symbol: "BTC", CurrentPrice: 65000, Change24h: ptr(6.0),
	}}
	svc := NewAnalysisService(provider, technical.NewAnalyzer(), testLogger())

	report, err := svc.Analyze(context.Background(), "  btc ", nil)
	require.NoError(t, err)

	assert.Equal(t, "BTC", provider.gotSymbol)
	assert.Equal(t, "BTC", report.Token)
}

func TestAnalysisService_EmptyTokenDefaultsToBTC(t *testing.T) {
	provider := &fakeProvider{snap: domain.TokenSnapshot{
		Symbol: "BTC", CurrentPrice: 65000, Change24h: ptr(6.0),
	}}
	svc := NewAnalysisService(provider, technical.NewAnalyzer(), testLogger())

	report, err := svc.Analyze(context.Background(), "   ", nil)
	require.NoError(t, err)

	assert.Equal(t, "BTC", provider.gotSymbol)
	assert.Equal(t, "BTC", report.Token)
}

func TestAnalysisService_UnknownTimeframe(t *testing.T) {
	svc := NewAnalysisService(&fakeProvider{}, technical.NewAnalyzer(), testLogger())

	_, err := svc.Analyze(context.Background(), "BTC", []domain.Timeframe{"30m"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedTimeframe)
}

func TestAnalysisService_FourHourAllowedForAnalysis(t *testing.T) {
	provider := &fakeProvider{snap: domain.TokenSnapshot{Symbol: "BTC", Change24h: ptr(6.0)}}
	svc := NewAnalysisService(provider, technical.NewAnalyzer(), testLogger())

	_, err := svc.Analyze(context.Background(), "BTC", []domain.Timeframe{domain.Timeframe4h})
	assert.NoError(t, err)
}

// --- price service ---

func TestPriceService_DefaultsToAllMappedChains(t *testing.T) {
	provider := &fakeProvider{snap: domain.TokenSnapshot{
		Symbol: "SOL", CurrentPrice: 150, Volume24h: 1e9,
	}}
	svc := NewPriceService(provider, pricing.NewSynthesizer(chains.NewRegistry(), pricing.NoNoise), chains.NewRegistry(), testLogger())

	report, err := svc.Price(context.Background(), "sol", nil)
	require.NoError(t, err)

	assert.Len(t, report.Chains, 2)
	assert.Contains(t, report.Chains, "solana")
	assert.Contains(t, report.Chains, "ethereum")
	assert.NotEmpty(t, report.Arbitrage.BuyChain)
}

func TestPriceService_RequestedChainsRespected(t *testing.T) {
	provider := &fakeProvider{snap: domain.TokenSnapshot{
		Symbol: "BTC", CurrentPrice: 65000, Volume24h: 2e9,
	}}
	svc := NewPriceService(provider, pricing.NewSynthesizer(chains.NewRegistry(), pricing.NoNoise), chains.NewRegistry(), testLogger())

	report, err := svc.Price(context.Background(), "BTC", []string{"ethereum"})
	require.NoError(t, err)

	assert.Len(t, report.Chains, 1)
	assert.Contains(t, report.Chains, "ethereum")
}

func TestPriceService_EmptyTokenDefaultsToBTC(t *testing.T) {
	provider := &fakeProvider{snap: domain.TokenSnapshot{
		Symbol: "BTC", CurrentPrice: 65000, Volume24h: 2e9,
	}}
	svc := NewPriceService(provider, pricing.NewSynthesizer(chains.NewRegistry(), pricing.NoNoise), chains.NewRegistry(), testLogger())

	report, err := svc.Price(context.Background(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, "BTC", provider.gotSymbol)
	assert.Equal(t, "BTC", report.Token)
	assert.NotEmpty(t, report.Chains)
}

func TestPriceService_NoChainSupport(t *testing.T) {
	provider := &fakeProvider{snap: domain.TokenSnapshot{Symbol: "SOL", CurrentPrice: 150}}
	svc := NewPriceService(provider, pricing.NewSynthesizer(chains.NewRegistry(), pricing.NoNoise), chains.NewRegistry(), testLogger())

	_, err := svc.Price(context.Background(), "SOL", []string{"bsc"})
	assert.ErrorIs(t, err, domain.ErrNoChainSupport)
}
