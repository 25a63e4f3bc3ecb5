package netmon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync-dev/tasksync/internal/config"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/models"
)

// fakeSource is a LinkSource whose answer can be changed mid-test.
type fakeSource struct {
	mu  sync.Mutex
	up  bool
	err error
}

func (f *fakeSource) set(up bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.up, f.err = up, err
}

func (f *fakeSource) Up(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.up, f.err
}

func newTestMonitor(src LinkSource, interval time.Duration) *Monitor {
	cfg := config.ClientWorkers{NetResampleInterval: interval}
	return NewMonitor(src, cfg, logger.Nop())
}

func waitUpdate(t *testing.T, m *Monitor) bool {
	t.Helper()
	select {
	case v := <-m.Updates():
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a network update")
		return false
	}
}

func assertNoUpdate(t *testing.T, m *Monitor) {
	t.Helper()
	select {
	case v := <-m.Updates():
		t.Fatalf("unexpected network update: %v", v)
	case <-time.After(100 * time.Millisecond):
	}
}

// ── InterfaceSource ──────────────────────────────────────────────────────────

func TestInterfaceSource_Up(t *testing.T) {
	_, err := InterfaceSource{}.Up(context.Background())

	// the answer depends on the host, but listing interfaces must work
	require.NoError(t, err)
}

// ── Monitor state ────────────────────────────────────────────────────────────

func TestMonitor_StartsOffline(t *testing.T) {
	m := newTestMonitor(&fakeSource{}, time.Minute)

	assert.Equal(t, models.NetworkOffline, m.Current())
}

func TestNewMonitor_DefaultsInterval(t *testing.T) {
	m := newTestMonitor(&fakeSource{}, 0)

	assert.Equal(t, config.DefaultNetResampleInterval, m.interval)
}

func TestMonitor_Notify_PublishesTransition(t *testing.T) {
	m := newTestMonitor(&fakeSource{}, time.Minute)

	m.Notify(true)

	assert.Equal(t, models.NetworkOnline, m.Current())
	assert.True(t, waitUpdate(t, m))
}

func TestMonitor_Notify_IgnoresRepeats(t *testing.T) {
	m := newTestMonitor(&fakeSource{}, time.Minute)

	m.Notify(true)
	assert.True(t, waitUpdate(t, m))

	// same state again: no transition, no update
	m.Notify(true)
	assertNoUpdate(t, m)
}

func TestMonitor_Notify_CoalescesToLatest(t *testing.T) {
	m := newTestMonitor(&fakeSource{}, time.Minute)

	// two transitions with no reader in between: only the latest survives
	m.Notify(true)
	m.Notify(false)

	assert.False(t, waitUpdate(t, m))
	assertNoUpdate(t, m)
	assert.Equal(t, models.NetworkOffline, m.Current())
}

// ── Monitor run loop ─────────────────────────────────────────────────────────

func TestMonitor_Run_SamplesImmediately(t *testing.T) {
	src := &fakeSource{up: true}
	m := newTestMonitor(src, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() { errC <- m.Run(ctx) }()

	assert.True(t, waitUpdate(t, m))
	assert.Equal(t, models.NetworkOnline, m.Current())

	cancel()
	select {
	case err := <-errC:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestMonitor_Run_ObservesLinkLoss(t *testing.T) {
	src := &fakeSource{up: true}
	m := newTestMonitor(src, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = m.Run(ctx) }()

	assert.True(t, waitUpdate(t, m))

	src.set(false, nil)
	assert.False(t, waitUpdate(t, m))
	assert.Equal(t, models.NetworkOffline, m.Current())
}

func TestMonitor_Run_SampleErrorKeepsState(t *testing.T) {
	src := &fakeSource{up: true}
	m := newTestMonitor(src, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = m.Run(ctx) }()

	assert.True(t, waitUpdate(t, m))

	// a failing source is not evidence the link is down
	src.set(false, errors.New("interface table unavailable"))
	assertNoUpdate(t, m)
	assert.Equal(t, models.NetworkOnline, m.Current())
}
