// Package netmon watches platform network signals and turns them into a
// single online/offline state for the rest of the client.
//
// The monitor never probes the remote: it only inspects local link state
// (and accepts pushed hints via [Monitor.Notify]), so "online" is a claim
// about the machine, not about the server. State changes are published at
// most once per transition.
package netmon

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tasksync-dev/tasksync/internal/config"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/models"
)

// LinkSource answers whether the platform currently has a usable network
// link. Implementations must not send traffic to the remote.
type LinkSource interface {
	Up(ctx context.Context) (bool, error)
}

// InterfaceSource reports the link state from the kernel's interface table:
// the link is up when at least one non-loopback interface is up and running.
type InterfaceSource struct{}

// Up implements LinkSource.
func (InterfaceSource) Up(_ context.Context) (bool, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false, fmt.Errorf("failed to list network interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagRunning == 0 {
			continue
		}
		return true, nil
	}

	return false, nil
}

// Monitor tracks the current network state and publishes transitions.
//
// The monitor starts offline; the first sample that observes a usable link
// is published as a transition like any other. Consumers that fall behind
// never block publishers: the update channel holds only the latest value.
type Monitor struct {
	source   LinkSource
	interval time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	online  bool
	updates chan bool
}

// NewMonitor returns a Monitor over the given link source. The resample
// interval comes from cfg; a non-positive value falls back to the default.
func NewMonitor(source LinkSource, cfg config.ClientWorkers, log *logger.Logger) *Monitor {
	interval := cfg.NetResampleInterval
	if interval <= 0 {
		interval = config.DefaultNetResampleInterval
	}

	return &Monitor{
		source:   source,
		interval: interval,
		logger:   log,
		updates:  make(chan bool, 1),
	}
}

// Current returns the last observed network state.
func (m *Monitor) Current() models.NetworkState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.NetworkStateOf(m.online)
}

// Updates returns the transition channel. Each received value is the state
// after a change; intermediate states may be coalesced, the latest one is
// always delivered.
func (m *Monitor) Updates() <-chan bool {
	return m.updates
}

// Notify feeds an externally observed link state into the monitor, for
// platforms that push connectivity signals instead of being polled. A value
// equal to the current state is ignored.
func (m *Monitor) Notify(online bool) {
	m.setState(online)
}

// Run samples the link source immediately and then on every tick until ctx
// is cancelled. Sampling errors keep the last known state.
func (m *Monitor) Run(ctx context.Context) error {
	m.sample(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.sample(ctx)
		}
	}
}

func (m *Monitor) sample(ctx context.Context) {
	up, err := m.source.Up(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "Monitor.sample").Msg("failed to sample network state")
		return
	}
	m.setState(up)
}

// setState records the new state and publishes it, once, on change.
func (m *Monitor) setState(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.online == online {
		return
	}
	m.online = online

	m.logger.Info().
		Str("func", "Monitor.setState").
		Str("network", string(models.NetworkStateOf(online))).
		Msg("network state changed")

	m.publishLocked(online)
}

// publishLocked delivers the latest state without blocking. If an unread
// value is still sitting in the channel it is replaced: only the newest
// state matters to consumers. Callers must hold m.mu.
func (m *Monitor) publishLocked(online bool) {
	select {
	case m.updates <- online:
		return
	default:
	}

	select {
	case <-m.updates:
	default:
	}

	select {
	case m.updates <- online:
	default:
	}
}
