// Package network reports whether the remote store can be reached.
package network

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"pawsync/config"
	"pawsync/internal/domain/service"

	"go.uber.org/fx"
)

// MonitorParams holds dependencies for the network monitor, injected by Fx
type MonitorParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewNetworkMonitor creates a probing monitor when a probe address is configured and
// an always-online monitor otherwise.
func NewNetworkMonitor(params MonitorParams) service.NetworkMonitor {
	cfg := params.Config.Network
	if cfg == nil || cfg.ProbeAddress == "" {
		params.Logger.Info("No network probe configured, assuming the remote store is reachable")

		return NewStaticMonitor(true)
	}

	params.Logger.Info("Probing remote store reachability",
		slog.String("address", cfg.ProbeAddress),
		slog.Duration("interval", cfg.PollInterval),
	)

	return NewProbeMonitor(cfg.ProbeAddress, cfg.ProbeTimeout, cfg.PollInterval, params.Logger)
}

// ProbeMonitor dials a TCP address to decide reachability.
type ProbeMonitor struct {
	address  string
	timeout  time.Duration
	interval time.Duration
	logger   *slog.Logger
	dialer   net.Dialer
}

// NewProbeMonitor creates a monitor probing address.
func NewProbeMonitor(address string, timeout, interval time.Duration, logger *slog.Logger) *ProbeMonitor {
	return &ProbeMonitor{
		address:  address,
		timeout:  timeout,
		interval: interval,
		logger:   logger,
	}
}

// Reachable reports whether a TCP connection to the probe address succeeds within the timeout.
func (m *ProbeMonitor) Reachable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	conn, err := m.dialer.DialContext(probeCtx, "tcp", m.address)
	if err != nil {
		m.logger.Debug("Network probe failed",
			slog.String("address", m.address),
			slog.Any("error", err),
		)

		return false
	}
	_ = conn.Close()

	return true
}

// Watch probes on every interval and emits the reachability whenever it changes.
// The first probe result is always emitted. The channel closes when ctx is done.
func (m *ProbeMonitor) Watch(ctx context.Context) <-chan bool {
	out := make(chan bool, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		var (
			last  bool
			known bool
		)
		for {
			online := m.Reachable(ctx)
			if !known || online != last {
				known, last = true, online
				select {
				case out <- online:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// StaticMonitor reports a reachability set by the caller.
type StaticMonitor struct {
	mu       sync.Mutex
	online   bool
	watchers map[chan bool]struct{}
}

// NewStaticMonitor creates a monitor with a fixed initial state.
func NewStaticMonitor(online bool) *StaticMonitor {
	return &StaticMonitor{
		online:   online,
		watchers: make(map[chan bool]struct{}),
	}
}

// SetOnline changes the reported reachability and notifies watchers on change.
func (m *StaticMonitor) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.online == online {
		return
	}
	m.online = online

	for ch := range m.watchers {
		// Watchers only care about the latest state.
		select {
		case <-ch:
		default:
		}
		ch <- online
	}
}

// Reachable returns the current state.
func (m *StaticMonitor) Reachable(_ context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.online
}

// Watch emits the current state, then every change until ctx is done.
func (m *StaticMonitor) Watch(ctx context.Context) <-chan bool {
	ch := make(chan bool, 1)

	m.mu.Lock()
	ch <- m.online
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()

		m.mu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.mu.Unlock()
	}()

	return ch
}
