package impl

import (
	"log/slog"
	"testing"

	"pawsync/config"
	"pawsync/internal/infra/metrics"
	"pawsync/internal/infra/network"
	"pawsync/internal/infra/persistence/local"
	"pawsync/internal/infra/remote/memory"
	mockSvc "pawsync/internal/mocks/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// syncFixtures wires coordinators to an in-memory local store and remote store.
type syncFixtures struct {
	db        *gorm.DB
	remote    *memory.Store
	network   *network.StaticMonitor
	registry  *prometheus.Registry
	publisher *mockSvc.MockEventPublisher
	params    CoordinatorParams
}

func newSyncFixtures(t *testing.T, online bool) *syncFixtures {
	t.Helper()

	db, err := local.OpenSQLite(":memory:", nil, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	remote := memory.NewStore()
	monitor := network.NewStaticMonitor(online)
	registry := prometheus.NewRegistry()
	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishSyncEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	return &syncFixtures{
		db:        db,
		remote:    remote,
		network:   monitor,
		registry:  registry,
		publisher: publisher,
		params: CoordinatorParams{
			Remote:     remote,
			Tombstones: local.NewTombstoneRepository(db),
			Network:    monitor,
			Publisher:  publisher,
			Metrics:    metrics.NewSyncMetrics(registry),
			Config:     &config.Config{Sync: &config.SyncConfig{Workers: 2}},
			Logger:     slog.New(slog.DiscardHandler),
		},
	}
}

// counterValue sums the samples of a counter whose labels include every given pair.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, pair := range m.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				total += m.GetCounter().GetValue()
			}
		}
	}

	return total
}
