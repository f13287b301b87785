package pubsub

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"pawsync/config"
	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPublishTimeout = 5 * time.Second

// discardPublisher drops events when no broker is configured.
type discardPublisher struct {
	logger *slog.Logger
}

func (p *discardPublisher) PublishSyncEvent(ctx context.Context, event *service.SyncEvent) error {
	fields := eventAttributes(event)
	attrs := make([]any, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.String(k, v))
	}
	p.logger.DebugContext(ctx, "Sync event not published, no broker configured", attrs...)

	return nil
}

func (p *discardPublisher) Close() error {
	return nil
}

// scopedPublisher fills in what the event producer left out, skips kinds nobody
// subscribed to and bounds every publish call.
type scopedPublisher struct {
	next    service.EventPublisher
	kinds   map[string]struct{}
	timeout time.Duration
}

func (p *scopedPublisher) PublishSyncEvent(ctx context.Context, event *service.SyncEvent) error {
	if p.kinds != nil {
		if _, ok := p.kinds[event.Kind]; !ok {
			return nil
		}
	}
	if event.RequestID == "" {
		event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	// A cancelled request must not drop the outcome of a remote write that already happened.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.next.PublishSyncEvent(ctx, event)
}

func (p *scopedPublisher) Close() error {
	return p.next.Close()
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type backendFactory func(params PublisherParams, cfg *config.PubSubConfig) (service.EventPublisher, error)

//nolint:gochecknoglobals
var backends = map[string]backendFactory{
	config.PubSubProviderLocal: func(params PublisherParams, cfg *config.PubSubConfig) (service.EventPublisher, error) {
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		params.Logger.Info("Publishing sync events over local HTTP", slog.String("endpoint", cfg.LocalEndpoint))

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, params.Logger), nil
	},
	config.PubSubProviderGoogle: func(params PublisherParams, cfg *config.PubSubConfig) (service.EventPublisher, error) {
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		params.Logger.Info("Publishing sync events to Google Pub/Sub",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID))

		return NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, params.Logger)
	},
}

// NewEventPublisher selects the sync event backend from configuration.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	if cfg == nil || cfg.Provider == "" {
		params.Logger.Info("PubSub not configured, sync events are discarded")

		return &discardPublisher{logger: params.Logger}, nil
	}

	factory, ok := backends[cfg.Provider]
	if !ok {
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	kinds, err := publishedKinds(cfg.Kinds)
	if err != nil {
		return nil, err
	}

	backend, err := factory(params, cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	publisher := &scopedPublisher{next: backend, kinds: kinds, timeout: timeout}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// publishedKinds validates the configured kind filter. A nil map publishes every kind.
func publishedKinds(names []string) (map[string]struct{}, error) {
	if len(names) == 0 {
		return nil, nil
	}

	kinds := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !slices.Contains(entity.AllKinds(), entity.Kind(name)) {
			return nil, errors.Errorf("unknown sync event kind: %s", name)
		}
		kinds[name] = struct{}{}
	}

	return kinds, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
