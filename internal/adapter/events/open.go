package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fundflow/internal/domain"
	"fundflow/internal/infra"
)

// Open connects every sink listed in cfg.EventSinks and returns them as one
// fan-out. The returned function closes the underlying connections.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.EventSink, func(), error) {
	var (
		sinks   Fanout
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	for _, name := range cfg.EventSinks {
		switch name {
		case infra.EventSinkLog:
			sinks = append(sinks, NewLogSink(logger))
		case infra.EventSinkRedis:
			client, err := ConnectRedis(ctx, cfg.RedisURL)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, func() { _ = client.Close() })
			sinks = append(sinks, NewRedisSink(client, cfg.EventTopicPrefix))
		case infra.EventSinkNATS:
			nc, err := ConnectNATS(cfg.NATSURL)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, func() { _ = nc.Drain() })
			sinks = append(sinks, NewNATSSink(nc, cfg.EventTopicPrefix))
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unsupported event sink %q", name)
		}
	}

	logger.Info().Strs("sinks", cfg.EventSinks).Msg("event sinks ready")
	return sinks, closeAll, nil
}
