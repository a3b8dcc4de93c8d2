package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/replaykit/replay/pkg/logging"
)

// channelPrefix namespaces mirrored bus events on Redis.
const channelPrefix = "replay.events."

// Bridge mirrors bus events onto Redis pub/sub channels so external
// observers (dashboards, recorders) can follow a review session. Mirroring
// is best-effort: publish failures are logged and dropped, never surfaced
// to the session core.
type Bridge struct {
	client *redis.Client
	logger logging.Logger
	unsubs []func()
}

// BridgeConfig holds Redis connection settings for the event mirror.
type BridgeConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewBridge connects to Redis and returns a bridge ready to attach.
func NewBridge(cfg BridgeConfig, logger logging.Logger) (*Bridge, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Bridge{
		client: client,
		logger: logger.With(logging.F("component", "bus_bridge")),
	}, nil
}

// Attach subscribes the bridge to every bus topic.
func (br *Bridge) Attach(b *Bus) {
	topics := []Topic{
		TopicSentenceChangeRequested,
		TopicMarkChanged,
		TopicSelectionMarkAdded,
		TopicPlayFromTimeRequested,
		TopicNoteCaptureRequested,
		TopicQuickExtractRequested,
	}
	for _, topic := range topics {
		br.unsubs = append(br.unsubs, b.Subscribe(topic, br.forward))
	}
}

func (br *Bridge) forward(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		br.logger.Error("marshaling bus event", logging.Err(err), logging.F("topic", string(ev.Topic)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	channel := channelPrefix + string(ev.Topic)
	if err := br.client.Publish(ctx, channel, data).Err(); err != nil {
		br.logger.Warn("publishing bus event to redis",
			logging.Err(err),
			logging.F("channel", channel))
		return
	}

	br.logger.Debug("mirrored bus event",
		logging.F("channel", channel),
		logging.F("payload_size", len(data)))
}

// Close detaches from the bus and closes the Redis connection.
func (br *Bridge) Close() error {
	for _, unsub := range br.unsubs {
		unsub()
	}
	br.unsubs = nil
	return br.client.Close()
}
