package kstream

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"socialstack/internal/model"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// UpdateHandler applies one catalog update.
type UpdateHandler func(ctx context.Context, update model.CatalogUpdate) error

// KafkaReader creates a Kafka consumer using segmentio/kafka-go library.
// kafka.Reader provides consumer group functionality with automatic offset management.
func KafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       16 << 20,
		CommitInterval: time.Second,
	})
}

// ConsumeCatalogUpdates reads catalog.ingest until ctx is canceled and
// hands each decoded update to handle. Malformed messages and handler
// failures are logged and skipped. The reader is closed on return.
func ConsumeCatalogUpdates(ctx context.Context, reader MessageReader, handle UpdateHandler) error {
	defer reader.Close()

	log.Info().Str("topic", TopicCatalogIngest).Msg("Catalog consumer: consuming")

	for {
		// segmentio/kafka-go: ReadMessage blocks until a message is available
		// and commits offsets for the consumer group.
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var update model.CatalogUpdate
		if err := json.Unmarshal(msg.Value, &update); err != nil {
			log.Warn().Err(err).Int64("offset", msg.Offset).Msg("Catalog consumer: failed to unmarshal")
			continue
		}
		if update.Catalog == "" {
			update.Catalog = string(msg.Key)
		}
		if update.Catalog == "" {
			log.Warn().Int64("offset", msg.Offset).Msg("Catalog consumer: update without catalog name")
			continue
		}

		if err := handle(ctx, update); err != nil {
			log.Error().Err(err).Str("catalog", update.Catalog).Msg("Catalog consumer: handler failed")
		}
	}
}
